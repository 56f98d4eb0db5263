package export

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

const PDFContentType = "application/pdf"

// BillDocument is the printable content of a procedure bill.
type BillDocument struct {
	PatientName    string
	PatientUID     string
	Issued         time.Time
	ProcedureHead  []string
	ProcedureRows  [][]string
	ConsumableHead []string
	ConsumableRows [][]string
	TotalAmount    string
}

// Image is a header or footer picture embedded in generated PDFs.
type Image struct {
	Name string
	Type string
	Data []byte
}

// LoadImage reads a PNG or JPEG file. An empty path yields a nil image.
func LoadImage(path string) (*Image, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return NewImage(path, data)
}

func NewImage(name string, data []byte) (*Image, error) {
	var imageType string
	switch http.DetectContentType(data) {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	default:
		return nil, fmt.Errorf("image %s is neither PNG nor JPEG", name)
	}
	return &Image{Name: name, Type: imageType, Data: data}, nil
}

const (
	bandHeight  = 35.0
	boxTop      = 40.0
	boxHeight   = 25.0
	boxPadding  = 10.0
	sideMargin  = 14.0
	rightColumn = 140.0
	rowHeight   = 8.0
)

// PDFRenderer lays out procedure bills on A4 pages.
type PDFRenderer struct {
	Header *Image
	Footer *Image
}

func (r PDFRenderer) Render(w io.Writer, doc BillDocument) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(sideMargin, bandHeight+5, sideMargin)
	pdf.SetAutoPageBreak(true, bandHeight+10)
	pdf.SetCreationDate(doc.Issued)
	pdf.SetModificationDate(doc.Issued)
	pdf.SetTitle("Procedure Bill", true)

	pageWidth, pageHeight := pdf.GetPageSize()
	pdf.SetHeaderFunc(func() {
		r.drawImage(pdf, r.Header, 0, 0, pageWidth)
	})
	pdf.SetFooterFunc(func() {
		r.drawImage(pdf, r.Footer, 0, pageHeight-bandHeight, pageWidth)
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFillColor(230, 230, 230)
	pdf.Rect(sideMargin, boxTop, pageWidth-2*sideMargin, boxHeight, "F")
	pdf.SetFont("Helvetica", "", 12)
	textY := boxTop + boxPadding
	pdf.Text(sideMargin+2, textY, tr("Patient Name: "+doc.PatientName))
	pdf.Text(sideMargin+2, textY+6, tr("Patient UID: "+doc.PatientUID))
	pdf.Text(rightColumn, textY, "Date: "+doc.Issued.Format("02/01/2006"))
	pdf.Text(rightColumn, textY+6, "Time: "+doc.Issued.Format("15:04:05"))

	pdf.SetY(boxTop + boxHeight + 10)
	if len(doc.ProcedureRows) > 0 {
		r.table(pdf, tr, pageWidth-2*sideMargin, doc.ProcedureHead, doc.ProcedureRows)
		pdf.Ln(10)
	}
	if len(doc.ConsumableRows) > 0 {
		r.table(pdf, tr, pageWidth-2*sideMargin, doc.ConsumableHead, doc.ConsumableRows)
		pdf.Ln(10)
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(sideMargin, pdf.GetY(), "Total Amount: "+doc.TotalAmount)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func (r PDFRenderer) Bytes(doc BillDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r PDFRenderer) drawImage(pdf *fpdf.Fpdf, img *Image, x, y, width float64) {
	if img == nil {
		return
	}
	opts := fpdf.ImageOptions{ImageType: img.Type}
	if pdf.GetImageInfo(img.Name) == nil {
		pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
	}
	pdf.ImageOptions(img.Name, x, y, width, bandHeight, false, opts, 0, "")
}

// table draws a striped table with a filled header row. The header is drawn
// again at the top of every page the rows run onto.
func (r PDFRenderer) table(pdf *fpdf.Fpdf, tr func(string) string, width float64, head []string, rows [][]string) {
	if len(head) == 0 {
		return
	}
	colWidth := width / float64(len(head))
	_, pageHeight := pdf.GetPageSize()
	_, breakMargin := pdf.GetAutoPageBreak()

	r.tableHead(pdf, tr, colWidth, head)
	page := pdf.PageNo()
	for i, row := range rows {
		if pdf.GetY()+rowHeight > pageHeight-breakMargin {
			pdf.AddPage()
		}
		if pdf.PageNo() != page {
			page = pdf.PageNo()
			r.tableHead(pdf, tr, colWidth, head)
		}

		if i%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j := range head {
			cell := ""
			if j < len(row) {
				cell = tr(row[j])
			}
			pdf.CellFormat(colWidth, rowHeight, cell, "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (r PDFRenderer) tableHead(pdf *fpdf.Fpdf, tr func(string) string, colWidth float64, head []string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for _, h := range head {
		pdf.CellFormat(colWidth, rowHeight, tr(h), "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
}
