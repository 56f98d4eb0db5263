package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPDFRenderer_Render(t *testing.T) {
	header, err := NewImage("header.png", pngImage(t))
	require.NoError(t, err)
	footer, err := NewImage("footer.png", pngImage(t))
	require.NoError(t, err)

	doc := BillDocument{
		PatientName:    "Asha Rao",
		PatientUID:     "P1",
		Issued:         time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		ProcedureHead:  []string{"Procedure", "Procedure Date", "Price", "GST Rate (%)", "GST", "Total"},
		ProcedureRows:  [][]string{{"Peel", "2024-03-01", "1000", "18", "180", "1180"}},
		ConsumableHead: []string{"Item", "Qty", "Price", "Total"},
		ConsumableRows: [][]string{{"Gauze", "2", "15", "30.00"}},
		TotalAmount:    "1210.00",
	}

	data, err := PDFRenderer{Header: header, Footer: footer}.Bytes(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "%%EOF")
}

func TestPDFRenderer_TableHeaderOnEveryPage(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetMargins(sideMargin, bandHeight+5, sideMargin)
	pdf.SetAutoPageBreak(true, bandHeight+10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	rows := make([][]string, 60)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("Peel %d", i), "2024-03-01", "1"}
	}
	PDFRenderer{}.table(pdf, tr, 180, []string{"Procedure", "Procedure Date", "Qté"}, rows)
	require.Greater(t, pdf.PageNo(), 1)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	out := buf.String()
	assert.Equal(t, pdf.PageNo(), strings.Count(out, "(Procedure Date)"))
	assert.Equal(t, pdf.PageNo(), strings.Count(out, "(Qt\xe9)"))
	assert.Contains(t, out, "(Peel 59)")
}

func TestPDFRenderer_WithoutImages(t *testing.T) {
	data, err := PDFRenderer{}.Bytes(BillDocument{PatientName: "Asha", TotalAmount: "0.00"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestNewImage_RejectsUnknownFormat(t *testing.T) {
	_, err := NewImage("logo.gif", []byte("GIF89a"))
	assert.Error(t, err)
}

func TestLoadImage_EmptyPath(t *testing.T) {
	img, err := LoadImage("")
	require.NoError(t, err)
	assert.Nil(t, img)
}
