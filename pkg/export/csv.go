package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

const (
	CSVContentType   = "text/csv; charset=utf-8"
	GrandTotalLabel  = "Grand Total"
	SummaryFilename  = "summary_report.csv"
	ProcedureBillPDF = "procedure_bill.pdf"
)

// Filename is the download name of an exported table.
func Filename(t domain.Table, heading string) string {
	switch t.Name {
	case "procedure":
		return fmt.Sprintf("Procedure_%s.csv", heading)
	case "consumable":
		return fmt.Sprintf("Consumer_%s.csv", heading)
	case "summary":
		return SummaryFilename
	default:
		return heading + ".csv"
	}
}

// WriteCSV writes the header, one record per line item and, for tables with
// a money column, a closing Grand Total record. Placeholder rows and
// DisplayOnly columns are skipped.
func WriteCSV(w io.Writer, t domain.Table) error {
	groupWidth := t.GroupWidth()
	keep := make([]bool, 0, len(t.Columns)-groupWidth)
	header := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !c.Group {
			keep = append(keep, !c.DisplayOnly)
		}
		if !c.DisplayOnly {
			header = append(header, c.Header)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range t.Rows {
		if row.Placeholder != "" {
			continue
		}
		record := make([]string, 0, len(header))
		for i := 0; i < groupWidth; i++ {
			value := ""
			if (t.RepeatGroup || row.Span > 0) && i < len(row.Group) {
				value = row.Group[i]
			}
			record = append(record, value)
		}
		for i, cell := range row.Cells {
			if i < len(keep) && keep[i] {
				record = append(record, cell)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if t.HasTotal && len(header) >= 2 {
		totals := make([]string, len(header))
		totals[len(totals)-2] = GrandTotalLabel
		totals[len(totals)-1] = t.Total.StringFixed(2)
		if err := cw.Write(totals); err != nil {
			return fmt.Errorf("write csv totals: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func EncodeCSV(t domain.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
