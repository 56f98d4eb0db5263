package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/aggregate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItem(name, total string) domain.LineItem {
	return domain.LineItem{
		Description: name,
		Date:        "2024-03-01",
		Price:       domain.ParseAmount(total),
		Total:       domain.ParseAmount(total),
	}
}

func record(name, uid string, section domain.Section, items ...domain.LineItem) domain.ReportRecord {
	return domain.ReportRecord{
		PatientName:     name,
		PatientUID:      uid,
		AppointmentDate: "2024-03-01",
		Sections:        map[domain.Section]domain.LineItems{section: {Items: items}},
	}
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV_ProcedureGrandTotal(t *testing.T) {
	records := []domain.ReportRecord{
		record("A", "P1", domain.SectionProcedure, lineItem("Peel", "500.00"), lineItem("Laser", "300.00")),
		record("B", "P2", domain.SectionProcedure, lineItem("Peel", "200.00")),
	}
	table := aggregate.BuildTable(records, aggregate.ProcedureView)

	data, err := EncodeCSV(table)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Patient Name,Patient UID,Appointment Date,Procedure,Procedure Date,Price,GST,GST Rate,Total", lines[0])
	assert.Equal(t, "A,P1,2024-03-01,Laser,2024-03-01,300.00,,,300.00", lines[2])
	assert.Equal(t, ",,,,,,,Grand Total,1000.00", lines[4])

	rows := parseCSV(t, data)
	assert.Len(t, rows, table.ItemCount()+2)
}

func TestWriteCSV_BillingBlanksRepeatedPatient(t *testing.T) {
	item := func(name, qty, total string) domain.LineItem {
		return domain.LineItem{
			Description: name,
			BillNumber:  "PH-1",
			Quantity:    domain.ParseAmount(qty),
			Price:       domain.ParseAmount("10"),
			Total:       domain.ParseAmount(total),
		}
	}
	records := []domain.ReportRecord{
		record("Asha", "P1", domain.SectionPharmacy, item("Dolo", "2", "20"), item("Cetirizine", "1", "abc")),
		record("Ravi", "P2", domain.SectionPharmacy),
	}
	table := aggregate.BuildTable(records, aggregate.BillingView)

	rows := parseCSV(t, mustEncode(t, table))
	require.Len(t, rows, 4)
	assert.Equal(t, []string{
		"Patient Name", "Particulars", "Quantity", "Price", "CGST_percentage",
		"CGST_value", "SGST_percentage", "SGST_value", "Total",
	}, rows[0])
	assert.Equal(t, "Asha", rows[1][0])
	assert.Equal(t, "", rows[2][0])
	assert.Equal(t, "Cetirizine", rows[2][1])
	assert.Equal(t, []string{"", "", "", "", "", "", "", "Grand Total", "20.00"}, rows[3])
}

func TestWriteCSV_QuotesSpecialCharacters(t *testing.T) {
	item := lineItem("Peel, deep \"TCA\"", "100")
	records := []domain.ReportRecord{
		record("Rao, K.", "P1", domain.SectionProcedure, item),
	}
	table := aggregate.BuildTable(records, aggregate.ProcedureView)

	data := mustEncode(t, table)
	assert.Contains(t, string(data), `"Rao, K."`)
	assert.Contains(t, string(data), `"Peel, deep ""TCA"""`)

	rows := parseCSV(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, "Rao, K.", rows[1][0])
	assert.Equal(t, "Peel, deep \"TCA\"", rows[1][3])
}

func TestWriteCSV_Consumer(t *testing.T) {
	consumable := domain.LineItem{Description: "Gauze", Quantity: domain.ParseAmount("3"), Total: domain.ParseAmount("45")}
	records := []domain.ReportRecord{
		record("A", "P1", domain.SectionConsumable, consumable, consumable),
	}
	rows := parseCSV(t, mustEncode(t, aggregate.BuildTable(records, aggregate.ConsumerView)))
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"A", "P1", "2024-03-01", "Gauze", "3", "45.00"}, rows[2])
	assert.Equal(t, []string{"", "", "", "", "Grand Total", "90.00"}, rows[3])
}

func TestWriteCSV_SummaryHasNoTotals(t *testing.T) {
	table := aggregate.SummaryTable([]domain.SummaryEntry{{PatientName: "Asha", Diagnosis: "Acne"}})
	rows := parseCSV(t, mustEncode(t, table))
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 9)
	assert.Equal(t, "Acne", rows[1][2])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Daily Report.csv", Filename(domain.Table{Name: "billing"}, "Daily Report"))
	assert.Equal(t, "Procedure_Weekly Report.csv", Filename(domain.Table{Name: "procedure"}, "Weekly Report"))
	assert.Equal(t, "Consumer_Monthly Report.csv", Filename(domain.Table{Name: "consumable"}, "Monthly Report"))
	assert.Equal(t, "summary_report.csv", Filename(domain.Table{Name: "summary"}, "Daily Report"))
}

func mustEncode(t *testing.T, table domain.Table) []byte {
	t.Helper()
	data, err := EncodeCSV(table)
	require.NoError(t, err)
	return data
}
