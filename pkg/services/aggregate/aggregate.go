package aggregate

import (
	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	NoItemsMessage   = "No table data available"
	InvalidMessage   = "Invalid data"
	NoRecordsMessage = "No data available"
)

// GrandTotal sums the totals of every item in section. Missing or
// non-numeric totals count as zero.
func GrandTotal(records []domain.ReportRecord, section domain.Section) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(SumItems(r.Items(section).Items))
	}
	return total
}

func SumItems(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total.Decimal())
	}
	return total
}

// BuildTable flattens records into the rows of view. Each patient group
// starts with a row whose Span covers the group; groups without items get a
// single placeholder row.
func BuildTable(records []domain.ReportRecord, view View) domain.Table {
	table := domain.Table{
		Name:        view.Name,
		Title:       view.Title,
		Columns:     view.Columns(),
		HasTotal:    true,
		RepeatGroup: view.RepeatGroup,
		Total:       GrandTotal(records, view.Section),
	}
	if len(records) == 0 {
		table.Empty = true
		return table
	}

	for _, r := range records {
		group := make([]string, 0, len(view.Group))
		for _, g := range view.Group {
			group = append(group, g.Value(r))
		}

		items := r.Items(view.Section)
		switch {
		case items.Invalid:
			table.Rows = append(table.Rows, domain.Row{Group: group, Span: 1, Placeholder: InvalidMessage})
			continue
		case len(items.Items) == 0:
			table.Rows = append(table.Rows, domain.Row{Group: group, Span: 1, Placeholder: NoItemsMessage})
			continue
		}

		for i, it := range items.Items {
			cells := make([]string, 0, len(view.Items))
			for _, c := range view.Items {
				cells = append(cells, c.Value(it))
			}
			row := domain.Row{Group: group, Cells: cells}
			if i == 0 {
				row.Span = len(items.Items)
			}
			table.Rows = append(table.Rows, row)
		}
	}
	return table
}

// BuildTables builds one table per tab of kind.
func BuildTables(kind domain.ReportKind, records []domain.ReportRecord) []domain.Table {
	views := ViewsFor(kind)
	tables := make([]domain.Table, 0, len(views))
	for _, v := range views {
		tables = append(tables, BuildTable(records, v))
	}
	return tables
}

var summaryHeaders = []string{
	"Patient Name", "Date", "Diagnosis", "Complaints", "Findings",
	"Prescription", "Plans", "Tests", "Procedure",
}

// SummaryTable lists one row per visit. It carries no total.
func SummaryTable(entries []domain.SummaryEntry) domain.Table {
	table := domain.Table{
		Name:    "summary",
		Title:   "Summary Report",
		Columns: make([]domain.Column, 0, len(summaryHeaders)),
		Empty:   len(entries) == 0,
	}
	for _, h := range summaryHeaders {
		table.Columns = append(table.Columns, domain.Column{Header: h})
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, domain.Row{Cells: []string{
			e.PatientName,
			e.AppointmentDate,
			e.Diagnosis,
			adapters.FormatComplaints(e),
			e.Findings,
			e.Prescription,
			e.Plans,
			e.Tests,
			e.Procedures,
		}})
	}
	return table
}
