package adapters

import (
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

func MapTableDomainToApi(t domain.Table) api.Table {
	out := api.Table{
		Title:   t.Title,
		Columns: make([]api.Column, 0, len(t.Columns)),
		Rows:    make([]api.Row, 0, len(t.Rows)),
		Empty:   t.Empty,
	}
	for _, c := range t.Columns {
		out.Columns = append(out.Columns, api.Column{Header: c.Header, Group: c.Group})
	}
	for _, r := range t.Rows {
		row := api.Row{Cells: r.Cells, Span: r.Span, Placeholder: r.Placeholder}
		if r.Span > 0 {
			row.Group = r.Group
		}
		out.Rows = append(out.Rows, row)
	}
	if t.HasTotal {
		total := t.Total.StringFixed(2)
		out.GrandTotal = &total
	}
	return out
}
