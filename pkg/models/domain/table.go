package domain

import "github.com/shopspring/decimal"

// Column is a display column. Group columns identify the patient and are
// spanned across all rows of the patient's group. DisplayOnly columns are
// left out of file exports.
type Column struct {
	Header      string
	Group       bool
	DisplayOnly bool
}

// Row is one flattened display row.
//
// Group holds the patient columns for every row of a group; Span is the group
// size on the first row and zero on the rest. Placeholder rows carry only a
// message (no items, undecodable items).
type Row struct {
	Group       []string
	Cells       []string
	Span        int
	Placeholder string
}

// Table is the aggregated, display-ready form of a report section.
type Table struct {
	Name    string
	Title   string
	Columns []Column
	Rows    []Row
	Total   decimal.Decimal
	// HasTotal is false for tables that carry no money column.
	HasTotal bool
	Empty    bool
	// RepeatGroup repeats the group columns on every exported row instead of
	// only the first one.
	RepeatGroup bool
}

// ItemCount counts rows backed by a line item.
func (t Table) ItemCount() int {
	n := 0
	for _, r := range t.Rows {
		if r.Placeholder == "" {
			n++
		}
	}
	return n
}

func (t Table) GroupWidth() int {
	n := 0
	for _, c := range t.Columns {
		if c.Group {
			n++
		}
	}
	return n
}
