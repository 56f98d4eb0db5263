package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/aggregate"
)

const GrandTotalLabel = "Grand Total"

type TableConfig struct {
	MinWidth int
	MaxWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MinWidth: 4,
		MaxWidth: 40,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// view is the table after span and placeholder resolution: every row has one
// cell per column.
type view struct {
	Heading string
	Title   string
	Empty   bool
	Message string
	Headers []string
	Rows    [][]string
	Footer  []string
	widths  []int
}

func (c *Reporter) Handle(heading string, table domain.Table) error {
	v := c.layout(heading, table)

	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			parts := make([]string, len(cells))
			for i, cell := range cells {
				parts[i] = pad(truncate(cell, v.widths[i]), v.widths[i])
			}
			return "| " + strings.Join(parts, " | ") + " |"
		},
		"separator": func() string {
			parts := make([]string, len(v.widths))
			for i, w := range v.widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `
=== {{.Title}} ({{.Heading}}) ===
{{if .Empty}}{{.Message}}
{{else}}{{separator}}
{{formatRow .Headers}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{if .Footer}}{{formatRow .Footer}}
{{separator}}
{{end}}{{end}}`

	t, err := template.New("table").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, v)
}

func (c *Reporter) layout(heading string, table domain.Table) view {
	v := view{
		Heading: heading,
		Title:   table.Title,
		Empty:   table.Empty,
		Message: aggregate.NoRecordsMessage,
	}
	for _, col := range table.Columns {
		v.Headers = append(v.Headers, col.Header)
	}
	width := len(table.Columns)
	groupWidth := table.GroupWidth()

	for _, r := range table.Rows {
		cells := make([]string, 0, width)
		for i := 0; i < groupWidth; i++ {
			cell := ""
			if r.Span > 0 && i < len(r.Group) {
				cell = r.Group[i]
			}
			cells = append(cells, cell)
		}
		if r.Placeholder != "" {
			cells = append(cells, r.Placeholder)
		} else {
			cells = append(cells, r.Cells...)
		}
		for len(cells) < width {
			cells = append(cells, "")
		}
		v.Rows = append(v.Rows, cells[:width])
	}

	if table.HasTotal && width >= 2 {
		v.Footer = make([]string, width)
		v.Footer[width-2] = GrandTotalLabel
		v.Footer[width-1] = table.Total.StringFixed(2)
	}

	v.widths = make([]int, width)
	measure := func(cells []string) {
		for i, cell := range cells {
			if n := utf8.RuneCountInString(cell); n > v.widths[i] {
				v.widths[i] = n
			}
		}
	}
	measure(v.Headers)
	for _, r := range v.Rows {
		measure(r)
	}
	measure(v.Footer)
	for i, w := range v.widths {
		v.widths[i] = min(max(w, c.config.MinWidth), c.config.MaxWidth)
	}
	return v
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}
