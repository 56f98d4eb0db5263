package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

// Reporter prints the notification panel and medical history as text.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

var funcs = template.FuncMap{
	"complaints": adapters.FormatComplaints,
	"kb": func(data []byte) string {
		return fmt.Sprintf("%.1f KB", float64(len(data))/1024)
	},
}

func (c *Reporter) Notifications(n domain.Notifications) error {
	tmpl := `{{if not .HasAny}}No notifications
{{else}}{{if .ShowMedicines}}{{if .LowStock}}
=== Low stock ===
{{range .LowStock}}- {{.MedicineName}}: {{.Stock}} left
{{end}}{{end}}{{if .NearExpiry}}
=== Near expiry ===
{{range .NearExpiry}}- {{.MedicineName}}: expires {{.ExpiryDate}}
{{end}}{{end}}{{end}}{{if .ShowVisits}}{{if .Visits}}
=== Upcoming visits ===
{{range .Visits}}- {{.PatientName}} ({{.PatientUID}}): {{.NextVisit}}
{{end}}{{end}}{{end}}{{end}}`

	t, err := template.New("notifications").Funcs(funcs).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, n)
}

func (c *Reporter) History(h domain.History) error {
	tmpl := `Medical history of {{.PatientUID}}
{{range .Visits}}
=== {{.AppointmentDate}}{{if .FormType}} ({{.FormType}}){{end}} ===
Diagnosis: {{.Diagnosis}}
Complaints: {{complaints .}}
Findings: {{.Findings}}
Prescription: {{.Prescription}}
Plans: {{.Plans}}
Tests: {{.Tests}}
Procedures: {{.Procedures}}
Next visit: {{.NextVisit}}
{{end}}{{range .Files}}
Files for {{.AppointmentDate}}:
{{range .Images}}  image {{.Filename}} ({{kb .Data}})
{{end}}{{range .PDFs}}  pdf {{.Filename}} ({{kb .Data}})
{{end}}{{end}}`

	t, err := template.New("history").Funcs(funcs).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, h)
}
