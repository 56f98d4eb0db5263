package adapters

import (
	"fmt"
	"strings"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

func MapSummaryRecordToDomain(r api.SummaryRecord) domain.SummaryEntry {
	complaints := make([]domain.Complaint, 0, len(r.Complaints.Items))
	for _, c := range r.Complaints.Items {
		complaints = append(complaints, domain.Complaint{
			Complaint:    c.Complaints,
			Duration:     c.Duration.Raw,
			DurationUnit: c.DurationUnit,
		})
	}
	return domain.SummaryEntry{
		PatientName:       r.PatientName,
		PatientUID:        r.PatientUID,
		AppointmentDate:   r.AppointmentDate,
		FormType:          r.FormType,
		Diagnosis:         r.Diagnosis.Raw,
		Complaints:        complaints,
		ComplaintsInvalid: r.Complaints.Invalid,
		Findings:          r.Findings.Raw,
		Prescription:      r.Prescription.Raw,
		Plans:             r.Plans.Raw,
		Tests:             r.Tests.Raw,
		Procedures:        r.Procedures.Raw,
		NextVisit:         r.NextVisit,
	}
}

// FormatComplaints renders a complaint list as a single line.
func FormatComplaints(e domain.SummaryEntry) string {
	if e.ComplaintsInvalid {
		return "Invalid complaints data"
	}
	parts := make([]string, 0, len(e.Complaints))
	for _, c := range e.Complaints {
		parts = append(parts, formatComplaint(c))
	}
	return strings.Join(parts, "; ")
}

func formatComplaint(c domain.Complaint) string {
	duration := strings.TrimSpace(fmt.Sprintf("%s %s", c.Duration, c.DurationUnit))
	if duration == "" {
		return c.Complaint
	}
	return fmt.Sprintf("%s (%s)", c.Complaint, duration)
}

func MapSummaryDomainToVisit(e domain.SummaryEntry) api.Visit {
	complaints := make([]string, 0, len(e.Complaints))
	for _, c := range e.Complaints {
		complaints = append(complaints, formatComplaint(c))
	}
	return api.Visit{
		AppointmentDate: e.AppointmentDate,
		FormType:        e.FormType,
		Diagnosis:       e.Diagnosis,
		Complaints:      complaints,
		Findings:        e.Findings,
		Prescription:    e.Prescription,
		Plans:           e.Plans,
		Tests:           e.Tests,
		Procedures:      e.Procedures,
		NextVisit:       e.NextVisit,
	}
}
