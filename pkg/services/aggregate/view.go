package aggregate

import (
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

// GroupColumn renders a patient-level cell.
type GroupColumn struct {
	Header string
	Value  func(domain.ReportRecord) string
}

// ItemColumn renders a line-item cell.
type ItemColumn struct {
	Header      string
	Value       func(domain.LineItem) string
	DisplayOnly bool
}

// View selects a section of a report and the columns it is shown with.
type View struct {
	Name        string
	Title       string
	Section     domain.Section
	Group       []GroupColumn
	Items       []ItemColumn
	RepeatGroup bool
}

func (v View) Columns() []domain.Column {
	cols := make([]domain.Column, 0, len(v.Group)+len(v.Items))
	for _, g := range v.Group {
		cols = append(cols, domain.Column{Header: g.Header, Group: true})
	}
	for _, it := range v.Items {
		cols = append(cols, domain.Column{Header: it.Header, DisplayOnly: it.DisplayOnly})
	}
	return cols
}

func patientName(r domain.ReportRecord) string     { return r.PatientName }
func patientUID(r domain.ReportRecord) string      { return r.PatientUID }
func appointmentDate(r domain.ReportRecord) string { return r.AppointmentDate }

func raw(get func(domain.LineItem) domain.Amount) func(domain.LineItem) string {
	return func(it domain.LineItem) string { return get(it).String() }
}

func money(get func(domain.LineItem) domain.Amount) func(domain.LineItem) string {
	return func(it domain.LineItem) string { return get(it).Fixed(2) }
}

var patientColumns = []GroupColumn{
	{Header: "Patient Name", Value: patientName},
	{Header: "Patient UID", Value: patientUID},
	{Header: "Appointment Date", Value: appointmentDate},
}

// BillingView is the pharmacy billing report.
var BillingView = View{
	Name:    "billing",
	Title:   "Billing Report",
	Section: domain.SectionPharmacy,
	Group:   patientColumns[:1],
	Items: []ItemColumn{
		{Header: "Bill Number", Value: func(it domain.LineItem) string { return it.BillNumber }, DisplayOnly: true},
		{Header: "Particulars", Value: func(it domain.LineItem) string { return it.Description }},
		{Header: "Quantity", Value: raw(func(it domain.LineItem) domain.Amount { return it.Quantity })},
		{Header: "Price", Value: raw(func(it domain.LineItem) domain.Amount { return it.Price })},
		{Header: "CGST_percentage", Value: raw(func(it domain.LineItem) domain.Amount { return it.CGSTRate })},
		{Header: "CGST_value", Value: raw(func(it domain.LineItem) domain.Amount { return it.CGST })},
		{Header: "SGST_percentage", Value: raw(func(it domain.LineItem) domain.Amount { return it.SGSTRate })},
		{Header: "SGST_value", Value: raw(func(it domain.LineItem) domain.Amount { return it.SGST })},
		{Header: "Total", Value: money(func(it domain.LineItem) domain.Amount { return it.Total })},
	},
}

// ProcedureView is the procedure tab of the procedure billing report.
var ProcedureView = View{
	Name:    "procedure",
	Title:   "Procedure Bills",
	Section: domain.SectionProcedure,
	Group:   patientColumns,
	Items: []ItemColumn{
		{Header: "Procedure", Value: func(it domain.LineItem) string { return it.Description }},
		{Header: "Procedure Date", Value: func(it domain.LineItem) string { return it.Date }},
		{Header: "Price", Value: raw(func(it domain.LineItem) domain.Amount { return it.Price })},
		{Header: "GST", Value: raw(func(it domain.LineItem) domain.Amount { return it.Tax })},
		{Header: "GST Rate", Value: raw(func(it domain.LineItem) domain.Amount { return it.TaxRate })},
		{Header: "Total", Value: money(func(it domain.LineItem) domain.Amount { return it.Total })},
	},
	RepeatGroup: true,
}

// ConsumerView is the consumable tab of the procedure billing report.
var ConsumerView = View{
	Name:    "consumable",
	Title:   "Consumable Bills",
	Section: domain.SectionConsumable,
	Group:   patientColumns,
	Items: []ItemColumn{
		{Header: "Item", Value: func(it domain.LineItem) string { return it.Description }},
		{Header: "Quantity", Value: raw(func(it domain.LineItem) domain.Amount { return it.Quantity })},
		{Header: "Total", Value: money(func(it domain.LineItem) domain.Amount { return it.Total })},
	},
	RepeatGroup: true,
}

// ViewsFor lists the tabs shown for a report kind.
func ViewsFor(kind domain.ReportKind) []View {
	switch kind {
	case domain.BillingReport:
		return []View{BillingView}
	case domain.ProcedureReport:
		return []View{ProcedureView, ConsumerView}
	default:
		return nil
	}
}
