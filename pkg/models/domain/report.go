package domain

// ReportKind names a report endpoint family on the clinic API.
type ReportKind string

const (
	BillingReport   ReportKind = "billing"
	ProcedureReport ReportKind = "procedurebilling"
	SummaryReport   ReportKind = "summary"
)

// Section names a nested line-item collection inside a ReportRecord.
type Section string

const (
	SectionPharmacy   Section = "pharmacy"
	SectionProcedure  Section = "procedure"
	SectionConsumable Section = "consumable"
)

// LineItem is a single billable entry. Which fields are populated depends on
// the section: pharmacy bills carry CGST/SGST, procedure bills carry a single
// GST rate and value, consumables carry quantity and total.
type LineItem struct {
	Description string
	Date        string
	BillNumber  string
	Quantity    Amount
	Price       Amount
	TaxRate     Amount
	Tax         Amount
	CGSTRate    Amount
	CGST        Amount
	SGSTRate    Amount
	SGST        Amount
	Total       Amount
}

// LineItems is a decoded collection. Invalid is set when the collection was
// delivered as an encoded string that could not be decoded.
type LineItems struct {
	Items   []LineItem
	Invalid bool
}

// ReportRecord is one patient's billing entry for a period.
type ReportRecord struct {
	RecordID        string
	PatientName     string
	PatientUID      string
	AppointmentDate string
	Sections        map[Section]LineItems
}

func (r ReportRecord) Items(section Section) LineItems {
	if r.Sections == nil {
		return LineItems{}
	}
	return r.Sections[section]
}
