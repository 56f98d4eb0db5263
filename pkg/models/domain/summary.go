package domain

// Complaint is one entry of a visit's complaint list.
type Complaint struct {
	Complaint    string
	Duration     string
	DurationUnit string
}

// SummaryEntry is the clinical summary of one visit.
type SummaryEntry struct {
	PatientName       string
	PatientUID        string
	AppointmentDate   string
	FormType          string
	Diagnosis         string
	Complaints        []Complaint
	ComplaintsInvalid bool
	Findings          string
	Prescription      string
	Plans             string
	Tests             string
	Procedures        string
	NextVisit         string
}
