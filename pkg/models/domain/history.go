package domain

// HistoryFile is a file attached to a visit.
type HistoryFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// VisitFiles groups the files found for one appointment date.
type VisitFiles struct {
	AppointmentDate string
	Images          []HistoryFile
	PDFs            []HistoryFile
}

// History is the medical-history view of one patient.
type History struct {
	PatientUID string
	Visits     []SummaryEntry
	Files      []VisitFiles
}
