package api

// Types below are served by the BFF web API.

type Column struct {
	Header string `json:"header"`
	Group  bool   `json:"group,omitempty"`
}

type Row struct {
	Group       []string `json:"group,omitempty"`
	Cells       []string `json:"cells,omitempty"`
	Span        int      `json:"span"`
	Placeholder string   `json:"placeholder,omitempty"`
}

type Table struct {
	Title      string   `json:"title"`
	Columns    []Column `json:"columns"`
	Rows       []Row    `json:"rows"`
	GrandTotal *string  `json:"grand_total,omitempty"`
	Empty      bool     `json:"empty"`
}

type ReportResponse struct {
	Kind     string           `json:"kind"`
	Interval string           `json:"interval"`
	Date     string           `json:"date"`
	Heading  string           `json:"heading"`
	Status   string           `json:"status"`
	Message  string           `json:"message,omitempty"`
	Tables   map[string]Table `json:"tables"`
}

type WeeksResponse struct {
	Month string   `json:"month"`
	Weeks []string `json:"weeks"`
}

type MedicineAlert struct {
	MedicineName string `json:"medicine_name"`
	Stock        string `json:"stock"`
	ExpiryDate   string `json:"expiry_date"`
}

type NotificationsResponse struct {
	HasNotifications bool            `json:"has_notifications"`
	LowStock         []MedicineAlert `json:"low_stock,omitempty"`
	NearExpiry       []MedicineAlert `json:"near_expiry,omitempty"`
	Visits           []UpcomingVisit `json:"upcoming_visits,omitempty"`
}

type HistoryFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type VisitFiles struct {
	AppointmentDate string        `json:"appointment_date"`
	Images          []HistoryFile `json:"images"`
	PDFs            []HistoryFile `json:"pdfs"`
}

type HistoryResponse struct {
	PatientUID string       `json:"patient_uid"`
	Visits     []Visit      `json:"visits"`
	Files      []VisitFiles `json:"files"`
}

type Visit struct {
	AppointmentDate string   `json:"appointment_date"`
	FormType        string   `json:"form_type,omitempty"`
	Diagnosis       string   `json:"diagnosis"`
	Complaints      []string `json:"complaints"`
	Findings        string   `json:"findings"`
	Prescription    string   `json:"prescription"`
	Plans           string   `json:"plans"`
	Tests           string   `json:"tests"`
	Procedures      string   `json:"procedures"`
	NextVisit       string   `json:"next_visit"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
