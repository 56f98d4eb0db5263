package api

// BillingItem is a pharmacy bill line as stored under table_data.
type BillingItem struct {
	Particulars    string `json:"particulars"`
	BillNumber     string `json:"billNumber,omitempty"`
	Qty            Flex   `json:"qty"`
	Price          Flex   `json:"price"`
	CGSTPercentage Flex   `json:"CGST_percentage"`
	CGSTValue      Flex   `json:"CGST_value"`
	SGSTPercentage Flex   `json:"SGST_percentage"`
	SGSTValue      Flex   `json:"SGST_value"`
	Total          Flex   `json:"total"`
}

type BillingRecord struct {
	ID              Flex                  `json:"id"`
	PatientUID      string                `json:"patientUID"`
	PatientName     string                `json:"patientName"`
	AppointmentDate string                `json:"appointmentDate"`
	BillNumber      string                `json:"billNumber"`
	PaymentType     string                `json:"paymentType"`
	NetAmount       Flex                  `json:"netAmount"`
	Discount        Flex                  `json:"discount"`
	TableData       Embedded[BillingItem] `json:"table_data"`
}

// BillingEnvelope wraps the billing report under billing_data.
type BillingEnvelope struct {
	BillingData []BillingRecord `json:"billing_data"`
}

type ProcedureItem struct {
	Procedure     string `json:"procedure"`
	ProcedureDate string `json:"procedureDate"`
	Price         Flex   `json:"price"`
	GST           Flex   `json:"gst"`
	GSTRate       Flex   `json:"gstRate"`
	Total         Flex   `json:"total"`
}

type ConsumerItem struct {
	Item  string `json:"item"`
	Qty   Flex   `json:"qty"`
	Price Flex   `json:"price"`
	Total Flex   `json:"total"`
}

type ProcedureBillRecord struct {
	ID                  Flex                    `json:"id"`
	PatientUID          string                  `json:"patientUID"`
	PatientName         string                  `json:"patientName"`
	AppointmentDate     string                  `json:"appointmentDate"`
	Procedures          Embedded[ProcedureItem] `json:"procedures"`
	Consumer            Embedded[ConsumerItem]  `json:"consumer"`
	ProcedureNetAmount  Flex                    `json:"procedureNetAmount"`
	ConsumerNetAmount   Flex                    `json:"consumerNetAmount"`
	PaymentType         string                  `json:"PaymentType"`
	ProcedureBillNumber string                  `json:"procedureBillNumber"`
	ConsumerBillNumber  string                  `json:"consumerBillNumber"`
}

type ComplaintItem struct {
	Complaints   string `json:"complaints"`
	Duration     Flex   `json:"duration"`
	DurationUnit string `json:"durationUnit"`
}

type SummaryRecord struct {
	PatientUID      string                  `json:"patientUID"`
	PatientName     string                  `json:"patientName"`
	AppointmentDate string                  `json:"appointmentDate"`
	FormType        string                  `json:"formType"`
	Diagnosis       Flex                    `json:"diagnosis"`
	Complaints      Embedded[ComplaintItem] `json:"complaints"`
	Findings        Flex                    `json:"findings"`
	Prescription    Flex                    `json:"prescription"`
	Plans           Flex                    `json:"plans"`
	Tests           Flex                    `json:"tests"`
	Procedures      Flex                    `json:"procedures"`
	NextVisit       string                  `json:"nextVisit"`
}

type BillingUpdateRequest struct {
	PatientUID      string        `json:"patientUID"`
	AppointmentDate string        `json:"appointmentDate"`
	TableData       []BillingItem `json:"table_data"`
}

type BillingDeleteRequest struct {
	RecordID string `json:"record_id"`
}

// MessageResponse covers the message/error/success bodies the clinic API
// returns from write endpoints.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
}
