package api

type BillPatient struct {
	PatientUID      string                  `json:"patientUID"`
	PatientName     string                  `json:"patientName"`
	AppointmentDate string                  `json:"appointmentDate"`
	Procedures      Embedded[ProcedureItem] `json:"procedures"`
}

type ProcedureBillDetails struct {
	DetailedRecords []BillPatient `json:"detailedRecords"`
}

type ProcedureBillRequest struct {
	PatientName        string          `json:"patientName"`
	PatientUID         string          `json:"patientUID"`
	AppointmentDate    string          `json:"appointmentDate"`
	Procedures         []ProcedureItem `json:"procedures"`
	Consumer           []ConsumerItem  `json:"consumer"`
	ProcedureNetAmount string          `json:"procedureNetAmount"`
	ConsumerNetAmount  string          `json:"consumerNetAmount"`
	TotalAmount        string          `json:"totalAmount"`
	PaymentType        string          `json:"PaymentType"`
	ConsumerSection    string          `json:"consumerSection"`
	ProcedureSection   string          `json:"procedureSection"`
}

type ProcedureBillResponse struct {
	Success             string `json:"success"`
	ConsumerBillNumber  string `json:"consumerBillNumber"`
	ProcedureBillNumber string `json:"procedureBillNumber"`
}
