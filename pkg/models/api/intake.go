package api

// PatientRequest registers a new patient at the front desk.
type PatientRequest struct {
	PatientName    string `json:"patientName"`
	MobileNumber   string `json:"mobileNumber"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Email          string `json:"email"`
	Language       string `json:"language"`
	PurposeOfVisit string `json:"purposeOfVisit"`
	Address        string `json:"address"`
}

type PatientResponse struct {
	PatientUID   string `json:"patientUID"`
	PatientName  string `json:"patientName"`
	MobileNumber string `json:"mobileNumber"`
}

type Complaint struct {
	ID         Flex   `json:"id"`
	Complaints string `json:"complaints"`
}

type ComplaintRequest struct {
	Complaints string `json:"complaints"`
}
