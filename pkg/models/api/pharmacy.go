package api

type Medicine struct {
	MedicineName   string `json:"medicine_name"`
	CompanyName    string `json:"company_name"`
	Price          Flex   `json:"price"`
	CGSTPercentage Flex   `json:"CGST_percentage"`
	CGSTValue      Flex   `json:"CGST_value"`
	SGSTPercentage Flex   `json:"SGST_percentage"`
	SGSTValue      Flex   `json:"SGST_value"`
	NewStock       Flex   `json:"new_stock"`
	OldStock       Flex   `json:"old_stock"`
	ReceivedDate   string `json:"received_date"`
	ExpiryDate     string `json:"expiry_date"`
	BatchNumber    string `json:"batch_number"`
}

type MedicineStatus struct {
	LowQuantityMedicines []Medicine `json:"low_quantity_medicines"`
	NearExpiryMedicines  []Medicine `json:"near_expiry_medicines"`
}

type UpcomingVisit struct {
	PatientUID  string `json:"patientUID"`
	PatientName string `json:"patientName"`
	NextVisit   string `json:"nextVisit"`
}

type UpcomingVisits struct {
	UpcomingVisits []UpcomingVisit `json:"upcoming_visits"`
}

type PatientDetailsRequest struct {
	PatientUID string `json:"patientUID"`
}
