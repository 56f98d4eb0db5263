package domain

type MedicineAlert struct {
	MedicineName string
	Stock        string
	ExpiryDate   string
}

type UpcomingVisit struct {
	PatientUID  string
	PatientName string
	NextVisit   string
}

// Notifications is the content of the notification panel for one session.
// Show flags follow the role gate; lists outside the gate stay empty.
type Notifications struct {
	LowStock      []MedicineAlert
	NearExpiry    []MedicineAlert
	Visits        []UpcomingVisit
	ShowMedicines bool
	ShowVisits    bool
}

func (n Notifications) HasAny() bool {
	return len(n.LowStock) > 0 || len(n.NearExpiry) > 0 || len(n.Visits) > 0
}
