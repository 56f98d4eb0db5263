package domain

// Patient is the intake form. CustomPurpose, when typed, replaces the purpose
// picked from the list.
type Patient struct {
	PatientName    string
	MobileNumber   string
	Age            string
	Gender         string
	Email          string
	Language       string
	PurposeOfVisit string
	CustomPurpose  string
	Address        string
}

func (p Patient) Purpose() string {
	if p.CustomPurpose != "" {
		return p.CustomPurpose
	}
	return p.PurposeOfVisit
}

// ComplaintOption is an entry of the clinic's complaints catalog.
type ComplaintOption struct {
	ID   string
	Name string
}
