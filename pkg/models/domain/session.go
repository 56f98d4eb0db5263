package domain

// Role is the user role returned by the login service.
type Role string

const (
	RoleDoctor       Role = "Doctor"
	RolePharmacist   Role = "Pharmacist"
	RoleReceptionist Role = "Receptionist"
)

// LoginTag identifies the login screen a user signed in through.
type LoginTag string

const (
	DoctorLogin       LoginTag = "DoctorLogin"
	PharmacistLogin   LoginTag = "PharmacistLogin"
	ReceptionistLogin LoginTag = "ReceptionistLogin"
)

// Session is the signed-in user's identity.
type Session struct {
	Role       Role
	UserID     string
	Name       string
	Email      string
	LoggedInAs LoginTag
}

// Landing is the screen a session opens on.
func (s Session) Landing() string {
	switch s.LoggedInAs {
	case PharmacistLogin:
		return "/Pharmacy"
	case ReceptionistLogin:
		return "/Reception/Appointment"
	default:
		return "/Doctor/BookedAppointments"
	}
}

// Credentials are submitted to the login service.
type Credentials struct {
	Username string
	Password string
	Endpoint LoginTag
}
