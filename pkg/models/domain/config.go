package domain

import "fmt"

// ConfigProfile is one clinic account from the profiles file.
type ConfigProfile struct {
	Name     string
	BaseURL  string
	Username string
	Password string
	LoginAs  LoginTag
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.LoginAs, c.Name)
}

// Credentials returns the login payload for the profile.
func (c ConfigProfile) Credentials() Credentials {
	return Credentials{Username: c.Username, Password: c.Password, Endpoint: c.LoginAs}
}
