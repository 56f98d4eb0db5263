package adapters

import (
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

func MapCredentialsToLoginRequest(c domain.Credentials) api.LoginRequest {
	return api.LoginRequest{
		Username: c.Username,
		Password: c.Password,
		Endpoint: string(c.Endpoint),
	}
}

func MapLoginResponseToSession(r api.LoginResponse, tag domain.LoginTag) domain.Session {
	return domain.Session{
		Role:       domain.Role(r.Role),
		UserID:     r.ID.Raw,
		Name:       r.Name,
		Email:      r.Email,
		LoggedInAs: tag,
	}
}
