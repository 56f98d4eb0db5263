package notification

import (
	"context"
	"fmt"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/session"
	"github.com/rs/zerolog"
)

type Backend interface {
	GetMedicineStatus(ctx context.Context) (*api.MedicineStatus, error)
	GetUpcomingVisits(ctx context.Context) ([]api.UpcomingVisit, error)
}

type Panel struct {
	backend Backend
	session session.Context
}

func NewPanel(backend Backend, s session.Context) *Panel {
	return &Panel{backend: backend, session: s}
}

// FetchesMedicines reports whether medicine status is requested for the role.
func FetchesMedicines(s domain.Session) bool {
	return s.Role == domain.RoleDoctor || s.Role == domain.RolePharmacist
}

func FetchesVisits(s domain.Session) bool {
	return s.Role == domain.RoleDoctor || s.Role == domain.RoleReceptionist
}

func ShowsMedicines(s domain.Session) bool {
	switch s.Role {
	case domain.RolePharmacist:
		return true
	case domain.RoleDoctor:
		return s.LoggedInAs == domain.PharmacistLogin || s.LoggedInAs == domain.DoctorLogin
	}
	return false
}

func ShowsVisits(s domain.Session) bool {
	switch s.Role {
	case domain.RoleReceptionist:
		return true
	case domain.RoleDoctor:
		return s.LoggedInAs == domain.ReceptionistLogin || s.LoggedInAs == domain.DoctorLogin
	}
	return false
}

// Load collects the notifications visible to the signed-in user. A failed
// fetch leaves its list empty.
func (p *Panel) Load(ctx context.Context) (domain.Notifications, error) {
	s, ok := p.session.Current()
	if !ok {
		return domain.Notifications{}, fmt.Errorf("notifications: %w", domain.ErrNotLoggedIn)
	}
	logger := zerolog.Ctx(ctx).With().Str("role", string(s.Role)).Logger()

	n := domain.Notifications{
		ShowMedicines: ShowsMedicines(s),
		ShowVisits:    ShowsVisits(s),
	}

	if FetchesMedicines(s) && n.ShowMedicines {
		status, err := p.backend.GetMedicineStatus(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to fetch medicine status")
		} else {
			for _, m := range status.LowQuantityMedicines {
				n.LowStock = append(n.LowStock, adapters.MapMedicineToAlert(m))
			}
			for _, m := range status.NearExpiryMedicines {
				n.NearExpiry = append(n.NearExpiry, adapters.MapMedicineToAlert(m))
			}
		}
	}

	if FetchesVisits(s) && n.ShowVisits {
		visits, err := p.backend.GetUpcomingVisits(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to fetch upcoming visits")
		} else {
			for _, v := range visits {
				n.Visits = append(n.Visits, adapters.MapUpcomingVisitToDomain(v))
			}
		}
	}

	logger.Debug().
		Int("low_stock", len(n.LowStock)).
		Int("near_expiry", len(n.NearExpiry)).
		Int("visits", len(n.Visits)).
		Msg("notifications loaded")
	return n, nil
}
