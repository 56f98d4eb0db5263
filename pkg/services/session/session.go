package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/client"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	MessageInvalidCredentials = "Invalid username or password"
	MessageAccessDenied       = "Access denied"
)

// Authenticator is the login endpoint of the clinic API.
type Authenticator interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
}

// Context is the read-only view of the signed-in user handed to screens.
type Context interface {
	Current() (domain.Session, bool)
}

// LoginError carries the message to show for a failed login.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

// Manager holds the session. Login is the only way to set it and SignOut the
// only way to clear it.
type Manager struct {
	auth Authenticator

	mu      sync.RWMutex
	current *domain.Session
}

func NewManager(auth Authenticator) *Manager {
	return &Manager{auth: auth}
}

// Allowed reports whether role may sign in through the login screen tag.
func Allowed(role domain.Role, tag domain.LoginTag) bool {
	switch role {
	case domain.RoleDoctor:
		return true
	case domain.RolePharmacist:
		return tag == domain.PharmacistLogin
	case domain.RoleReceptionist:
		return tag == domain.ReceptionistLogin
	default:
		return false
	}
}

func (m *Manager) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	logger := zerolog.Ctx(ctx).With().Str("username", creds.Username).Str("endpoint", string(creds.Endpoint)).Logger()

	resp, err := m.auth.Login(ctx, adapters.MapCredentialsToLoginRequest(creds))
	if err != nil {
		logger.Warn().Err(err).Msg("login failed")
		return domain.Session{}, &LoginError{Message: loginMessage(err), Err: err}
	}

	s := adapters.MapLoginResponseToSession(*resp, creds.Endpoint)
	if !Allowed(s.Role, creds.Endpoint) {
		logger.Warn().Str("role", string(s.Role)).Msg("role not allowed on this login screen")
		return domain.Session{}, &LoginError{
			Message: MessageAccessDenied,
			Err:     fmt.Errorf("%w: %s via %s", domain.ErrAccessDenied, s.Role, creds.Endpoint),
		}
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	logger.Info().Str("role", string(s.Role)).Str("user_id", s.UserID).Msg("signed in")
	return s, nil
}

func loginMessage(err error) string {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		if msg := statusErr.Message(); msg != "" {
			return msg
		}
	}
	return MessageInvalidCredentials
}

func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

func (m *Manager) Current() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return domain.Session{}, false
	}
	return *m.current, true
}

// Static is a fixed session, used where the identity comes from configuration
// rather than an interactive login.
type Static struct {
	Session domain.Session
}

func (s Static) Current() (domain.Session, bool) {
	return s.Session, s.Session.Role != ""
}
