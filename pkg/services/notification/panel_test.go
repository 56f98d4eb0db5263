package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) GetMedicineStatus(ctx context.Context) (*api.MedicineStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.MedicineStatus), args.Error(1)
}

func (m *mockBackend) GetUpcomingVisits(ctx context.Context) ([]api.UpcomingVisit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.UpcomingVisit), args.Error(1)
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func medicineStatus() *api.MedicineStatus {
	return &api.MedicineStatus{
		LowQuantityMedicines: []api.Medicine{{MedicineName: "Cetirizine", OldStock: api.FlexNumber("3"), ExpiryDate: "2025-01-01"}},
		NearExpiryMedicines:  []api.Medicine{{MedicineName: "Tretinoin", OldStock: api.FlexNumber("40"), ExpiryDate: "2024-04-01"}},
	}
}

func upcoming() []api.UpcomingVisit {
	return []api.UpcomingVisit{{PatientUID: "P1", PatientName: "Asha", NextVisit: "2024-03-12"}}
}

func TestVisibility(t *testing.T) {
	tests := []struct {
		name      string
		session   domain.Session
		medicines bool
		visits    bool
	}{
		{"doctor as doctor", domain.Session{Role: domain.RoleDoctor, LoggedInAs: domain.DoctorLogin}, true, true},
		{"doctor as pharmacist", domain.Session{Role: domain.RoleDoctor, LoggedInAs: domain.PharmacistLogin}, true, false},
		{"doctor as receptionist", domain.Session{Role: domain.RoleDoctor, LoggedInAs: domain.ReceptionistLogin}, false, true},
		{"pharmacist", domain.Session{Role: domain.RolePharmacist, LoggedInAs: domain.PharmacistLogin}, true, false},
		{"receptionist", domain.Session{Role: domain.RoleReceptionist, LoggedInAs: domain.ReceptionistLogin}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.medicines, ShowsMedicines(tt.session))
			assert.Equal(t, tt.visits, ShowsVisits(tt.session))
		})
	}
}

func TestPanel_LoadDoctor(t *testing.T) {
	backend := new(mockBackend)
	backend.On("GetMedicineStatus", mock.Anything).Return(medicineStatus(), nil)
	backend.On("GetUpcomingVisits", mock.Anything).Return(upcoming(), nil)

	p := NewPanel(backend, session.Static{Session: domain.Session{Role: domain.RoleDoctor, LoggedInAs: domain.DoctorLogin}})
	n, err := p.Load(testContext(t))
	require.NoError(t, err)

	assert.True(t, n.HasAny())
	assert.Equal(t, []domain.MedicineAlert{{MedicineName: "Cetirizine", Stock: "3", ExpiryDate: "2025-01-01"}}, n.LowStock)
	assert.Equal(t, "Tretinoin", n.NearExpiry[0].MedicineName)
	assert.Equal(t, []domain.UpcomingVisit{{PatientUID: "P1", PatientName: "Asha", NextVisit: "2024-03-12"}}, n.Visits)
	backend.AssertExpectations(t)
}

func TestPanel_LoadPharmacistSkipsVisits(t *testing.T) {
	backend := new(mockBackend)
	backend.On("GetMedicineStatus", mock.Anything).Return(medicineStatus(), nil)

	p := NewPanel(backend, session.Static{Session: domain.Session{Role: domain.RolePharmacist, LoggedInAs: domain.PharmacistLogin}})
	n, err := p.Load(testContext(t))
	require.NoError(t, err)

	assert.True(t, n.ShowMedicines)
	assert.False(t, n.ShowVisits)
	assert.Empty(t, n.Visits)
	backend.AssertNotCalled(t, "GetUpcomingVisits", mock.Anything)
}

func TestPanel_FetchFailureLeavesListEmpty(t *testing.T) {
	backend := new(mockBackend)
	backend.On("GetMedicineStatus", mock.Anything).Return(nil, errors.New("boom"))
	backend.On("GetUpcomingVisits", mock.Anything).Return(upcoming(), nil)

	p := NewPanel(backend, session.Static{Session: domain.Session{Role: domain.RoleDoctor, LoggedInAs: domain.DoctorLogin}})
	n, err := p.Load(testContext(t))
	require.NoError(t, err)

	assert.Empty(t, n.LowStock)
	assert.Empty(t, n.NearExpiry)
	assert.Len(t, n.Visits, 1)
}

func TestPanel_NotLoggedIn(t *testing.T) {
	p := NewPanel(new(mockBackend), session.Static{})
	_, err := p.Load(testContext(t))
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
}
