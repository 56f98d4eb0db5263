package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/client"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	MessageRequired     = "Patient Name and Mobile Number are required."
	MessageDuplicate    = "A patient with this mobile number already exists."
	MessageSubmitFailed = "There was an error submitting the form."
	MessageAdded        = "Patient Data Added Successfully"
)

type PatientBackend interface {
	CreatePatient(ctx context.Context, req api.PatientRequest) (*api.PatientResponse, error)
}

// Form is the front desk patient registration form.
type Form struct {
	backend PatientBackend

	mu      sync.Mutex
	message string
	uid     string
}

func NewForm(backend PatientBackend) *Form {
	return &Form{backend: backend}
}

func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// PatientUID is the identifier assigned by the last successful submission.
func (f *Form) PatientUID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uid
}

// Submit registers the patient. Name and mobile number are checked before
// anything is sent.
func (f *Form) Submit(ctx context.Context, p domain.Patient) (string, error) {
	f.set("", "")
	if strings.TrimSpace(p.PatientName) == "" || strings.TrimSpace(p.MobileNumber) == "" {
		f.set(MessageRequired, "")
		return "", domain.ErrPatientIncomplete
	}

	resp, err := f.backend.CreatePatient(ctx, adapters.MapPatientDomainToApi(p))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to register patient")
		if duplicateMobile(err) {
			f.set(MessageDuplicate, "")
			return "", fmt.Errorf("register patient: %w", domain.ErrDuplicatePatient)
		}
		f.set(MessageSubmitFailed, "")
		return "", fmt.Errorf("register patient: %w", err)
	}

	f.set(MessageAdded, resp.PatientUID)
	zerolog.Ctx(ctx).Info().Str("patient_uid", resp.PatientUID).Msg("patient registered")
	return resp.PatientUID, nil
}

func (f *Form) set(msg, uid string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
	f.uid = uid
}

// duplicateMobile reports a validation error naming the mobileNumber field.
func duplicateMobile(err error) bool {
	var se *client.StatusError
	if !errors.As(err, &se) {
		return false
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal([]byte(se.Body), &fields) != nil {
		return false
	}
	_, ok := fields["mobileNumber"]
	return ok
}
