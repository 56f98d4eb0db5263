package adapters

import (
	"strings"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

func MapPatientDomainToApi(p domain.Patient) api.PatientRequest {
	return api.PatientRequest{
		PatientName:    strings.TrimSpace(p.PatientName),
		MobileNumber:   strings.TrimSpace(p.MobileNumber),
		Age:            p.Age,
		Gender:         p.Gender,
		Email:          p.Email,
		Language:       p.Language,
		PurposeOfVisit: p.Purpose(),
		Address:        p.Address,
	}
}

func MapComplaintApiToDomain(c api.Complaint) domain.ComplaintOption {
	return domain.ComplaintOption{ID: c.ID.Raw, Name: c.Complaints}
}
