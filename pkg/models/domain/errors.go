package domain

import "errors"

var (
	ErrInvalidInterval   = errors.New("invalid interval")
	ErrUnknownReport     = errors.New("unknown report kind")
	ErrAccessDenied      = errors.New("access denied")
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrNotEditing        = errors.New("billing screen is not in edit mode")
	ErrNoPatientSelected = errors.New("no patient selected")
	ErrItemNotFound      = errors.New("line item not found")
	ErrRecordNotFound    = errors.New("billing record not found")
	ErrAmbiguousRecord   = errors.New("several billing records match")
	ErrUnknownField      = errors.New("unknown line item field")
	ErrPatientIncomplete = errors.New("patient name and mobile number are required")
	ErrDuplicatePatient  = errors.New("patient with this mobile number already exists")
	ErrEmptyComplaint    = errors.New("complaint is empty")
)
