package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrRequiredName      = errors.New("name is required")
	ErrRequiredLastName  = errors.New("last name is required")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime       = errors.New("invalid time, expected HH:MM")
	ErrRequiredPassword  = errors.New("password is required")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrInvalidPatientID  = errors.New("invalid patient ID")
	ErrRequiredDiagnosis = errors.New("diagnosis is required")
	ErrRequiredFile      = errors.New("file path is required")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
	ErrInvalidStatus     = errors.New("invalid status")
)
