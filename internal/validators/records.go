package validators

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/go-clinic-client/models"
)

const (
	FieldName            = "name"
	FieldLastName        = "last_name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldBirthDate       = "birth_date"
	FieldStatus          = "status"
	FieldPassword        = "password"
	FieldNewPassword     = "new_password"
	FieldPatientID       = "patient_id"
	FieldDate            = "date"
	FieldTime            = "time"
	FieldDiagnosis       = "diagnosis"
	FieldFilePath        = "file_path"
	FieldAtLeastOneField = "at_least_one_field"
)

// MinPasswordLength is the shortest password accepted on registration and
// password change.
const MinPasswordLength = 6

var (
	emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// digits, spaces, dashes and parentheses, optionally a leading +
	phoneRegexp = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

type RecordsValidator struct {
}

// NewRecordsValidator returns the Validator for user input sent to the
// clinic API. It only performs trivial field checks; the server stays the
// authority on everything else.
func NewRecordsValidator() Validator {
	return &RecordsValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. Optional fields restrict validation to the named
// subset; when omitted, a default set for the type is validated.
func (v *RecordsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Patient:
		return v.validatePatient(ctx, value, fields...)
	case *models.Patient:
		return v.validatePatient(ctx, *value, fields...)

	case models.Appointment:
		return v.validateAppointment(ctx, value, fields...)
	case *models.Appointment:
		return v.validateAppointment(ctx, *value, fields...)

	case models.Note:
		return v.validateNote(ctx, value, fields...)
	case *models.Note:
		return v.validateNote(ctx, *value, fields...)

	case models.PhotoUpload:
		return v.validatePhotoUpload(ctx, value, fields...)
	case *models.PhotoUpload:
		return v.validatePhotoUpload(ctx, *value, fields...)

	case models.Registration:
		return v.validateRegistration(ctx, value, fields...)
	case *models.Registration:
		return v.validateRegistration(ctx, *value, fields...)

	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, *value, fields...)

	case models.PasswordChange:
		return v.validatePasswordChange(ctx, value, fields...)
	case *models.PasswordChange:
		return v.validatePasswordChange(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isValidEmail(s string) bool {
	return emailRegexp.MatchString(s)
}

// isValidPhone accepts an empty phone, it is optional everywhere.
func isValidPhone(s string) bool {
	return s == "" || phoneRegexp.MatchString(s)
}

func isValidDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func isValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func (v *RecordsValidator) validatePatient(ctx context.Context, patient models.Patient, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldLastName, FieldEmail, FieldPhone, FieldBirthDate, FieldStatus}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if isBlank(patient.FirstName) {
				return ErrRequiredName
			}
		case FieldLastName:
			if isBlank(patient.LastName) {
				return ErrRequiredLastName
			}
		case FieldEmail:
			if patient.Email != "" && !isValidEmail(patient.Email) {
				return ErrInvalidEmail
			}
		case FieldPhone:
			if !isValidPhone(patient.Phone) {
				return ErrInvalidPhone
			}
		case FieldBirthDate:
			if patient.BirthDate != "" && !isValidDate(patient.BirthDate) {
				return ErrInvalidDate
			}
		case FieldStatus:
			switch patient.Status {
			case "", models.PatientActive, models.PatientInactive:
			default:
				return ErrInvalidStatus
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordsValidator) validateAppointment(ctx context.Context, appointment models.Appointment, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatientID, FieldDate, FieldTime, FieldStatus}
	}

	for _, f := range fields {
		switch f {
		case FieldPatientID:
			if appointment.PatientID <= 0 {
				return ErrInvalidPatientID
			}
		case FieldDate:
			if !isValidDate(appointment.Date) {
				return ErrInvalidDate
			}
		case FieldTime:
			if !isValidClock(appointment.Time) {
				return ErrInvalidTime
			}
		case FieldStatus:
			switch appointment.Status {
			case "", models.AppointmentScheduled, models.AppointmentConfirmed,
				models.AppointmentCompleted, models.AppointmentCancelled:
			default:
				return ErrInvalidStatus
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordsValidator) validateNote(ctx context.Context, note models.Note, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatientID, FieldDate, FieldDiagnosis}
	}

	for _, f := range fields {
		switch f {
		case FieldPatientID:
			if note.PatientID <= 0 {
				return ErrInvalidPatientID
			}
		case FieldDate:
			if !isValidDate(note.Date) {
				return ErrInvalidDate
			}
		case FieldDiagnosis:
			if isBlank(note.Diagnosis) {
				return ErrRequiredDiagnosis
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordsValidator) validatePhotoUpload(ctx context.Context, upload models.PhotoUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatientID, FieldFilePath}
	}

	for _, f := range fields {
		switch f {
		case FieldPatientID:
			if upload.PatientID <= 0 {
				return ErrInvalidPatientID
			}
		case FieldFilePath:
			if isBlank(upload.FilePath) {
				return ErrRequiredFile
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordsValidator) validateRegistration(ctx context.Context, reg models.Registration, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if isBlank(reg.Name) {
				return ErrRequiredName
			}
		case FieldEmail:
			if !isValidEmail(reg.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if reg.Password == "" {
				return ErrRequiredPassword
			}
			if len(reg.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordsValidator) validateCredentials(ctx context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(creds.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrRequiredPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordsValidator) validateProfileUpdate(ctx context.Context, update models.ProfileUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAtLeastOneField, FieldName, FieldLastName, FieldEmail, FieldPhone}
	}

	for _, f := range fields {
		switch f {
		case FieldAtLeastOneField:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if update.Name != nil && isBlank(*update.Name) {
				return ErrRequiredName
			}
		case FieldLastName:
			if update.LastName != nil && isBlank(*update.LastName) {
				return ErrRequiredLastName
			}
		case FieldEmail:
			if update.Email != nil && !isValidEmail(*update.Email) {
				return ErrInvalidEmail
			}
		case FieldPhone:
			if update.Phone != nil && !isValidPhone(*update.Phone) {
				return ErrInvalidPhone
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordsValidator) validatePasswordChange(ctx context.Context, change models.PasswordChange, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldPassword:
			if change.CurrentPassword == "" {
				return ErrRequiredPassword
			}
		case FieldNewPassword:
			if change.NewPassword == "" {
				return ErrRequiredPassword
			}
			if len(change.NewPassword) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
