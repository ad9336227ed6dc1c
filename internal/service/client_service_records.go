package service

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-clinic-client/internal/adapter"
	"github.com/MKhiriev/go-clinic-client/internal/validators"
	"github.com/MKhiriev/go-clinic-client/models"
)

type clientRecordsService struct {
	manager   SessionManager
	adapter   adapter.RecordsAdapter
	validator validators.Validator
}

// NewClientRecordsService returns a RecordsService that checks the session
// and the input before every adapter call.
func NewClientRecordsService(manager SessionManager, recordsAdapter adapter.RecordsAdapter, validator validators.Validator) RecordsService {
	return &clientRecordsService{manager: manager, adapter: recordsAdapter, validator: validator}
}

func (r *clientRecordsService) requireSession() error {
	if !r.manager.Snapshot().HasToken() {
		return ErrNotAuthenticated
	}
	return nil
}

func requireID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid id %d", ErrInvalidInput, id)
	}
	return nil
}

// ── Patients ─────────────────────────────────────────────────────────────────

func (r *clientRecordsService) ListPatients(ctx context.Context, filter models.PatientFilter) ([]models.Patient, error) {
	if err := r.requireSession(); err != nil {
		return nil, err
	}
	if filter.Status != "" {
		if err := r.validator.Validate(ctx, models.Patient{Status: filter.Status}, validators.FieldStatus); err != nil {
			return nil, invalidInput(err)
		}
	}

	patients, err := r.adapter.ListPatients(ctx, filter)
	return patients, mapAdapterError(err)
}

func (r *clientRecordsService) GetPatient(ctx context.Context, id int64) (models.Patient, error) {
	if err := r.requireSession(); err != nil {
		return models.Patient{}, err
	}
	if err := requireID(id); err != nil {
		return models.Patient{}, err
	}

	patient, err := r.adapter.GetPatient(ctx, id)
	return patient, mapAdapterError(err)
}

func (r *clientRecordsService) CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error) {
	if err := r.requireSession(); err != nil {
		return models.Patient{}, err
	}
	if err := r.validator.Validate(ctx, patient); err != nil {
		return models.Patient{}, invalidInput(err)
	}

	created, err := r.adapter.CreatePatient(ctx, patient)
	return created, mapAdapterError(err)
}

func (r *clientRecordsService) UpdatePatient(ctx context.Context, id int64, patient models.Patient) (models.Patient, error) {
	if err := r.requireSession(); err != nil {
		return models.Patient{}, err
	}
	if err := requireID(id); err != nil {
		return models.Patient{}, err
	}
	if err := r.validator.Validate(ctx, patient); err != nil {
		return models.Patient{}, invalidInput(err)
	}

	updated, err := r.adapter.UpdatePatient(ctx, id, patient)
	return updated, mapAdapterError(err)
}

// ── Appointments ─────────────────────────────────────────────────────────────

func (r *clientRecordsService) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	if err := r.requireSession(); err != nil {
		return nil, err
	}

	appointments, err := r.adapter.ListAppointments(ctx, filter)
	return appointments, mapAdapterError(err)
}

func (r *clientRecordsService) GetAppointment(ctx context.Context, id int64) (models.Appointment, error) {
	if err := r.requireSession(); err != nil {
		return models.Appointment{}, err
	}
	if err := requireID(id); err != nil {
		return models.Appointment{}, err
	}

	appointment, err := r.adapter.GetAppointment(ctx, id)
	return appointment, mapAdapterError(err)
}

func (r *clientRecordsService) CreateAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	if err := r.requireSession(); err != nil {
		return models.Appointment{}, err
	}
	if err := r.validator.Validate(ctx, appointment); err != nil {
		return models.Appointment{}, invalidInput(err)
	}

	created, err := r.adapter.CreateAppointment(ctx, appointment)
	return created, mapAdapterError(err)
}

func (r *clientRecordsService) UpdateAppointment(ctx context.Context, id int64, appointment models.Appointment) (models.Appointment, error) {
	if err := r.requireSession(); err != nil {
		return models.Appointment{}, err
	}
	if err := requireID(id); err != nil {
		return models.Appointment{}, err
	}
	if err := r.validator.Validate(ctx, appointment); err != nil {
		return models.Appointment{}, invalidInput(err)
	}

	updated, err := r.adapter.UpdateAppointment(ctx, id, appointment)
	return updated, mapAdapterError(err)
}

// ── Notes ────────────────────────────────────────────────────────────────────

func (r *clientRecordsService) ListNotes(ctx context.Context, patientID int64) ([]models.Note, error) {
	if err := r.requireSession(); err != nil {
		return nil, err
	}
	if err := r.validator.Validate(ctx, models.Note{PatientID: patientID}, validators.FieldPatientID); err != nil {
		return nil, invalidInput(err)
	}

	notes, err := r.adapter.ListNotes(ctx, patientID)
	return notes, mapAdapterError(err)
}

func (r *clientRecordsService) GetNote(ctx context.Context, id int64) (models.Note, error) {
	if err := r.requireSession(); err != nil {
		return models.Note{}, err
	}
	if err := requireID(id); err != nil {
		return models.Note{}, err
	}

	note, err := r.adapter.GetNote(ctx, id)
	return note, mapAdapterError(err)
}

func (r *clientRecordsService) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if err := r.requireSession(); err != nil {
		return models.Note{}, err
	}
	if err := r.validator.Validate(ctx, note); err != nil {
		return models.Note{}, invalidInput(err)
	}
	if note.VitalSigns != nil && note.VitalSigns.IsEmpty() {
		note.VitalSigns = nil
	}

	created, err := r.adapter.CreateNote(ctx, note)
	return created, mapAdapterError(err)
}

func (r *clientRecordsService) UpdateNote(ctx context.Context, id int64, note models.Note) (models.Note, error) {
	if err := r.requireSession(); err != nil {
		return models.Note{}, err
	}
	if err := requireID(id); err != nil {
		return models.Note{}, err
	}
	if err := r.validator.Validate(ctx, note, validators.FieldDate, validators.FieldDiagnosis); err != nil {
		return models.Note{}, invalidInput(err)
	}

	updated, err := r.adapter.UpdateNote(ctx, id, note)
	return updated, mapAdapterError(err)
}

func (r *clientRecordsService) DeleteNote(ctx context.Context, id int64) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}

	return mapAdapterError(r.adapter.DeleteNote(ctx, id))
}

// ── Photos ───────────────────────────────────────────────────────────────────

func (r *clientRecordsService) ListPhotos(ctx context.Context, patientID int64) ([]models.Photo, error) {
	if err := r.requireSession(); err != nil {
		return nil, err
	}
	if err := requireID(patientID); err != nil {
		return nil, err
	}

	photos, err := r.adapter.ListPhotos(ctx, patientID)
	return photos, mapAdapterError(err)
}

func (r *clientRecordsService) UploadPhoto(ctx context.Context, upload models.PhotoUpload) (models.Photo, error) {
	if err := r.requireSession(); err != nil {
		return models.Photo{}, err
	}
	if err := r.validator.Validate(ctx, upload); err != nil {
		return models.Photo{}, invalidInput(err)
	}
	if _, err := os.Stat(upload.FilePath); err != nil {
		return models.Photo{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	photo, err := r.adapter.UploadPhoto(ctx, upload)
	return photo, mapAdapterError(err)
}

func (r *clientRecordsService) DeletePhoto(ctx context.Context, id int64) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}

	return mapAdapterError(r.adapter.DeletePhoto(ctx, id))
}
