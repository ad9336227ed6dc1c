package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-clinic-client/models"
)

// decodeJSON maps the status and decodes the body into out.
func decodeJSON[T any](resp *resty.Response, op string) (T, error) {
	var out T
	if err := mapHTTPError(resp); err != nil {
		return out, err
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return out, fmt.Errorf("decode %s response: %w", op, err)
	}
	return out, nil
}

func idParam(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ListPatients implements [RecordsAdapter] (GET /pacientes).
func (h *httpServerAdapter) ListPatients(ctx context.Context, filter models.PatientFilter) ([]models.Patient, error) {
	resp, err := h.request(ctx).
		SetQueryParams(filter.Params()).
		Get("/pacientes")
	if err != nil {
		return nil, fmt.Errorf("list patients request: %w", err)
	}
	return decodeJSON[[]models.Patient](resp, "list patients")
}

// GetPatient implements [RecordsAdapter] (GET /pacientes/{id}).
func (h *httpServerAdapter) GetPatient(ctx context.Context, id int64) (models.Patient, error) {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(id)).
		Get("/pacientes/{id}")
	if err != nil {
		return models.Patient{}, fmt.Errorf("get patient request: %w", err)
	}
	return decodeJSON[models.Patient](resp, "get patient")
}

// CreatePatient implements [RecordsAdapter] (POST /pacientes).
func (h *httpServerAdapter) CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error) {
	resp, err := h.request(ctx).
		SetBody(patient).
		Post("/pacientes")
	if err != nil {
		return models.Patient{}, fmt.Errorf("create patient request: %w", err)
	}
	return decodeJSON[models.Patient](resp, "create patient")
}

// UpdatePatient implements [RecordsAdapter] (PUT /pacientes/{id}).
func (h *httpServerAdapter) UpdatePatient(ctx context.Context, id int64, patient models.Patient) (models.Patient, error) {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(id)).
		SetBody(patient).
		Put("/pacientes/{id}")
	if err != nil {
		return models.Patient{}, fmt.Errorf("update patient request: %w", err)
	}
	return decodeJSON[models.Patient](resp, "update patient")
}

// ListAppointments implements [RecordsAdapter] (GET /citas).
func (h *httpServerAdapter) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	resp, err := h.request(ctx).
		SetQueryParams(filter.Params()).
		Get("/citas")
	if err != nil {
		return nil, fmt.Errorf("list appointments request: %w", err)
	}
	return decodeJSON[[]models.Appointment](resp, "list appointments")
}

// GetAppointment implements [RecordsAdapter] (GET /citas/{id}).
func (h *httpServerAdapter) GetAppointment(ctx context.Context, id int64) (models.Appointment, error) {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(id)).
		Get("/citas/{id}")
	if err != nil {
		return models.Appointment{}, fmt.Errorf("get appointment request: %w", err)
	}
	return decodeJSON[models.Appointment](resp, "get appointment")
}

// CreateAppointment implements [RecordsAdapter] (POST /citas).
func (h *httpServerAdapter) CreateAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	appointment.Patient = nil
	resp, err := h.request(ctx).
		SetBody(appointment).
		Post("/citas")
	if err != nil {
		return models.Appointment{}, fmt.Errorf("create appointment request: %w", err)
	}
	return decodeJSON[models.Appointment](resp, "create appointment")
}

// UpdateAppointment implements [RecordsAdapter] (PUT /citas/{id}).
func (h *httpServerAdapter) UpdateAppointment(ctx context.Context, id int64, appointment models.Appointment) (models.Appointment, error) {
	appointment.Patient = nil
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(id)).
		SetBody(appointment).
		Put("/citas/{id}")
	if err != nil {
		return models.Appointment{}, fmt.Errorf("update appointment request: %w", err)
	}
	return decodeJSON[models.Appointment](resp, "update appointment")
}

// ListNotes implements [RecordsAdapter] (GET /pacientes/{id}/notas).
func (h *httpServerAdapter) ListNotes(ctx context.Context, patientID int64) ([]models.Note, error) {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(patientID)).
		Get("/pacientes/{id}/notas")
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", err)
	}

	notes, err := decodeJSON[[]models.Note](resp, "list notes")
	for i := range notes {
		notes[i].PatientID = patientID
	}
	return notes, err
}

// GetNote implements [RecordsAdapter] (GET /notas/{id}).
func (h *httpServerAdapter) GetNote(ctx context.Context, id int64) (models.Note, error) {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(id)).
		Get("/notas/{id}")
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}
	return decodeJSON[models.Note](resp, "get note")
}

// CreateNote implements [RecordsAdapter] (POST /pacientes/{id}/notas). The
// patient id travels in the path, not in the body.
func (h *httpServerAdapter) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(note.PatientID)).
		SetBody(note).
		Post("/pacientes/{id}/notas")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}

	created, err := decodeJSON[models.Note](resp, "create note")
	if err == nil {
		created.PatientID = note.PatientID
	}
	return created, err
}

// UpdateNote implements [RecordsAdapter] (PUT /notas/{id}).
func (h *httpServerAdapter) UpdateNote(ctx context.Context, id int64, note models.Note) (models.Note, error) {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(id)).
		SetBody(note).
		Put("/notas/{id}")
	if err != nil {
		return models.Note{}, fmt.Errorf("update note request: %w", err)
	}
	return decodeJSON[models.Note](resp, "update note")
}

// DeleteNote implements [RecordsAdapter] (DELETE /notas/{id}).
func (h *httpServerAdapter) DeleteNote(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(id)).
		Delete("/notas/{id}")
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}
	return mapHTTPError(resp)
}

// ListPhotos implements [RecordsAdapter] (GET /pacientes/{id}/fotos).
func (h *httpServerAdapter) ListPhotos(ctx context.Context, patientID int64) ([]models.Photo, error) {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(patientID)).
		Get("/pacientes/{id}/fotos")
	if err != nil {
		return nil, fmt.Errorf("list photos request: %w", err)
	}
	return decodeJSON[[]models.Photo](resp, "list photos")
}

// UploadPhoto implements [RecordsAdapter]. The file is sent as the multipart
// field "file"; the description is only included when non-empty.
func (h *httpServerAdapter) UploadPhoto(ctx context.Context, upload models.PhotoUpload) (models.Photo, error) {
	req := h.request(ctx).
		SetPathParam("id", idParam(upload.PatientID)).
		SetFile("file", upload.FilePath)
	if upload.Description != "" {
		req.SetFormData(map[string]string{"descripcion": upload.Description})
	}

	resp, err := req.Post("/pacientes/{id}/fotos")
	if err != nil {
		return models.Photo{}, fmt.Errorf("upload photo request: %w", err)
	}
	return decodeJSON[models.Photo](resp, "upload photo")
}

// DeletePhoto implements [RecordsAdapter] (DELETE /fotos/{id}).
func (h *httpServerAdapter) DeletePhoto(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).
		SetPathParam("id", idParam(id)).
		Delete("/fotos/{id}")
	if err != nil {
		return fmt.Errorf("delete photo request: %w", err)
	}
	return mapHTTPError(resp)
}
