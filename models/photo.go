package models

import "time"

// Photo is a clinical photo attached to a patient.
type Photo struct {
	ID          int64      `json:"id_foto"`
	PatientID   int64      `json:"id_paciente,omitempty"`
	URL         string     `json:"url"`
	Description string     `json:"descripcion,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// PhotoUpload describes a photo file to attach to a patient.
type PhotoUpload struct {
	PatientID   int64
	FilePath    string
	Description string
}
