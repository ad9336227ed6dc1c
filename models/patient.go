package models

import "time"

// PatientStatus is the administrative status of a patient record.
type PatientStatus string

const (
	PatientActive   PatientStatus = "activo"
	PatientInactive PatientStatus = "inactivo"
)

// Patient is a patient record as served by /pacientes.
type Patient struct {
	ID        int64         `json:"id_paciente,omitempty"`
	FirstName string        `json:"nombre"`
	LastName  string        `json:"apellidos"`
	BirthDate string        `json:"fecha_nacimiento,omitempty"` // YYYY-MM-DD
	Sex       string        `json:"sexo,omitempty"`
	Phone     string        `json:"telefono,omitempty"`
	Email     string        `json:"email,omitempty"`
	Address   string        `json:"direccion,omitempty"`
	Status    PatientStatus `json:"estado,omitempty"`
	CreatedAt *time.Time    `json:"created_at,omitempty"`
}

// FullName joins first and last name.
func (p Patient) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// PatientFilter holds the optional query parameters of GET /pacientes.
type PatientFilter struct {
	Search string
	Status PatientStatus
}

// Params renders the filter as query parameters, skipping empty values.
func (f PatientFilter) Params() map[string]string {
	params := make(map[string]string, 2)
	if f.Search != "" {
		params["search"] = f.Search
	}
	if f.Status != "" {
		params["estado"] = string(f.Status)
	}
	return params
}
