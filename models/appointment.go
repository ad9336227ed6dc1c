package models

// AppointmentStatus is the lifecycle status of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "programada"
	AppointmentConfirmed AppointmentStatus = "confirmada"
	AppointmentCompleted AppointmentStatus = "completada"
	AppointmentCancelled AppointmentStatus = "cancelada"
)

// Appointment is an appointment as served by /citas.
type Appointment struct {
	ID        int64             `json:"id_cita,omitempty"`
	PatientID int64             `json:"id_paciente"`
	Date      string            `json:"fecha"` // YYYY-MM-DD
	Time      string            `json:"hora"`  // HH:MM
	Reason    string            `json:"motivo,omitempty"`
	Doctor    string            `json:"doctor,omitempty"`
	Status    AppointmentStatus `json:"estado,omitempty"`

	// Patient is embedded by the server on reads and ignored on writes.
	Patient *Patient `json:"paciente,omitempty"`
}

// AppointmentFilter holds the optional query parameters of GET /citas.
type AppointmentFilter struct {
	From   string
	To     string
	Status AppointmentStatus
	Doctor string
}

// Params renders the filter as query parameters, skipping empty values.
func (f AppointmentFilter) Params() map[string]string {
	params := make(map[string]string, 4)
	if f.From != "" {
		params["fecha_inicio"] = f.From
	}
	if f.To != "" {
		params["fecha_fin"] = f.To
	}
	if f.Status != "" {
		params["estado"] = string(f.Status)
	}
	if f.Doctor != "" {
		params["doctor"] = f.Doctor
	}
	return params
}
