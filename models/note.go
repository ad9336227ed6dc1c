package models

// VitalSigns are the optional measurements attached to a medical note.
// Unset measurements are omitted from the payload.
type VitalSigns struct {
	SystolicPressure  *float64 `json:"presion_sistolica,omitempty"`
	DiastolicPressure *float64 `json:"presion_diastolica,omitempty"`
	HeartRate         *float64 `json:"frecuencia_cardiaca,omitempty"`
	Temperature       *float64 `json:"temperatura,omitempty"`
	Weight            *float64 `json:"peso,omitempty"`
	Height            *float64 `json:"altura,omitempty"`
	OxygenSaturation  *float64 `json:"saturacion_oxigeno,omitempty"`
	RespiratoryRate   *float64 `json:"frecuencia_respiratoria,omitempty"`
}

// IsEmpty reports whether no measurement is set.
func (v VitalSigns) IsEmpty() bool {
	return v.SystolicPressure == nil && v.DiastolicPressure == nil &&
		v.HeartRate == nil && v.Temperature == nil &&
		v.Weight == nil && v.Height == nil &&
		v.OxygenSaturation == nil && v.RespiratoryRate == nil
}

// Note is a medical note. PatientID travels in the URL, not in the body.
type Note struct {
	ID           int64       `json:"id_nota,omitempty"`
	PatientID    int64       `json:"-"`
	Date         string      `json:"fecha"` // YYYY-MM-DD
	Reason       *string     `json:"motivo_consulta"`
	Symptoms     *string     `json:"sintomas"`
	Diagnosis    string      `json:"diagnostico"`
	Treatment    *string     `json:"tratamiento"`
	Observations *string     `json:"observaciones"`
	VitalSigns   *VitalSigns `json:"signos_vitales"`
}
