// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the clinic API server.
//
// The primary abstraction is [ServerAdapter], which decouples the session and
// service layers from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty. Every request goes
// through the same interceptors: the bearer token of the current session is
// attached on the way out, and a 401 on the way back is published as an
// [UnauthorizedEvent].
//
// Non-2xx responses are mapped by mapHTTPError to [*APIError] values that
// unwrap to the sentinels in errors.go, so callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrConflict] for 409,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-clinic-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// TokenSource supplies the bearer token attached to outbound requests.
// An empty string means the request is sent without credentials.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a plain function to [TokenSource].
type TokenSourceFunc func() string

// Token implements [TokenSource].
func (f TokenSourceFunc) Token() string {
	return f()
}

// UnauthorizedEvent is published for every 401 response.
type UnauthorizedEvent struct {
	// Token is the bearer token the rejected request carried, empty for
	// anonymous requests.
	Token string
	// Method and Path identify the rejected request.
	Method string
	Path   string
}

// Interceptor controls the cross-cutting behaviour of every request.
type Interceptor interface {
	// SetTokenSource replaces the source consulted before each request.
	// Requests whose context carries utils.WithBearerToken bypass it.
	SetTokenSource(source TokenSource)

	// OnUnauthorized registers fn to be called after any 401 response. The
	// returned function removes the registration.
	OnUnauthorized(fn func(UnauthorizedEvent)) (unsubscribe func())
}

// AuthAdapter covers the /auth endpoints.
type AuthAdapter interface {
	// Login exchanges credentials for an access token
	// (POST /auth/login). It is always sent anonymously.
	Login(ctx context.Context, creds models.Credentials) (models.TokenResponse, error)

	// Register creates an account (POST /auth/register). It is always sent
	// anonymously and does not log the new account in.
	Register(ctx context.Context, reg models.Registration) (models.User, error)

	// Me fetches the profile of the token's owner (GET /auth/me).
	Me(ctx context.Context) (models.User, error)

	// UpdateMe applies a partial profile update (PUT /auth/me).
	UpdateMe(ctx context.Context, update models.ProfileUpdate) (models.User, error)

	// ChangePassword changes the account password
	// (PUT /auth/change-password).
	ChangePassword(ctx context.Context, change models.PasswordChange) error

	// Logout tells the server to end the session (POST /auth/logout).
	Logout(ctx context.Context) error
}

// RecordsAdapter covers the clinical record endpoints.
type RecordsAdapter interface {
	ListPatients(ctx context.Context, filter models.PatientFilter) ([]models.Patient, error)
	GetPatient(ctx context.Context, id int64) (models.Patient, error)
	CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error)
	UpdatePatient(ctx context.Context, id int64, patient models.Patient) (models.Patient, error)

	ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (models.Appointment, error)
	CreateAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, appointment models.Appointment) (models.Appointment, error)

	ListNotes(ctx context.Context, patientID int64) ([]models.Note, error)
	GetNote(ctx context.Context, id int64) (models.Note, error)
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	UpdateNote(ctx context.Context, id int64, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, id int64) error

	ListPhotos(ctx context.Context, patientID int64) ([]models.Photo, error)
	UploadPhoto(ctx context.Context, upload models.PhotoUpload) (models.Photo, error)
	DeletePhoto(ctx context.Context, id int64) error
}

// ServerAdapter defines transport-agnostic communication with the clinic
// API server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	Interceptor
	AuthAdapter
	RecordsAdapter
}
