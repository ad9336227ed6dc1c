// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the client-side use cases that sit between the
// command line and the remote API: input checks, delegation to the session
// manager or the records adapter, and translation of transport errors into
// the service errors declared in errors.go.
package service

import (
	"context"

	"github.com/MKhiriev/go-clinic-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionManager is the part of *session.Manager the services depend on.
type SessionManager interface {
	Snapshot() models.Session
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, reg models.Registration) (models.Session, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error)
	ChangePassword(ctx context.Context, current, next string) error
	RefreshProfile(ctx context.Context) (models.User, error)
}

// AuthService validates authentication input and drives the session.
type AuthService interface {
	// Login checks the credentials locally and signs in. Rejections from the
	// server come back as *session.AuthError.
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Register checks the registration form, creates the account and signs
	// in with it.
	Register(ctx context.Context, reg models.Registration) (models.Session, error)

	// Logout ends the session. It never fails because of the server.
	Logout(ctx context.Context) error

	// Status returns the current session snapshot.
	Status() models.Session

	// Profile returns the profile of the signed-in user, refreshed from the
	// server.
	Profile(ctx context.Context) (models.User, error)

	// UpdateProfile sends a partial profile update.
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error)

	// ChangePassword changes the account password.
	ChangePassword(ctx context.Context, change models.PasswordChange) error
}

// RecordsService is the clinical records use case: patients, appointments,
// medical notes and photos. Every call requires a signed-in session.
type RecordsService interface {
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
