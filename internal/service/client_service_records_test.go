package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-clinic-client/internal/adapter"
	"github.com/MKhiriev/go-clinic-client/internal/mock"
	"github.com/MKhiriev/go-clinic-client/internal/validators"
	"github.com/MKhiriev/go-clinic-client/models"
)

// newTestRecordsSvc - хелпер: сервис записей с моками менеджера и адаптера
func newTestRecordsSvc(t *testing.T, ctrl *gomock.Controller, signedIn bool) (RecordsService, *mock.MockRecordsAdapter) {
	t.Helper()
	manager := mock.NewMockSessionManager(ctrl)
	recordsAdapter := mock.NewMockRecordsAdapter(ctrl)

	sess := models.Session{}
	if signedIn {
		sess = authenticatedSession()
	}
	manager.EXPECT().Snapshot().Return(sess).AnyTimes()

	return NewClientRecordsService(manager, recordsAdapter, validators.NewRecordsValidator()), recordsAdapter
}

// ── Session gate ─────────────────────────────────────────────────────────────

func TestClientRecordsService_RequiresSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestRecordsSvc(t, ctrl, false)
	ctx := context.Background()

	_, err := svc.ListPatients(ctx, models.PatientFilter{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.ListAppointments(ctx, models.AppointmentFilter{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.ListNotes(ctx, 1)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, svc.DeletePhoto(ctx, 1), ErrNotAuthenticated)
}

// ── Patients ─────────────────────────────────────────────────────────────────

func TestClientRecordsService_ListPatients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, recordsAdapter := newTestRecordsSvc(t, ctrl, true)
	filter := models.PatientFilter{Search: "Pérez", Status: models.PatientActive}

	recordsAdapter.EXPECT().ListPatients(gomock.Any(), filter).
		Return([]models.Patient{{ID: 1, FirstName: "Luis", LastName: "Pérez"}}, nil)

	patients, err := svc.ListPatients(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, patients, 1)

	_, err = svc.ListPatients(context.Background(), models.PatientFilter{Status: "borrado"})
	assert.ErrorIs(t, err, validators.ErrInvalidStatus)
}

func TestClientRecordsService_GetPatient_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, recordsAdapter := newTestRecordsSvc(t, ctrl, true)

	recordsAdapter.EXPECT().GetPatient(gomock.Any(), int64(99)).
		Return(models.Patient{}, adapter.NewAPIError(404, "Paciente no encontrado"))

	_, err := svc.GetPatient(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	detail, _ := ServerDetail(err)
	assert.Equal(t, "Paciente no encontrado", detail)

	_, err = svc.GetPatient(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClientRecordsService_CreatePatient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, recordsAdapter := newTestRecordsSvc(t, ctrl, true)
	patient := models.Patient{FirstName: "Luis", LastName: "Pérez", Email: "luis@example.com"}

	recordsAdapter.EXPECT().CreatePatient(gomock.Any(), patient).Return(models.Patient{ID: 5, FirstName: "Luis", LastName: "Pérez"}, nil)

	created, err := svc.CreatePatient(context.Background(), patient)
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	_, err = svc.CreatePatient(context.Background(), models.Patient{FirstName: "Luis"})
	assert.ErrorIs(t, err, validators.ErrRequiredLastName)
}

func TestClientRecordsService_UpdatePatient_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, recordsAdapter := newTestRecordsSvc(t, ctrl, true)
	patient := models.Patient{FirstName: "Luis", LastName: "Pérez"}

	recordsAdapter.EXPECT().UpdatePatient(gomock.Any(), int64(5), patient).
		Return(models.Patient{}, adapter.NewAPIError(409, "Email duplicado"))

	_, err := svc.UpdatePatient(context.Background(), 5, patient)
	assert.ErrorIs(t, err, ErrRecordConflict)
}

// ── Appointments ─────────────────────────────────────────────────────────────

func TestClientRecordsService_Appointments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, recordsAdapter := newTestRecordsSvc(t, ctrl, true)
	ctx := context.Background()
	appointment := models.Appointment{PatientID: 5, Date: "2026-05-10", Time: "10:00"}

	recordsAdapter.EXPECT().CreateAppointment(gomock.Any(), appointment).Return(models.Appointment{ID: 1}, nil)
	recordsAdapter.EXPECT().UpdateAppointment(gomock.Any(), int64(1), appointment).Return(models.Appointment{ID: 1}, nil)
	recordsAdapter.EXPECT().GetAppointment(gomock.Any(), int64(1)).Return(models.Appointment{ID: 1}, nil)
	recordsAdapter.EXPECT().ListAppointments(gomock.Any(), models.AppointmentFilter{From: "2026-05-01"}).
		Return(nil, adapter.NewAPIError(401, "No autenticado"))

	_, err := svc.CreateAppointment(ctx, appointment)
	require.NoError(t, err)
	_, err = svc.UpdateAppointment(ctx, 1, appointment)
	require.NoError(t, err)
	_, err = svc.GetAppointment(ctx, 1)
	require.NoError(t, err)

	_, err = svc.ListAppointments(ctx, models.AppointmentFilter{From: "2026-05-01"})
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = svc.CreateAppointment(ctx, models.Appointment{PatientID: 5, Date: "2026-05-10", Time: "25:00"})
	assert.ErrorIs(t, err, validators.ErrInvalidTime)
}

// ── Notes ────────────────────────────────────────────────────────────────────

func TestClientRecordsService_CreateNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, recordsAdapter := newTestRecordsSvc(t, ctrl, true)

	// пустые жизненные показатели не отправляются
	recordsAdapter.EXPECT().CreateNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, note models.Note) (models.Note, error) {
			assert.Nil(t, note.VitalSigns)
			assert.Equal(t, int64(5), note.PatientID)
			note.ID = 11
			return note, nil
		})

	created, err := svc.CreateNote(context.Background(), models.Note{
		PatientID:  5,
		Date:       "2026-05-10",
		Diagnosis:  "Faringitis",
		VitalSigns: &models.VitalSigns{},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)

	_, err = svc.CreateNote(context.Background(), models.Note{PatientID: 5, Date: "2026-05-10"})
	assert.ErrorIs(t, err, validators.ErrRequiredDiagnosis)

	_, err = svc.CreateNote(context.Background(), models.Note{Date: "2026-05-10", Diagnosis: "x"})
	assert.ErrorIs(t, err, validators.ErrInvalidPatientID)
}

func TestClientRecordsService_NotesCRUD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, recordsAdapter := newTestRecordsSvc(t, ctrl, true)
	ctx := context.Background()
	note := models.Note{Date: "2026-05-10", Diagnosis: "Control"}

	recordsAdapter.EXPECT().ListNotes(gomock.Any(), int64(5)).Return([]models.Note{{ID: 1}}, nil)
	recordsAdapter.EXPECT().GetNote(gomock.Any(), int64(1)).Return(models.Note{ID: 1}, nil)
	recordsAdapter.EXPECT().UpdateNote(gomock.Any(), int64(1), note).Return(models.Note{ID: 1}, nil)
	recordsAdapter.EXPECT().DeleteNote(gomock.Any(), int64(1)).Return(adapter.NewAPIError(403, "Sin permiso"))

	notes, err := svc.ListNotes(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	_, err = svc.GetNote(ctx, 1)
	require.NoError(t, err)

	_, err = svc.UpdateNote(ctx, 1, note)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteNote(ctx, 1), ErrAccessDenied)

	_, err = svc.ListNotes(ctx, 0)
	assert.ErrorIs(t, err, validators.ErrInvalidPatientID)
}

// ── Photos ───────────────────────────────────────────────────────────────────

func TestClientRecordsService_UploadPhoto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, recordsAdapter := newTestRecordsSvc(t, ctrl, true)

	path := filepath.Join(t.TempDir(), "rx.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o600))
	upload := models.PhotoUpload{PatientID: 5, FilePath: path, Description: "Radiografía"}

	recordsAdapter.EXPECT().UploadPhoto(gomock.Any(), upload).Return(models.Photo{ID: 3, PatientID: 5}, nil)

	photo, err := svc.UploadPhoto(context.Background(), upload)
	require.NoError(t, err)
	assert.Equal(t, int64(3), photo.ID)

	_, err = svc.UploadPhoto(context.Background(), models.PhotoUpload{PatientID: 5, FilePath: filepath.Join(t.TempDir(), "missing.jpg")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClientRecordsService_ListAndDeletePhotos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, recordsAdapter := newTestRecordsSvc(t, ctrl, true)
	ctx := context.Background()

	recordsAdapter.EXPECT().ListPhotos(gomock.Any(), int64(5)).Return([]models.Photo{{ID: 3}}, nil)
	recordsAdapter.EXPECT().DeletePhoto(gomock.Any(), int64(3)).Return(nil)

	photos, err := svc.ListPhotos(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, photos, 1)
	require.NoError(t, svc.DeletePhoto(ctx, 3))

	assert.ErrorIs(t, svc.DeletePhoto(ctx, -3), ErrInvalidInput)
}
