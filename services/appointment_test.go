package services

import (
	"context"
	"testing"

	"ClinicCore/apperr"
	"ClinicCore/models"
	"ClinicCore/role"
	"ClinicCore/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apptFixture struct {
	svc     *AppointmentService
	users   *store.MemoryUserStore
	alice   role.Identity // patient
	carol   role.Identity // second patient
	bob     role.Identity // doctor
	dave    role.Identity // second doctor
	admin   role.Identity
	aliceID string
	carolID string
	bobID   string
	daveID  string
}

func seedUser(t *testing.T, users *store.MemoryUserStore, name, email string, r role.Role, doc string) role.Identity {
	t.Helper()
	u := &models.User{Name: name, Email: email, Role: r, DocumentID: doc}
	require.NoError(t, users.Create(context.Background(), u))
	return role.Identity{UserID: u.ID.Hex(), Email: email, Role: r}
}

func newApptFixture(t *testing.T) *apptFixture {
	t.Helper()
	users := store.NewMemoryUserStore()
	f := &apptFixture{
		users: users,
		svc:   NewAppointmentService(store.NewMemoryAppointmentStore(), users),
	}
	f.alice = seedUser(t, users, "Alice", "alice@example.com", role.Patient, "D-1")
	f.carol = seedUser(t, users, "Carol", "carol@example.com", role.Patient, "D-2")
	f.bob = seedUser(t, users, "Bob", "bob@example.com", role.Doctor, "D-3")
	f.dave = seedUser(t, users, "Dave", "dave@example.com", role.Doctor, "D-4")
	f.admin = seedUser(t, users, "Eve", "eve@example.com", role.Admin, "D-5")
	f.aliceID, f.carolID = f.alice.UserID, f.carol.UserID
	f.bobID, f.daveID = f.bob.UserID, f.dave.UserID
	return f
}

func (f *apptFixture) create(t *testing.T, requester role.Identity, patientID, doctorID, date, startTime string) *models.Appointment {
	t.Helper()
	appt, err := f.svc.Create(context.Background(), requester, CreateAppointmentInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		StartTime: startTime,
		Reason:    "checkup",
	})
	require.NoError(t, err)
	return appt
}

func TestCreateAppointment(t *testing.T) {
	f := newApptFixture(t)

	appt := f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "10:00")
	assert.Equal(t, models.StatusPendiente, appt.Status)
	assert.Equal(t, "10:30", appt.EndTime) // derived 30-minute slot
	assert.Equal(t, models.ModalityPresencial, appt.Modality)
	assert.Equal(t, f.bob.UserID, appt.CreatedBy)
}

func TestCreateAppointmentRequiresDoctorOrAdmin(t *testing.T) {
	f := newApptFixture(t)

	_, err := f.svc.Create(context.Background(), f.alice, CreateAppointmentInput{
		PatientID: f.aliceID, DoctorID: f.bobID, Date: "2024-06-01", StartTime: "10:00", Reason: "checkup",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))
}

func TestCreateAppointmentUnknownParticipants(t *testing.T) {
	f := newApptFixture(t)

	_, err := f.svc.Create(context.Background(), f.bob, CreateAppointmentInput{
		PatientID: "000000000000000000000000", DoctorID: f.bobID, Date: "2024-06-01", StartTime: "10:00",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "patient")

	// a doctor id pointing at a patient fails the role-matched lookup
	_, err = f.svc.Create(context.Background(), f.bob, CreateAppointmentInput{
		PatientID: f.aliceID, DoctorID: f.carolID, Date: "2024-06-01", StartTime: "10:00",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "doctor")
}

func TestSlotConflict(t *testing.T) {
	f := newApptFixture(t)

	f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "10:00")

	// same doctor, same slot, different patient
	_, err := f.svc.Create(context.Background(), f.bob, CreateAppointmentInput{
		PatientID: f.carolID, DoctorID: f.bobID, Date: "2024-06-01", StartTime: "10:00", Reason: "other",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindSlotConflict))

	// other doctor and other time are both fine
	f.create(t, f.bob, f.carolID, f.daveID, "2024-06-01", "10:00")
	f.create(t, f.bob, f.carolID, f.bobID, "2024-06-01", "10:30")
}

func TestCancelFreesTheSlot(t *testing.T) {
	f := newApptFixture(t)

	appt := f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "10:00")

	_, err := f.svc.Create(context.Background(), f.bob, CreateAppointmentInput{
		PatientID: f.carolID, DoctorID: f.bobID, Date: "2024-06-01", StartTime: "10:00",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindSlotConflict))

	// the referenced patient cancels
	cancelled, err := f.svc.Cancel(context.Background(), f.alice, appt.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelada, cancelled.Status)

	// the slot is bookable again
	f.create(t, f.bob, f.carolID, f.bobID, "2024-06-01", "10:00")
}

func TestCancelScope(t *testing.T) {
	f := newApptFixture(t)
	appt := f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "10:00")

	// another patient cannot cancel
	_, err := f.svc.Cancel(context.Background(), f.carol, appt.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	// another doctor cannot cancel either
	_, err = f.svc.Cancel(context.Background(), f.dave, appt.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	// admin can
	_, err = f.svc.Cancel(context.Background(), f.admin, appt.ID.Hex())
	require.NoError(t, err)
}

func TestFetchByIDScope(t *testing.T) {
	f := newApptFixture(t)
	appt := f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "10:00")

	for _, ident := range []role.Identity{f.alice, f.bob, f.admin} {
		got, err := f.svc.FetchByID(context.Background(), ident, appt.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, appt.ID, got.ID)
	}

	_, err := f.svc.FetchByID(context.Background(), f.carol, appt.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	_, err = f.svc.FetchByID(context.Background(), f.admin, "000000000000000000000000")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestFetchAllScopingAndOrdering(t *testing.T) {
	f := newApptFixture(t)
	ctx := context.Background()

	// inserted out of order on purpose
	f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-02", "09:00")
	f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "11:00")
	f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "10:00")
	f.create(t, f.bob, f.carolID, f.daveID, "2024-06-01", "10:00")

	// patient sees only their own, sorted by date then start time
	got, err := f.svc.FetchAll(ctx, f.alice, AppointmentListInput{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "10:00", got[0].StartTime)
	assert.Equal(t, "11:00", got[1].StartTime)
	assert.Equal(t, "2024-06-02", got[2].Date)
	for _, a := range got {
		assert.Equal(t, f.aliceID, a.PatientID)
	}

	// doctor sees only their own
	got, err = f.svc.FetchAll(ctx, f.dave, AppointmentListInput{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f.daveID, got[0].DoctorID)

	// admin sees everything, filters still apply
	got, err = f.svc.FetchAll(ctx, f.admin, AppointmentListInput{})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = f.svc.FetchAll(ctx, f.admin, AppointmentListInput{StartDate: "2024-06-02"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = f.svc.FetchAll(ctx, f.admin, AppointmentListInput{Status: models.StatusPendiente})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestUpdatePartialSemantics(t *testing.T) {
	f := newApptFixture(t)
	ctx := context.Background()
	appt := f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "10:00")

	diagnosis := "seasonal allergy"
	updated, err := f.svc.Update(ctx, f.bob, appt.ID.Hex(), &models.AppointmentUpdate{Diagnosis: &diagnosis})
	require.NoError(t, err)

	// only the supplied field changed
	assert.Equal(t, "seasonal allergy", updated.Diagnosis)
	assert.Equal(t, appt.Date, updated.Date)
	assert.Equal(t, appt.StartTime, updated.StartTime)
	assert.Equal(t, appt.Status, updated.Status)
	assert.Equal(t, appt.Reason, updated.Reason)

	// nested prescription is replaced wholesale
	updated, err = f.svc.Update(ctx, f.bob, appt.ID.Hex(), &models.AppointmentUpdate{
		Prescription: &models.Prescription{
			Medications: []models.PrescriptionItem{{Medicine: "loratadine", Dosage: "10mg", Frequency: "daily", Duration: "7d"}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Prescription)
	require.Len(t, updated.Prescription.Medications, 1)
	assert.Equal(t, "seasonal allergy", updated.Diagnosis)
}

func TestRescheduleOntoTakenSlot(t *testing.T) {
	f := newApptFixture(t)
	ctx := context.Background()

	f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "10:00")
	second := f.create(t, f.bob, f.carolID, f.bobID, "2024-06-01", "11:00")

	// moving the second appointment onto the taken slot is rejected
	taken := "10:00"
	_, err := f.svc.Update(ctx, f.bob, second.ID.Hex(), &models.AppointmentUpdate{StartTime: &taken})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindSlotConflict))

	// and the failed reschedule left it untouched
	got, err := f.svc.FetchByID(ctx, f.bob, second.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "11:00", got.StartTime)

	// a free slot is fine
	free := "12:00"
	updated, err := f.svc.Update(ctx, f.bob, second.ID.Hex(), &models.AppointmentUpdate{StartTime: &free})
	require.NoError(t, err)
	assert.Equal(t, "12:00", updated.StartTime)

	// cancelling the first appointment frees its slot for a reschedule too
	first, err := f.svc.FetchAll(ctx, f.alice, AppointmentListInput{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	_, err = f.svc.Cancel(ctx, f.alice, first[0].ID.Hex())
	require.NoError(t, err)
	updated, err = f.svc.Update(ctx, f.bob, second.ID.Hex(), &models.AppointmentUpdate{StartTime: &taken})
	require.NoError(t, err)
	assert.Equal(t, "10:00", updated.StartTime)
}

func TestUpdateScope(t *testing.T) {
	f := newApptFixture(t)
	ctx := context.Background()
	appt := f.create(t, f.bob, f.aliceID, f.bobID, "2024-06-01", "10:00")
	notes := "bring previous results"

	// the referenced patient cannot update
	_, err := f.svc.Update(ctx, f.alice, appt.ID.Hex(), &models.AppointmentUpdate{Notes: &notes})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	// another doctor cannot update
	_, err = f.svc.Update(ctx, f.dave, appt.ID.Hex(), &models.AppointmentUpdate{Notes: &notes})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	// admin can
	_, err = f.svc.Update(ctx, f.admin, appt.ID.Hex(), &models.AppointmentUpdate{Notes: &notes})
	require.NoError(t, err)
}

func TestCompleteExpired(t *testing.T) {
	f := newApptFixture(t)
	ctx := context.Background()

	past := f.create(t, f.bob, f.aliceID, f.bobID, "2024-01-10", "10:00")
	cancelled := f.create(t, f.bob, f.carolID, f.bobID, "2024-01-10", "11:00")
	_, err := f.svc.Cancel(ctx, f.carol, cancelled.ID.Hex())
	require.NoError(t, err)
	future := f.create(t, f.bob, f.aliceID, f.bobID, "2099-01-10", "10:00")

	n, err := f.svc.CompleteExpired(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := f.svc.FetchByID(ctx, f.admin, past.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompletada, got.Status)

	got, err = f.svc.FetchByID(ctx, f.admin, cancelled.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelada, got.Status)

	got, err = f.svc.FetchByID(ctx, f.admin, future.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendiente, got.Status)
}
