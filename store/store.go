package store

import (
	"context"

	"ClinicCore/models"
	"ClinicCore/role"
)

// UserStore is the identity directory. Implementations return apperr-typed
// errors: NotFound when a lookup misses and DuplicateKey naming the colliding
// field on unique-index violations.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDAndRole(ctx context.Context, id string, r role.Role) (*models.User, error)
	FindByRole(ctx context.Context, r role.Role) ([]models.User, error)
}

// AppointmentFilter narrows a listing. Scope fields (PatientID/DoctorID) are
// filled by the service from the requester's role before any user-supplied
// filters apply.
type AppointmentFilter struct {
	PatientID string
	DoctorID  string
	Status    string
	StartDate string
	EndDate   string
}

type AppointmentStore interface {
	// Insert surfaces SlotConflict when the unique slot index rejects the write.
	Insert(ctx context.Context, appt *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindAll returns matches sorted ascending by date then start time.
	FindAll(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	// CountActiveSlot counts non-cancelled appointments on a (doctor, date, startTime) slot.
	CountActiveSlot(ctx context.Context, doctorID, date, startTime string) (int64, error)
	// Update applies only the non-nil fields and returns the updated document.
	Update(ctx context.Context, id string, upd *models.AppointmentUpdate, updatedBy string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status, updatedBy string) (*models.Appointment, error)
	// CompleteExpired marks non-terminal appointments dated strictly before the
	// given day as completada and reports how many were touched.
	CompleteExpired(ctx context.Context, before string) (int64, error)
}

type MedicalRecordFilter struct {
	PatientID string
	DoctorID  string
	Type      string
	StartDate string
	EndDate   string
}

type MedicalRecordStore interface {
	Insert(ctx context.Context, rec *models.MedicalRecord) error
	FindByID(ctx context.Context, id string) (*models.MedicalRecord, error)
	// FindAll returns matches sorted descending by date.
	FindAll(ctx context.Context, filter MedicalRecordFilter) ([]models.MedicalRecord, error)
	Update(ctx context.Context, id string, upd *models.MedicalRecordUpdate, updatedBy string) (*models.MedicalRecord, error)
}
