package services

import (
	"context"
	"log"
	"time"

	"ClinicCore/apperr"
	"ClinicCore/models"
	"ClinicCore/role"
	"ClinicCore/store"
	"ClinicCore/util"
)

type AppointmentService struct {
	appts store.AppointmentStore
	users store.UserStore
}

func NewAppointmentService(appts store.AppointmentStore, users store.UserStore) *AppointmentService {
	return &AppointmentService{appts: appts, users: users}
}

type CreateAppointmentInput struct {
	PatientID string
	DoctorID  string
	Date      string
	StartTime string
	EndTime   string
	Modality  string
	Reason    string
	Notes     string
}

/*
* Derive the end of a slot when the caller leaves it out
 */
func slotEnd(startTime string) string {
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		log.Println("Error from time.Parse while deriving slot end: ", err)
		return startTime
	}
	return t.Add(30 * time.Minute).Format("15:04")
}

/*
* Require an admin or doctor requester
* Resolve both participants with their expected role
* Reject a taken (doctor, date, startTime) slot
* Insert as pendiente; the unique slot index backs the check under races
 */
func (s *AppointmentService) Create(ctx context.Context, ident role.Identity, in CreateAppointmentInput) (*models.Appointment, error) {
	if err := role.Authorize(&ident, role.AppointmentCreate...); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByIDAndRole(ctx, in.PatientID, role.Patient); err != nil {
		log.Println("Error from FindByIDAndRole while resolving patient: ", err)
		return nil, err
	}
	if _, err := s.users.FindByIDAndRole(ctx, in.DoctorID, role.Doctor); err != nil {
		log.Println("Error from FindByIDAndRole while resolving doctor: ", err)
		return nil, err
	}
	taken, err := s.appts.CountActiveSlot(ctx, in.DoctorID, in.Date, in.StartTime)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, apperr.SlotConflict(util.SLOT_ALREADY_BOOKED)
	}

	endTime := in.EndTime
	if endTime == "" {
		endTime = slotEnd(in.StartTime)
	}
	modality := in.Modality
	if modality == "" {
		modality = models.ModalityPresencial
	}
	appt := &models.Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   endTime,
		Modality:  modality,
		Status:    models.StatusPendiente,
		Reason:    in.Reason,
		Notes:     in.Notes,
		CreatedBy: ident.UserID,
	}
	if err := s.appts.Insert(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

type AppointmentListInput struct {
	StartDate string
	EndDate   string
	Status    string
}

/*
* Scope the candidate set by the requester's role first, then apply the
* user-supplied filters; the store sorts ascending by date then start time
 */
func (s *AppointmentService) FetchAll(ctx context.Context, ident role.Identity, in AppointmentListInput) ([]models.Appointment, error) {
	filter := store.AppointmentFilter{
		Status:    in.Status,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	switch ident.Role {
	case role.Patient:
		filter.PatientID = ident.UserID
	case role.Doctor:
		filter.DoctorID = ident.UserID
	case role.Admin:
		// admins see everything matching the filters
	default:
		return nil, apperr.AccessDenied(util.INVALID_USER_TO_ACCESS)
	}
	return s.appts.FindAll(ctx, filter)
}

func (s *AppointmentService) FetchByID(ctx context.Context, ident role.Identity, id string) (*models.Appointment, error) {
	appt, err := s.appts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !role.CanView(ident, appt.PatientID, appt.DoctorID) {
		return nil, apperr.AccessDenied(util.INVALID_USER_TO_ACCESS)
	}
	return appt, nil
}

/*
* Admin or the referenced doctor only
* Partial semantics: absent fields stay untouched
* Reschedules do not re-run the slot check; the slot index still rejects an
* update landing on a taken slot at the storage layer
 */
func (s *AppointmentService) Update(ctx context.Context, ident role.Identity, id string, upd *models.AppointmentUpdate) (*models.Appointment, error) {
	if err := role.Authorize(&ident, role.AppointmentUpdate...); err != nil {
		return nil, err
	}
	appt, err := s.appts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !role.CanModify(ident, appt.DoctorID) {
		return nil, apperr.AccessDenied(util.INVALID_USER_TO_ACCESS)
	}
	return s.appts.Update(ctx, id, upd, ident.UserID)
}

/*
* Any of the three involved parties may cancel
* The transition is unconditional, even from a terminal state
 */
func (s *AppointmentService) Cancel(ctx context.Context, ident role.Identity, id string) (*models.Appointment, error) {
	appt, err := s.appts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !role.CanCancel(ident, appt.PatientID, appt.DoctorID) {
		return nil, apperr.AccessDenied(util.INVALID_USER_TO_ACCESS)
	}
	return s.appts.UpdateStatus(ctx, id, models.StatusCancelada, ident.UserID)
}

/*
* Daily sweep: past-dated pendiente/confirmada appointments become completada
 */
func (s *AppointmentService) CompleteExpired(ctx context.Context, today string) (int64, error) {
	return s.appts.CompleteExpired(ctx, today)
}
