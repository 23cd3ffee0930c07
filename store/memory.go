package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"ClinicCore/apperr"
	"ClinicCore/models"
	"ClinicCore/role"
	"ClinicCore/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores implementing the same contracts as the Mongo-backed ones,
// including the unique-index behavior. Each test run gets an isolated instance.

type MemoryUserStore struct {
	mu    sync.Mutex
	users []models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return apperr.DuplicateKey("email")
		}
		if u.DocumentID == user.DocumentID {
			return apperr.DuplicateKey("documentId")
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, apperr.NotFound(util.USER_NOT_FOUND)
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID.Hex() == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, apperr.NotFound(util.USER_NOT_FOUND)
}

func (s *MemoryUserStore) FindByIDAndRole(ctx context.Context, id string, r role.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID.Hex() == id && s.users[i].Role == r {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, apperr.NotFound(string(r))
}

func (s *MemoryUserStore) FindByRole(ctx context.Context, r role.Role) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.users {
		if u.Role == r {
			out = append(out, u)
		}
	}
	return out, nil
}

type MemoryAppointmentStore struct {
	mu    sync.Mutex
	appts []models.Appointment
}

func NewMemoryAppointmentStore() *MemoryAppointmentStore {
	return &MemoryAppointmentStore{}
}

/*
* Mirrors the unique partial slot index: a second non-cancelled appointment
* on the same (doctor, date, startTime) is rejected
 */
func (s *MemoryAppointmentStore) Insert(ctx context.Context, appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appts {
		if a.DoctorID == appt.DoctorID && a.Date == appt.Date && a.StartTime == appt.StartTime &&
			a.Status != models.StatusCancelada {
			return apperr.SlotConflict(util.SLOT_ALREADY_BOOKED)
		}
	}
	appt.ID = primitive.NewObjectID()
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	s.appts = append(s.appts, *appt)
	return nil
}

func (s *MemoryAppointmentStore) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appts {
		if s.appts[i].ID.Hex() == id {
			a := s.appts[i]
			return &a, nil
		}
	}
	return nil, apperr.NotFound(util.APPOINTMENT_NOT_FOUND)
}

func matchAppointment(a models.Appointment, f AppointmentFilter) bool {
	if f.PatientID != "" && a.PatientID != f.PatientID {
		return false
	}
	if f.DoctorID != "" && a.DoctorID != f.DoctorID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.StartDate != "" && a.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && a.Date > f.EndDate {
		return false
	}
	return true
}

func (s *MemoryAppointmentStore) FindAll(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range s.appts {
		if matchAppointment(a, f) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *MemoryAppointmentStore) CountActiveSlot(ctx context.Context, doctorID, date, startTime string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.appts {
		if a.DoctorID == doctorID && a.Date == date && a.StartTime == startTime &&
			a.Status != models.StatusCancelada {
			n++
		}
	}
	return n, nil
}

func applyAppointmentUpdate(a *models.Appointment, upd *models.AppointmentUpdate) {
	if upd.Date != nil {
		a.Date = *upd.Date
	}
	if upd.StartTime != nil {
		a.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		a.EndTime = *upd.EndTime
	}
	if upd.Modality != nil {
		a.Modality = *upd.Modality
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.Reason != nil {
		a.Reason = *upd.Reason
	}
	if upd.Notes != nil {
		a.Notes = *upd.Notes
	}
	if upd.Diagnosis != nil {
		a.Diagnosis = *upd.Diagnosis
	}
	if upd.Prescription != nil {
		a.Prescription = upd.Prescription
	}
}

/*
* Mirrors the unique partial slot index on updates too: the result is applied
* to a copy first and rejected when it would land a second non-cancelled
* appointment on the same (doctor, date, startTime)
 */
func (s *MemoryAppointmentStore) Update(ctx context.Context, id string, upd *models.AppointmentUpdate, updatedBy string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appts {
		if s.appts[i].ID.Hex() != id {
			continue
		}
		next := s.appts[i]
		applyAppointmentUpdate(&next, upd)
		if next.Status != models.StatusCancelada {
			for j := range s.appts {
				if j != i && s.appts[j].DoctorID == next.DoctorID && s.appts[j].Date == next.Date &&
					s.appts[j].StartTime == next.StartTime && s.appts[j].Status != models.StatusCancelada {
					return nil, apperr.SlotConflict(util.SLOT_ALREADY_BOOKED)
				}
			}
		}
		next.UpdatedBy = updatedBy
		next.UpdatedAt = time.Now()
		s.appts[i] = next
		a := s.appts[i]
		return &a, nil
	}
	return nil, apperr.NotFound(util.APPOINTMENT_NOT_FOUND)
}

func (s *MemoryAppointmentStore) UpdateStatus(ctx context.Context, id string, status, updatedBy string) (*models.Appointment, error) {
	return s.Update(ctx, id, &models.AppointmentUpdate{Status: &status}, updatedBy)
}

func (s *MemoryAppointmentStore) CompleteExpired(ctx context.Context, before string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.appts {
		if s.appts[i].Date < before &&
			(s.appts[i].Status == models.StatusPendiente || s.appts[i].Status == models.StatusConfirmada) {
			s.appts[i].Status = models.StatusCompletada
			s.appts[i].UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

type MemoryMedicalRecordStore struct {
	mu   sync.Mutex
	recs []models.MedicalRecord
}

func NewMemoryMedicalRecordStore() *MemoryMedicalRecordStore {
	return &MemoryMedicalRecordStore{}
}

func (s *MemoryMedicalRecordStore) Insert(ctx context.Context, rec *models.MedicalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	s.recs = append(s.recs, *rec)
	return nil
}

func (s *MemoryMedicalRecordStore) FindByID(ctx context.Context, id string) (*models.MedicalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recs {
		if s.recs[i].ID.Hex() == id {
			r := s.recs[i]
			return &r, nil
		}
	}
	return nil, apperr.NotFound(util.MEDICAL_RECORD_NOT_FOUND)
}

func matchRecord(r models.MedicalRecord, f MedicalRecordFilter) bool {
	if f.PatientID != "" && r.PatientID != f.PatientID {
		return false
	}
	if f.DoctorID != "" && r.DoctorID != f.DoctorID {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.StartDate != "" && r.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && r.Date > f.EndDate {
		return false
	}
	return true
}

func (s *MemoryMedicalRecordStore) FindAll(ctx context.Context, f MedicalRecordFilter) ([]models.MedicalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.MedicalRecord{}
	for _, r := range s.recs {
		if matchRecord(r, f) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

func applyRecordUpdate(r *models.MedicalRecord, upd *models.MedicalRecordUpdate) {
	if upd.Date != nil {
		r.Date = *upd.Date
	}
	if upd.Type != nil {
		r.Type = *upd.Type
	}
	if upd.Symptoms != nil {
		r.Symptoms = *upd.Symptoms
	}
	if upd.Diagnosis != nil {
		r.Diagnosis = *upd.Diagnosis
	}
	if upd.Treatment != nil {
		r.Treatment = upd.Treatment
	}
	if upd.VitalSigns != nil {
		r.VitalSigns = upd.VitalSigns
	}
	if upd.Attachments != nil {
		r.Attachments = *upd.Attachments
	}
	if upd.Notes != nil {
		r.Notes = *upd.Notes
	}
	if upd.FollowUp != nil {
		r.FollowUp = upd.FollowUp
	}
}

func (s *MemoryMedicalRecordStore) Update(ctx context.Context, id string, upd *models.MedicalRecordUpdate, updatedBy string) (*models.MedicalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recs {
		if s.recs[i].ID.Hex() == id {
			applyRecordUpdate(&s.recs[i], upd)
			s.recs[i].UpdatedBy = updatedBy
			s.recs[i].UpdatedAt = time.Now()
			r := s.recs[i]
			return &r, nil
		}
	}
	return nil, apperr.NotFound(util.MEDICAL_RECORD_NOT_FOUND)
}
