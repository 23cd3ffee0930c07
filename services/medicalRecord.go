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

type MedicalRecordService struct {
	records store.MedicalRecordStore
	users   store.UserStore
}

func NewMedicalRecordService(records store.MedicalRecordStore, users store.UserStore) *MedicalRecordService {
	return &MedicalRecordService{records: records, users: users}
}

type CreateMedicalRecordInput struct {
	PatientID   string
	DoctorID    string
	Date        string
	Type        string
	Symptoms    []string
	Diagnosis   string
	Treatment   *models.Treatment
	VitalSigns  *models.VitalSigns
	Attachments []models.Attachment
	Notes       string
	FollowUp    *models.FollowUp
}

/*
* Require a doctor or admin requester
* Both participant references are resolved with their expected role, the same
* way appointment creation does it
* Vital-sign ranges were already enforced at the binding boundary
 */
func (s *MedicalRecordService) Create(ctx context.Context, ident role.Identity, in CreateMedicalRecordInput) (*models.MedicalRecord, error) {
	if err := role.Authorize(&ident, role.MedicalRecordCreate...); err != nil {
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

	date := in.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	rec := &models.MedicalRecord{
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		Date:        date,
		Type:        in.Type,
		Symptoms:    in.Symptoms,
		Diagnosis:   in.Diagnosis,
		Treatment:   in.Treatment,
		VitalSigns:  in.VitalSigns,
		Attachments: in.Attachments,
		Notes:       in.Notes,
		FollowUp:    in.FollowUp,
		CreatedBy:   ident.UserID,
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type MedicalRecordListInput struct {
	PatientID string
	DoctorID  string
	Type      string
	StartDate string
	EndDate   string
}

/*
* Role scoping narrows before the user-supplied filters apply
* Patient/doctor references come back resolved to the limited projection
* Sorted descending by date at the store
 */
func (s *MedicalRecordService) FetchAll(ctx context.Context, ident role.Identity, in MedicalRecordListInput) ([]models.MedicalRecordView, error) {
	filter := store.MedicalRecordFilter{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Type:      in.Type,
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
	recs, err := s.records.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.resolveRefs(ctx, recs), nil
}

/*
* Resolve each record's participant ids to name + limited profile
* A dangling reference leaves the projection empty rather than failing the list
 */
func (s *MedicalRecordService) resolveRefs(ctx context.Context, recs []models.MedicalRecord) []models.MedicalRecordView {
	cache := map[string]*models.UserSummary{}
	lookup := func(id string) *models.UserSummary {
		if summary, ok := cache[id]; ok {
			return summary
		}
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			cache[id] = nil
			return nil
		}
		cache[id] = user.Summary()
		return cache[id]
	}

	views := make([]models.MedicalRecordView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, models.MedicalRecordView{
			MedicalRecord: rec,
			Patient:       lookup(rec.PatientID),
			Doctor:        lookup(rec.DoctorID),
		})
	}
	return views
}

func (s *MedicalRecordService) FetchByID(ctx context.Context, ident role.Identity, id string) (*models.MedicalRecord, error) {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !role.CanView(ident, rec.PatientID, rec.DoctorID) {
		return nil, apperr.AccessDenied(util.INVALID_USER_TO_ACCESS)
	}
	return rec, nil
}

/*
* Admin or the authoring doctor only
* Shallow merge: nested objects are replaced wholesale, absent fields untouched
 */
func (s *MedicalRecordService) Update(ctx context.Context, ident role.Identity, id string, upd *models.MedicalRecordUpdate) (*models.MedicalRecord, error) {
	if err := role.Authorize(&ident, role.MedicalRecordUpdate...); err != nil {
		return nil, err
	}
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !role.CanModify(ident, rec.DoctorID) {
		return nil, apperr.AccessDenied(util.INVALID_USER_TO_ACCESS)
	}
	return s.records.Update(ctx, id, upd, ident.UserID)
}
