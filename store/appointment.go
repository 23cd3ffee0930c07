package store

import (
	"context"
	"errors"
	"log"
	"time"

	"ClinicCore/apperr"
	"ClinicCore/models"
	"ClinicCore/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAppointmentStore struct {
	coll *mongo.Collection
}

func NewMongoAppointmentStore(db *mongo.Database) *MongoAppointmentStore {
	return &MongoAppointmentStore{coll: db.Collection(util.AppointmentCollection)}
}

/*
* Insert a new appointment
* The unique partial slot index turns a lost check-then-insert race into a
* duplicate-key error, surfaced as SlotConflict
 */
func (s *MongoAppointmentStore) Insert(ctx context.Context, appt *models.Appointment) error {
	appt.ID = primitive.NewObjectID()
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	_, err := s.coll.InsertOne(ctx, appt)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.SlotConflict(util.SLOT_ALREADY_BOOKED)
		}
		log.Println("Error from InsertOne while creating appointment: ", err)
		return apperr.Server(err)
	}
	return nil
}

func (s *MongoAppointmentStore) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound(util.APPOINTMENT_NOT_FOUND)
	}
	var appt models.Appointment
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(util.APPOINTMENT_NOT_FOUND)
		}
		log.Println("Error from FindOne while fetching appointment: ", err)
		return nil, apperr.Server(err)
	}
	return &appt, nil
}

/*
* Compose the bson filter from the narrowed filter struct
 */
func appointmentFilter(f AppointmentFilter) bson.M {
	filter := bson.M{}
	if f.PatientID != "" {
		filter["patientId"] = f.PatientID
	}
	if f.DoctorID != "" {
		filter["doctorId"] = f.DoctorID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	dateRange := bson.M{}
	if f.StartDate != "" {
		dateRange["$gte"] = f.StartDate
	}
	if f.EndDate != "" {
		dateRange["$lte"] = f.EndDate
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	return filter
}

func (s *MongoAppointmentStore) FindAll(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := s.coll.Find(ctx, appointmentFilter(f), opts)
	if err != nil {
		log.Println("Error from Find while fetching appointments: ", err)
		return nil, apperr.Server(err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		log.Println("Error from cursor.All while fetching appointments: ", err)
		return nil, apperr.Server(err)
	}
	return appts, nil
}

func (s *MongoAppointmentStore) CountActiveSlot(ctx context.Context, doctorID, date, startTime string) (int64, error) {
	filter := bson.M{
		"doctorId":  doctorID,
		"date":      date,
		"startTime": startTime,
		"status":    bson.M{"$ne": models.StatusCancelada},
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		log.Println("Error from CountDocuments while checking slot: ", err)
		return 0, apperr.Server(err)
	}
	return n, nil
}

/*
* Build the $set document from the non-nil fields only
* Absent fields stay untouched, nested objects are replaced wholesale
 */
func appointmentSet(upd *models.AppointmentUpdate) bson.M {
	set := bson.M{}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.StartTime != nil {
		set["startTime"] = *upd.StartTime
	}
	if upd.EndTime != nil {
		set["endTime"] = *upd.EndTime
	}
	if upd.Modality != nil {
		set["modality"] = *upd.Modality
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Reason != nil {
		set["reason"] = *upd.Reason
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if upd.Diagnosis != nil {
		set["diagnosis"] = *upd.Diagnosis
	}
	if upd.Prescription != nil {
		set["prescription"] = upd.Prescription
	}
	return set
}

func (s *MongoAppointmentStore) Update(ctx context.Context, id string, upd *models.AppointmentUpdate, updatedBy string) (*models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound(util.APPOINTMENT_NOT_FOUND)
	}
	set := appointmentSet(upd)
	set["updatedBy"] = updatedBy
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Appointment
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(util.APPOINTMENT_NOT_FOUND)
		}
		// a reschedule landing on a taken slot trips the unique slot index
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.SlotConflict(util.SLOT_ALREADY_BOOKED)
		}
		log.Println("Error from FindOneAndUpdate while updating appointment: ", err)
		return nil, apperr.Server(err)
	}
	return &updated, nil
}

func (s *MongoAppointmentStore) UpdateStatus(ctx context.Context, id string, status, updatedBy string) (*models.Appointment, error) {
	return s.Update(ctx, id, &models.AppointmentUpdate{Status: &status}, updatedBy)
}

func (s *MongoAppointmentStore) CompleteExpired(ctx context.Context, before string) (int64, error) {
	filter := bson.M{
		"date":   bson.M{"$lt": before},
		"status": bson.M{"$in": []string{models.StatusPendiente, models.StatusConfirmada}},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusCompletada, "updatedAt": time.Now()}}
	res, err := s.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		log.Println("Error from UpdateMany while completing expired appointments: ", err)
		return 0, apperr.Server(err)
	}
	return res.ModifiedCount, nil
}
