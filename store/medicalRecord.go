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

type MongoMedicalRecordStore struct {
	coll *mongo.Collection
}

func NewMongoMedicalRecordStore(db *mongo.Database) *MongoMedicalRecordStore {
	return &MongoMedicalRecordStore{coll: db.Collection(util.MedicalRecordCollection)}
}

func (s *MongoMedicalRecordStore) Insert(ctx context.Context, rec *models.MedicalRecord) error {
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	_, err := s.coll.InsertOne(ctx, rec)
	if err != nil {
		log.Println("Error from InsertOne while creating medicalRecord: ", err)
		return apperr.Server(err)
	}
	return nil
}

func (s *MongoMedicalRecordStore) FindByID(ctx context.Context, id string) (*models.MedicalRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound(util.MEDICAL_RECORD_NOT_FOUND)
	}
	var rec models.MedicalRecord
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(util.MEDICAL_RECORD_NOT_FOUND)
		}
		log.Println("Error from FindOne while fetching medicalRecord: ", err)
		return nil, apperr.Server(err)
	}
	return &rec, nil
}

func recordFilter(f MedicalRecordFilter) bson.M {
	filter := bson.M{}
	if f.PatientID != "" {
		filter["patientId"] = f.PatientID
	}
	if f.DoctorID != "" {
		filter["doctorId"] = f.DoctorID
	}
	if f.Type != "" {
		filter["type"] = f.Type
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

func (s *MongoMedicalRecordStore) FindAll(ctx context.Context, f MedicalRecordFilter) ([]models.MedicalRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll.Find(ctx, recordFilter(f), opts)
	if err != nil {
		log.Println("Error from Find while fetching medicalRecords: ", err)
		return nil, apperr.Server(err)
	}
	defer cursor.Close(ctx)

	recs := []models.MedicalRecord{}
	if err := cursor.All(ctx, &recs); err != nil {
		log.Println("Error from cursor.All while fetching medicalRecords: ", err)
		return nil, apperr.Server(err)
	}
	return recs, nil
}

/*
* Shallow merge: only non-nil fields go into $set, nested documents are
* overwritten wholesale
 */
func recordSet(upd *models.MedicalRecordUpdate) bson.M {
	set := bson.M{}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.Symptoms != nil {
		set["symptoms"] = *upd.Symptoms
	}
	if upd.Diagnosis != nil {
		set["diagnosis"] = *upd.Diagnosis
	}
	if upd.Treatment != nil {
		set["treatment"] = upd.Treatment
	}
	if upd.VitalSigns != nil {
		set["vitalSigns"] = upd.VitalSigns
	}
	if upd.Attachments != nil {
		set["attachments"] = *upd.Attachments
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if upd.FollowUp != nil {
		set["followUp"] = upd.FollowUp
	}
	return set
}

func (s *MongoMedicalRecordStore) Update(ctx context.Context, id string, upd *models.MedicalRecordUpdate, updatedBy string) (*models.MedicalRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound(util.MEDICAL_RECORD_NOT_FOUND)
	}
	set := recordSet(upd)
	set["updatedBy"] = updatedBy
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.MedicalRecord
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(util.MEDICAL_RECORD_NOT_FOUND)
		}
		log.Println("Error from FindOneAndUpdate while updating medicalRecord: ", err)
		return nil, apperr.Server(err)
	}
	return &updated, nil
}
