package migrations

import (
	"context"
	"log"

	"ClinicCore/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
* Query indexes for the role-scoped record listings
 */
func EnsureMedicalRecordIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(util.MedicalRecordCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "patientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("patient_date"),
		},
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("doctor_date"),
		},
	})
	if err != nil {
		log.Println("Error while creating medicalRecord indexes: ", err)
		return err
	}
	return nil
}

/*
* Run all index migrations in order
 */
func Run(ctx context.Context, db *mongo.Database) error {
	if err := EnsureUserIndexes(ctx, db); err != nil {
		return err
	}
	if err := EnsureAppointmentIndexes(ctx, db); err != nil {
		return err
	}
	return EnsureMedicalRecordIndexes(ctx, db)
}
