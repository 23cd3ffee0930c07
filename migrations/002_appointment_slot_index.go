package migrations

import (
	"context"
	"log"

	"ClinicCore/models"
	"ClinicCore/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
* Unique partial index over (doctorId, date, startTime) restricted to
* non-cancelled statuses. Closes the check-then-insert window on slot booking:
* the losing writer gets a duplicate-key error instead of a silent double-booking.
* Requires MongoDB 6.0+ for $in in the partial filter expression.
 */
func EnsureAppointmentIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(util.AppointmentCollection)
	active := bson.M{"status": bson.M{"$in": bson.A{
		models.StatusPendiente, models.StatusConfirmada, models.StatusCompletada,
	}}}
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(active).
				SetName("doctor_slot_active"),
		},
		{
			Keys:    bson.D{{Key: "patientId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("patient_date"),
		},
	})
	if err != nil {
		log.Println("Error while creating appointment indexes: ", err)
		return err
	}
	return nil
}
