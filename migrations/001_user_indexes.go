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
* Unique indexes backing the identity directory invariants:
* email and documentId are globally unique
 */
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(util.UserCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
		{
			Keys:    bson.D{{Key: "documentId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("documentId_1"),
		},
	})
	if err != nil {
		log.Println("Error while creating user indexes: ", err)
		return err
	}
	return nil
}
