package store

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"ClinicCore/apperr"
	"ClinicCore/models"
	"ClinicCore/role"
	"ClinicCore/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(util.UserCollection)}
}

/*
* Insert the user
* A unique-index violation surfaces as DuplicateKey naming the field
 */
func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	_, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateField(err)
		}
		log.Println("Error from InsertOne while creating user: ", err)
		return apperr.Server(err)
	}
	return nil
}

/*
* The index name inside the driver error tells which field collided
 */
func duplicateField(err error) *apperr.Error {
	msg := err.Error()
	if strings.Contains(msg, "documentId") {
		return apperr.DuplicateKey("documentId")
	}
	if strings.Contains(msg, "email") {
		return apperr.DuplicateKey("email")
	}
	return apperr.DuplicateKey("field")
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(util.USER_NOT_FOUND)
		}
		log.Println("Error from FindOne while fetching user by email: ", err)
		return nil, apperr.Server(err)
	}
	return &user, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound(util.USER_NOT_FOUND)
	}
	var user models.User
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(util.USER_NOT_FOUND)
		}
		log.Println("Error from FindOne while fetching user by id: ", err)
		return nil, apperr.Server(err)
	}
	return &user, nil
}

/*
* Not-found covers both a missing id and a role mismatch, so callers can
* verify a referenced participant really is a patient or a doctor
 */
func (s *MongoUserStore) FindByIDAndRole(ctx context.Context, id string, r role.Role) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound(string(r))
	}
	var user models.User
	err = s.coll.FindOne(ctx, bson.M{"_id": oid, "role": r}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(string(r))
		}
		log.Println("Error from FindOne while fetching user by id and role: ", err)
		return nil, apperr.Server(err)
	}
	return &user, nil
}

func (s *MongoUserStore) FindByRole(ctx context.Context, r role.Role) ([]models.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"role": r})
	if err != nil {
		log.Println("Error from Find while fetching users by role: ", err)
		return nil, apperr.Server(err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Println("Error from cursor.All while fetching users by role: ", err)
		return nil, apperr.Server(err)
	}
	return users, nil
}
