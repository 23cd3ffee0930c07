package models

import (
	"time"

	"ClinicCore/role"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleSlot is one entry of a doctor's weekly schedule.
type ScheduleSlot struct {
	Day       string `json:"day" bson:"day"`
	StartTime string `json:"startTime" bson:"startTime"`
	EndTime   string `json:"endTime" bson:"endTime"`
}

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"password,omitempty" bson:"password"`
	Role         role.Role          `json:"role" bson:"role"`
	DocumentID   string             `json:"documentId" bson:"documentId"`
	DocumentType string             `json:"documentType,omitempty" bson:"documentType,omitempty"`
	BirthDate    string             `json:"birthDate,omitempty" bson:"birthDate,omitempty"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address      string             `json:"address,omitempty" bson:"address,omitempty"`

	// doctor-only fields
	Specialty     string         `json:"specialty,omitempty" bson:"specialty,omitempty"`
	LicenseNumber string         `json:"licenseNumber,omitempty" bson:"licenseNumber,omitempty"`
	Schedule      []ScheduleSlot `json:"schedule,omitempty" bson:"schedule,omitempty"`

	// patient-only fields
	MedicalHistory  string `json:"medicalHistory,omitempty" bson:"medicalHistory,omitempty"`
	InsuranceNumber string `json:"insuranceNumber,omitempty" bson:"insuranceNumber,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

/*
* Password-stripped copy for responses and token issuance
 */
func (u *User) Public() *User {
	out := *u
	out.Password = ""
	return &out
}

// UserSummary is the limited profile projection embedded when resolving
// patient/doctor references on listed records.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Specialty: u.Specialty,
	}
}
