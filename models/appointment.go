package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPendiente  = "pendiente"
	StatusConfirmada = "confirmada"
	StatusCancelada  = "cancelada"
	StatusCompletada = "completada"

	ModalityPresencial = "presencial"
	ModalityRemota     = "remota"
)

type PrescriptionItem struct {
	Medicine  string `json:"medicine" bson:"medicine"`
	Dosage    string `json:"dosage" bson:"dosage"`
	Frequency string `json:"frequency" bson:"frequency"`
	Duration  string `json:"duration" bson:"duration"`
}

type Prescription struct {
	Medications  []PrescriptionItem `json:"medications" bson:"medications"`
	Instructions string             `json:"instructions,omitempty" bson:"instructions,omitempty"`
}

type Appointment struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID    string             `json:"patientId" bson:"patientId"`
	DoctorID     string             `json:"doctorId" bson:"doctorId"`
	Date         string             `json:"date" bson:"date"`           // 2006-01-02
	StartTime    string             `json:"startTime" bson:"startTime"` // 15:04
	EndTime      string             `json:"endTime" bson:"endTime"`
	Modality     string             `json:"modality" bson:"modality"`
	Status       string             `json:"status" bson:"status"`
	Reason       string             `json:"reason" bson:"reason"`
	Notes        string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Diagnosis    string             `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	Prescription *Prescription      `json:"prescription,omitempty" bson:"prescription,omitempty"`
	CreatedBy    string             `json:"createdBy" bson:"createdBy"`
	UpdatedBy    string             `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AppointmentUpdate carries a partial update: only non-nil fields are applied,
// and nested objects are replaced wholesale.
type AppointmentUpdate struct {
	Date         *string       `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime    *string       `json:"startTime" binding:"omitempty,datetime=15:04"`
	EndTime      *string       `json:"endTime" binding:"omitempty,datetime=15:04"`
	Modality     *string       `json:"modality" binding:"omitempty,oneof=presencial remota"`
	Status       *string       `json:"status" binding:"omitempty,oneof=pendiente confirmada cancelada completada"`
	Reason       *string       `json:"reason"`
	Notes        *string       `json:"notes"`
	Diagnosis    *string       `json:"diagnosis"`
	Prescription *Prescription `json:"prescription"`
}
