package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RecordConsulta      = "consulta"
	RecordEmergencia    = "emergencia"
	RecordControl       = "control"
	RecordProcedimiento = "procedimiento"
)

type Medication struct {
	Name      string `json:"name" bson:"name"`
	Dosage    string `json:"dosage" bson:"dosage"`
	Frequency string `json:"frequency" bson:"frequency"`
	Duration  string `json:"duration" bson:"duration"`
	StartDate string `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty" bson:"endDate,omitempty"`
}

type Treatment struct {
	Medications     []Medication `json:"medications" bson:"medications"`
	Procedures      []string     `json:"procedures,omitempty" bson:"procedures,omitempty"`
	Recommendations string       `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
}

// BloodPressure components are 2-3 digit values, validated at the binding boundary.
type BloodPressure struct {
	Systolic  int `json:"systolic" bson:"systolic" binding:"required,min=10,max=999"`
	Diastolic int `json:"diastolic" bson:"diastolic" binding:"required,min=10,max=999"`
}

// VitalSigns fields are each independently optional; declared ranges are
// enforced by binding validation before any record is persisted.
type VitalSigns struct {
	BloodPressure    *BloodPressure `json:"bloodPressure,omitempty" bson:"bloodPressure,omitempty"`
	HeartRate        *int           `json:"heartRate,omitempty" bson:"heartRate,omitempty" binding:"omitempty,min=40,max=200"`
	Temperature      *float64       `json:"temperature,omitempty" bson:"temperature,omitempty" binding:"omitempty,min=35,max=42"`
	RespiratoryRate  *int           `json:"respiratoryRate,omitempty" bson:"respiratoryRate,omitempty"`
	OxygenSaturation *int           `json:"oxygenSaturation,omitempty" bson:"oxygenSaturation,omitempty" binding:"omitempty,min=70,max=100"`
}

type Attachment struct {
	Name string `json:"name" bson:"name"`
	Type string `json:"type" bson:"type"`
	URL  string `json:"url" bson:"url"`
}

type FollowUp struct {
	Date  string `json:"date" bson:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`
}

type MedicalRecord struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID   string             `json:"patientId" bson:"patientId"`
	DoctorID    string             `json:"doctorId" bson:"doctorId"`
	Date        string             `json:"date" bson:"date"` // 2006-01-02
	Type        string             `json:"type" bson:"type"`
	Symptoms    []string           `json:"symptoms,omitempty" bson:"symptoms,omitempty"`
	Diagnosis   string             `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	Treatment   *Treatment         `json:"treatment,omitempty" bson:"treatment,omitempty"`
	VitalSigns  *VitalSigns        `json:"vitalSigns,omitempty" bson:"vitalSigns,omitempty"`
	Attachments []Attachment       `json:"attachments,omitempty" bson:"attachments,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	FollowUp    *FollowUp          `json:"followUp,omitempty" bson:"followUp,omitempty"`
	CreatedBy   string             `json:"createdBy" bson:"createdBy"`
	UpdatedBy   string             `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// MedicalRecordUpdate is a shallow partial update: only non-nil fields are
// applied, nested objects are replaced wholesale rather than deep-merged.
type MedicalRecordUpdate struct {
	Date        *string       `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Type        *string       `json:"type" binding:"omitempty,oneof=consulta emergencia control procedimiento"`
	Symptoms    *[]string     `json:"symptoms"`
	Diagnosis   *string       `json:"diagnosis"`
	Treatment   *Treatment    `json:"treatment"`
	VitalSigns  *VitalSigns   `json:"vitalSigns"`
	Attachments *[]Attachment `json:"attachments"`
	Notes       *string       `json:"notes"`
	FollowUp    *FollowUp     `json:"followUp"`
}

// MedicalRecordView is a listed record with its patient/doctor references
// resolved to the limited profile projection.
type MedicalRecordView struct {
	MedicalRecord
	Patient *UserSummary `json:"patient,omitempty"`
	Doctor  *UserSummary `json:"doctor,omitempty"`
}
