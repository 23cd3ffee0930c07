package util

// Message constants shared across services and controllers.
const (
	EMAIL_ALREADY_REGISTERED    = "email is already registered"
	INVALID_EMAIL_OR_PASSWORD   = "invalid email or password"
	TOKEN_NOT_PROVIDED          = "authorization token not provided"
	INVALID_TOKEN               = "invalid token"
	TOKEN_EXPIRED               = "token expired"
	INVALID_USER_TO_ACCESS      = "this user does not have access"
	SLOT_ALREADY_BOOKED         = "the doctor already has an appointment at this time"
	APPOINTMENT_NOT_FOUND       = "appointment"
	MEDICAL_RECORD_NOT_FOUND    = "medical record"
	PATIENT_NOT_FOUND           = "patient"
	DOCTOR_NOT_FOUND            = "doctor"
	USER_NOT_FOUND              = "user"
	IDENTITY_MISSING_IN_CONTEXT = "identity missing in request context"
)

// Collection names.
const (
	UserCollection          = "users"
	AppointmentCollection   = "appointments"
	MedicalRecordCollection = "medicalrecords"
)
