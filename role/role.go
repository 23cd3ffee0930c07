package role

import (
	"ClinicCore/apperr"
	"ClinicCore/util"
)

// Role is the closed set of user roles. Anything else is rejected at the boundary.
type Role string

const (
	Patient Role = "patient"
	Doctor  Role = "doctor"
	Admin   Role = "admin"
)

func Parse(s string) (Role, bool) {
	switch Role(s) {
	case Patient, Doctor, Admin:
		return Role(s), true
	}
	return "", false
}

// Identity is the decoded token payload carried through the request context.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// Allowed-role sets per operation, expressed as data so tests can cover them
// without going through the transport.
var (
	AppointmentCreate   = []Role{Admin, Doctor}
	AppointmentUpdate   = []Role{Admin, Doctor}
	MedicalRecordCreate = []Role{Doctor, Admin}
	MedicalRecordUpdate = []Role{Doctor, Admin}
)

/*
* Deny when the identity is absent or its role is not in the allowed set
 */
func Authorize(id *Identity, allowed ...Role) error {
	if id == nil {
		return apperr.AccessDenied(util.IDENTITY_MISSING_IN_CONTEXT)
	}
	for _, r := range allowed {
		if id.Role == r {
			return nil
		}
	}
	return apperr.AccessDenied(util.INVALID_USER_TO_ACCESS)
}

/*
* Scope predicate for read access on an entity referencing a patient and a doctor
* Admins see everything, patients their own, doctors their own
 */
func CanView(id Identity, patientID, doctorID string) bool {
	switch id.Role {
	case Admin:
		return true
	case Patient:
		return id.UserID == patientID
	case Doctor:
		return id.UserID == doctorID
	}
	return false
}

/*
* Scope predicate for mutation: admin or the referenced doctor
 */
func CanModify(id Identity, doctorID string) bool {
	if id.Role == Admin {
		return true
	}
	return id.Role == Doctor && id.UserID == doctorID
}

/*
* Scope predicate for cancellation: any of the three involved parties
 */
func CanCancel(id Identity, patientID, doctorID string) bool {
	return CanView(id, patientID, doctorID)
}
