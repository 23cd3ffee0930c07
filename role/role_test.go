package role

import (
	"testing"

	"ClinicCore/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, s := range []string{"patient", "doctor", "admin"} {
		r, ok := Parse(s)
		assert.True(t, ok)
		assert.Equal(t, Role(s), r)
	}
	_, ok := Parse("superadmin")
	assert.False(t, ok)
	_, ok = Parse("")
	assert.False(t, ok)
}

func TestAuthorize(t *testing.T) {
	doctor := &Identity{UserID: "d1", Role: Doctor}

	require.NoError(t, Authorize(doctor, Admin, Doctor))
	require.NoError(t, Authorize(doctor, Doctor))

	err := Authorize(doctor, Admin)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	err = Authorize(nil, Admin, Doctor, Patient)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))
}

func TestCanView(t *testing.T) {
	admin := Identity{UserID: "a1", Role: Admin}
	patient := Identity{UserID: "p1", Role: Patient}
	doctor := Identity{UserID: "d1", Role: Doctor}

	assert.True(t, CanView(admin, "p1", "d1"))
	assert.True(t, CanView(admin, "px", "dx"))

	assert.True(t, CanView(patient, "p1", "d1"))
	assert.False(t, CanView(patient, "p2", "d1"))

	assert.True(t, CanView(doctor, "p1", "d1"))
	assert.False(t, CanView(doctor, "p1", "d2"))
}

func TestCanModify(t *testing.T) {
	assert.True(t, CanModify(Identity{UserID: "a1", Role: Admin}, "d1"))
	assert.True(t, CanModify(Identity{UserID: "d1", Role: Doctor}, "d1"))
	assert.False(t, CanModify(Identity{UserID: "d2", Role: Doctor}, "d1"))
	assert.False(t, CanModify(Identity{UserID: "p1", Role: Patient}, "d1"))
	// a patient cannot modify even their own appointment
	assert.False(t, CanModify(Identity{UserID: "d1", Role: Patient}, "d1"))
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(Identity{UserID: "p1", Role: Patient}, "p1", "d1"))
	assert.True(t, CanCancel(Identity{UserID: "d1", Role: Doctor}, "p1", "d1"))
	assert.True(t, CanCancel(Identity{UserID: "a1", Role: Admin}, "p1", "d1"))
	assert.False(t, CanCancel(Identity{UserID: "p2", Role: Patient}, "p1", "d1"))
}
