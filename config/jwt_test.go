package config

import (
	"testing"
	"time"

	"ClinicCore/apperr"
	"ClinicCore/models"
	"ClinicCore/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  role.Patient,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	mgr := NewJWTManager("test-secret", 24*time.Hour)
	user := testUser()

	token, err := mgr.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := mgr.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), ident.UserID)
	assert.Equal(t, user.Email, ident.Email)
	assert.Equal(t, role.Patient, ident.Role)
}

func TestValidateExpired(t *testing.T) {
	mgr := NewJWTManager("test-secret", -time.Hour)
	token, err := mgr.Generate(testUser())
	require.NoError(t, err)

	_, err = mgr.Validate(token)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindExpiredToken))
}

func TestValidateMalformed(t *testing.T) {
	mgr := NewJWTManager("test-secret", 24*time.Hour)

	_, err := mgr.Validate("not-a-token")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidToken))
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-one", 24*time.Hour).Generate(testUser())
	require.NoError(t, err)

	_, err = NewJWTManager("secret-two", 24*time.Hour).Validate(token)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidToken))
}
