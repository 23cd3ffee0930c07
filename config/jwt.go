package config

import (
	"errors"
	"time"

	"ClinicCore/apperr"
	"ClinicCore/models"
	"ClinicCore/role"
	"ClinicCore/util"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager mints and verifies the bearer tokens used on every protected route.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

/*
* Mint a signed, time-limited token embedding userId, email and role
 */
func (m *JWTManager) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

/*
* Verify signature and expiry, then decode the identity
* Pure verification, no side effects
 */
func (m *JWTManager) Validate(tokenString string) (*role.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ExpiredToken(util.TOKEN_EXPIRED)
		}
		return nil, apperr.InvalidToken(util.INVALID_TOKEN)
	}
	if !token.Valid {
		return nil, apperr.InvalidToken(util.INVALID_TOKEN)
	}
	r, ok := role.Parse(claims.Role)
	if !ok {
		return nil, apperr.InvalidToken(util.INVALID_TOKEN)
	}
	return &role.Identity{UserID: claims.UserID, Email: claims.Email, Role: r}, nil
}
