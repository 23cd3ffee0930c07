package services

import (
	"context"
	"log"

	"ClinicCore/apperr"
	"ClinicCore/config"
	"ClinicCore/models"
	"ClinicCore/store"
	"ClinicCore/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users store.UserStore
	jwt   *config.JWTManager
}

func NewAuthService(users store.UserStore, jwtMgr *config.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwtMgr}
}

/*
* Explicit duplicate-email pre-check for a friendly message
* The unique index stays the authoritative guard against the check/insert race
* Hash the password with a per-user salt before persisting
* Mint the token and return the password-stripped profile
 */
func (s *AuthService) Register(ctx context.Context, user *models.User, password string) (string, *models.User, error) {
	if _, err := s.users.FindByEmail(ctx, user.Email); err == nil {
		return "", nil, apperr.DuplicateUser(util.EMAIL_ALREADY_REGISTERED)
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		log.Println("Error from FindByEmail while registering: ", err)
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Error from bcrypt while hashing password: ", err)
		return "", nil, apperr.Server(err)
	}
	user.Password = string(hash)

	if err := s.users.Create(ctx, user); err != nil {
		log.Println("Error from Create while registering: ", err)
		return "", nil, err
	}
	token, err := s.jwt.Generate(user)
	if err != nil {
		log.Println("Error while generating the token: ", err)
		return "", nil, apperr.Server(err)
	}
	return token, user.Public(), nil
}

/*
* Lookup by email, then constant-time hash comparison
* Both a missing user and a mismatch collapse into InvalidCredentials
 */
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return "", nil, apperr.InvalidCredentials(util.INVALID_EMAIL_OR_PASSWORD)
		}
		log.Println("Error from FindByEmail while logging in: ", err)
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.InvalidCredentials(util.INVALID_EMAIL_OR_PASSWORD)
	}
	token, err := s.jwt.Generate(user)
	if err != nil {
		log.Println("Error while generating the token: ", err)
		return "", nil, apperr.Server(err)
	}
	return token, user.Public(), nil
}

/*
* Resolve the authenticated identity back to its stored profile
 */
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}
