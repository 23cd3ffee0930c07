package services

import (
	"context"

	"ClinicCore/models"
	"ClinicCore/role"
	"ClinicCore/store"
)

type DoctorService struct {
	users store.UserStore
}

func NewDoctorService(users store.UserStore) *DoctorService {
	return &DoctorService{users: users}
}

/*
* Public directory of doctors for scheduling clients
* Password-stripped profiles with specialty and weekly schedule
 */
func (s *DoctorService) FetchAll(ctx context.Context) ([]models.User, error) {
	doctors, err := s.users.FindByRole(ctx, role.Doctor)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(doctors))
	for i := range doctors {
		out = append(out, *doctors[i].Public())
	}
	return out, nil
}
