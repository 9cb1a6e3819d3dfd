package user

import (
	"example.com/shop/internal/domain/user"
)

type UserService struct {
	repo user.UserRepository
}

func (s *UserService) Register(name string) (*user.User, error) {
	u := &user.User{Name: name}
	if err := s.repo.Save(u); err != nil {
		return nil, err
	}
	return u, nil
}
