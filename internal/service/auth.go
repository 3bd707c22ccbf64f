package service

import (
	"errors"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	// Login verifies the credentials against active users only and stamps the
	// last-login time on success.
	Login(username, password string) (*model.User, error)
	GetUser(id uint) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(username, password string) (*model.User, error) {
	user, err := s.users.GetActiveByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(user.ID, now); err != nil {
		// the login itself already succeeded
		klog.Errorf("failed to stamp last login for user %d: %v", user.ID, err)
	}
	user.LastLogin = &now
	return user, nil
}

func (s *authService) GetUser(id uint) (*model.User, error) {
	return s.users.GetByID(id)
}
