package service

import (
	"errors"
	"fmt"

	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already exists")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
)

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=80"`
	Email     string `json:"email" binding:"required,email,max=120"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"omitempty,oneof=super_admin chapter_admin"`
	ChapterID *uint  `json:"chapter_id"`
}

type UpdateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=80"`
	Email     string `json:"email" binding:"required,email,max=120"`
	Password  string `json:"password"` // optional: blank keeps the current one
	Role      string `json:"role" binding:"omitempty,oneof=super_admin chapter_admin"`
	ChapterID *uint  `json:"chapter_id"`
}

type UpdateProfileRequest struct {
	Email           string `json:"email" binding:"required,email,max=120"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UserSummary enriches a user with their audit-trail footprint.
type UserSummary struct {
	User            model.User      `json:"user"`
	TotalActivities int64           `json:"total_activities"`
	LastActivity    *model.Activity `json:"last_activity,omitempty"`
}

type UserService interface {
	Get(id uint) (*model.User, error)
	List() ([]UserSummary, error)
	Create(req CreateUserRequest) (*model.User, error)
	Update(id uint, req UpdateUserRequest) (*model.User, error)
	// ToggleStatus flips the active flag and returns the new state. The
	// self-target rule is enforced by the caller via access.CanToggleUser.
	ToggleStatus(id uint) (bool, error)
	UpdateProfile(id uint, req UpdateProfileRequest) (*model.User, error)
}

type userService struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
}

func NewUserService(users repository.UserRepository, activities repository.ActivityRepository) UserService {
	return &userService{users: users, activities: activities}
}

func (s *userService) Get(id uint) (*model.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List() ([]UserSummary, error) {
	users, err := s.users.ListActive()
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		total, err := s.activities.CountByUser(user.ID)
		if err != nil {
			return nil, err
		}
		summary := UserSummary{User: user, TotalActivities: total}
		recent, err := s.activities.RecentByUser(user.ID, 1)
		if err != nil {
			return nil, err
		}
		if len(recent) > 0 {
			summary.LastActivity = &recent[0]
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *userService) Create(req CreateUserRequest) (*model.User, error) {
	if err := s.checkUniqueness(req.Username, req.Email, 0); err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		Role:      req.Role,
		ChapterID: req.ChapterID,
		IsActive:  true,
	}
	if user.Role == "" {
		user.Role = "chapter_admin"
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(id uint, req UpdateUserRequest) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(req.Username, req.Email, id); err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.Email = req.Email
	if req.Role != "" {
		user.Role = req.Role
	}
	user.ChapterID = req.ChapterID
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) ToggleStatus(id uint) (bool, error) {
	user, err := s.Get(id)
	if err != nil {
		return false, err
	}
	user.IsActive = !user.IsActive
	if err := s.users.Save(user); err != nil {
		return false, fmt.Errorf("failed to toggle user status: %w", err)
	}
	return user.IsActive, nil
}

func (s *userService) UpdateProfile(id uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if taken, err := s.users.EmailExists(req.Email, id); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	user.Email = req.Email
	if req.NewPassword != "" {
		if !user.CheckPassword(req.CurrentPassword) {
			return nil, ErrWrongPassword
		}
		if req.NewPassword != req.ConfirmPassword {
			return nil, ErrPasswordMismatch
		}
		if err := user.SetPassword(req.NewPassword); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *userService) checkUniqueness(username, email string, excludeID uint) error {
	if taken, err := s.users.UsernameExists(username, excludeID); err != nil {
		return err
	} else if taken {
		return ErrUsernameTaken
	}
	if taken, err := s.users.EmailExists(email, excludeID); err != nil {
		return err
	} else if taken {
		return ErrEmailTaken
	}
	return nil
}
