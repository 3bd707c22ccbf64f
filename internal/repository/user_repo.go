package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bioguide/backend/internal/model"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetActiveByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ? AND is_active = ?", username, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameExists(username string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) EmailExists(email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ListActive() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) Save(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *userRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login", at).Error
}
