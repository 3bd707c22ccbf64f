package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/bioguide/backend/internal/model"
)

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *model.Activity) error {
	return r.db.Create(activity).Error
}

func (r *activityRepository) Recent(limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&activities).Error
	return activities, err
}

func (r *activityRepository) RecentByUser(userID uint, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

func (r *activityRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Activity{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *activityRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Activity{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// Purge deletes rows older than the cutoff and reports how many were removed.
func (r *activityRepository) Purge(before time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", before).Delete(&model.Activity{})
	return res.RowsAffected, res.Error
}
