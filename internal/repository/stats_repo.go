package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bioguide/backend/internal/model"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Upsert overwrites the rollup row for the same date instead of accumulating,
// so re-running a rollup is idempotent.
func (r *statsRepository) Upsert(stats *model.SystemStats) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"chapter_views", "slide_views", "total_views", "active_users", "updated_at",
		}),
	}).Create(stats).Error
}

func (r *statsRepository) GetByDate(date string) (*model.SystemStats, error) {
	var stats model.SystemStats
	err := r.db.Where("date = ?", date).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) ResetCounters() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Chapter{}).
			Where("1 = 1").
			UpdateColumn("view_count", 0).Error; err != nil {
			return err
		}
		return tx.Model(&model.Slide{}).
			Where("1 = 1").
			UpdateColumn("view_count", 0).Error
	})
}
