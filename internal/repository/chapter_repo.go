package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bioguide/backend/internal/model"
)

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

// Create inserts the chapter at the end of the active ranking.
func (r *chapterRepository) Create(chapter *model.Chapter) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var max int
		if err := tx.Model(&model.Chapter{}).
			Where("is_active = ?", true).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&max).Error; err != nil {
			return err
		}
		chapter.Order = max + 1
		return tx.Create(chapter).Error
	})
}

func (r *chapterRepository) GetByID(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.First(&chapter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) GetActive(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&chapter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) ListActive() ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.db.Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&chapters).Error
	return chapters, err
}

func (r *chapterRepository) Save(chapter *model.Chapter) error {
	return r.db.Save(chapter).Error
}

// Reorder moves the chapter to newOrder within the active set. Targets
// outside [1, max] are clamped so the ranking stays duplicate-free.
func (r *chapterRepository) Reorder(id uint, newOrder int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var chapter model.Chapter
		if err := tx.Where("id = ? AND is_active = ?", id, true).First(&chapter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var max int
		if err := tx.Model(&model.Chapter{}).
			Where("is_active = ?", true).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&max).Error; err != nil {
			return err
		}
		newOrder = clampOrder(newOrder, max)

		oldOrder := chapter.Order
		if newOrder == oldOrder {
			return nil
		}

		shift := tx.Model(&model.Chapter{}).Where("is_active = ? AND id <> ?", true, id)
		if newOrder > oldOrder {
			shift = shift.Where("sort_order > ? AND sort_order <= ?", oldOrder, newOrder)
			if err := shift.UpdateColumn("sort_order", gorm.Expr("sort_order - 1")).Error; err != nil {
				return err
			}
		} else {
			shift = shift.Where("sort_order >= ? AND sort_order < ?", newOrder, oldOrder)
			if err := shift.UpdateColumn("sort_order", gorm.Expr("sort_order + 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&chapter).Update("sort_order", newOrder).Error
	})
}

// Deactivate soft-deletes the chapter and cascades to its slides. Ranks of
// the remaining chapters are not compacted; the gap is accepted.
func (r *chapterRepository) Deactivate(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Chapter{}).Where("id = ?", id).Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&model.Slide{}).
			Where("chapter_id = ?", id).
			Update("is_active", false).Error
	})
}

func (r *chapterRepository) IncrementViews(id uint) error {
	res := r.db.Model(&model.Chapter{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *chapterRepository) SumViews() (int64, error) {
	var sum int64
	err := r.db.Model(&model.Chapter{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *chapterRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Chapter{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func clampOrder(order, max int) int {
	if order < 1 {
		return 1
	}
	if max > 0 && order > max {
		return max
	}
	return order
}
