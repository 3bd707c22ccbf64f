package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bioguide/backend/internal/model"
)

type slideRepository struct {
	db *gorm.DB
}

func NewSlideRepository(db *gorm.DB) SlideRepository {
	return &slideRepository{db: db}
}

// Create inserts the slide at the end of its chapter's active ranking.
func (r *slideRepository) Create(slide *model.Slide) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var max int
		if err := tx.Model(&model.Slide{}).
			Where("chapter_id = ? AND is_active = ?", slide.ChapterID, true).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&max).Error; err != nil {
			return err
		}
		slide.Order = max + 1
		return tx.Create(slide).Error
	})
}

func (r *slideRepository) GetByID(id uint) (*model.Slide, error) {
	var slide model.Slide
	if err := r.db.First(&slide, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &slide, nil
}

func (r *slideRepository) GetActive(id uint) (*model.Slide, error) {
	var slide model.Slide
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&slide).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &slide, nil
}

func (r *slideRepository) ListActiveByChapter(chapterID uint) ([]model.Slide, error) {
	var slides []model.Slide
	err := r.db.Where("chapter_id = ? AND is_active = ?", chapterID, true).
		Order("sort_order ASC, id ASC").
		Find(&slides).Error
	return slides, err
}

func (r *slideRepository) Save(slide *model.Slide) error {
	return r.db.Save(slide).Error
}

// Reorder moves the slide within its chapter's active set. The sibling set is
// the chapter, so ranks in other chapters are untouched.
func (r *slideRepository) Reorder(id uint, newOrder int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var slide model.Slide
		if err := tx.Where("id = ? AND is_active = ?", id, true).First(&slide).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var max int
		if err := tx.Model(&model.Slide{}).
			Where("chapter_id = ? AND is_active = ?", slide.ChapterID, true).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&max).Error; err != nil {
			return err
		}
		newOrder = clampOrder(newOrder, max)

		oldOrder := slide.Order
		if newOrder == oldOrder {
			return nil
		}

		shift := tx.Model(&model.Slide{}).
			Where("chapter_id = ? AND is_active = ? AND id <> ?", slide.ChapterID, true, id)
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

		return tx.Model(&slide).Update("sort_order", newOrder).Error
	})
}

func (r *slideRepository) Deactivate(id uint) error {
	res := r.db.Model(&model.Slide{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *slideRepository) IncrementViews(id uint) error {
	res := r.db.Model(&model.Slide{}).
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

func (r *slideRepository) SumViews() (int64, error) {
	var sum int64
	err := r.db.Model(&model.Slide{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *slideRepository) SumViewsByChapter(chapterID uint) (int64, error) {
	var sum int64
	err := r.db.Model(&model.Slide{}).
		Where("chapter_id = ?", chapterID).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *slideRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Slide{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *slideRepository) CountActiveByChapter(chapterID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Slide{}).
		Where("chapter_id = ? AND is_active = ?", chapterID, true).
		Count(&count).Error
	return count, err
}
