package service

import (
	"errors"
	"fmt"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/repository"
)

var ErrChapterNotFound = errors.New("chapter not found")

type CreateChapterRequest struct {
	TitleEN        string `json:"title_en" binding:"required,min=1,max=200"`
	TitleCKB       string `json:"title_ckb" binding:"required,min=1,max=200"`
	DescriptionEN  string `json:"description_en"`
	DescriptionCKB string `json:"description_ckb"`
	Icon           string `json:"icon"`
}

type UpdateChapterRequest struct {
	TitleEN        string `json:"title_en" binding:"required,min=1,max=200"`
	TitleCKB       string `json:"title_ckb" binding:"required,min=1,max=200"`
	DescriptionEN  string `json:"description_en"`
	DescriptionCKB string `json:"description_ckb"`
	Icon           string `json:"icon"`
	Order          *int   `json:"order"`
}

// ChapterSummary is a chapter enriched with the counts the admin pages show.
type ChapterSummary struct {
	Chapter    model.Chapter `json:"chapter"`
	SlideCount int64         `json:"slide_count"`
	TotalViews int64         `json:"total_views"`
}

type ChapterService interface {
	ListActive() ([]model.Chapter, error)
	// ListForIdentity returns the chapters the caller may manage: all active
	// ones for a super-admin, the assigned chapter for a chapter-admin, and
	// nothing for an unassigned chapter-admin.
	ListForIdentity(id *access.Identity) ([]ChapterSummary, error)
	Get(id uint) (*model.Chapter, error)
	GetActive(id uint) (*model.Chapter, error)
	Create(req CreateChapterRequest) (*model.Chapter, error)
	// Update edits the bilingual fields; a requested order change is applied
	// through the ordering engine only when allowReorder is set.
	Update(id uint, req UpdateChapterRequest, allowReorder bool) (*model.Chapter, error)
	Deactivate(id uint) error
	Reorder(id uint, newOrder int) error
}

type chapterService struct {
	chapters repository.ChapterRepository
	slides   repository.SlideRepository
}

func NewChapterService(chapters repository.ChapterRepository, slides repository.SlideRepository) ChapterService {
	return &chapterService{chapters: chapters, slides: slides}
}

func (s *chapterService) ListActive() ([]model.Chapter, error) {
	return s.chapters.ListActive()
}

func (s *chapterService) ListForIdentity(id *access.Identity) ([]ChapterSummary, error) {
	var chapters []model.Chapter
	switch {
	case id == nil:
		return nil, nil
	case id.Role == access.RoleSuperAdmin:
		all, err := s.chapters.ListActive()
		if err != nil {
			return nil, err
		}
		chapters = all
	case id.ChapterID != nil:
		chapter, err := s.chapters.GetActive(*id.ChapterID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// assigned chapter was deactivated: the scope is simply empty
				return []ChapterSummary{}, nil
			}
			return nil, err
		}
		chapters = []model.Chapter{*chapter}
	default:
		return []ChapterSummary{}, nil
	}

	summaries := make([]ChapterSummary, 0, len(chapters))
	for _, chapter := range chapters {
		count, err := s.slides.CountActiveByChapter(chapter.ID)
		if err != nil {
			return nil, err
		}
		slideViews, err := s.slides.SumViewsByChapter(chapter.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ChapterSummary{
			Chapter:    chapter,
			SlideCount: count,
			TotalViews: chapter.ViewCount + slideViews,
		})
	}
	return summaries, nil
}

func (s *chapterService) Get(id uint) (*model.Chapter, error) {
	chapter, err := s.chapters.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return chapter, nil
}

func (s *chapterService) GetActive(id uint) (*model.Chapter, error) {
	chapter, err := s.chapters.GetActive(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return chapter, nil
}

func (s *chapterService) Create(req CreateChapterRequest) (*model.Chapter, error) {
	chapter := &model.Chapter{
		TitleEN:        req.TitleEN,
		TitleCKB:       req.TitleCKB,
		DescriptionEN:  req.DescriptionEN,
		DescriptionCKB: req.DescriptionCKB,
		Icon:           req.Icon,
		IsActive:       true,
	}
	if chapter.Icon == "" {
		chapter.Icon = "fas fa-book"
	}
	if err := s.chapters.Create(chapter); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}
	return chapter, nil
}

func (s *chapterService) Update(id uint, req UpdateChapterRequest, allowReorder bool) (*model.Chapter, error) {
	chapter, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	chapter.TitleEN = req.TitleEN
	chapter.TitleCKB = req.TitleCKB
	chapter.DescriptionEN = req.DescriptionEN
	chapter.DescriptionCKB = req.DescriptionCKB
	if req.Icon != "" {
		chapter.Icon = req.Icon
	}
	if err := s.chapters.Save(chapter); err != nil {
		return nil, fmt.Errorf("failed to update chapter: %w", err)
	}

	if allowReorder && req.Order != nil && *req.Order != chapter.Order {
		if err := s.Reorder(id, *req.Order); err != nil {
			return nil, err
		}
		return s.Get(id)
	}
	return chapter, nil
}

func (s *chapterService) Deactivate(id uint) error {
	if err := s.chapters.Deactivate(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChapterNotFound
		}
		return fmt.Errorf("failed to deactivate chapter: %w", err)
	}
	return nil
}

func (s *chapterService) Reorder(id uint, newOrder int) error {
	if err := s.chapters.Reorder(id, newOrder); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChapterNotFound
		}
		return fmt.Errorf("failed to reorder chapter: %w", err)
	}
	return nil
}
