package service

import (
	"errors"
	"fmt"

	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/repository"
)

var ErrSlideNotFound = errors.New("slide not found")

type CreateSlideRequest struct {
	ChapterID  uint   `json:"chapter_id" binding:"required"`
	TitleEN    string `json:"title_en" binding:"required,min=1,max=200"`
	TitleCKB   string `json:"title_ckb" binding:"required,min=1,max=200"`
	ContentEN  string `json:"content_en"`
	ContentCKB string `json:"content_ckb"`
	ImageURL   string `json:"image_url"`
	Components string `json:"components"`
	Location   string `json:"location"`
	Functions  string `json:"functions"`
}

type UpdateSlideRequest struct {
	TitleEN    string `json:"title_en" binding:"required,min=1,max=200"`
	TitleCKB   string `json:"title_ckb" binding:"required,min=1,max=200"`
	ContentEN  string `json:"content_en"`
	ContentCKB string `json:"content_ckb"`
	ImageURL   string `json:"image_url"`
	Components string `json:"components"`
	Location   string `json:"location"`
	Functions  string `json:"functions"`
	Order      *int   `json:"order"`
}

type SlideService interface {
	Get(id uint) (*model.Slide, error)
	GetActive(id uint) (*model.Slide, error)
	ListActiveByChapter(chapterID uint) ([]model.Slide, error)
	Create(req CreateSlideRequest) (*model.Slide, error)
	Update(id uint, req UpdateSlideRequest) (*model.Slide, error)
	// SetImageFile records an uploaded image reference on the slide. The
	// uploaded reference takes precedence over an external URL at render time.
	SetImageFile(id uint, filename string) (*model.Slide, error)
	Deactivate(id uint) error
	Reorder(id uint, newOrder int) error
}

type slideService struct {
	slides   repository.SlideRepository
	chapters repository.ChapterRepository
}

func NewSlideService(slides repository.SlideRepository, chapters repository.ChapterRepository) SlideService {
	return &slideService{slides: slides, chapters: chapters}
}

func (s *slideService) Get(id uint) (*model.Slide, error) {
	slide, err := s.slides.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlideNotFound
		}
		return nil, fmt.Errorf("failed to get slide: %w", err)
	}
	return slide, nil
}

func (s *slideService) GetActive(id uint) (*model.Slide, error) {
	slide, err := s.slides.GetActive(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlideNotFound
		}
		return nil, fmt.Errorf("failed to get slide: %w", err)
	}
	return slide, nil
}

func (s *slideService) ListActiveByChapter(chapterID uint) ([]model.Slide, error) {
	return s.slides.ListActiveByChapter(chapterID)
}

func (s *slideService) Create(req CreateSlideRequest) (*model.Slide, error) {
	// the owning chapter must exist and be active
	if _, err := s.chapters.GetActive(req.ChapterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}

	slide := &model.Slide{
		ChapterID:  req.ChapterID,
		TitleEN:    req.TitleEN,
		TitleCKB:   req.TitleCKB,
		ContentEN:  req.ContentEN,
		ContentCKB: req.ContentCKB,
		ImageURL:   req.ImageURL,
		Components: req.Components,
		Location:   req.Location,
		Functions:  req.Functions,
		IsActive:   true,
	}
	if err := s.slides.Create(slide); err != nil {
		return nil, fmt.Errorf("failed to create slide: %w", err)
	}
	return slide, nil
}

func (s *slideService) Update(id uint, req UpdateSlideRequest) (*model.Slide, error) {
	slide, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	slide.TitleEN = req.TitleEN
	slide.TitleCKB = req.TitleCKB
	slide.ContentEN = req.ContentEN
	slide.ContentCKB = req.ContentCKB
	slide.ImageURL = req.ImageURL
	slide.Components = req.Components
	slide.Location = req.Location
	slide.Functions = req.Functions
	if err := s.slides.Save(slide); err != nil {
		return nil, fmt.Errorf("failed to update slide: %w", err)
	}

	if req.Order != nil && *req.Order != slide.Order {
		if err := s.Reorder(id, *req.Order); err != nil {
			return nil, err
		}
		return s.Get(id)
	}
	return slide, nil
}

func (s *slideService) SetImageFile(id uint, filename string) (*model.Slide, error) {
	slide, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	slide.ImageFile = filename
	if err := s.slides.Save(slide); err != nil {
		return nil, fmt.Errorf("failed to save slide image: %w", err)
	}
	return slide, nil
}

func (s *slideService) Deactivate(id uint) error {
	if err := s.slides.Deactivate(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSlideNotFound
		}
		return fmt.Errorf("failed to deactivate slide: %w", err)
	}
	return nil
}

func (s *slideService) Reorder(id uint, newOrder int) error {
	if err := s.slides.Reorder(id, newOrder); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSlideNotFound
		}
		return fmt.Errorf("failed to reorder slide: %w", err)
	}
	return nil
}
