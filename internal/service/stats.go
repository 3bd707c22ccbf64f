package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/repository"
)

// DashboardStats is the aggregate payload for the admin dashboard, scoped to
// the caller's accessible chapters.
type DashboardStats struct {
	TotalChapters      int64 `json:"total_chapters"`
	TotalSlides        int64 `json:"total_slides"`
	TotalUsers         int64 `json:"total_users"`
	TotalViews         int64 `json:"total_views"`
	ActivityPercentage int64 `json:"activity_percentage"`
}

type ExportChapter struct {
	model.Chapter
	ExportSlides []model.Slide `json:"slides"`
}

type ExportPayload struct {
	ExportDate time.Time       `json:"export_date"`
	ExportedBy string          `json:"exported_by"`
	Chapters   []ExportChapter `json:"chapters"`
}

type StatsService interface {
	// RecordView bumps the view counter of a chapter or slide by exactly one,
	// using a relative update so concurrent readers never lose increments.
	RecordView(targetKind string, targetID uint) error
	// RollupDaily recomputes today's totals and upserts the row for the
	// current date. Safe to re-run.
	RollupDaily() (*model.SystemStats, error)
	// ResetAllCounters zeroes every view counter. Global-admin only,
	// enforced by the caller.
	ResetAllCounters() error
	Dashboard(id *access.Identity) (*DashboardStats, error)
	Export(id *access.Identity, exportedBy string) (*ExportPayload, error)
}

type statsService struct {
	chapters   repository.ChapterRepository
	slides     repository.SlideRepository
	users      repository.UserRepository
	stats      repository.StatsRepository
	activities ActivityService
}

func NewStatsService(
	chapters repository.ChapterRepository,
	slides repository.SlideRepository,
	users repository.UserRepository,
	stats repository.StatsRepository,
	activities ActivityService,
) StatsService {
	return &statsService{
		chapters:   chapters,
		slides:     slides,
		users:      users,
		stats:      stats,
		activities: activities,
	}
}

func (s *statsService) RecordView(targetKind string, targetID uint) error {
	var err error
	switch targetKind {
	case model.TargetChapter:
		err = s.chapters.IncrementViews(targetID)
	case model.TargetSlide:
		err = s.slides.IncrementViews(targetID)
	default:
		return fmt.Errorf("unknown view target kind %q", targetKind)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

func (s *statsService) RollupDaily() (*model.SystemStats, error) {
	chapterViews, err := s.chapters.SumViews()
	if err != nil {
		return nil, fmt.Errorf("failed to sum chapter views: %w", err)
	}
	slideViews, err := s.slides.SumViews()
	if err != nil {
		return nil, fmt.Errorf("failed to sum slide views: %w", err)
	}
	activeUsers, err := s.users.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	row := &model.SystemStats{
		Date:         time.Now().UTC().Format("2006-01-02"),
		ChapterViews: chapterViews,
		SlideViews:   slideViews,
		TotalViews:   chapterViews + slideViews,
		ActiveUsers:  activeUsers,
	}
	if err := s.stats.Upsert(row); err != nil {
		return nil, fmt.Errorf("failed to upsert daily stats: %w", err)
	}
	return s.stats.GetByDate(row.Date)
}

func (s *statsService) ResetAllCounters() error {
	if err := s.stats.ResetCounters(); err != nil {
		return fmt.Errorf("failed to reset view counters: %w", err)
	}
	return nil
}

func (s *statsService) Dashboard(id *access.Identity) (*DashboardStats, error) {
	stats := &DashboardStats{}

	switch {
	case id != nil && id.Role == access.RoleSuperAdmin:
		var err error
		if stats.TotalChapters, err = s.chapters.CountActive(); err != nil {
			return nil, err
		}
		if stats.TotalSlides, err = s.slides.CountActive(); err != nil {
			return nil, err
		}
		if stats.TotalUsers, err = s.users.CountActive(); err != nil {
			return nil, err
		}
		chapterViews, err := s.chapters.SumViews()
		if err != nil {
			return nil, err
		}
		slideViews, err := s.slides.SumViews()
		if err != nil {
			return nil, err
		}
		stats.TotalViews = chapterViews + slideViews
	case id != nil && id.ChapterID != nil:
		chapter, err := s.chapters.GetActive(*id.ChapterID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			// deactivated scope: everything stays zero
		} else {
			stats.TotalChapters = 1
			if stats.TotalSlides, err = s.slides.CountActiveByChapter(chapter.ID); err != nil {
				return nil, err
			}
			slideViews, err := s.slides.SumViewsByChapter(chapter.ID)
			if err != nil {
				return nil, err
			}
			stats.TotalViews = chapter.ViewCount + slideViews
		}
		stats.TotalUsers = 1
	default:
		// chapter admin with no assigned scope: content counters stay zero
	}

	recent, err := s.activities.CountToday()
	if err != nil {
		return nil, err
	}
	stats.ActivityPercentage = min64(85+2*recent, 100)
	return stats, nil
}

func (s *statsService) Export(id *access.Identity, exportedBy string) (*ExportPayload, error) {
	summaries, err := chapterScopeFor(id, s.chapters)
	if err != nil {
		return nil, err
	}

	payload := &ExportPayload{
		ExportDate: time.Now().UTC(),
		ExportedBy: exportedBy,
		Chapters:   make([]ExportChapter, 0, len(summaries)),
	}
	for _, chapter := range summaries {
		slides, err := s.slides.ListActiveByChapter(chapter.ID)
		if err != nil {
			return nil, err
		}
		payload.Chapters = append(payload.Chapters, ExportChapter{Chapter: chapter, ExportSlides: slides})
	}
	return payload, nil
}

// chapterScopeFor resolves the set of chapters an identity may read.
func chapterScopeFor(id *access.Identity, chapters repository.ChapterRepository) ([]model.Chapter, error) {
	switch {
	case id == nil:
		return nil, nil
	case id.Role == access.RoleSuperAdmin:
		return chapters.ListActive()
	case id.ChapterID != nil:
		chapter, err := chapters.GetActive(*id.ChapterID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []model.Chapter{}, nil
			}
			return nil, err
		}
		return []model.Chapter{*chapter}, nil
	default:
		return []model.Chapter{}, nil
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
