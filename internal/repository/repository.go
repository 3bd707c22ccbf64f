package repository

import (
	"errors"
	"time"

	"github.com/bioguide/backend/internal/model"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetActiveByUsername(username string) (*model.User, error)
	UsernameExists(username string, excludeID uint) (bool, error)
	EmailExists(email string, excludeID uint) (bool, error)
	ListActive() ([]model.User, error)
	Save(user *model.User) error
	CountActive() (int64, error)
	TouchLastLogin(id uint, at time.Time) error
}

type ChapterRepository interface {
	// Create assigns the next rank in the active set before inserting.
	Create(chapter *model.Chapter) error
	GetByID(id uint) (*model.Chapter, error)
	GetActive(id uint) (*model.Chapter, error)
	ListActive() ([]model.Chapter, error)
	Save(chapter *model.Chapter) error
	// Reorder moves a chapter to newOrder, shifting the active siblings in
	// between. Runs as one transaction.
	Reorder(id uint, newOrder int) error
	// Deactivate soft-deletes the chapter and all of its slides.
	Deactivate(id uint) error
	IncrementViews(id uint) error
	SumViews() (int64, error)
	CountActive() (int64, error)
}

type SlideRepository interface {
	Create(slide *model.Slide) error
	GetByID(id uint) (*model.Slide, error)
	GetActive(id uint) (*model.Slide, error)
	ListActiveByChapter(chapterID uint) ([]model.Slide, error)
	Save(slide *model.Slide) error
	Reorder(id uint, newOrder int) error
	Deactivate(id uint) error
	IncrementViews(id uint) error
	SumViews() (int64, error)
	SumViewsByChapter(chapterID uint) (int64, error)
	CountActive() (int64, error)
	CountActiveByChapter(chapterID uint) (int64, error)
}

type ActivityRepository interface {
	Create(activity *model.Activity) error
	Recent(limit int) ([]model.Activity, error)
	RecentByUser(userID uint, limit int) ([]model.Activity, error)
	CountByUser(userID uint) (int64, error)
	CountSince(since time.Time) (int64, error)
	Purge(before time.Time) (int64, error)
}

type StatsRepository interface {
	// Upsert writes the rollup row for stats.Date, overwriting an existing
	// row for the same date.
	Upsert(stats *model.SystemStats) error
	GetByDate(date string) (*model.SystemStats, error)
	// ResetCounters zeroes every chapter and slide view counter in one
	// transaction.
	ResetCounters() error
}
