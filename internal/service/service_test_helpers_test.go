package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/repository"
)

type testEnv struct {
	db         *gorm.DB
	users      repository.UserRepository
	chapters   repository.ChapterRepository
	slides     repository.SlideRepository
	activities repository.ActivityRepository
	stats      repository.StatsRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Chapter{},
		&model.Slide{},
		&model.Activity{},
		&model.SystemStats{},
	); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return &testEnv{
		db:         db,
		users:      repository.NewUserRepository(db),
		chapters:   repository.NewChapterRepository(db),
		slides:     repository.NewSlideRepository(db),
		activities: repository.NewActivityRepository(db),
		stats:      repository.NewStatsRepository(db),
	}
}

func (e *testEnv) addChapter(t *testing.T, title string) *model.Chapter {
	t.Helper()
	c := &model.Chapter{TitleEN: title, TitleCKB: title, IsActive: true}
	if err := e.chapters.Create(c); err != nil {
		t.Fatalf("create chapter error: %v", err)
	}
	return c
}

func (e *testEnv) addSlide(t *testing.T, chapterID uint, title string) *model.Slide {
	t.Helper()
	s := &model.Slide{ChapterID: chapterID, TitleEN: title, TitleCKB: title, IsActive: true}
	if err := e.slides.Create(s); err != nil {
		t.Fatalf("create slide error: %v", err)
	}
	return s
}

func (e *testEnv) addUser(t *testing.T, username, role string, chapterID *uint) *model.User {
	t.Helper()
	u := &model.User{
		Username:  username,
		Email:     username + "@bioguide.edu",
		Role:      role,
		ChapterID: chapterID,
		IsActive:  true,
	}
	if err := u.SetPassword("secret123"); err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := e.users.Create(u); err != nil {
		t.Fatalf("create user error: %v", err)
	}
	return u
}
