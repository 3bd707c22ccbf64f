package repository

import (
	"testing"

	"github.com/bioguide/backend/internal/model"
)

func TestStatsUpsertIsIdempotentPerDate(t *testing.T) {
	repo := NewStatsRepository(newTestDB(t))

	first := &model.SystemStats{Date: "2026-08-29", ChapterViews: 10, SlideViews: 5, TotalViews: 15, ActiveUsers: 2}
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("upsert error: %v", err)
	}

	second := &model.SystemStats{Date: "2026-08-29", ChapterViews: 12, SlideViews: 6, TotalViews: 18, ActiveUsers: 3}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("upsert error: %v", err)
	}

	row, err := repo.GetByDate("2026-08-29")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	// overwritten, not accumulated
	if row.TotalViews != 18 || row.ActiveUsers != 3 {
		t.Fatalf("expected overwrite, got %+v", row)
	}

	if _, err := repo.GetByDate("2026-08-30"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsResetCounters(t *testing.T) {
	db := newTestDB(t)
	chapters := NewChapterRepository(db)
	slides := NewSlideRepository(db)
	stats := NewStatsRepository(db)

	chID := seedChapters(t, chapters, 1)[0]
	s := &model.Slide{ChapterID: chID, TitleEN: "S", TitleCKB: "س", IsActive: true}
	if err := slides.Create(s); err != nil {
		t.Fatalf("create slide error: %v", err)
	}
	if err := chapters.IncrementViews(chID); err != nil {
		t.Fatalf("increment error: %v", err)
	}
	if err := slides.IncrementViews(s.ID); err != nil {
		t.Fatalf("increment error: %v", err)
	}

	if err := stats.ResetCounters(); err != nil {
		t.Fatalf("reset error: %v", err)
	}

	chSum, _ := chapters.SumViews()
	slSum, _ := slides.SumViews()
	if chSum != 0 || slSum != 0 {
		t.Fatalf("expected zeroed counters, got chapters=%d slides=%d", chSum, slSum)
	}
}
