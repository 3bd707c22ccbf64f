package repository

import (
	"testing"
	"time"

	"github.com/bioguide/backend/internal/model"
)

func TestActivityPurge(t *testing.T) {
	db := newTestDB(t)
	repo := NewActivityRepository(db)

	old := &model.Activity{UserID: 1, Action: "login", TargetType: model.TargetUser, TargetID: 1}
	if err := repo.Create(old); err != nil {
		t.Fatalf("create activity error: %v", err)
	}
	// push the row past the retention window
	cutoffAge := time.Now().UTC().Add(-40 * 24 * time.Hour)
	if err := db.Model(old).UpdateColumn("created_at", cutoffAge).Error; err != nil {
		t.Fatalf("backdate error: %v", err)
	}

	fresh := &model.Activity{UserID: 1, Action: "edit", TargetType: model.TargetChapter, TargetID: 2}
	if err := repo.Create(fresh); err != nil {
		t.Fatalf("create activity error: %v", err)
	}

	removed, err := repo.Purge(time.Now().UTC().Add(-30 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("purge error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 purged row, got %d", removed)
	}

	rest, err := repo.Recent(10)
	if err != nil {
		t.Fatalf("recent error: %v", err)
	}
	if len(rest) != 1 || rest[0].Action != "edit" {
		t.Fatalf("expected only the fresh row to survive, got %+v", rest)
	}
}

func TestActivityRecentByUser(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))

	for i := 0; i < 3; i++ {
		if err := repo.Create(&model.Activity{UserID: 1, Action: "edit", TargetType: model.TargetSlide, TargetID: uint(i)}); err != nil {
			t.Fatalf("create activity error: %v", err)
		}
	}
	if err := repo.Create(&model.Activity{UserID: 2, Action: "login", TargetType: model.TargetUser, TargetID: 2}); err != nil {
		t.Fatalf("create activity error: %v", err)
	}

	mine, err := repo.RecentByUser(1, 10)
	if err != nil {
		t.Fatalf("recent error: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(mine))
	}

	count, err := repo.CountByUser(2)
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}
