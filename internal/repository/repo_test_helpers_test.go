package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/bioguide/backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedChapters(t *testing.T, repo ChapterRepository, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		c := &model.Chapter{
			TitleEN:  "Chapter",
			TitleCKB: "بابەت",
			IsActive: true,
		}
		if err := repo.Create(c); err != nil {
			t.Fatalf("create chapter error: %v", err)
		}
		ids = append(ids, c.ID)
	}
	return ids
}

func activeOrders(t *testing.T, repo ChapterRepository) map[uint]int {
	t.Helper()
	chapters, err := repo.ListActive()
	if err != nil {
		t.Fatalf("list chapters error: %v", err)
	}
	orders := make(map[uint]int, len(chapters))
	for _, c := range chapters {
		orders[c.ID] = c.Order
	}
	return orders
}

func assertDistinctOrders(t *testing.T, orders map[uint]int) {
	t.Helper()
	seen := make(map[int]uint, len(orders))
	for id, o := range orders {
		if other, dup := seen[o]; dup {
			t.Fatalf("duplicate order %d shared by chapters %d and %d", o, id, other)
		}
		seen[o] = id
	}
}
