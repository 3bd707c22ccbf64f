package service

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/model"
)

type failingActivityRepo struct{}

func (f *failingActivityRepo) Create(*model.Activity) error { return errors.New("disk full") }
func (f *failingActivityRepo) Recent(int) ([]model.Activity, error) {
	return nil, nil
}
func (f *failingActivityRepo) RecentByUser(uint, int) ([]model.Activity, error) {
	return nil, nil
}
func (f *failingActivityRepo) CountByUser(uint) (int64, error)     { return 0, nil }
func (f *failingActivityRepo) CountSince(time.Time) (int64, error) { return 0, nil }
func (f *failingActivityRepo) Purge(time.Time) (int64, error)      { return 0, nil }

func TestRecordSwallowsWriteFailures(t *testing.T) {
	svc := NewActivityService(&failingActivityRepo{})
	// must not panic or surface the error
	svc.Record(1, "edit", model.TargetChapter, 2, "updated chapter", RequestOrigin{})
}

func TestRecordTruncatesUserAgent(t *testing.T) {
	env := newTestEnv(t)
	svc := NewActivityService(env.activities)

	svc.Record(1, "login", model.TargetUser, 1, "logged in", RequestOrigin{
		IP:        "10.0.0.1",
		UserAgent: strings.Repeat("x", 900),
	})

	rows, err := env.activities.Recent(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].UserAgent, 500)
	assert.Equal(t, "10.0.0.1", rows[0].IPAddress)
}

func TestRecordTruncationKeepsRunesIntact(t *testing.T) {
	env := newTestEnv(t)
	svc := NewActivityService(env.activities)

	// "€" is three bytes and straddles the 500-byte cap
	svc.Record(1, "login", model.TargetUser, 1, "logged in", RequestOrigin{
		UserAgent: strings.Repeat("x", 499) + strings.Repeat("€", 10),
	})

	rows, err := env.activities.Recent(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, utf8.ValidString(rows[0].UserAgent))
	assert.LessOrEqual(t, len(rows[0].UserAgent), 500)
	assert.Equal(t, strings.Repeat("x", 499), rows[0].UserAgent)
}

func TestRecentForScopesByRole(t *testing.T) {
	env := newTestEnv(t)
	svc := NewActivityService(env.activities)

	svc.Record(1, "edit", model.TargetChapter, 1, "", RequestOrigin{})
	svc.Record(2, "edit", model.TargetSlide, 1, "", RequestOrigin{})

	super := &access.Identity{UserID: 1, Role: access.RoleSuperAdmin}
	all, err := svc.RecentFor(super, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped := &access.Identity{UserID: 2, Role: access.RoleChapterAdmin}
	mine, err := svc.RecentFor(scoped, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint(2), mine[0].UserID)
}

func TestPurgeRemovesOldRows(t *testing.T) {
	env := newTestEnv(t)
	svc := NewActivityService(env.activities)

	svc.Record(1, "login", model.TargetUser, 1, "", RequestOrigin{})
	old := &model.Activity{UserID: 1, Action: "edit", TargetType: model.TargetChapter}
	require.NoError(t, env.activities.Create(old))
	require.NoError(t, env.db.Model(old).
		UpdateColumn("created_at", time.Now().UTC().AddDate(0, 0, -45)).Error)

	removed, err := svc.Purge(30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
