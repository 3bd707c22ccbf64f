package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/model"
)

func newStatsService(env *testEnv) StatsService {
	return NewStatsService(env.chapters, env.slides, env.users, env.stats, NewActivityService(env.activities))
}

func TestRollupDailyIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := newStatsService(env)

	ch := env.addChapter(t, "Histology")
	sl := env.addSlide(t, ch.ID, "Epithelium")
	env.addUser(t, "admin", "super_admin", nil)

	require.NoError(t, svc.RecordView(model.TargetChapter, ch.ID))
	require.NoError(t, svc.RecordView(model.TargetChapter, ch.ID))
	require.NoError(t, svc.RecordView(model.TargetSlide, sl.ID))

	first, err := svc.RollupDaily()
	require.NoError(t, err)
	second, err := svc.RollupDaily()
	require.NoError(t, err)

	// re-running overwrites, never doubles
	assert.Equal(t, int64(2), second.ChapterViews)
	assert.Equal(t, int64(1), second.SlideViews)
	assert.Equal(t, int64(3), second.TotalViews)
	assert.Equal(t, int64(1), second.ActiveUsers)
	assert.Equal(t, first.Date, second.Date)
	assert.Equal(t, first.ID, second.ID)
}

func TestRecordViewUnknownKind(t *testing.T) {
	env := newTestEnv(t)
	svc := newStatsService(env)
	assert.Error(t, svc.RecordView("page", 1))
}

func TestResetAllCounters(t *testing.T) {
	env := newTestEnv(t)
	svc := newStatsService(env)

	ch := env.addChapter(t, "Histology")
	sl := env.addSlide(t, ch.ID, "Epithelium")
	require.NoError(t, svc.RecordView(model.TargetChapter, ch.ID))
	require.NoError(t, svc.RecordView(model.TargetSlide, sl.ID))

	require.NoError(t, svc.ResetAllCounters())

	chSum, err := env.chapters.SumViews()
	require.NoError(t, err)
	slSum, err := env.slides.SumViews()
	require.NoError(t, err)
	assert.Zero(t, chSum)
	assert.Zero(t, slSum)
}

func TestDashboardScoping(t *testing.T) {
	env := newTestEnv(t)
	svc := newStatsService(env)

	chA := env.addChapter(t, "Histology")
	chB := env.addChapter(t, "Embryology")
	slA := env.addSlide(t, chA.ID, "Tissue")
	env.addSlide(t, chB.ID, "Zygote")
	env.addUser(t, "admin", "super_admin", nil)
	env.addUser(t, "histology_admin", "chapter_admin", &chA.ID)

	require.NoError(t, svc.RecordView(model.TargetChapter, chA.ID))
	require.NoError(t, svc.RecordView(model.TargetSlide, slA.ID))
	require.NoError(t, svc.RecordView(model.TargetChapter, chB.ID))

	super := &access.Identity{UserID: 1, Role: access.RoleSuperAdmin}
	global, err := svc.Dashboard(super)
	require.NoError(t, err)
	assert.Equal(t, int64(2), global.TotalChapters)
	assert.Equal(t, int64(2), global.TotalSlides)
	assert.Equal(t, int64(2), global.TotalUsers)
	assert.Equal(t, int64(3), global.TotalViews)

	scoped := &access.Identity{UserID: 2, Role: access.RoleChapterAdmin, ChapterID: &chA.ID}
	mine, err := svc.Dashboard(scoped)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.TotalChapters)
	assert.Equal(t, int64(1), mine.TotalSlides)
	assert.Equal(t, int64(1), mine.TotalUsers)
	assert.Equal(t, int64(2), mine.TotalViews)
}

func TestDashboardEmptyScope(t *testing.T) {
	env := newTestEnv(t)
	svc := newStatsService(env)

	ch := env.addChapter(t, "Histology")
	require.NoError(t, env.chapters.Deactivate(ch.ID))

	// assignment to a deactivated chapter yields an empty, not erroring, scope
	scoped := &access.Identity{UserID: 2, Role: access.RoleChapterAdmin, ChapterID: &ch.ID}
	stats, err := svc.Dashboard(scoped)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalChapters)
	assert.Zero(t, stats.TotalViews)
}

func TestDashboardUnassignedAdminGetsActivityGauge(t *testing.T) {
	env := newTestEnv(t)
	svc := newStatsService(env)
	activities := NewActivityService(env.activities)

	activities.Record(2, "login", model.TargetUser, 2, "logged in", RequestOrigin{})
	activities.Record(2, "edit", model.TargetSlide, 1, "", RequestOrigin{})

	// chapter admin with no chapter assignment: counters zero, gauge still live
	scoped := &access.Identity{UserID: 2, Role: access.RoleChapterAdmin}
	stats, err := svc.Dashboard(scoped)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalChapters)
	assert.Zero(t, stats.TotalSlides)
	assert.Equal(t, int64(89), stats.ActivityPercentage)
}

func TestExportScoping(t *testing.T) {
	env := newTestEnv(t)
	svc := newStatsService(env)

	chA := env.addChapter(t, "Histology")
	chB := env.addChapter(t, "Embryology")
	env.addSlide(t, chA.ID, "Tissue")
	env.addSlide(t, chA.ID, "Cells")
	env.addSlide(t, chB.ID, "Zygote")

	super := &access.Identity{UserID: 1, Role: access.RoleSuperAdmin}
	all, err := svc.Export(super, "admin")
	require.NoError(t, err)
	assert.Len(t, all.Chapters, 2)
	assert.Equal(t, "admin", all.ExportedBy)

	scoped := &access.Identity{UserID: 2, Role: access.RoleChapterAdmin, ChapterID: &chA.ID}
	mine, err := svc.Export(scoped, "histology_admin")
	require.NoError(t, err)
	require.Len(t, mine.Chapters, 1)
	assert.Len(t, mine.Chapters[0].ExportSlides, 2)
}
