package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioguide/backend/internal/access"
)

func TestListForIdentityScoping(t *testing.T) {
	env := newTestEnv(t)
	svc := NewChapterService(env.chapters, env.slides)

	chA := env.addChapter(t, "Histology")
	env.addChapter(t, "Embryology")
	env.addSlide(t, chA.ID, "Tissue")

	super := &access.Identity{UserID: 1, Role: access.RoleSuperAdmin}
	all, err := svc.ListForIdentity(super)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped := &access.Identity{UserID: 2, Role: access.RoleChapterAdmin, ChapterID: &chA.ID}
	mine, err := svc.ListForIdentity(scoped)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, chA.ID, mine[0].Chapter.ID)
	assert.Equal(t, int64(1), mine[0].SlideCount)

	unassigned := &access.Identity{UserID: 3, Role: access.RoleChapterAdmin}
	none, err := svc.ListForIdentity(unassigned)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListForIdentityDeactivatedScope(t *testing.T) {
	env := newTestEnv(t)
	svc := NewChapterService(env.chapters, env.slides)

	ch := env.addChapter(t, "Histology")
	require.NoError(t, env.chapters.Deactivate(ch.ID))

	scoped := &access.Identity{UserID: 2, Role: access.RoleChapterAdmin, ChapterID: &ch.ID}
	none, err := svc.ListForIdentity(scoped)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateHonorsOrderOnlyWhenAllowed(t *testing.T) {
	env := newTestEnv(t)
	svc := NewChapterService(env.chapters, env.slides)

	env.addChapter(t, "A")
	chB := env.addChapter(t, "B")
	env.addChapter(t, "C")

	target := 1
	req := UpdateChapterRequest{TitleEN: "B", TitleCKB: "B", Order: &target}

	// chapter-admins cannot move chapters
	updated, err := svc.Update(chB.ID, req, false)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Order)

	updated, err = svc.Update(chB.ID, req, true)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Order)
}

func TestDeactivateUnknownChapter(t *testing.T) {
	env := newTestEnv(t)
	svc := NewChapterService(env.chapters, env.slides)
	assert.ErrorIs(t, svc.Deactivate(42), ErrChapterNotFound)
}
