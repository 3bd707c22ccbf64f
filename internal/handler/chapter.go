package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/middleware"
	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/pkg/i18n"
	"github.com/bioguide/backend/internal/service"
)

type ChapterHandler struct {
	chapters   service.ChapterService
	slides     service.SlideService
	activities service.ActivityService
}

func NewChapterHandler(chapters service.ChapterService, slides service.SlideService, activities service.ActivityService) *ChapterHandler {
	return &ChapterHandler{chapters: chapters, slides: slides, activities: activities}
}

// List returns the chapters the caller may manage, with slide counts.
func (h *ChapterHandler) List(c *gin.Context) {
	if !authorize(c, access.CapChapterAdmin, nil) {
		return
	}
	summaries, err := h.chapters.ListForIdentity(middleware.CurrentIdentity(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Create adds a chapter at the end of the ranking. Global admins only.
func (h *ChapterHandler) Create(c *gin.Context) {
	if !authorize(c, access.CapGlobalAdmin, nil) {
		return
	}

	var req service.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapter, err := h.chapters.Create(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}

	record(c, h.activities, "create", model.TargetChapter, chapter.ID, "Added chapter: "+chapter.TitleEN)
	c.JSON(http.StatusCreated, gin.H{"message": i18n.T(lang(c), "success_added"), "chapter": chapter})
}

// Update edits a chapter. Chapter admins may edit their own chapter's fields;
// only global admins may change the rank.
func (h *ChapterHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	chapter, err := h.chapters.Get(uint(id))
	if err != nil {
		writeChapterError(c, err)
		return
	}
	if !authorize(c, access.CapChapterAdmin, &chapter.ID) {
		return
	}

	var req service.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.CurrentIdentity(c)
	allowReorder := access.Authorize(identity, access.CapGlobalAdmin, nil).Allowed
	updated, err := h.chapters.Update(uint(id), req, allowReorder)
	if err != nil {
		writeChapterError(c, err)
		return
	}

	record(c, h.activities, "edit", model.TargetChapter, updated.ID, "Updated chapter: "+updated.TitleEN)
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_updated"), "chapter": updated})
}

// Delete soft-deletes a chapter and its slides. Global admins only.
func (h *ChapterHandler) Delete(c *gin.Context) {
	if !authorize(c, access.CapGlobalAdmin, nil) {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	chapter, err := h.chapters.Get(uint(id))
	if err != nil {
		writeChapterError(c, err)
		return
	}
	if err := h.chapters.Deactivate(chapter.ID); err != nil {
		writeChapterError(c, err)
		return
	}

	record(c, h.activities, "delete", model.TargetChapter, chapter.ID, "Deleted chapter: "+chapter.TitleEN)
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_deleted")})
}

type reorderRequest struct {
	NewOrder int `json:"new_order" binding:"required"`
}

// Reorder moves a chapter to a new rank. Global admins only.
func (h *ChapterHandler) Reorder(c *gin.Context) {
	if !authorize(c, access.CapGlobalAdmin, nil) {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.chapters.Reorder(uint(id), req.NewOrder); err != nil {
		writeChapterError(c, err)
		return
	}

	record(c, h.activities, "reorder", model.TargetChapter, uint(id),
		"Reordered chapter to position "+strconv.Itoa(req.NewOrder))
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_updated")})
}

// ListSlides returns the active slides of a chapter for management.
func (h *ChapterHandler) ListSlides(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	chapter, err := h.chapters.Get(uint(id))
	if err != nil {
		writeChapterError(c, err)
		return
	}
	if !authorize(c, access.CapChapterAdmin, &chapter.ID) {
		return
	}

	slides, err := h.slides.ListActiveByChapter(chapter.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapter": chapter, "slides": slides})
}

func writeChapterError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrChapterNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
}
