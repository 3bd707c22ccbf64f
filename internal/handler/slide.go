package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/pkg/i18n"
	"github.com/bioguide/backend/internal/pkg/imagestore"
	"github.com/bioguide/backend/internal/service"
)

type SlideHandler struct {
	slides     service.SlideService
	activities service.ActivityService
	images     *imagestore.Store
}

func NewSlideHandler(slides service.SlideService, activities service.ActivityService, images *imagestore.Store) *SlideHandler {
	return &SlideHandler{slides: slides, activities: activities, images: images}
}

// Create adds a slide to a chapter the caller manages.
func (h *SlideHandler) Create(c *gin.Context) {
	var req service.CreateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !authorize(c, access.CapChapterAdmin, &req.ChapterID) {
		return
	}

	slide, err := h.slides.Create(req)
	if err != nil {
		writeSlideError(c, err)
		return
	}

	record(c, h.activities, "create", model.TargetSlide, slide.ID, "Added slide: "+slide.TitleEN)
	c.JSON(http.StatusCreated, gin.H{"message": i18n.T(lang(c), "success_added"), "slide": slide})
}

func (h *SlideHandler) Update(c *gin.Context) {
	slide, ok := h.loadScoped(c)
	if !ok {
		return
	}

	var req service.UpdateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.slides.Update(slide.ID, req)
	if err != nil {
		writeSlideError(c, err)
		return
	}

	record(c, h.activities, "edit", model.TargetSlide, updated.ID, "Updated slide: "+updated.TitleEN)
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_updated"), "slide": updated})
}

func (h *SlideHandler) Delete(c *gin.Context) {
	slide, ok := h.loadScoped(c)
	if !ok {
		return
	}

	if err := h.slides.Deactivate(slide.ID); err != nil {
		writeSlideError(c, err)
		return
	}

	record(c, h.activities, "delete", model.TargetSlide, slide.ID, "Deleted slide: "+slide.TitleEN)
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_deleted")})
}

// Reorder moves a slide within its chapter's ranking.
func (h *SlideHandler) Reorder(c *gin.Context) {
	slide, ok := h.loadScoped(c)
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.slides.Reorder(slide.ID, req.NewOrder); err != nil {
		writeSlideError(c, err)
		return
	}

	record(c, h.activities, "reorder", model.TargetSlide, slide.ID,
		"Reordered slide to position "+strconv.Itoa(req.NewOrder))
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_updated")})
}

// UploadImage stores a slide image and records the reference; the stored file
// takes precedence over any external URL on the slide.
func (h *SlideHandler) UploadImage(c *gin.Context) {
	slide, ok := h.loadScoped(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer src.Close()

	name, err := h.images.Save(file.Filename, src)
	if err != nil {
		if errors.Is(err, imagestore.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}

	updated, err := h.slides.SetImageFile(slide.ID, name)
	if err != nil {
		h.images.Remove(name)
		writeSlideError(c, err)
		return
	}

	record(c, h.activities, "edit", model.TargetSlide, updated.ID, "Uploaded image for slide: "+updated.TitleEN)
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_updated"), "slide": updated})
}

// loadScoped fetches the slide from the URL and checks the caller against the
// owning chapter. Writes the response on failure.
func (h *SlideHandler) loadScoped(c *gin.Context) (*model.Slide, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slide id"})
		return nil, false
	}
	slide, err := h.slides.Get(uint(id))
	if err != nil {
		writeSlideError(c, err)
		return nil, false
	}
	if !authorize(c, access.CapChapterAdmin, &slide.ChapterID) {
		return nil, false
	}
	return slide, true
}

func writeSlideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlideNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "slide not found"})
	case errors.Is(err, service.ErrChapterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
	}
}
