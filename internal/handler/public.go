package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/service"
)

// PublicHandler serves the anonymous study-guide pages as JSON.
type PublicHandler struct {
	chapters   service.ChapterService
	slides     service.SlideService
	stats      service.StatsService
	activities service.ActivityService
}

func NewPublicHandler(
	chapters service.ChapterService,
	slides service.SlideService,
	stats service.StatsService,
	activities service.ActivityService,
) *PublicHandler {
	return &PublicHandler{chapters: chapters, slides: slides, stats: stats, activities: activities}
}

type chapterView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
	ViewCount   int64  `json:"view_count"`
}

type slideView struct {
	ID        uint   `json:"id"`
	ChapterID uint   `json:"chapter_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Image     string `json:"image"`
	Order     int    `json:"order"`
	ViewCount int64  `json:"view_count"`
}

func toChapterView(c *model.Chapter, lang string) chapterView {
	return chapterView{
		ID:          c.ID,
		Title:       c.Title(lang),
		Description: c.Description(lang),
		Icon:        c.Icon,
		Order:       c.Order,
		ViewCount:   c.ViewCount,
	}
}

func toSlideView(s *model.Slide, lang string) slideView {
	return slideView{
		ID:        s.ID,
		ChapterID: s.ChapterID,
		Title:     s.Title(lang),
		Content:   s.Content(lang),
		Image:     s.Image(),
		Order:     s.Order,
		ViewCount: s.ViewCount,
	}
}

// ListChapters returns the active chapters in rank order.
func (h *PublicHandler) ListChapters(c *gin.Context) {
	chapters, err := h.chapters.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list chapters"})
		return
	}

	l := lang(c)
	views := make([]chapterView, 0, len(chapters))
	for i := range chapters {
		views = append(views, toChapterView(&chapters[i], l))
	}
	c.JSON(http.StatusOK, gin.H{"lang": l, "chapters": views})
}

// GetChapter returns one active chapter with its slides and counts the view.
func (h *PublicHandler) GetChapter(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	chapter, err := h.chapters.GetActive(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}
	slides, err := h.slides.ListActiveByChapter(chapter.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list slides"})
		return
	}

	if err := h.stats.RecordView(model.TargetChapter, chapter.ID); err != nil {
		klog.Errorf("failed to count chapter view %d: %v", chapter.ID, err)
	}
	record(c, h.activities, "view", model.TargetChapter, chapter.ID,
		"Viewed chapter: "+chapter.Title(lang(c)))

	l := lang(c)
	slideViews := make([]slideView, 0, len(slides))
	for i := range slides {
		slideViews = append(slideViews, toSlideView(&slides[i], l))
	}
	c.JSON(http.StatusOK, gin.H{
		"lang":    l,
		"chapter": toChapterView(chapter, l),
		"slides":  slideViews,
	})
}

// GetSlide returns one active slide plus its siblings and counts the view.
func (h *PublicHandler) GetSlide(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slide id"})
		return
	}

	slide, err := h.slides.GetActive(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "slide not found"})
		return
	}
	chapter, err := h.chapters.GetActive(slide.ChapterID)
	if err != nil {
		if errors.Is(err, service.ErrChapterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "slide not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chapter"})
		return
	}

	if err := h.stats.RecordView(model.TargetSlide, slide.ID); err != nil {
		klog.Errorf("failed to count slide view %d: %v", slide.ID, err)
	}
	record(c, h.activities, "view", model.TargetSlide, slide.ID,
		"Viewed slide: "+slide.Title(lang(c)))

	siblings, err := h.slides.ListActiveByChapter(chapter.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list slides"})
		return
	}

	l := lang(c)
	others := make([]slideView, 0, len(siblings))
	for i := range siblings {
		if siblings[i].ID == slide.ID {
			continue
		}
		others = append(others, toSlideView(&siblings[i], l))
	}
	c.JSON(http.StatusOK, gin.H{
		"lang":         l,
		"slide":        toSlideView(slide, l),
		"chapter":      toChapterView(chapter, l),
		"other_slides": others,
	})
}
