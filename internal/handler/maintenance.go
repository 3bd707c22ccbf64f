package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/middleware"
	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/pkg/i18n"
	"github.com/bioguide/backend/internal/service"
)

const activityRetentionDays = 30

// MaintenanceHandler covers the dashboard, export and the super-admin
// maintenance actions.
type MaintenanceHandler struct {
	stats      service.StatsService
	activities service.ActivityService
}

func NewMaintenanceHandler(stats service.StatsService, activities service.ActivityService) *MaintenanceHandler {
	return &MaintenanceHandler{stats: stats, activities: activities}
}

// Dashboard returns the caller-scoped aggregates plus a recent activity feed.
func (h *MaintenanceHandler) Dashboard(c *gin.Context) {
	if !authorize(c, access.CapChapterAdmin, nil) {
		return
	}
	identity := middleware.CurrentIdentity(c)

	stats, err := h.stats.Dashboard(identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}
	recent, err := h.activities.RecentFor(identity, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "recent_activities": recent})
}

// Export returns the caller's accessible chapters with slides as JSON.
func (h *MaintenanceHandler) Export(c *gin.Context) {
	if !authorize(c, access.CapChapterAdmin, nil) {
		return
	}
	me := middleware.CurrentUser(c)

	payload, err := h.stats.Export(middleware.CurrentIdentity(c), me.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}

	record(c, h.activities, "export", model.TargetData, 0, "Exported system data")
	c.JSON(http.StatusOK, payload)
}

// PurgeActivities drops audit rows past the retention window.
func (h *MaintenanceHandler) PurgeActivities(c *gin.Context) {
	if !authorize(c, access.CapGlobalAdmin, nil) {
		return
	}

	removed, err := h.activities.Purge(activityRetentionDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}

	record(c, h.activities, "maintenance", model.TargetSystem, 0,
		"Cleared "+strconv.FormatInt(removed, 10)+" old activity logs")
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ResetViews zeroes every view counter. Irreversible.
func (h *MaintenanceHandler) ResetViews(c *gin.Context) {
	if !authorize(c, access.CapGlobalAdmin, nil) {
		return
	}

	if err := h.stats.ResetAllCounters(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}

	record(c, h.activities, "maintenance", model.TargetSystem, 0, "Reset all view counts")
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_updated")})
}

// Rollup recomputes and stores today's totals.
func (h *MaintenanceHandler) Rollup(c *gin.Context) {
	if !authorize(c, access.CapGlobalAdmin, nil) {
		return
	}

	row, err := h.stats.RollupDaily()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}

	record(c, h.activities, "maintenance", model.TargetSystem, 0, "Updated daily statistics")
	c.JSON(http.StatusOK, row)
}
