package service

import (
	"time"
	"unicode/utf8"

	"k8s.io/klog/v2"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/repository"
)

const userAgentMaxLen = 500

// RequestOrigin is the caller metadata captured with each activity row.
type RequestOrigin struct {
	IP        string
	UserAgent string
}

type ActivityService interface {
	// Record appends one audit row. Best-effort: failures are logged, never
	// returned, so a logging outage can't abort the mutation it annotates.
	Record(actorID uint, action, targetType string, targetID uint, description string, origin RequestOrigin)
	// RecentFor returns the dashboard feed scoped to the caller: super-admins
	// see everything, chapter-admins only their own rows.
	RecentFor(id *access.Identity, limit int) ([]model.Activity, error)
	CountToday() (int64, error)
	// Purge removes rows older than the given number of days and reports the
	// count removed.
	Purge(olderThanDays int) (int64, error)
}

type activityService struct {
	activities repository.ActivityRepository
}

func NewActivityService(activities repository.ActivityRepository) ActivityService {
	return &activityService{activities: activities}
}

func (s *activityService) Record(actorID uint, action, targetType string, targetID uint, description string, origin RequestOrigin) {
	ua := origin.UserAgent
	if len(ua) > userAgentMaxLen {
		cut := userAgentMaxLen
		for cut > 0 && !utf8.RuneStart(ua[cut]) {
			cut--
		}
		ua = ua[:cut]
	}
	activity := &model.Activity{
		UserID:      actorID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		IPAddress:   origin.IP,
		UserAgent:   ua,
	}
	if err := s.activities.Create(activity); err != nil {
		klog.Errorf("activity log write failed (%s %s/%d): %v", action, targetType, targetID, err)
	}
}

func (s *activityService) RecentFor(id *access.Identity, limit int) ([]model.Activity, error) {
	if id != nil && id.Role == access.RoleSuperAdmin {
		return s.activities.Recent(limit)
	}
	if id == nil {
		return nil, nil
	}
	return s.activities.RecentByUser(id.UserID, limit)
}

func (s *activityService) CountToday() (int64, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.activities.CountSince(midnight)
}

func (s *activityService) Purge(olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	return s.activities.Purge(cutoff)
}
