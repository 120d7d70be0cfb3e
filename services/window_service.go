package services

import (
	"document-review-api/models"
	"time"
)

// ReviewWindowState is the admission state of an event's review window.
type ReviewWindowState string

const (
	ReviewWindowNotStarted ReviewWindowState = "not_started"
	ReviewWindowActive     ReviewWindowState = "active"
	ReviewWindowEnded      ReviewWindowState = "ended"
)

// CheckUploadWindow reports whether uploading into the event is allowed at
// the given instant. A nil event (unscoped upload) or an unset deadline
// imposes no restriction. Evaluated fresh on every request; a passed deadline
// is detected lazily here, never by a scheduled transition.
func CheckUploadWindow(event *models.ReviewEvent, now time.Time) bool {
	if event == nil || event.UploadDeadline == nil {
		return true
	}
	return !now.After(*event.UploadDeadline)
}

// CheckReviewWindow classifies the instant against the event's review window.
// Unset bounds leave that end of the interval open; a nil event is always
// active. Only the active state permits review writes; the other two states
// still allow read-only viewing.
func CheckReviewWindow(event *models.ReviewEvent, now time.Time) ReviewWindowState {
	if event == nil {
		return ReviewWindowActive
	}
	if event.StartTime != nil && now.Before(*event.StartTime) {
		return ReviewWindowNotStarted
	}
	if event.EndTime != nil && now.After(*event.EndTime) {
		return ReviewWindowEnded
	}
	return ReviewWindowActive
}
