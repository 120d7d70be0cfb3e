package services

import (
	"document-review-api/config"
	"document-review-api/models"
	"fmt"
)

// Event visibility follows a whitelist-or-open rule per role: zero whitelist
// rows for an event means every user of that role sees it, one or more rows
// restrict it to the listed users. Admins bypass the resolver entirely.

// CanSeeEvent decides whether the user may see the given event.
func CanSeeEvent(user models.User, event *models.ReviewEvent) (bool, error) {
	if event == nil {
		return true, nil
	}
	if user.Role.IsAdmin() {
		return true, nil
	}
	if !event.IsActive {
		return false, nil
	}

	var total, mine int64
	switch user.Role {
	case models.RoleTeacher:
		if err := config.DB.Model(&models.EventTeacher{}).
			Where("event_id = ?", event.EventID).Count(&total).Error; err != nil {
			return false, fmt.Errorf("failed to count event teachers: %w", err)
		}
		if total == 0 {
			return true, nil
		}
		if err := config.DB.Model(&models.EventTeacher{}).
			Where("event_id = ? AND teacher_id = ?", event.EventID, user.UserID).
			Count(&mine).Error; err != nil {
			return false, fmt.Errorf("failed to check event teacher whitelist: %w", err)
		}
	case models.RoleReviewer:
		if err := config.DB.Model(&models.EventReviewer{}).
			Where("event_id = ?", event.EventID).Count(&total).Error; err != nil {
			return false, fmt.Errorf("failed to count event reviewers: %w", err)
		}
		if total == 0 {
			return true, nil
		}
		if err := config.DB.Model(&models.EventReviewer{}).
			Where("event_id = ? AND reviewer_id = ?", event.EventID, user.UserID).
			Count(&mine).Error; err != nil {
			return false, fmt.Errorf("failed to check event reviewer whitelist: %w", err)
		}
	default:
		return false, nil
	}
	return mine > 0, nil
}

// ResolveVisibleEvents lists the events the user may see, newest first.
// Admins get every event including inactive ones; other roles get active
// events filtered through their role's whitelist.
func ResolveVisibleEvents(user models.User) ([]models.ReviewEvent, error) {
	var events []models.ReviewEvent
	query := config.DB.Order("event_id DESC")
	if !user.Role.IsAdmin() {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if user.Role.IsAdmin() {
		return events, nil
	}

	listed, err := whitelistedEventIDs(user)
	if err != nil {
		return nil, err
	}
	restricted, err := restrictedEventIDs(user.Role)
	if err != nil {
		return nil, err
	}

	visible := make([]models.ReviewEvent, 0, len(events))
	for _, event := range events {
		if !restricted[event.EventID] || listed[event.EventID] {
			visible = append(visible, event)
		}
	}
	return visible, nil
}

// restrictedEventIDs returns the events that have at least one whitelist row
// for the role, i.e. the events in whitelist mode.
func restrictedEventIDs(role models.Role) (map[int]bool, error) {
	var ids []int
	var err error
	switch role {
	case models.RoleTeacher:
		err = config.DB.Model(&models.EventTeacher{}).Distinct("event_id").Pluck("event_id", &ids).Error
	case models.RoleReviewer:
		err = config.DB.Model(&models.EventReviewer{}).Distinct("event_id").Pluck("event_id", &ids).Error
	default:
		return map[int]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load whitelisted events: %w", err)
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// whitelistedEventIDs returns the events that list this specific user.
func whitelistedEventIDs(user models.User) (map[int]bool, error) {
	var ids []int
	var err error
	switch user.Role {
	case models.RoleTeacher:
		err = config.DB.Model(&models.EventTeacher{}).
			Where("teacher_id = ?", user.UserID).Pluck("event_id", &ids).Error
	case models.RoleReviewer:
		err = config.DB.Model(&models.EventReviewer{}).
			Where("reviewer_id = ?", user.UserID).Pluck("event_id", &ids).Error
	default:
		return map[int]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user whitelist rows: %w", err)
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// AssignedTeacherIDs returns the teacher scoping for a reviewer. The second
// result reports whether any assignment exists: zero assignments means the
// reviewer sees documents from every teacher, the same empty-means-all rule
// the event whitelist uses.
func AssignedTeacherIDs(reviewerID int) (map[int]bool, bool, error) {
	var ids []int
	if err := config.DB.Model(&models.ReviewerTeacher{}).
		Where("reviewer_id = ?", reviewerID).Pluck("teacher_id", &ids).Error; err != nil {
		return nil, false, fmt.Errorf("failed to load reviewer assignments: %w", err)
	}
	if len(ids) == 0 {
		return nil, false, nil
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, true, nil
}

// CanReviewerSeeDocument layers the reviewer-teacher scoping on top of event
// visibility for one document.
func CanReviewerSeeDocument(reviewer models.User, doc *models.Document) (bool, error) {
	if doc == nil {
		return false, nil
	}
	if doc.EventID != nil {
		event, err := getEvent(*doc.EventID)
		if err != nil {
			return false, err
		}
		ok, err := CanSeeEvent(reviewer, event)
		if err != nil || !ok {
			return false, err
		}
	}

	assigned, scoped, err := AssignedTeacherIDs(reviewer.UserID)
	if err != nil {
		return false, err
	}
	if !scoped {
		return true, nil
	}
	return assigned[doc.UploaderID], nil
}
