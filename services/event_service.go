package services

import (
	"document-review-api/config"
	"document-review-api/models"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DeleteConfirmationPhrase is the literal phrase required to confirm a
// destructive event delete. Compared case-sensitively.
const DeleteConfirmationPhrase = "DELETE"

func getEvent(eventID int) (*models.ReviewEvent, error) {
	var event models.ReviewEvent
	if err := config.DB.Where("event_id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("review event %d not found", eventID)
		}
		return nil, fmt.Errorf("failed to load review event: %w", err)
	}
	return &event, nil
}

// GetEvent exposes event lookup to controllers.
func GetEvent(eventID int) (*models.ReviewEvent, error) {
	return getEvent(eventID)
}

// EventInput carries the editable event fields. Window instants arrive
// already converted to UTC by the controller's civil-time boundary.
type EventInput struct {
	Name           string
	Description    string
	StartTime      *time.Time
	EndTime        *time.Time
	UploadDeadline *time.Time
}

// CreateEvent creates an active event bound to a template. The template
// binding is permanent for the event's lifetime.
func CreateEvent(in EventInput, templateID int) (*models.ReviewEvent, error) {
	if in.Name == "" {
		return nil, validationErrorf("event name must not be empty")
	}
	if _, err := getTemplate(templateID); err != nil {
		return nil, err
	}
	if in.StartTime != nil && in.EndTime != nil && in.EndTime.Before(*in.StartTime) {
		return nil, validationErrorf("event end time must not precede its start time")
	}

	var count int64
	if err := config.DB.Model(&models.ReviewEvent{}).
		Where("name = ?", in.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check event name: %w", err)
	}
	if count > 0 {
		return nil, conflictErrorf("a review event named %q already exists", in.Name)
	}

	now := time.Now().UTC()
	event := models.ReviewEvent{
		Name:           in.Name,
		Description:    in.Description,
		TemplateID:     templateID,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		UploadDeadline: in.UploadDeadline,
		IsActive:       true,
		CreateAt:       &now,
		UpdateAt:       &now,
	}
	if err := config.DB.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// UpdateEvent edits name, description and window bounds. The template binding
// is immutable and deliberately absent here.
func UpdateEvent(eventID int, in EventInput) (*models.ReviewEvent, error) {
	event, err := getEvent(eventID)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, validationErrorf("event name must not be empty")
	}
	if in.StartTime != nil && in.EndTime != nil && in.EndTime.Before(*in.StartTime) {
		return nil, validationErrorf("event end time must not precede its start time")
	}

	var count int64
	if err := config.DB.Model(&models.ReviewEvent{}).
		Where("name = ? AND event_id <> ?", in.Name, eventID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check event name: %w", err)
	}
	if count > 0 {
		return nil, conflictErrorf("a review event named %q already exists", in.Name)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"name":            in.Name,
		"description":     in.Description,
		"start_time":      in.StartTime,
		"end_time":        in.EndTime,
		"upload_deadline": in.UploadDeadline,
		"update_at":       now,
	}
	if err := config.DB.Model(&models.ReviewEvent{}).
		Where("event_id = ?", eventID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return getEvent(event.EventID)
}

// SetEventActive toggles the event's active flag.
func SetEventActive(eventID int, active bool) error {
	if _, err := getEvent(eventID); err != nil {
		return err
	}
	now := time.Now().UTC()
	return config.DB.Model(&models.ReviewEvent{}).
		Where("event_id = ?", eventID).
		Updates(map[string]interface{}{"is_active": active, "update_at": now}).Error
}

// DeleteEvent destroys an event and everything belonging to it: whitelist
// rows, documents, reviews and review details, all in one transaction. The
// caller must confirm with the exact event name plus the literal phrase;
// there is no soft delete and no undo. removeFile is called after commit for
// each stored document file and may be nil.
func DeleteEvent(eventID int, confirmName, confirmPhrase string, removeFile func(path string) error) error {
	event, err := getEvent(eventID)
	if err != nil {
		return err
	}
	if confirmName != event.Name {
		return confirmationErrorf("confirmation name does not match the event name")
	}
	if confirmPhrase != DeleteConfirmationPhrase {
		return confirmationErrorf("confirmation phrase must be %q", DeleteConfirmationPhrase)
	}

	var filePaths []string
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var docs []models.Document
		if err := tx.Where("event_id = ?", eventID).Find(&docs).Error; err != nil {
			return fmt.Errorf("failed to load event documents: %w", err)
		}

		docIDs := make([]int, 0, len(docs))
		for _, doc := range docs {
			docIDs = append(docIDs, doc.DocumentID)
			if doc.Filepath != "" {
				filePaths = append(filePaths, doc.Filepath)
			}
		}

		if len(docIDs) > 0 {
			var reviewIDs []int
			if err := tx.Model(&models.Review{}).
				Where("document_id IN ?", docIDs).
				Pluck("review_id", &reviewIDs).Error; err != nil {
				return fmt.Errorf("failed to load event reviews: %w", err)
			}
			if len(reviewIDs) > 0 {
				if err := tx.Where("review_id IN ?", reviewIDs).
					Delete(&models.ReviewDetail{}).Error; err != nil {
					return fmt.Errorf("failed to delete review details: %w", err)
				}
				if err := tx.Where("review_id IN ?", reviewIDs).
					Delete(&models.Review{}).Error; err != nil {
					return fmt.Errorf("failed to delete reviews: %w", err)
				}
			}
			if err := tx.Where("document_id IN ?", docIDs).
				Delete(&models.Document{}).Error; err != nil {
				return fmt.Errorf("failed to delete documents: %w", err)
			}
		}

		if err := tx.Where("event_id = ?", eventID).Delete(&models.EventTeacher{}).Error; err != nil {
			return fmt.Errorf("failed to delete teacher whitelist: %w", err)
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&models.EventReviewer{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviewer whitelist: %w", err)
		}
		return tx.Where("event_id = ?", eventID).Delete(&models.ReviewEvent{}).Error
	})
	if err != nil {
		return err
	}

	if removeFile != nil {
		for _, path := range filePaths {
			if err := removeFile(path); err != nil {
				// Row data is already gone; losing a stray file on disk is
				// logged by the caller, not fatal.
				continue
			}
		}
	}
	return nil
}

// AddEventTeacher adds a teacher whitelist row, switching the event into
// whitelist mode for teachers if it was open before.
func AddEventTeacher(eventID, teacherID int) error {
	if _, err := getEvent(eventID); err != nil {
		return err
	}
	user, err := getUserByID(teacherID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleTeacher {
		return validationErrorf("user %d is not a teacher", teacherID)
	}

	var count int64
	if err := config.DB.Model(&models.EventTeacher{}).
		Where("event_id = ? AND teacher_id = ?", eventID, teacherID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check whitelist: %w", err)
	}
	if count > 0 {
		return conflictErrorf("teacher %d is already whitelisted for event %d", teacherID, eventID)
	}
	return config.DB.Create(&models.EventTeacher{EventID: eventID, TeacherID: teacherID}).Error
}

// RemoveEventTeacher removes a teacher whitelist row. Removing the last row
// reopens the event to every teacher.
func RemoveEventTeacher(eventID, teacherID int) error {
	result := config.DB.Where("event_id = ? AND teacher_id = ?", eventID, teacherID).
		Delete(&models.EventTeacher{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove whitelist row: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErrorf("teacher %d is not whitelisted for event %d", teacherID, eventID)
	}
	return nil
}

// AddEventReviewer mirrors AddEventTeacher for reviewers.
func AddEventReviewer(eventID, reviewerID int) error {
	if _, err := getEvent(eventID); err != nil {
		return err
	}
	user, err := getUserByID(reviewerID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleReviewer {
		return validationErrorf("user %d is not a reviewer", reviewerID)
	}

	var count int64
	if err := config.DB.Model(&models.EventReviewer{}).
		Where("event_id = ? AND reviewer_id = ?", eventID, reviewerID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check whitelist: %w", err)
	}
	if count > 0 {
		return conflictErrorf("reviewer %d is already whitelisted for event %d", reviewerID, eventID)
	}
	return config.DB.Create(&models.EventReviewer{EventID: eventID, ReviewerID: reviewerID}).Error
}

// RemoveEventReviewer removes a reviewer whitelist row.
func RemoveEventReviewer(eventID, reviewerID int) error {
	result := config.DB.Where("event_id = ? AND reviewer_id = ?", eventID, reviewerID).
		Delete(&models.EventReviewer{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove whitelist row: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErrorf("reviewer %d is not whitelisted for event %d", reviewerID, eventID)
	}
	return nil
}

// AssignReviewerTeacher scopes a reviewer to a teacher's documents.
func AssignReviewerTeacher(reviewerID, teacherID int) error {
	reviewer, err := getUserByID(reviewerID)
	if err != nil {
		return err
	}
	if reviewer.Role != models.RoleReviewer {
		return validationErrorf("user %d is not a reviewer", reviewerID)
	}
	teacher, err := getUserByID(teacherID)
	if err != nil {
		return err
	}
	if teacher.Role != models.RoleTeacher {
		return validationErrorf("user %d is not a teacher", teacherID)
	}

	var count int64
	if err := config.DB.Model(&models.ReviewerTeacher{}).
		Where("reviewer_id = ? AND teacher_id = ?", reviewerID, teacherID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check assignment: %w", err)
	}
	if count > 0 {
		return conflictErrorf("reviewer %d is already assigned to teacher %d", reviewerID, teacherID)
	}
	return config.DB.Create(&models.ReviewerTeacher{ReviewerID: reviewerID, TeacherID: teacherID}).Error
}

// RemoveReviewerTeacher drops a reviewer-teacher assignment. Dropping the
// last one removes the scoping entirely.
func RemoveReviewerTeacher(reviewerID, teacherID int) error {
	result := config.DB.Where("reviewer_id = ? AND teacher_id = ?", reviewerID, teacherID).
		Delete(&models.ReviewerTeacher{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErrorf("reviewer %d is not assigned to teacher %d", reviewerID, teacherID)
	}
	return nil
}
