package services

import (
	"document-review-api/config"
	"document-review-api/models"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GetDocument loads one document or a NotFoundError.
func GetDocument(documentID int) (*models.Document, error) {
	var doc models.Document
	if err := config.DB.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("document %d not found", documentID)
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return &doc, nil
}

// DocumentInput carries an upload request after the file has been stored.
type DocumentInput struct {
	Title       string
	Description string
	Filename    string
	Filepath    string
	UploaderID  int
	EventID     *int
}

// CreateDocument registers an uploaded file as a document. The scoring
// template is resolved exactly once here, from the event when the upload is
// scoped or from the global default setting otherwise, and frozen for the
// document's lifetime. An upload may complete with no resolvable template;
// such a document simply cannot be reviewed until an admin configures one
// and re-uploads.
func CreateDocument(in DocumentInput, settings *Settings, now time.Time) (*models.Document, error) {
	if in.Title == "" {
		return nil, validationErrorf("document title must not be empty")
	}
	if in.Filename == "" || in.Filepath == "" {
		return nil, validationErrorf("document file is missing")
	}

	templateID := 0
	var event *models.ReviewEvent
	if in.EventID != nil {
		var err error
		event, err = getEvent(*in.EventID)
		if err != nil {
			return nil, err
		}
		if !event.IsActive {
			return nil, permissionErrorf("event %q is not active", event.Name)
		}
		if !CheckUploadWindow(event, now) {
			return nil, windowClosedErrorf("upload deadline for event %q has passed", event.Name)
		}
		templateID = event.TemplateID
	} else if settings != nil && settings.GlobalTemplateID != nil {
		templateID = *settings.GlobalTemplateID
	}

	nowUTC := now.UTC()
	doc := models.Document{
		Title:       in.Title,
		Description: in.Description,
		Filename:    in.Filename,
		Filepath:    in.Filepath,
		UploaderID:  in.UploaderID,
		EventID:     in.EventID,
		TemplateID:  templateID,
		Status:      models.DocumentStatusPending,
		CreateAt:    &nowUTC,
		UpdateAt:    &nowUTC,
	}
	if err := config.DB.Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &doc, nil
}

// ReplaceDocumentFile swaps the stored file while keeping the document id,
// its frozen template binding and every existing review. Only the original
// uploader may replace, and a scoped document's upload window must still be
// open. The previous file is removed through removeFile after the row
// updates.
func ReplaceDocumentFile(documentID, uploaderID int, filename, filepath string, now time.Time, removeFile func(path string) error) (*models.Document, error) {
	doc, err := GetDocument(documentID)
	if err != nil {
		return nil, err
	}
	if doc.UploaderID != uploaderID {
		return nil, permissionErrorf("only the uploader may replace this document")
	}
	if filename == "" || filepath == "" {
		return nil, validationErrorf("document file is missing")
	}

	if doc.EventID != nil {
		event, err := getEvent(*doc.EventID)
		if err != nil {
			return nil, err
		}
		if !CheckUploadWindow(event, now) {
			return nil, windowClosedErrorf("upload deadline for event %q has passed", event.Name)
		}
	}

	oldPath := doc.Filepath
	nowUTC := now.UTC()
	if err := config.DB.Model(&models.Document{}).
		Where("document_id = ?", documentID).
		Updates(map[string]interface{}{
			"filename":  filename,
			"filepath":  filepath,
			"update_at": nowUTC,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if removeFile != nil && oldPath != "" && oldPath != filepath {
		_ = removeFile(oldPath)
	}
	return GetDocument(documentID)
}

// DeleteDocument removes a document with its reviews and details in one
// transaction, then its stored file. Admin-only; enforced by the route.
func DeleteDocument(documentID int, removeFile func(path string) error) error {
	doc, err := GetDocument(documentID)
	if err != nil {
		return err
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var reviewIDs []int
		if err := tx.Model(&models.Review{}).
			Where("document_id = ?", documentID).
			Pluck("review_id", &reviewIDs).Error; err != nil {
			return fmt.Errorf("failed to load reviews: %w", err)
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
		return tx.Where("document_id = ?", documentID).Delete(&models.Document{}).Error
	})
	if err != nil {
		return err
	}

	if removeFile != nil && doc.Filepath != "" {
		_ = removeFile(doc.Filepath)
	}
	return nil
}

// ListDocumentsForUser returns the documents the user may see: admins see
// everything, teachers their own uploads, reviewers the documents of visible
// events narrowed by their teacher assignments.
func ListDocumentsForUser(user models.User) ([]models.Document, error) {
	var docs []models.Document
	base := config.DB.Order("document_id DESC").Preload("Event")

	switch user.Role {
	case models.RoleAdmin:
		if err := base.Find(&docs).Error; err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}
		return docs, nil

	case models.RoleTeacher:
		if err := base.Where("uploader_id = ?", user.UserID).Find(&docs).Error; err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}
		return docs, nil

	case models.RoleReviewer:
		events, err := ResolveVisibleEvents(user)
		if err != nil {
			return nil, err
		}
		eventIDs := make([]int, 0, len(events))
		for _, e := range events {
			eventIDs = append(eventIDs, e.EventID)
		}

		query := base
		if len(eventIDs) > 0 {
			query = query.Where("event_id IN ? OR event_id IS NULL", eventIDs)
		} else {
			query = query.Where("event_id IS NULL")
		}
		if err := query.Find(&docs).Error; err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}

		assigned, scoped, err := AssignedTeacherIDs(user.UserID)
		if err != nil {
			return nil, err
		}
		if !scoped {
			return docs, nil
		}
		filtered := docs[:0]
		for _, doc := range docs {
			if assigned[doc.UploaderID] {
				filtered = append(filtered, doc)
			}
		}
		return filtered, nil
	}
	return nil, permissionErrorf("role %q cannot list documents", user.Role)
}
