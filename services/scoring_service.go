package services

import (
	"document-review-api/config"
	"document-review-api/models"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	minDimensionScore = 0
	maxDimensionScore = 100
)

// round2 rounds to 2 decimal places, the precision used for every stored and
// reported score.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TemplateDimensionsOrdered returns the template's dimensions as an explicit
// ordered slice.
func TemplateDimensionsOrdered(templateID int) ([]models.TemplateDimension, error) {
	var dims []models.TemplateDimension
	if err := config.DB.Where("template_id = ?", templateID).
		Order("order_index ASC, dimension_id ASC").
		Find(&dims).Error; err != nil {
		return nil, fmt.Errorf("failed to load template dimensions: %w", err)
	}
	return dims, nil
}

// ComputeComposite validates raw scores against the template's dimensions and
// returns the weighted composite. Every dimension must be scored within
// [0,100] and no unknown dimension may appear; any violation rejects the
// whole set. An all-zero weight sum falls back to a denominator of 1.0, a
// documented degenerate case that yields a near-zero composite.
func ComputeComposite(dims []models.TemplateDimension, scores map[int]float64) (float64, error) {
	if len(dims) == 0 {
		return 0, validationErrorf("scoring template has no dimensions")
	}

	known := make(map[int]bool, len(dims))
	var weightedSum, weightSum float64
	for _, dim := range dims {
		known[dim.DimensionID] = true
		score, ok := scores[dim.DimensionID]
		if !ok {
			return 0, validationErrorf("missing score for dimension %q", dim.Name)
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return 0, validationErrorf("invalid score for dimension %q", dim.Name)
		}
		if score < minDimensionScore || score > maxDimensionScore {
			return 0, validationErrorf("score for dimension %q must be between %d and %d",
				dim.Name, minDimensionScore, maxDimensionScore)
		}
		weightedSum += score * dim.Weight
		weightSum += dim.Weight
	}
	for id := range scores {
		if !known[id] {
			return 0, validationErrorf("unknown dimension id %d", id)
		}
	}

	if weightSum == 0 {
		weightSum = 1.0
	}
	return round2(weightedSum / weightSum), nil
}

// ReviewSubmission is one reviewer's complete scoring input for a document.
type ReviewSubmission struct {
	DocumentID        int
	ReviewerID        int
	Scores            map[int]float64
	Comment           string
	DimensionComments map[int]string
}

// SubmitReview creates or overwrites the reviewer's scoring record for a
// document. Validation happens entirely before the first write, and the
// Review row together with its detail rows commits in one transaction, so a
// failed submission can never leave a dangling empty Review behind.
//
// Resubmission is last-write-wins: the previous detail set is deleted and
// recreated wholesale, the composite recomputed, no history kept.
func SubmitReview(sub ReviewSubmission, now time.Time) (*models.Review, error) {
	var doc models.Document
	if err := config.DB.Where("document_id = ?", sub.DocumentID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("document %d not found", sub.DocumentID)
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	if doc.TemplateID == 0 {
		return nil, validationErrorf("no scoring template configured for this document")
	}

	if doc.EventID != nil {
		event, err := getEvent(*doc.EventID)
		if err != nil {
			return nil, err
		}
		if state := CheckReviewWindow(event, now); state != ReviewWindowActive {
			return nil, windowClosedErrorf("review window is %s for event %q", state, event.Name)
		}
	}

	dims, err := TemplateDimensionsOrdered(doc.TemplateID)
	if err != nil {
		return nil, err
	}
	composite, err := ComputeComposite(dims, sub.Scores)
	if err != nil {
		return nil, err
	}

	details := make([]models.ReviewDetail, 0, len(dims))
	for _, dim := range dims {
		details = append(details, models.ReviewDetail{
			DimensionID: dim.DimensionID,
			Score:       sub.Scores[dim.DimensionID],
			Comment:     sub.DimensionComments[dim.DimensionID],
		})
	}

	nowUTC := now.UTC()
	var review models.Review
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("document_id = ? AND reviewer_id = ?", sub.DocumentID, sub.ReviewerID).
			First(&review).Error
		switch {
		case err == nil:
			// Resubmission: overwrite in place, never insert a second row.
			review.Score = composite
			review.Comment = sub.Comment
			review.Status = models.ReviewStatusCompleted
			review.UpdateAt = &nowUTC
			if err := tx.Save(&review).Error; err != nil {
				return fmt.Errorf("failed to update review: %w", err)
			}
			if err := tx.Where("review_id = ?", review.ReviewID).
				Delete(&models.ReviewDetail{}).Error; err != nil {
				return fmt.Errorf("failed to clear review details: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{
				DocumentID: sub.DocumentID,
				ReviewerID: sub.ReviewerID,
				Score:      composite,
				Comment:    sub.Comment,
				Status:     models.ReviewStatusCompleted,
				CreateAt:   &nowUTC,
				UpdateAt:   &nowUTC,
			}
			if err := tx.Create(&review).Error; err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
		default:
			return fmt.Errorf("failed to look up review: %w", err)
		}

		for i := range details {
			details[i].DetailID = 0
			details[i].ReviewID = review.ReviewID
		}
		if err := tx.Create(&details).Error; err != nil {
			return fmt.Errorf("failed to write review details: %w", err)
		}

		// First completed review moves the document forward; nothing ever
		// moves it back to pending.
		if doc.Status == models.DocumentStatusPending {
			if err := tx.Model(&models.Document{}).
				Where("document_id = ?", doc.DocumentID).
				Updates(map[string]interface{}{
					"status":    models.DocumentStatusReviewing,
					"update_at": nowUTC,
				}).Error; err != nil {
				return fmt.Errorf("failed to update document status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	review.Details = details
	return &review, nil
}

// GetReview returns the reviewer's review of a document with its details in
// template dimension order, or a NotFoundError when none exists.
func GetReview(documentID, reviewerID int) (*models.Review, error) {
	var review models.Review
	err := config.DB.Where("document_id = ? AND reviewer_id = ?", documentID, reviewerID).
		Preload("Details").
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("no review found for document %d", documentID)
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return &review, nil
}
