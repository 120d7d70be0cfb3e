package services

import (
	"document-review-api/config"
	"document-review-api/models"
	"fmt"
)

// DocumentScores is the aggregated result for one document. Average is nil
// while zero completed reviews exist. PerDimensionAverage holds the plain
// mean of each dimension's raw scores across completed reviews; it is not
// weighted again and serves diagnostic display only.
type DocumentScores struct {
	Average             *float64        `json:"average"`
	ReviewCount         int             `json:"review_count"`
	PerDimensionAverage map[int]float64 `json:"per_dimension_average"`
}

// GetDocumentScores recomputes the document's aggregates from the completed
// reviews currently on record. Nothing is cached or incrementally maintained;
// every read reflects the state at that instant.
func GetDocumentScores(documentID int) (*DocumentScores, error) {
	var reviews []models.Review
	if err := config.DB.Where("document_id = ? AND status = ?", documentID, models.ReviewStatusCompleted).
		Preload("Details").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to load completed reviews: %w", err)
	}

	result := &DocumentScores{
		ReviewCount:         len(reviews),
		PerDimensionAverage: map[int]float64{},
	}
	if len(reviews) == 0 {
		return result, nil
	}

	var total float64
	dimTotals := map[int]float64{}
	dimCounts := map[int]int{}
	for _, review := range reviews {
		total += review.Score
		for _, detail := range review.Details {
			dimTotals[detail.DimensionID] += detail.Score
			dimCounts[detail.DimensionID]++
		}
	}

	avg := round2(total / float64(len(reviews)))
	result.Average = &avg
	for id, sum := range dimTotals {
		result.PerDimensionAverage[id] = round2(sum / float64(dimCounts[id]))
	}
	return result, nil
}
