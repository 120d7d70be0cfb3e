package controllers

import (
	"document-review-api/middleware"
	"document-review-api/services"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type dimensionScoreRequest struct {
	DimensionID int     `json:"dimension_id" binding:"required"`
	Score       float64 `json:"score"`
	Comment     string  `json:"comment"`
}

type submitReviewRequest struct {
	Scores  []dimensionScoreRequest `json:"scores" binding:"required,min=1,dive"`
	Comment string                  `json:"comment"`
}

// collectDimensionScores turns the submitted entries into lookup maps. A
// dimension may appear at most once; duplicates are rejected rather than
// letting a later entry silently replace an earlier one.
func collectDimensionScores(entries []dimensionScoreRequest) (map[int]float64, map[int]string, error) {
	scores := make(map[int]float64, len(entries))
	comments := make(map[int]string, len(entries))
	for _, entry := range entries {
		if _, dup := scores[entry.DimensionID]; dup {
			return nil, nil, fmt.Errorf("dimension %d appears more than once", entry.DimensionID)
		}
		scores[entry.DimensionID] = entry.Score
		comments[entry.DimensionID] = entry.Comment
	}
	return scores, comments, nil
}

// SubmitReview creates or overwrites the reviewer's scoring record for a
// document. Reviewer only (routes); visibility and the review window are
// checked before anything is written.
func SubmitReview(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || documentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scores, comments, err := collectDimensionScores(req.Scores)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := services.GetDocument(documentID)
	if err != nil {
		respondError(c, err)
		return
	}
	visible, err := services.CanReviewerSeeDocument(user, doc)
	if err != nil {
		respondError(c, err)
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	review, err := services.SubmitReview(services.ReviewSubmission{
		DocumentID:        documentID,
		ReviewerID:        user.UserID,
		Scores:            scores,
		Comment:           req.Comment,
		DimensionComments: comments,
	}, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review, "message": "Review submitted successfully"})
}

// GetMyReview returns the reviewer's own review of a document.
func GetMyReview(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || documentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	review, err := services.GetReview(documentID, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// GetDocumentScores returns the aggregated scores for a document.
func GetDocumentScores(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || documentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	doc, err := services.GetDocument(documentID)
	if err != nil {
		respondError(c, err)
		return
	}
	visible, err := canSeeDocument(user, doc)
	if err != nil {
		respondError(c, err)
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	scores, err := services.GetDocumentScores(documentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}
