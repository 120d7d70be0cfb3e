package controllers

import (
	"document-review-api/config"
	"document-review-api/middleware"
	"document-review-api/models"
	"document-review-api/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns role-appropriate dashboard numbers: document
// counts per status for admins, a pending/reviewed worklist for reviewers
// and upload counts for teachers.
func GetDashboardStats(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	switch user.Role {
	case models.RoleAdmin:
		adminStats(c)
	case models.RoleTeacher:
		teacherStats(c, user)
	case models.RoleReviewer:
		reviewerStats(c, user)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

func adminStats(c *gin.Context) {
	var total, pending, reviewing int64
	if err := config.DB.Model(&models.Document{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	if err := config.DB.Model(&models.Document{}).
		Where("status = ?", models.DocumentStatusPending).Count(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	if err := config.DB.Model(&models.Document{}).
		Where("status = ?", models.DocumentStatusReviewing).Count(&reviewing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	var eventCount, reviewCount int64
	if err := config.DB.Model(&models.ReviewEvent{}).
		Where("is_active = ?", true).Count(&eventCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	if err := config.DB.Model(&models.Review{}).
		Where("status = ?", models.ReviewStatusCompleted).Count(&reviewCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_documents":     total,
		"pending_documents":   pending,
		"reviewing_documents": reviewing,
		"active_events":       eventCount,
		"completed_reviews":   reviewCount,
	})
}

func teacherStats(c *gin.Context, user models.User) {
	var uploads int64
	if err := config.DB.Model(&models.Document{}).
		Where("uploader_id = ?", user.UserID).Count(&uploads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploaded_documents": uploads})
}

func reviewerStats(c *gin.Context, user models.User) {
	docs, err := services.ListDocumentsForUser(user)
	if err != nil {
		respondError(c, err)
		return
	}

	var reviewedIDs []int
	if err := config.DB.Model(&models.Review{}).
		Where("reviewer_id = ?", user.UserID).
		Pluck("document_id", &reviewedIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	reviewed := make(map[int]bool, len(reviewedIDs))
	for _, id := range reviewedIDs {
		reviewed[id] = true
	}

	pending := make([]models.Document, 0, len(docs))
	done := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		if reviewed[doc.DocumentID] {
			done = append(done, doc)
		} else {
			pending = append(pending, doc)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"pending_documents":  pending,
		"reviewed_documents": done,
	})
}
