package controllers

import (
	"document-review-api/config"
	"document-review-api/middleware"
	"document-review-api/models"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type noticeRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// GetAnnouncements lists announcements, newest first.
func GetAnnouncements(c *gin.Context) {
	var rows []models.Announcement
	if err := config.DB.Order("announcement_id DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": rows, "total": len(rows)})
}

// CreateAnnouncement adds an announcement. Admin only (routes).
func CreateAnnouncement(c *gin.Context) {
	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	now := time.Now().UTC()
	row := models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: user.UserID,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"announcement": row})
}

// UpdateAnnouncement edits an announcement. Admin only (routes).
func UpdateAnnouncement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement ID"})
		return
	}

	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	result := config.DB.Model(&models.Announcement{}).
		Where("announcement_id = ?", id).
		Updates(map[string]interface{}{"title": req.Title, "content": req.Content, "update_at": now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update announcement"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement updated"})
}

// DeleteAnnouncement removes an announcement. Admin only (routes).
func DeleteAnnouncement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement ID"})
		return
	}

	result := config.DB.Where("announcement_id = ?", id).Delete(&models.Announcement{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}

// GetInstructions lists instruction entries, newest first.
func GetInstructions(c *gin.Context) {
	var rows []models.Instruction
	if err := config.DB.Order("instruction_id DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instructions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"instructions": rows, "total": len(rows)})
}

// CreateInstruction adds an instruction entry. Admin only (routes).
func CreateInstruction(c *gin.Context) {
	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	now := time.Now().UTC()
	row := models.Instruction{
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: user.UserID,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create instruction"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"instruction": row})
}

// UpdateInstruction edits an instruction entry. Admin only (routes).
func UpdateInstruction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instruction ID"})
		return
	}

	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	result := config.DB.Model(&models.Instruction{}).
		Where("instruction_id = ?", id).
		Updates(map[string]interface{}{"title": req.Title, "content": req.Content, "update_at": now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update instruction"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Instruction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Instruction updated"})
}

// DeleteInstruction removes an instruction entry. Admin only (routes).
func DeleteInstruction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instruction ID"})
		return
	}

	result := config.DB.Where("instruction_id = ?", id).Delete(&models.Instruction{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete instruction"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Instruction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Instruction deleted"})
}
