package controllers

import (
	"document-review-api/middleware"
	"document-review-api/services"
	"document-review-api/utils"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type eventRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	TemplateID     int    `json:"template_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	UploadDeadline string `json:"upload_deadline"`
}

// parseEventInput converts the admin-entered civil datetimes (UTC+8) into
// the UTC instants the services store.
func parseEventInput(req eventRequest) (services.EventInput, error) {
	start, err := utils.ParseCivilTime(req.StartTime)
	if err != nil {
		return services.EventInput{}, err
	}
	end, err := utils.ParseCivilTime(req.EndTime)
	if err != nil {
		return services.EventInput{}, err
	}
	deadline, err := utils.ParseCivilTime(req.UploadDeadline)
	if err != nil {
		return services.EventInput{}, err
	}
	return services.EventInput{
		Name:           req.Name,
		Description:    req.Description,
		StartTime:      start,
		EndTime:        end,
		UploadDeadline: deadline,
	}, nil
}

// GetEvents lists the events visible to the current user.
func GetEvents(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	events, err := services.ResolveVisibleEvents(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

// GetEvent returns one event with its current window states, gated by
// visibility.
func GetEvent(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	event, err := services.GetEvent(eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	visible, err := services.CanSeeEvent(user, event)
	if err != nil {
		respondError(c, err)
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"event":           event,
		"review_window":   services.CheckReviewWindow(event, now),
		"upload_open":     services.CheckUploadWindow(event, now),
		"start_time":      utils.FormatCivilTime(event.StartTime),
		"end_time":        utils.FormatCivilTime(event.EndTime),
		"upload_deadline": utils.FormatCivilTime(event.UploadDeadline),
	})
}

// CreateEvent creates an active event bound to a template. Admin only (routes).
func CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TemplateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A scoring template is required"})
		return
	}

	input, err := parseEventInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid datetime, expected YYYY-MM-DD HH:MM"})
		return
	}

	event, err := services.CreateEvent(input, req.TemplateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event, "message": "Event created successfully"})
}

// UpdateEvent edits an event's name, description and windows. The template
// binding cannot change. Admin only (routes).
func UpdateEvent(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := parseEventInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid datetime, expected YYYY-MM-DD HH:MM"})
		return
	}

	event, err := services.UpdateEvent(eventID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event, "message": "Event updated successfully"})
}

// SetEventActive toggles the active flag. Admin only (routes).
func SetEventActive(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.SetEventActive(eventID, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully"})
}

// DeleteEvent destroys an event and all its documents and reviews after a
// two-factor confirmation: the exact event name and the literal phrase
// "DELETE". Admin only (routes).
func DeleteEvent(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req struct {
		ConfirmName   string `json:"confirm_name" binding:"required"`
		ConfirmPhrase string `json:"confirm_phrase" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteEvent(eventID, req.ConfirmName, req.ConfirmPhrase, os.Remove); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event and all its data deleted"})
}

// AddEventTeacher whitelists a teacher for an event. Admin only (routes).
func AddEventTeacher(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req struct {
		TeacherID int `json:"teacher_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.AddEventTeacher(eventID, req.TeacherID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Teacher whitelisted"})
}

// RemoveEventTeacher removes a teacher whitelist row. Admin only (routes).
func RemoveEventTeacher(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}
	teacherID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || teacherID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := services.RemoveEventTeacher(eventID, teacherID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Teacher removed from whitelist"})
}

// AddEventReviewer whitelists a reviewer for an event. Admin only (routes).
func AddEventReviewer(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req struct {
		ReviewerID int `json:"reviewer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.AddEventReviewer(eventID, req.ReviewerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reviewer whitelisted"})
}

// RemoveEventReviewer removes a reviewer whitelist row. Admin only (routes).
func RemoveEventReviewer(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}
	reviewerID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || reviewerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := services.RemoveEventReviewer(eventID, reviewerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reviewer removed from whitelist"})
}

// AssignReviewerTeacher scopes a reviewer to a teacher's documents. Admin
// only (routes).
func AssignReviewerTeacher(c *gin.Context) {
	var req struct {
		ReviewerID int `json:"reviewer_id" binding:"required"`
		TeacherID  int `json:"teacher_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.AssignReviewerTeacher(req.ReviewerID, req.TeacherID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reviewer assigned to teacher"})
}

// RemoveReviewerTeacher drops a reviewer-teacher assignment. Admin only
// (routes).
func RemoveReviewerTeacher(c *gin.Context) {
	reviewerID, err := strconv.Atoi(c.Param("reviewer_id"))
	if err != nil || reviewerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reviewer ID"})
		return
	}
	teacherID, err := strconv.Atoi(c.Param("teacher_id"))
	if err != nil || teacherID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teacher ID"})
		return
	}

	if err := services.RemoveReviewerTeacher(reviewerID, teacherID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment removed"})
}
