package controllers

import (
	"document-review-api/middleware"
	"document-review-api/models"
	"document-review-api/services"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
	".zip":  true,
}

func uploadDir() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

// storeUploadedFile saves the multipart file under a uuid-prefixed name and
// returns the stored path.
func storeUploadedFile(c *gin.Context) (originalName, storedPath string, ok bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return "", "", false
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return "", "", false
	}

	storedName := uuid.NewString() + ext
	dst := filepath.Join(uploadDir(), storedName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return "", "", false
	}
	return file.Filename, dst, true
}

// UploadDocument registers a new document. Teachers and admins only
// (routes); a scoped upload also needs event visibility and an open upload
// window.
func UploadDocument(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document title is required"})
		return
	}

	var eventID *int
	if raw := strings.TrimSpace(c.PostForm("event_id")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
			return
		}
		event, err := services.GetEvent(id)
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
		eventID = &id
	}

	settings, err := services.LoadSettings()
	if err != nil {
		respondError(c, err)
		return
	}

	originalName, storedPath, ok := storeUploadedFile(c)
	if !ok {
		return
	}

	doc, err := services.CreateDocument(services.DocumentInput{
		Title:       title,
		Description: description,
		Filename:    originalName,
		Filepath:    storedPath,
		UploaderID:  user.UserID,
		EventID:     eventID,
	}, settings, time.Now())
	if err != nil {
		// The row never existed; do not leave the stored file behind.
		_ = os.Remove(storedPath)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc, "message": "Document uploaded successfully"})
}

// GetDocuments lists the documents visible to the current user.
func GetDocuments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	docs, err := services.ListDocumentsForUser(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
}

// canSeeDocument applies the role-appropriate visibility rule for one
// document.
func canSeeDocument(user models.User, doc *models.Document) (bool, error) {
	switch user.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleTeacher:
		return doc.UploaderID == user.UserID, nil
	case models.RoleReviewer:
		return services.CanReviewerSeeDocument(user, doc)
	}
	return false, nil
}

// GetDocument returns one document with its aggregated scores and, for
// reviewers, their own review.
func GetDocument(c *gin.Context) {
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

	response := gin.H{"document": doc, "scores": scores}
	if user.Role.CanReview() {
		if review, err := services.GetReview(documentID, user.UserID); err == nil {
			response["my_review"] = review
		}
	}
	c.JSON(http.StatusOK, response)
}

// DownloadDocument streams the stored file, visibility-gated. Viewing stays
// allowed outside the review window; only writes are window-gated.
func DownloadDocument(c *gin.Context) {
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

	if _, err := os.Stat(doc.Filepath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file is missing"})
		return
	}
	c.FileAttachment(doc.Filepath, doc.Filename)
}

// ReplaceDocumentFile swaps the stored file of an existing document, keeping
// its reviews. Uploader only; window-gated for scoped documents.
func ReplaceDocumentFile(c *gin.Context) {
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

	originalName, storedPath, ok := storeUploadedFile(c)
	if !ok {
		return
	}

	doc, err := services.ReplaceDocumentFile(documentID, user.UserID, originalName, storedPath, time.Now(), os.Remove)
	if err != nil {
		_ = os.Remove(storedPath)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc, "message": "Document file replaced"})
}

// DeleteDocument removes a document, its reviews and its file. Admin only
// (routes).
func DeleteDocument(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || documentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	if err := services.DeleteDocument(documentID, os.Remove); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
