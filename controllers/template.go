package controllers

import (
	"document-review-api/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetTemplates lists all scoring templates with their dimensions.
func GetTemplates(c *gin.Context) {
	templates, err := services.ListTemplates()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates, "total": len(templates)})
}

// GetTemplate returns one template with ordered dimensions.
func GetTemplate(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	tpl, err := services.GetTemplateWithDimensions(templateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": tpl})
}

// CreateTemplate creates a template with its dimensions. Admin only (routes).
func CreateTemplate(c *gin.Context) {
	var req struct {
		Name       string                    `json:"name" binding:"required"`
		Dimensions []services.DimensionInput `json:"dimensions" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl, err := services.CreateTemplate(req.Name, req.Dimensions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": tpl, "message": "Template created successfully"})
}

// UpdateTemplateDimensions batch-edits a template's dimension set. The new
// weights must sum to 1.0 within tolerance. Admin only (routes).
func UpdateTemplateDimensions(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var req struct {
		Dimensions []services.DimensionInput `json:"dimensions" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateTemplateDimensions(templateID, req.Dimensions); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template dimensions updated successfully"})
}

// RenameTemplate changes a template's name. Admin only (routes).
func RenameTemplate(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.RenameTemplate(templateID, req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template renamed successfully"})
}

// DeleteTemplate removes an unreferenced template. Admin only (routes).
func DeleteTemplate(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || templateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	if err := services.DeleteTemplate(templateID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
