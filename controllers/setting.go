package controllers

import (
	"document-review-api/models"
	"document-review-api/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the resolved settings view. Admin only (routes).
func GetSettings(c *gin.Context) {
	settings, err := services.LoadSettings()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"global_template_id": settings.GlobalTemplateID})
}

// UpdateGlobalTemplate sets the template used by documents uploaded outside
// any event. Admin only (routes).
func UpdateGlobalTemplate(c *gin.Context) {
	var req struct {
		TemplateID int `json:"template_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := services.GetTemplateWithDimensions(req.TemplateID); err != nil {
		respondError(c, err)
		return
	}

	if err := services.UpdateSetting(models.SettingGlobalTemplateID, strconv.Itoa(req.TemplateID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Global template updated"})
}
