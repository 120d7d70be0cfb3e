package controllers

import (
	"document-review-api/config"
	"document-review-api/models"
	"document-review-api/utils"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const passwordResetTTL = 30 * time.Minute

// sendMailFunc is swappable in tests.
var sendMailFunc = config.SendMail

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ForgotPassword issues a reset token and mails it. The response is the same
// whether or not the address matches an account.
func ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	req.Email = utils.SanitizeInput(req.Email)
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	neutral := gin.H{"message": "If the address is registered, a reset mail has been sent"}

	var user models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).
		First(&user).Error; err != nil {
		c.JSON(http.StatusOK, neutral)
		return
	}

	now := time.Now().UTC()

	// Revoke earlier reset tokens before issuing a new one.
	if err := config.DB.Model(&models.UserToken{}).
		Where("user_id = ? AND token_type = ? AND is_revoked = ?", user.UserID, models.TokenTypePasswordReset, false).
		Updates(map[string]interface{}{"is_revoked": true, "updated_at": now, "expires_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue reset token"})
		return
	}

	rawToken := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(rawToken), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue reset token"})
		return
	}

	token := models.UserToken{
		UserID:    user.UserID,
		TokenType: models.TokenTypePasswordReset,
		TokenHash: string(hash),
		ExpiresAt: now.Add(passwordResetTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := config.DB.Create(&token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue reset token"})
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s",
		os.Getenv("FRONTEND_URL"), url.QueryEscape(rawToken))
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Use the link below to reset your password. It expires in 30 minutes.</p><p><a href=%q>%s</a></p>",
		template.HTMLEscapeString(user.Username), resetURL, template.HTMLEscapeString(resetURL))

	if err := sendMailFunc([]string{user.Email}, "Password reset", body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset mail"})
		return
	}

	c.JSON(http.StatusOK, neutral)
}

// ResetPassword consumes a reset token and sets the new password.
func ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	now := time.Now().UTC()

	var tokens []models.UserToken
	if err := config.DB.Where("token_type = ? AND is_revoked = ? AND expires_at > ?",
		models.TokenTypePasswordReset, false, now).
		Order("created_at DESC").
		Find(&tokens).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify token"})
		return
	}

	var match *models.UserToken
	for i := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(tokens[i].TokenHash), []byte(req.Token)) == nil {
			match = &tokens[i]
			break
		}
	}
	if match == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", match.UserID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{"password_hash": user.PasswordHash, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	if err := config.DB.Model(&models.UserToken{}).
		Where("token_id = ?", match.TokenID).
		Updates(map[string]interface{}{"is_revoked": true, "updated_at": now, "expires_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
