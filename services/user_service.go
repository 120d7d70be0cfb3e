package services

import (
	"document-review-api/config"
	"document-review-api/models"
	"document-review-api/utils"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

func getUserByID(userID int) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("user %d not found", userID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// GetUser exposes user lookup to controllers.
func GetUser(userID int) (*models.User, error) {
	return getUserByID(userID)
}

// UserInput carries the admin-facing user create fields.
type UserInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

// CreateUser creates an active account. Username and email stay unique.
func CreateUser(in UserInput) (*models.User, error) {
	in.Username = utils.SanitizeInput(in.Username)
	in.Email = utils.SanitizeInput(in.Email)

	if !utils.ValidateUsername(in.Username) {
		return nil, validationErrorf("invalid username")
	}
	if !utils.ValidateEmail(in.Email) {
		return nil, validationErrorf("invalid email address")
	}
	if ok, msg := utils.ValidatePassword(in.Password); !ok {
		return nil, validationErrorf("%s", msg)
	}
	if !in.Role.Valid() {
		return nil, validationErrorf("invalid role")
	}

	var count int64
	if err := config.DB.Model(&models.User{}).
		Where("(username = ? OR email = ?) AND delete_at IS NULL", in.Username, in.Email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	if count > 0 {
		return nil, conflictErrorf("username or email is already in use")
	}

	now := time.Now().UTC()
	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Role:     in.Role,
		IsActive: true,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// UserUpdate carries the optional admin-facing user edit fields.
type UserUpdate struct {
	Email    *string
	Password *string
	Role     *models.Role
	IsActive *bool
}

// UpdateUser applies the provided fields. Role and active-flag changes are
// restricted to admins by the controller; self-service edits pass only email
// and password.
func UpdateUser(userID int, in UserUpdate) (*models.User, error) {
	user, err := getUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Email != nil {
		email := utils.SanitizeInput(*in.Email)
		if !utils.ValidateEmail(email) {
			return nil, validationErrorf("invalid email address")
		}
		var count int64
		if err := config.DB.Model(&models.User{}).
			Where("email = ? AND user_id <> ? AND delete_at IS NULL", email, userID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if count > 0 {
			return nil, conflictErrorf("email is already in use")
		}
		updates["email"] = email
	}
	if in.Password != nil {
		if ok, msg := utils.ValidatePassword(*in.Password); !ok {
			return nil, validationErrorf("%s", msg)
		}
		if err := user.SetPassword(*in.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = user.PasswordHash
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, validationErrorf("invalid role")
		}
		updates["role"] = *in.Role
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return user, nil
	}

	now := time.Now().UTC()
	updates["update_at"] = now
	if err := config.DB.Model(&models.User{}).
		Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return getUserByID(userID)
}

// DeleteUser soft-deletes the account and hard-deletes the user's reviews
// with their details, plus any whitelist and assignment rows. Uploaded
// documents stay behind under the departed uploader id.
func DeleteUser(userID int, now time.Time) error {
	user, err := getUserByID(userID)
	if err != nil {
		return err
	}

	nowUTC := now.UTC()
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var reviewIDs []int
		if err := tx.Model(&models.Review{}).
			Where("reviewer_id = ?", userID).
			Pluck("review_id", &reviewIDs).Error; err != nil {
			return fmt.Errorf("failed to load user reviews: %w", err)
		}
		if len(reviewIDs) > 0 {
			if err := tx.Where("review_id IN ?", reviewIDs).
				Delete(&models.ReviewDetail{}).Error; err != nil {
				return fmt.Errorf("failed to delete review details: %w", err)
			}
			if err := tx.Where("review_id IN ?", reviewIDs).
				Delete(&models.Review{}).Error; err != nil {
				return fmt.Errorf("failed to delete reviews: %w", err)
			}
		}

		if err := tx.Where("teacher_id = ?", userID).Delete(&models.EventTeacher{}).Error; err != nil {
			return fmt.Errorf("failed to delete whitelist rows: %w", err)
		}
		if err := tx.Where("reviewer_id = ?", userID).Delete(&models.EventReviewer{}).Error; err != nil {
			return fmt.Errorf("failed to delete whitelist rows: %w", err)
		}
		if err := tx.Where("reviewer_id = ? OR teacher_id = ?", userID, userID).
			Delete(&models.ReviewerTeacher{}).Error; err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}

		return tx.Model(&models.User{}).
			Where("user_id = ?", user.UserID).
			Updates(map[string]interface{}{"delete_at": nowUTC, "is_active": false}).Error
	})
}

// ListUsers returns all non-deleted accounts, newest first.
func ListUsers() ([]models.User, error) {
	var users []models.User
	if err := config.DB.Where("delete_at IS NULL").
		Order("user_id DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
