package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"document-review-api/config"
	"document-review-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database, migrates the schema and
// installs it as config.DB for the duration of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserToken{},
		&models.ScoringTemplate{},
		&models.TemplateDimension{},
		&models.ReviewEvent{},
		&models.EventTeacher{},
		&models.EventReviewer{},
		&models.ReviewerTeacher{},
		&models.Document{},
		&models.Review{},
		&models.ReviewDetail{},
		&models.Setting{},
		&models.Announcement{},
		&models.Instruction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		config.DB = prev
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) models.User {
	t.Helper()
	now := time.Now().UTC()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		IsActive: true,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := user.SetPassword("secret-password"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

// seedTemplate creates a template with the given name/weight pairs in order.
func seedTemplate(t *testing.T, db *gorm.DB, name string, weights map[string]float64, order []string) models.ScoringTemplate {
	t.Helper()
	now := time.Now().UTC()
	tpl := models.ScoringTemplate{Name: name, CreateAt: &now, UpdateAt: &now}
	if err := db.Create(&tpl).Error; err != nil {
		t.Fatalf("failed to seed template: %v", err)
	}
	for i, dimName := range order {
		dim := models.TemplateDimension{
			TemplateID: tpl.TemplateID,
			Name:       dimName,
			Weight:     weights[dimName],
			OrderIndex: i,
		}
		if err := db.Create(&dim).Error; err != nil {
			t.Fatalf("failed to seed dimension: %v", err)
		}
		tpl.Dimensions = append(tpl.Dimensions, dim)
	}
	return tpl
}

func seedEvent(t *testing.T, db *gorm.DB, name string, templateID int, start, end, deadline *time.Time) models.ReviewEvent {
	t.Helper()
	now := time.Now().UTC()
	event := models.ReviewEvent{
		Name:           name,
		TemplateID:     templateID,
		StartTime:      start,
		EndTime:        end,
		UploadDeadline: deadline,
		IsActive:       true,
		CreateAt:       &now,
		UpdateAt:       &now,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return event
}

func seedDocument(t *testing.T, db *gorm.DB, uploaderID, templateID int, eventID *int) models.Document {
	t.Helper()
	now := time.Now().UTC()
	doc := models.Document{
		Title:      "work product",
		Filename:   "work.pdf",
		Filepath:   "/tmp/uploads/work.pdf",
		UploaderID: uploaderID,
		EventID:    eventID,
		TemplateID: templateID,
		Status:     models.DocumentStatusPending,
		CreateAt:   &now,
		UpdateAt:   &now,
	}
	if err := db.Create(&doc).Error; err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
	return doc
}

func timePtr(t time.Time) *time.Time { return &t }
