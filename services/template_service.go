package services

import (
	"document-review-api/config"
	"document-review-api/models"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

// weightSumTolerance is the allowed deviation from 1.0 for the batch-edited
// weight sum.
const weightSumTolerance = 0.01

// DimensionInput is one dimension in a template create or batch-edit request.
type DimensionInput struct {
	Name   string  `json:"name" binding:"required"`
	Weight float64 `json:"weight"`
}

func getTemplate(templateID int) (*models.ScoringTemplate, error) {
	var tpl models.ScoringTemplate
	if err := config.DB.Where("template_id = ?", templateID).First(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("scoring template %d not found", templateID)
		}
		return nil, fmt.Errorf("failed to load scoring template: %w", err)
	}
	return &tpl, nil
}

// templateLocked reports whether any active event references the template,
// which freezes its dimension set.
func templateLocked(templateID int) (bool, error) {
	var count int64
	if err := config.DB.Model(&models.ReviewEvent{}).
		Where("template_id = ? AND is_active = ?", templateID, true).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check template references: %w", err)
	}
	return count > 0, nil
}

func validateDimensionInputs(dims []DimensionInput) error {
	if len(dims) == 0 {
		return validationErrorf("a template needs at least one dimension")
	}
	seen := make(map[string]bool, len(dims))
	for _, dim := range dims {
		if dim.Name == "" {
			return validationErrorf("dimension name must not be empty")
		}
		if seen[dim.Name] {
			return validationErrorf("duplicate dimension name %q", dim.Name)
		}
		seen[dim.Name] = true
		if dim.Weight < 0 || math.IsNaN(dim.Weight) || math.IsInf(dim.Weight, 0) {
			return validationErrorf("weight for dimension %q must not be negative", dim.Name)
		}
	}
	return nil
}

// CreateTemplate creates a template with its dimensions in declaration order.
// Weights are not required to sum to 1 at creation; only the batch-edit path
// enforces that.
func CreateTemplate(name string, dims []DimensionInput) (*models.ScoringTemplate, error) {
	if name == "" {
		return nil, validationErrorf("template name must not be empty")
	}
	if err := validateDimensionInputs(dims); err != nil {
		return nil, err
	}

	var count int64
	if err := config.DB.Model(&models.ScoringTemplate{}).
		Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check template name: %w", err)
	}
	if count > 0 {
		return nil, conflictErrorf("a scoring template named %q already exists", name)
	}

	now := time.Now().UTC()
	tpl := models.ScoringTemplate{Name: name, CreateAt: &now, UpdateAt: &now}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tpl).Error; err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}
		for i, dim := range dims {
			row := models.TemplateDimension{
				TemplateID: tpl.TemplateID,
				Name:       dim.Name,
				Weight:     dim.Weight,
				OrderIndex: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create dimension: %w", err)
			}
			tpl.Dimensions = append(tpl.Dimensions, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// UpdateTemplateDimensions replaces the template's dimension set from a
// batch-edit request. The new weights must sum to 1.0 within tolerance, and
// the template must not be referenced by any active event.
func UpdateTemplateDimensions(templateID int, dims []DimensionInput) error {
	if _, err := getTemplate(templateID); err != nil {
		return err
	}
	if err := validateDimensionInputs(dims); err != nil {
		return err
	}

	var sum float64
	for _, dim := range dims {
		sum += dim.Weight
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return validationErrorf("dimension weights must sum to 1.0, got %.4f", sum)
	}

	locked, err := templateLocked(templateID)
	if err != nil {
		return err
	}
	if locked {
		return conflictErrorf("template %d is in use by an active review event and cannot be edited", templateID)
	}

	now := time.Now().UTC()
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).
			Delete(&models.TemplateDimension{}).Error; err != nil {
			return fmt.Errorf("failed to clear dimensions: %w", err)
		}
		for i, dim := range dims {
			row := models.TemplateDimension{
				TemplateID: templateID,
				Name:       dim.Name,
				Weight:     dim.Weight,
				OrderIndex: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create dimension: %w", err)
			}
		}
		return tx.Model(&models.ScoringTemplate{}).
			Where("template_id = ?", templateID).
			Update("update_at", now).Error
	})
}

// RenameTemplate changes the template name, keeping it unique.
func RenameTemplate(templateID int, name string) error {
	if name == "" {
		return validationErrorf("template name must not be empty")
	}
	if _, err := getTemplate(templateID); err != nil {
		return err
	}

	var count int64
	if err := config.DB.Model(&models.ScoringTemplate{}).
		Where("name = ? AND template_id <> ?", name, templateID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check template name: %w", err)
	}
	if count > 0 {
		return conflictErrorf("a scoring template named %q already exists", name)
	}

	now := time.Now().UTC()
	return config.DB.Model(&models.ScoringTemplate{}).
		Where("template_id = ?", templateID).
		Updates(map[string]interface{}{"name": name, "update_at": now}).Error
}

// DeleteTemplate removes a template and its dimensions. Templates referenced
// by any event (active or not) or by any document cannot be deleted.
func DeleteTemplate(templateID int) error {
	if _, err := getTemplate(templateID); err != nil {
		return err
	}

	var eventCount int64
	if err := config.DB.Model(&models.ReviewEvent{}).
		Where("template_id = ?", templateID).Count(&eventCount).Error; err != nil {
		return fmt.Errorf("failed to check event references: %w", err)
	}
	if eventCount > 0 {
		return conflictErrorf("template %d is referenced by %d event(s)", templateID, eventCount)
	}

	var docCount int64
	if err := config.DB.Model(&models.Document{}).
		Where("template_id = ?", templateID).Count(&docCount).Error; err != nil {
		return fmt.Errorf("failed to check document references: %w", err)
	}
	if docCount > 0 {
		return conflictErrorf("template %d is referenced by %d document(s)", templateID, docCount)
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).
			Delete(&models.TemplateDimension{}).Error; err != nil {
			return fmt.Errorf("failed to delete dimensions: %w", err)
		}
		return tx.Where("template_id = ?", templateID).
			Delete(&models.ScoringTemplate{}).Error
	})
}

// ListTemplates returns all templates with dimensions in order.
func ListTemplates() ([]models.ScoringTemplate, error) {
	var templates []models.ScoringTemplate
	if err := config.DB.Order("template_id ASC").
		Preload("Dimensions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, dimension_id ASC")
		}).
		Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// GetTemplateWithDimensions returns one template with ordered dimensions.
func GetTemplateWithDimensions(templateID int) (*models.ScoringTemplate, error) {
	tpl, err := getTemplate(templateID)
	if err != nil {
		return nil, err
	}
	dims, err := TemplateDimensionsOrdered(templateID)
	if err != nil {
		return nil, err
	}
	tpl.Dimensions = dims
	return tpl, nil
}
