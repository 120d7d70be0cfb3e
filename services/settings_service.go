package services

import (
	"document-review-api/config"
	"document-review-api/models"
	"fmt"
	"strconv"
	"time"
)

// Settings is the per-request view of the settings table. Handlers load it
// once with LoadSettings and pass it into the services that need it; nothing
// reads settings through ambient global state.
type Settings struct {
	// GlobalTemplateID is the template applied to documents uploaded outside
	// any review event. Nil when unconfigured.
	GlobalTemplateID *int
}

// LoadSettings reads all settings rows into a Settings value.
func LoadSettings() (*Settings, error) {
	var rows []models.Setting
	if err := config.DB.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := &Settings{}
	for _, row := range rows {
		switch row.SettingKey {
		case models.SettingGlobalTemplateID:
			id, err := strconv.Atoi(row.SettingValue)
			if err != nil || id <= 0 {
				continue
			}
			settings.GlobalTemplateID = &id
		}
	}
	return settings, nil
}

// UpdateSetting upserts one settings row.
func UpdateSetting(key, value string) error {
	now := time.Now().UTC()

	var existing models.Setting
	err := config.DB.Where("setting_key = ?", key).First(&existing).Error
	if err == nil {
		return config.DB.Model(&existing).Updates(map[string]interface{}{
			"setting_value": value,
			"update_at":     now,
		}).Error
	}

	row := models.Setting{SettingKey: key, SettingValue: value, UpdateAt: &now}
	return config.DB.Create(&row).Error
}
