package models

import "time"

// Setting is a key/value configuration row. Settings are loaded once per
// request into services.Settings and passed explicitly from there.
type Setting struct {
	SettingID    int        `gorm:"primaryKey;column:setting_id" json:"setting_id"`
	SettingKey   string     `gorm:"column:setting_key;unique" json:"setting_key"`
	SettingValue string     `gorm:"column:setting_value" json:"setting_value"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Setting keys in use.
const (
	SettingGlobalTemplateID = "global_template_id"
)
