package models

import "time"

// ScoringTemplate is a named rubric: an ordered set of weighted dimensions.
// Its dimension set is frozen while any active review event references it.
type ScoringTemplate struct {
	TemplateID int        `gorm:"primaryKey;column:template_id" json:"template_id"`
	Name       string     `gorm:"column:name;unique" json:"name"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`

	Dimensions []TemplateDimension `gorm:"foreignKey:TemplateID" json:"dimensions,omitempty"`
}

// TemplateDimension is one weighted scoring axis of a template. Dimensions are
// owned by their template and removed with it.
type TemplateDimension struct {
	DimensionID int     `gorm:"primaryKey;column:dimension_id" json:"dimension_id"`
	TemplateID  int     `gorm:"column:template_id" json:"template_id"`
	Name        string  `gorm:"column:name" json:"name"`
	Weight      float64 `gorm:"column:weight" json:"weight"`
	OrderIndex  int     `gorm:"column:order_index" json:"order_index"`
}

func (ScoringTemplate) TableName() string {
	return "scoring_templates"
}

func (TemplateDimension) TableName() string {
	return "template_dimensions"
}
