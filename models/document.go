package models

import "time"

const (
	DocumentStatusPending   = "pending"
	DocumentStatusReviewing = "reviewing"
	// DocumentStatusCompleted exists for display of legacy rows; no flow in
	// this service transitions a document to it.
	DocumentStatusCompleted = "completed"
)

// Document is an uploaded work product. EventID is nil for unscoped uploads,
// which resolve their template from the global default setting instead.
// TemplateID is resolved once at upload time and frozen; replacing the file
// keeps the row, its template and every existing review.
type Document struct {
	DocumentID  int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	Title       string     `gorm:"column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Filename    string     `gorm:"column:filename" json:"filename"`
	Filepath    string     `gorm:"column:filepath" json:"-"`
	UploaderID  int        `gorm:"column:uploader_id" json:"uploader_id"`
	EventID     *int       `gorm:"column:event_id" json:"event_id,omitempty"`
	TemplateID  int        `gorm:"column:template_id" json:"template_id"`
	Status      string     `gorm:"column:status" json:"status"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`

	Uploader *User            `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	Event    *ReviewEvent     `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Template *ScoringTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Reviews  []Review         `gorm:"foreignKey:DocumentID" json:"reviews,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}
