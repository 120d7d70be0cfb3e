package models

import "time"

const (
	ReviewStatusPending   = "pending"
	ReviewStatusCompleted = "completed"
)

// Review is one reviewer's scoring record for one document. At most one row
// exists per (document_id, reviewer_id); resubmission updates in place.
// Score is the weighted composite over the document's template dimensions.
type Review struct {
	ReviewID   int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	DocumentID int        `gorm:"column:document_id;uniqueIndex:uq_document_reviewer" json:"document_id"`
	ReviewerID int        `gorm:"column:reviewer_id;uniqueIndex:uq_document_reviewer" json:"reviewer_id"`
	Score      float64    `gorm:"column:score" json:"score"`
	Comment    string     `gorm:"column:comment" json:"comment"`
	Status     string     `gorm:"column:status" json:"status"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`

	Reviewer *User          `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Details  []ReviewDetail `gorm:"foreignKey:ReviewID" json:"details,omitempty"`
}

// ReviewDetail is one dimension's raw score within a review. The full detail
// set is replaced wholesale on every resubmission, never patched row by row.
type ReviewDetail struct {
	DetailID    int     `gorm:"primaryKey;column:detail_id" json:"detail_id"`
	ReviewID    int     `gorm:"column:review_id;uniqueIndex:uq_review_dimension" json:"review_id"`
	DimensionID int     `gorm:"column:dimension_id;uniqueIndex:uq_review_dimension" json:"dimension_id"`
	Score       float64 `gorm:"column:score" json:"score"`
	Comment     string  `gorm:"column:comment" json:"comment"`
}

func (Review) TableName() string {
	return "reviews"
}

func (ReviewDetail) TableName() string {
	return "review_details"
}
