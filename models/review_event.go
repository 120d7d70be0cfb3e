package models

import "time"

// ReviewEvent is a time-boxed review campaign. All three window instants are
// stored in UTC and are optional; an unset bound imposes no restriction.
// TemplateID is fixed at creation and never changes afterwards.
type ReviewEvent struct {
	EventID        int        `gorm:"primaryKey;column:event_id" json:"event_id"`
	Name           string     `gorm:"column:name;unique" json:"name"`
	Description    string     `gorm:"column:description" json:"description"`
	TemplateID     int        `gorm:"column:template_id" json:"template_id"`
	StartTime      *time.Time `gorm:"column:start_time" json:"start_time,omitempty"`
	EndTime        *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	UploadDeadline *time.Time `gorm:"column:upload_deadline" json:"upload_deadline,omitempty"`
	IsActive       bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`

	Template *ScoringTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
}

// EventTeacher is a whitelist row limiting which teachers see an event.
// Zero rows for an event means every teacher sees it; one or more rows switch
// the event into whitelist mode.
type EventTeacher struct {
	ID        int `gorm:"primaryKey;column:id" json:"id"`
	EventID   int `gorm:"column:event_id;uniqueIndex:uq_event_teacher" json:"event_id"`
	TeacherID int `gorm:"column:teacher_id;uniqueIndex:uq_event_teacher" json:"teacher_id"`

	Teacher *User `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

// EventReviewer mirrors EventTeacher for the reviewer role, with the same
// empty-means-all semantics.
type EventReviewer struct {
	ID         int `gorm:"primaryKey;column:id" json:"id"`
	EventID    int `gorm:"column:event_id;uniqueIndex:uq_event_reviewer" json:"event_id"`
	ReviewerID int `gorm:"column:reviewer_id;uniqueIndex:uq_event_reviewer" json:"reviewer_id"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// ReviewerTeacher optionally narrows which teachers' documents a reviewer
// sees. It layers on top of the event whitelist; a reviewer with zero
// assignments sees documents from every teacher.
type ReviewerTeacher struct {
	ID         int `gorm:"primaryKey;column:id" json:"id"`
	ReviewerID int `gorm:"column:reviewer_id;uniqueIndex:uq_reviewer_teacher" json:"reviewer_id"`
	TeacherID  int `gorm:"column:teacher_id;uniqueIndex:uq_reviewer_teacher" json:"teacher_id"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Teacher  *User `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (ReviewEvent) TableName() string {
	return "review_events"
}

func (EventTeacher) TableName() string {
	return "event_teachers"
}

func (EventReviewer) TableName() string {
	return "event_reviewers"
}

func (ReviewerTeacher) TableName() string {
	return "reviewer_teachers"
}
