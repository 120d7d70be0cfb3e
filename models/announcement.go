package models

import "time"

// Announcement is admin-authored notice content shown to all users.
type Announcement struct {
	AnnouncementID int        `gorm:"primaryKey;column:announcement_id" json:"announcement_id"`
	Title          string     `gorm:"column:title" json:"title"`
	Content        string     `gorm:"column:content" json:"content"`
	CreatedBy      int        `gorm:"column:created_by" json:"created_by"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// Instruction is admin-authored guidance text, kept separate from
// announcements so each can be managed on its own screen.
type Instruction struct {
	InstructionID int        `gorm:"primaryKey;column:instruction_id" json:"instruction_id"`
	Title         string     `gorm:"column:title" json:"title"`
	Content       string     `gorm:"column:content" json:"content"`
	CreatedBy     int        `gorm:"column:created_by" json:"created_by"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}

func (Instruction) TableName() string {
	return "instructions"
}
