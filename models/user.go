package models

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of account roles. Role checks go through the
// methods below rather than comparing raw strings at call sites.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTeacher  Role = "teacher"
	RoleReviewer Role = "reviewer"
)

// ParseRole maps a request-supplied role string onto the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleReviewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleReviewer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// IsAdmin reports whether the role bypasses event visibility entirely.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// CanUpload reports whether the role may upload documents.
func (r Role) CanUpload() bool {
	switch r {
	case RoleAdmin, RoleTeacher:
		return true
	case RoleReviewer:
		return false
	}
	return false
}

// CanReview reports whether the role may submit review scores.
func (r Role) CanReview() bool {
	switch r {
	case RoleReviewer:
		return true
	case RoleAdmin, RoleTeacher:
		return false
	}
	return false
}

type User struct {
	UserID       int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username     string     `gorm:"column:username;unique" json:"username"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	Role         Role       `gorm:"column:role" json:"role"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword stores a bcrypt hash of the given plaintext password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
