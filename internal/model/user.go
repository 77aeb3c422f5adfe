package model

import "time"

// User roles. Registration enforces at application level that at most
// one admin row exists.
const (
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// User covers faculty members and the administrator, table "users".
type User struct {
	UserID               string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name                 string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Email                string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash         string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role                 string     `gorm:"type:varchar(20);not null;default:'faculty'"    json:"role"`
	Department           string     `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	Phone                string     `gorm:"type:varchar(20);not null;default:''"           json:"phone,omitempty"`
	ResetPasswordToken   *string    `gorm:"type:varchar(64)"                               json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	BaseModel
}

func (User) TableName() string { return "users" }
