package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Work-diary entry statuses. Normalized to lowercase on every write.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s (case-insensitive) is one of the three
// allowed statuses.
func ValidStatus(s string) bool {
	switch strings.ToLower(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// WorkDiaryEntry is one day's activity/attendance report, table
// "work_diary_entries". Created by faculty submission; only the status
// field is mutated afterwards, never deleted.
type WorkDiaryEntry struct {
	EntryID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	UserID          string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Date            time.Time `gorm:"not null"                                       json:"date"`
	Activities      string    `gorm:"type:text;not null"                             json:"activities"`
	Task            string    `gorm:"type:text;not null"                             json:"task"`
	Hours           float64   `gorm:"not null"                                       json:"hours"`
	TotalStudents   int       `gorm:"not null"                                       json:"total_students"`
	PresentStudents int       `gorm:"not null"                                       json:"present_students"`
	AbsentStudents  int       `gorm:"not null"                                       json:"absent_students"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (WorkDiaryEntry) TableName() string { return "work_diary_entries" }

// BeforeSave keeps the status lowercase regardless of what callers set.
func (e *WorkDiaryEntry) BeforeSave(*gorm.DB) error {
	e.Status = strings.ToLower(e.Status)
	return nil
}
