package dto

import (
	"time"

	"work-diary/backend/internal/model"
)

// CreateEntryRequest is the POST /work-diary/entry body. Any status supplied by
// the client is ignored; entries are always created pending.
type CreateEntryRequest struct {
	Date            string  `json:"date"           binding:"required"`
	Activities      string  `json:"activities"     binding:"required"`
	Task            string  `json:"task"           binding:"required"`
	Hours           float64 `json:"hours"          binding:"required"`
	TotalStudents   int     `json:"total_students" binding:"min=0"`
	Present         int     `json:"present"        binding:"min=0"`
	Absent          int     `json:"absent"         binding:"min=0"`
}

// EntryResponse mirrors one stored work-diary entry.
type EntryResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Date            time.Time `json:"date"`
	Activities      string    `json:"activities"`
	Task            string    `json:"task"`
	Hours           float64   `json:"hours"`
	TotalStudents   int       `json:"total_students"`
	PresentStudents int       `json:"present_students"`
	AbsentStudents  int       `json:"absent_students"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateEntryResponse is the 201 body.
type CreateEntryResponse struct {
	Success bool          `json:"success"`
	Data    EntryResponse `json:"data"`
}

// EntryListResponse is the GET /work-diary/entry body.
type EntryListResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    []EntryResponse `json:"data"`
}

// ── admin review ──

// ReportEntry is one entry annotated with its owner for admin review.
type ReportEntry struct {
	EntryResponse
	Faculty UserResponse `json:"faculty"`
}

// ReportsResponse groups entries by the owner's department.
type ReportsResponse map[string][]ReportEntry

// UpdateStatusRequest is the PUT /admin/reports body. Resend requests a "needs
// revision" notification instead of the plain status-change one.
type UpdateStatusRequest struct {
	EntryID string `json:"entry_id" binding:"required"`
	Status  string `json:"status"   binding:"required"`
	Resend  bool   `json:"resend"`
}

// UpdateStatusResponse is the 200 body.
type UpdateStatusResponse struct {
	Success bool          `json:"success"`
	Data    EntryResponse `json:"data"`
}

// ToEntryResponse converts a model row to its response shape.
func ToEntryResponse(e model.WorkDiaryEntry) EntryResponse {
	return EntryResponse{
		ID:              e.EntryID,
		UserID:          e.UserID,
		Date:            e.Date,
		Activities:      e.Activities,
		Task:            e.Task,
		Hours:           e.Hours,
		TotalStudents:   e.TotalStudents,
		PresentStudents: e.PresentStudents,
		AbsentStudents:  e.AbsentStudents,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
	}
}
