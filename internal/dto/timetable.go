package dto

import "work-diary/backend/pkg/sms"

// GenerateTimetableResponse is the POST /timetable/generate body.
type GenerateTimetableResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	FacultyCount int    `json:"faculty_count"`
}

// TimetableRow mirrors one scheduled class slot.
type TimetableRow struct {
	ID         string `json:"id"`
	FacultyID  string `json:"faculty_id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Subject    string `json:"subject"`
	Room       string `json:"room"`
	Department string `json:"department"`
	Semester   int    `json:"semester"`
}

// ScheduleResponse is the GET /timetable/schedule body.
type ScheduleResponse struct {
	Success bool           `json:"success"`
	Data    []TimetableRow `json:"data"`
}

// ── reminders ──

// SendReminderRequest is the POST /faculty/send-reminder body. NotificationType
// is "sms", "call" or "both"; defaults to "sms".
type SendReminderRequest struct {
	ClassID          string `json:"class_id" binding:"required"`
	NotificationType string `json:"notification_type"`
}

// ReminderDetails echoes what was sent and where.
type ReminderDetails struct {
	To     string       `json:"to"`
	Class  string       `json:"class"`
	Time   string       `json:"time"`
	Room   string       `json:"room"`
	Method string       `json:"method"`
	Result *sms.Results `json:"result"`
}

// SendReminderResponse is the 200 body.
type SendReminderResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Details ReminderDetails `json:"details"`
}
