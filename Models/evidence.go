package Models

import (
	"time"

	"gorm.io/gorm"
)

// Closed status vocabulary for a task-day's compliance outcome. The first
// three are written on Evidence rows; PENDING and MISSED only ever appear
// on report rows, computed lazily at read time.
const (
	StatusOnTime        = "ON_TIME"
	StatusDelayed       = "DELAYED"
	StatusIssueReported = "ISSUE_REPORTED"
	StatusCompleted     = "COMPLETED"
	StatusPending       = "PENDING"
	StatusMissed        = "MISSED"
)

// Evidence is one immutable compliance submission for one task on one day.
// CapturedAt is the client-reported capture instant; SubmittedAt is server
// receipt time and decides which day bucket the row belongs to. Status is
// fixed at write time and never recomputed, even if the task's limit time
// changes later. FileURL may be empty for a text-only issue report.
type Evidence struct {
	gorm.Model
	TaskID      uint      `json:"task_id" gorm:"not null;index"`
	StaffID     uint      `json:"staff_id" gorm:"index"`
	FileURL     string    `json:"file_url"`
	CapturedAt  time.Time `json:"captured_at"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"index"`
	Status      string    `json:"status" gorm:"not null"`
	Comments    string    `json:"comments" gorm:"type:text"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
}
