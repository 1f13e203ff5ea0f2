package Models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Evidence type accepted for a task.
const (
	EvidencePhoto = "PHOTO"
	EvidenceVideo = "VIDEO"
	EvidenceBoth  = "BOTH"
)

// Zone is a physical or organizational area (e.g. "Kitchen") owned by
// exactly one tenant account. StaffID, when set, is the zone's manager.
type Zone struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	StaffID     *uint  `json:"staff_id" gorm:"index"`

	Tasks []Task `json:"tasks" gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE"`
}

// Task is a recurring checklist item inside a zone. LimitTime is a
// tenant-local "HH:MM" wall-clock deadline, never an absolute instant.
// Days holds three-letter weekday labels as a JSON array; StaffID overrides
// the zone manager for this task only.
type Task struct {
	gorm.Model
	ZoneID       uint           `json:"zone_id" gorm:"not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description"`
	LimitTime    string         `json:"limit_time"`
	EvidenceType string         `json:"evidence_type" gorm:"default:BOTH"`
	Days         datatypes.JSON `json:"days"`
	StaffID      *uint          `json:"staff_id" gorm:"index"`
}

// DayList decodes the JSON weekday array. A nil or malformed column
// decodes to an empty list.
func (t Task) DayList() []string {
	if len(t.Days) == 0 {
		return nil
	}
	var days []string
	if err := json.Unmarshal(t.Days, &days); err != nil {
		return nil
	}
	return days
}

// SetDays encodes the weekday labels into the JSON column.
func (t *Task) SetDays(days []string) {
	encoded, err := json.Marshal(days)
	if err != nil {
		return
	}
	t.Days = datatypes.JSON(encoded)
}
