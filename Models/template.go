package Models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"Vigil/Clock"
)

// Template is a read-only blueprint used to bulk-instantiate a zone and its
// tasks for a new branch. Templates never participate in recurrence or
// reporting; they exist at creation time only.
type Template struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`

	Tasks []TemplateTask `json:"tasks" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

type TemplateTask struct {
	gorm.Model
	TemplateID   uint           `json:"template_id" gorm:"not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description"`
	LimitTime    string         `json:"limit_time"`
	EvidenceType string         `json:"evidence_type" gorm:"default:BOTH"`
	Days         datatypes.JSON `json:"days"`
}

// InstantiateTemplate creates a zone for ownerID from the template, copying
// every template task. A template task with no weekday set gets all seven
// days written onto the new task here, at creation time, so an explicitly
// empty list stays distinguishable from "not yet set" in queries.
func InstantiateTemplate(db *gorm.DB, templateID uint, ownerID uint, staffID *uint) (*Zone, error) {
	var template Template
	if err := db.Preload("Tasks").First(&template, templateID).Error; err != nil {
		return nil, err
	}

	zone := Zone{
		UserID:      ownerID,
		Name:        template.Name,
		Description: template.Description,
		StaffID:     staffID,
	}

	for _, blueprint := range template.Tasks {
		task := Task{
			Title:        blueprint.Title,
			Description:  blueprint.Description,
			LimitTime:    blueprint.LimitTime,
			EvidenceType: blueprint.EvidenceType,
			Days:         blueprint.Days,
		}
		if len(task.DayList()) == 0 {
			task.SetDays(Clock.WeekdayLabels[:])
		}
		zone.Tasks = append(zone.Tasks, task)
	}

	if err := db.Create(&zone).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

// DayList decodes the weekday column, mirroring Task.DayList.
func (t TemplateTask) DayList() []string {
	if len(t.Days) == 0 {
		return nil
	}
	var days []string
	if err := json.Unmarshal(t.Days, &days); err != nil {
		return nil
	}
	return days
}
