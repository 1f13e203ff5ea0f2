package Reports

import (
	"log"
	"time"

	"gorm.io/gorm"

	"golang.org/x/exp/slices"

	"Vigil/Clock"
	"Vigil/Models"
	"Vigil/Schedule"
)

// TaskRow is one due task's outcome on the report date. EvidenceStatus
// carries the submission's own ON_TIME/DELAYED/ISSUE_REPORTED verdict when
// a row exists; Status is the day outcome (COMPLETED/PENDING/MISSED).
type TaskRow struct {
	TaskID          uint       `json:"task_id"`
	ZoneID          uint       `json:"zone_id"`
	ZoneName        string     `json:"zone_name"`
	Title           string     `json:"title"`
	LimitTime       string     `json:"limit_time"`
	Status          string     `json:"status"`
	EvidenceID      *uint      `json:"evidence_id"`
	EvidenceStatus  string     `json:"evidence_status"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	AssignedStaffID *uint      `json:"assigned_staff_id"`
	AssignedStaff   string     `json:"assigned_staff"`
	SubmitterID     *uint      `json:"submitter_id"`
	Submitter       string     `json:"submitter"`
	SubmitterPhoto  string     `json:"submitter_photo"`
}

type DailyReport struct {
	Date      string    `json:"date"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Pending   int       `json:"pending"`
	Missed    int       `json:"missed"`
	Rows      []TaskRow `json:"rows"`
}

// BuildDaily assembles the full compliance picture for one calendar date.
// The evidence window is plain midnight-to-midnight of the date string,
// deliberately distinct from the tenant-shifted window the live "today"
// queries use. A lookup failure degrades to an empty zero report so the
// dashboard never breaks on data issues.
func BuildDaily(db *gorm.DB, owner Models.User, date string, branchID *uint, nowUTC time.Time) DailyReport {
	report := DailyReport{Date: date, Rows: []TaskRow{}}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		log.Printf("Report date %q unparseable: %v", date, err)
		return report
	}
	windowStart := day
	windowEnd := day.Add(24 * time.Hour)
	weekday := Clock.WeekdayLabels[day.Weekday()]
	localNow := Clock.LocalNow(nowUTC, owner.UTCOffsetHours)

	zones, err := reportZones(db, owner, branchID)
	if err != nil {
		log.Printf("Report zone lookup failed: %v", err)
		return report
	}

	var taskIDs []uint
	for _, zone := range zones {
		for _, task := range zone.Tasks {
			if Schedule.IsDue(task, weekday) {
				taskIDs = append(taskIDs, task.ID)
			}
		}
	}

	evidenceByTask, err := firstEvidencePerTask(db, taskIDs, windowStart, windowEnd)
	if err != nil {
		log.Printf("Report evidence lookup failed: %v", err)
		return report
	}

	staffNames, staffPhotos := staffDirectory(db, owner)

	for _, zone := range zones {
		tasks := Schedule.DueTasks(zone.Tasks, weekday)
		slices.SortStableFunc(tasks, func(a, b Models.Task) int {
			return Clock.SortKey(a.LimitTime) - Clock.SortKey(b.LimitTime)
		})
		for _, task := range tasks {
			row := TaskRow{
				TaskID:    task.ID,
				ZoneID:    zone.ID,
				ZoneName:  zone.Name,
				Title:     task.Title,
				LimitTime: task.LimitTime,
			}

			assignedID := task.StaffID
			if assignedID == nil {
				assignedID = zone.StaffID
			}
			if assignedID != nil {
				row.AssignedStaffID = assignedID
				row.AssignedStaff = staffNames[*assignedID]
			}

			if ev, ok := evidenceByTask[task.ID]; ok {
				evID := ev.ID
				submittedAt := ev.SubmittedAt
				row.Status = Models.StatusCompleted
				row.EvidenceID = &evID
				row.EvidenceStatus = ev.Status
				row.SubmittedAt = &submittedAt
				if ev.StaffID != 0 {
					submitterID := ev.StaffID
					row.SubmitterID = &submitterID
					row.Submitter = staffNames[submitterID]
					row.SubmitterPhoto = staffPhotos[submitterID]
				}
			} else {
				row.Status = Schedule.EvaluateMissing(day, task.LimitTime, localNow)
			}

			report.Rows = append(report.Rows, row)
			report.Total++
			switch row.Status {
			case Models.StatusCompleted:
				report.Completed++
			case Models.StatusPending:
				report.Pending++
			case Models.StatusMissed:
				report.Missed++
			}
		}
	}

	return report
}

// reportZones returns the tenant's zones with tasks, optionally narrowed to
// one branch account.
func reportZones(db *gorm.DB, owner Models.User, branchID *uint) ([]Models.Zone, error) {
	tenantIDs, err := Models.BranchIDs(db, owner)
	if err != nil {
		return nil, err
	}
	if branchID != nil {
		if !slices.Contains(tenantIDs, *branchID) {
			return []Models.Zone{}, nil
		}
		tenantIDs = []uint{*branchID}
	}

	var zones []Models.Zone
	if err := db.Preload("Tasks").Where("user_id IN ?", tenantIDs).Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// firstEvidencePerTask fetches the day's evidence for the given tasks and
// keeps the earliest submission per task. Duplicate rows per task/day are
// possible; picking the earliest makes the winner deterministic instead of
// depending on storage read order.
func firstEvidencePerTask(db *gorm.DB, taskIDs []uint, start, end time.Time) (map[uint]Models.Evidence, error) {
	matches := make(map[uint]Models.Evidence, len(taskIDs))
	if len(taskIDs) == 0 {
		return matches, nil
	}

	var rows []Models.Evidence
	err := db.Where("task_id IN ? AND submitted_at >= ? AND submitted_at < ?", taskIDs, start, end).
		Order("submitted_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, ev := range rows {
		if _, seen := matches[ev.TaskID]; !seen {
			matches[ev.TaskID] = ev
		}
	}
	return matches, nil
}

// staffDirectory maps staff ids to display names and photos for every staff
// member across the owner's tenants.
func staffDirectory(db *gorm.DB, owner Models.User) (map[uint]string, map[uint]string) {
	names := make(map[uint]string)
	photos := make(map[uint]string)

	tenantIDs, err := Models.BranchIDs(db, owner)
	if err != nil {
		return names, photos
	}

	var staff []Models.StaffMember
	if err := db.Where("user_id IN ?", tenantIDs).Find(&staff).Error; err != nil {
		return names, photos
	}
	for _, member := range staff {
		names[member.ID] = member.Name
		photos[member.ID] = member.PhotoURL
	}
	return names, photos
}
