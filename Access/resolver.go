package Access

import (
	"gorm.io/gorm"

	"golang.org/x/exp/slices"

	"Vigil/Clock"
	"Vigil/Models"
	"Vigil/Schedule"
)

// Actor is the closed set of identities the engine resolves visibility for.
// Each variant answers the same question: which zones, with which tasks,
// can this identity see on the given weekday.
type Actor interface {
	VisibleZones(db *gorm.DB, weekday string) ([]Models.Zone, error)
}

// StaffActor is a session bound to a member identity, either an online team
// member or an offline PIN operator. Both draw ids from the same table.
type StaffActor struct {
	Staff Models.StaffMember
}

// OwnerActor is an authenticated tenant account with no member binding.
type OwnerActor struct {
	User Models.User
}

// Resolve dispatches over the variant set in priority order: a bound staff
// identity wins over the plain account; no identity resolves to nil.
func Resolve(user *Models.User, staff *Models.StaffMember) Actor {
	if staff != nil {
		return StaffActor{Staff: *staff}
	}
	if user != nil {
		return OwnerActor{User: *user}
	}
	return nil
}

// VisibleZones for a staff member is the union of two independent fetches:
// zones where the member is the assigned manager, carrying every task, and
// zones where the member only has individually assigned tasks, carrying
// only those. Managed zones are excluded from the second fetch so a zone
// never appears twice with conflicting task subsets.
func (a StaffActor) VisibleZones(db *gorm.DB, weekday string) ([]Models.Zone, error) {
	var managed []Models.Zone
	if err := db.Preload("Tasks").Where("staff_id = ?", a.Staff.ID).Find(&managed).Error; err != nil {
		return nil, err
	}

	managedIDs := make(map[uint]bool, len(managed))
	for _, zone := range managed {
		managedIDs[zone.ID] = true
	}

	var assignedTasks []Models.Task
	if err := db.Where("staff_id = ?", a.Staff.ID).Find(&assignedTasks).Error; err != nil {
		return nil, err
	}

	tasksByZone := make(map[uint][]Models.Task)
	for _, task := range assignedTasks {
		if managedIDs[task.ZoneID] {
			continue
		}
		tasksByZone[task.ZoneID] = append(tasksByZone[task.ZoneID], task)
	}

	assignedZoneIDs := make([]uint, 0, len(tasksByZone))
	for zoneID := range tasksByZone {
		assignedZoneIDs = append(assignedZoneIDs, zoneID)
	}
	slices.Sort(assignedZoneIDs)

	zones := managed
	for _, zoneID := range assignedZoneIDs {
		var zone Models.Zone
		if err := db.First(&zone, zoneID).Error; err != nil {
			continue
		}
		zone.Tasks = tasksByZone[zoneID]
		zones = append(zones, zone)
	}

	return filterAndOrder(zones, weekday), nil
}

// VisibleZones for an owner is everything: zones owned directly by the
// account plus zones owned by any branch account under it.
func (a OwnerActor) VisibleZones(db *gorm.DB, weekday string) ([]Models.Zone, error) {
	tenantIDs, err := Models.BranchIDs(db, a.User)
	if err != nil {
		return nil, err
	}

	var zones []Models.Zone
	if err := db.Preload("Tasks").Where("user_id IN ?", tenantIDs).Find(&zones).Error; err != nil {
		return nil, err
	}

	return filterAndOrder(zones, weekday), nil
}

// filterAndOrder keeps only tasks due on weekday and sorts them by the
// shift-day ordering key, untimed tasks last.
func filterAndOrder(zones []Models.Zone, weekday string) []Models.Zone {
	for i := range zones {
		due := Schedule.DueTasks(zones[i].Tasks, weekday)
		slices.SortStableFunc(due, func(a, b Models.Task) int {
			return Clock.SortKey(a.LimitTime) - Clock.SortKey(b.LimitTime)
		})
		zones[i].Tasks = due
	}
	return zones
}
