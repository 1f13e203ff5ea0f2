package Access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Vigil/Models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&Models.User{}, &Models.StaffMember{}, &Models.Zone{}, &Models.Task{},
	))
	return db
}

func everyDayTask(zoneID uint, title string, staffID *uint) Models.Task {
	task := Models.Task{ZoneID: zoneID, Title: title, StaffID: staffID}
	task.SetDays([]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"})
	return task
}

func TestResolvePriority(t *testing.T) {
	user := Models.User{}
	staff := Models.StaffMember{}

	assert.IsType(t, StaffActor{}, Resolve(&user, &staff))
	assert.IsType(t, OwnerActor{}, Resolve(&user, nil))
	assert.Nil(t, Resolve(nil, nil))
}

func TestStaffManagerSeesAllZoneTasks(t *testing.T) {
	db := testDB(t)

	owner := Models.User{Name: "HQ", Email: "hq@test.com", Permission: 4}
	require.NoError(t, db.Create(&owner).Error)
	manager := Models.StaffMember{UserID: owner.ID, Name: "Ana", IsActive: true}
	require.NoError(t, db.Create(&manager).Error)

	kitchen := Models.Zone{UserID: owner.ID, Name: "Kitchen", StaffID: &manager.ID}
	require.NoError(t, db.Create(&kitchen).Error)
	for _, title := range []string{"Clean fryer", "Check fridge temp", "Mop floor"} {
		task := everyDayTask(kitchen.ID, title, nil)
		require.NoError(t, db.Create(&task).Error)
	}

	zones, err := StaffActor{Staff: manager}.VisibleZones(db, "Mon")
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "Kitchen", zones[0].Name)
	assert.Len(t, zones[0].Tasks, 3)
}

func TestStaffWithAssignedTasksSeesOnlyThose(t *testing.T) {
	db := testDB(t)

	owner := Models.User{Name: "HQ", Email: "hq@test.com", Permission: 4}
	require.NoError(t, db.Create(&owner).Error)
	manager := Models.StaffMember{UserID: owner.ID, Name: "Ana", IsActive: true}
	helper := Models.StaffMember{UserID: owner.ID, Name: "Luis", IsActive: true}
	require.NoError(t, db.Create(&manager).Error)
	require.NoError(t, db.Create(&helper).Error)

	restroom := Models.Zone{UserID: owner.ID, Name: "Restroom", StaffID: &manager.ID}
	require.NoError(t, db.Create(&restroom).Error)

	assigned1 := everyDayTask(restroom.ID, "Restock soap", &helper.ID)
	assigned2 := everyDayTask(restroom.ID, "Empty bins", &helper.ID)
	unassigned := everyDayTask(restroom.ID, "Deep clean", nil)
	require.NoError(t, db.Create(&assigned1).Error)
	require.NoError(t, db.Create(&assigned2).Error)
	require.NoError(t, db.Create(&unassigned).Error)

	zones, err := StaffActor{Staff: helper}.VisibleZones(db, "Mon")
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "Restroom", zones[0].Name)
	require.Len(t, zones[0].Tasks, 2)
	for _, task := range zones[0].Tasks {
		assert.Equal(t, helper.ID, *task.StaffID)
	}

	// The manager still sees everything, including the helper's tasks.
	zones, err = StaffActor{Staff: manager}.VisibleZones(db, "Mon")
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Len(t, zones[0].Tasks, 3)
}

func TestManagedZoneNotDuplicatedByAssignments(t *testing.T) {
	db := testDB(t)

	owner := Models.User{Name: "HQ", Email: "hq@test.com", Permission: 4}
	require.NoError(t, db.Create(&owner).Error)
	manager := Models.StaffMember{UserID: owner.ID, Name: "Ana", IsActive: true}
	require.NoError(t, db.Create(&manager).Error)

	zone := Models.Zone{UserID: owner.ID, Name: "Kitchen", StaffID: &manager.ID}
	require.NoError(t, db.Create(&zone).Error)
	// A task assigned to the manager inside their own zone must not fetch
	// the zone a second time with a narrower task subset.
	task := everyDayTask(zone.ID, "Clean fryer", &manager.ID)
	other := everyDayTask(zone.ID, "Mop floor", nil)
	require.NoError(t, db.Create(&task).Error)
	require.NoError(t, db.Create(&other).Error)

	zones, err := StaffActor{Staff: manager}.VisibleZones(db, "Mon")
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Len(t, zones[0].Tasks, 2)
}

func TestOwnerSeesBranchZones(t *testing.T) {
	db := testDB(t)

	owner := Models.User{Name: "HQ", Email: "hq@test.com", Permission: 4}
	require.NoError(t, db.Create(&owner).Error)
	branch := Models.User{Name: "Branch North", Email: "north@test.com", Permission: 3, ParentID: &owner.ID}
	require.NoError(t, db.Create(&branch).Error)

	hqZone := Models.Zone{UserID: owner.ID, Name: "HQ Lobby"}
	branchZone := Models.Zone{UserID: branch.ID, Name: "North Kitchen"}
	require.NoError(t, db.Create(&hqZone).Error)
	require.NoError(t, db.Create(&branchZone).Error)

	zones, err := OwnerActor{User: owner}.VisibleZones(db, "Mon")
	require.NoError(t, err)
	assert.Len(t, zones, 2)

	// The branch account only sees its own zone.
	zones, err = OwnerActor{User: branch}.VisibleZones(db, "Mon")
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "North Kitchen", zones[0].Name)
}

func TestVisibleTasksFilteredAndSorted(t *testing.T) {
	db := testDB(t)

	owner := Models.User{Name: "HQ", Email: "hq@test.com", Permission: 4}
	require.NoError(t, db.Create(&owner).Error)
	zone := Models.Zone{UserID: owner.ID, Name: "Kitchen"}
	require.NoError(t, db.Create(&zone).Error)

	earlyMorning := Models.Task{ZoneID: zone.ID, Title: "Night close", LimitTime: "00:30"}
	earlyMorning.SetDays([]string{"Mon"})
	evening := Models.Task{ZoneID: zone.ID, Title: "Evening check", LimitTime: "23:00"}
	evening.SetDays([]string{"Mon"})
	untimed := Models.Task{ZoneID: zone.ID, Title: "Whenever"}
	untimed.SetDays([]string{"Mon"})
	tuesdayOnly := Models.Task{ZoneID: zone.ID, Title: "Tuesday task"}
	tuesdayOnly.SetDays([]string{"Tue"})
	for _, task := range []*Models.Task{&earlyMorning, &evening, &untimed, &tuesdayOnly} {
		require.NoError(t, db.Create(task).Error)
	}

	zones, err := OwnerActor{User: owner}.VisibleZones(db, "Mon")
	require.NoError(t, err)
	require.Len(t, zones, 1)
	require.Len(t, zones[0].Tasks, 3)

	// 23:00 sorts before 00:30 in the shift-day ordering; untimed last.
	assert.Equal(t, "Evening check", zones[0].Tasks[0].Title)
	assert.Equal(t, "Night close", zones[0].Tasks[1].Title)
	assert.Equal(t, "Whenever", zones[0].Tasks[2].Title)
}
