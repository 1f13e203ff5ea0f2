package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
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
		&User{}, &StaffMember{}, &Zone{}, &Task{}, &Template{}, &TemplateTask{},
	))
	return db
}

func TestInstantiateTemplateDefaultsEmptyDays(t *testing.T) {
	db := testDB(t)

	owner := User{Name: "HQ", Email: "hq@test.com", Permission: 4}
	require.NoError(t, db.Create(&owner).Error)

	template := Template{
		UserID: owner.ID,
		Name:   "Standard Kitchen",
		Tasks: []TemplateTask{
			{Title: "Clean fryer", LimitTime: "14:00"},
		},
	}
	require.NoError(t, db.Create(&template).Error)

	zone, err := InstantiateTemplate(db, template.ID, owner.ID, nil)
	require.NoError(t, err)
	require.Len(t, zone.Tasks, 1)

	// The empty day list is resolved to all seven days when the task is
	// created, not when it is queried.
	var stored Task
	require.NoError(t, db.First(&stored, zone.Tasks[0].ID).Error)
	assert.ElementsMatch(t,
		[]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		stored.DayList())
}

func TestInstantiateTemplateKeepsExplicitDays(t *testing.T) {
	db := testDB(t)

	owner := User{Name: "HQ", Email: "hq@test.com", Permission: 4}
	require.NoError(t, db.Create(&owner).Error)

	weekly := Task{}
	weekly.SetDays([]string{"Mon", "Thu"})
	template := Template{
		UserID: owner.ID,
		Name:   "Weekly Deep Clean",
		Tasks: []TemplateTask{
			{Title: "Deep clean", Days: weekly.Days},
		},
	}
	require.NoError(t, db.Create(&template).Error)

	zone, err := InstantiateTemplate(db, template.ID, owner.ID, nil)
	require.NoError(t, err)
	require.Len(t, zone.Tasks, 1)
	assert.ElementsMatch(t, []string{"Mon", "Thu"}, zone.Tasks[0].DayList())
}

func TestInstantiateTemplateNotFound(t *testing.T) {
	db := testDB(t)
	_, err := InstantiateTemplate(db, 42, 1, nil)
	assert.Error(t, err)
}

func TestTaskDayListRoundTrip(t *testing.T) {
	var task Task
	assert.Empty(t, task.DayList())

	task.SetDays([]string{"Mon", "Wed"})
	assert.Equal(t, []string{"Mon", "Wed"}, task.DayList())
}
