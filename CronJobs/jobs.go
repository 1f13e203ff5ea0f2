package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"Vigil/Cache"
	"Vigil/Clock"
	"Vigil/Models"
	"Vigil/Reports"
)

// DashboardRefresher rebuilds every cached account dashboard on a fixed
// interval so MISSED transitions become visible without anyone writing.
// Misses are still computed lazily at read time; this job only keeps the
// cached views from going too stale between writes.
type DashboardRefresher struct {
	cronScheduler  *cron.Cron
	db             *gorm.DB
	runImmediately bool
	jobID          cron.EntryID
}

// NewDashboardRefresher creates a refresher over the given database handle.
func NewDashboardRefresher(db *gorm.DB, runImmediately bool) *DashboardRefresher {
	return &DashboardRefresher{
		cronScheduler:  cron.New(cron.WithSeconds()),
		db:             db,
		runImmediately: runImmediately,
	}
}

// Start schedules the refresh every five minutes.
func (r *DashboardRefresher) Start() error {
	var err error
	r.jobID, err = r.cronScheduler.AddFunc("0 */5 * * * *", func() {
		log.Println("Running scheduled dashboard refresh")
		r.runRefresh()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	r.cronScheduler.Start()
	log.Println("Dashboard refresh scheduler started - will run every 5 minutes")

	if r.runImmediately {
		r.runRefresh()
	}
	return nil
}

// Stop terminates the refresher.
func (r *DashboardRefresher) Stop() {
	if r.cronScheduler != nil {
		r.cronScheduler.Stop()
		log.Println("Dashboard refresh scheduler stopped")
	}
}

// UpdateSchedule changes the refresh schedule.
// Format: "0 */5 * * * *" = every five minutes.
func (r *DashboardRefresher) UpdateSchedule(schedule string) error {
	r.cronScheduler.Remove(r.jobID)

	var err error
	r.jobID, err = r.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled dashboard refresh")
		r.runRefresh()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Dashboard refresh schedule updated to: %s\n", schedule)
	return nil
}

// RunManualRefresh executes a refresh outside the schedule.
func (r *DashboardRefresher) RunManualRefresh() {
	log.Println("Running manual dashboard refresh")
	r.runRefresh()
}

// freshEnough is how young a cached view must be for the refresher to
// leave it alone. Entries rebuilt moments ago by a read miss are skipped.
const freshEnough = time.Minute

// runRefresh rebuilds today's report for every account with a cached view.
func (r *DashboardRefresher) runRefresh() {
	nowUTC := time.Now().UTC()
	refreshed := 0

	for _, accountID := range Cache.Views.Accounts() {
		if Cache.Views.Fresh(accountID, freshEnough) {
			continue
		}

		var account Models.User
		if err := r.db.First(&account, accountID).Error; err != nil {
			Cache.Views.Invalidate(accountID)
			continue
		}

		date := Clock.LocalDate(nowUTC, account.UTCOffsetHours)
		report := Reports.BuildDaily(r.db, account, date, nil, nowUTC)
		Cache.Views.Set(accountID, report)
		refreshed++
	}

	log.Printf("Dashboard refresh completed for %d accounts\n", refreshed)
}
