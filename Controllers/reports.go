package Controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Vigil/Cache"
	"Vigil/Clock"
	"Vigil/Models"
	"Vigil/Reports"
)

// reportOwner resolves which account a report is built for: branch
// accounts report over themselves, owners over the whole organization.
func reportOwner(c *fiber.Ctx) (Models.User, bool) {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return Models.User{}, false
	}
	return user, true
}

// GetDailyReport builds the compliance report for one date, optionally
// narrowed to a single branch with ?branch_id=.
func GetDailyReport(c *fiber.Ctx) error {
	user, ok := reportOwner(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	now := time.Now().UTC()
	date := c.Query("date")
	if date == "" {
		date = Clock.LocalDate(now, user.UTCOffsetHours)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	var branchID *uint
	if raw := c.Query("branch_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid branch_id"})
		}
		id := uint(parsed)
		branchID = &id
	}

	report := Reports.BuildDaily(Models.DB, user, date, branchID, now)
	return c.JSON(report)
}

// GetLeaderboard folds the day's report into per-staff standings.
func GetLeaderboard(c *fiber.Ctx) error {
	user, ok := reportOwner(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	now := time.Now().UTC()
	date := c.Query("date")
	if date == "" {
		date = Clock.LocalDate(now, user.UTCOffsetHours)
	}

	report := Reports.BuildDaily(Models.DB, user, date, nil, now)
	return c.JSON(Reports.Leaderboard(report.Rows))
}

// GetDashboard serves today's report from the refreshable cache, building
// it once on a miss. The view is keyed to the calling account, so a branch
// session only ever sees a report over its own zones and branches. Readers
// tolerate the staleness window; writes and the cron job keep it current.
func GetDashboard(c *fiber.Ctx) error {
	user, ok := reportOwner(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	if entry, ok := Cache.Views.Get(user.ID); ok {
		return c.JSON(fiber.Map{
			"report":       entry.Report,
			"refreshed_at": entry.RefreshedAt,
		})
	}

	now := time.Now().UTC()
	report := Reports.BuildDaily(Models.DB, user, Clock.LocalDate(now, user.UTCOffsetHours), nil, now)
	Cache.Views.Set(user.ID, report)

	return c.JSON(fiber.Map{
		"report":       report,
		"refreshed_at": time.Now().UTC(),
	})
}

// ExportDailyReport streams the day's report as an .xlsx download.
func ExportDailyReport(c *fiber.Ctx) error {
	user, ok := reportOwner(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	now := time.Now().UTC()
	date := c.Query("date")
	if date == "" {
		date = Clock.LocalDate(now, user.UTCOffsetHours)
	}

	report := Reports.BuildDaily(Models.DB, user, date, nil, now)
	buf, err := Reports.ExportDailyExcel(report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report file"})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="compliance-%s.xlsx"`, date))
	return c.Send(buf.Bytes())
}
