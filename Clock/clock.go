package Clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekdayLabels are the fixed three-letter labels stored on tasks, indexed
// by time.Weekday (Sunday = 0). Not locale-dependent.
var WeekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// UntimedSortKey sorts tasks without a limit time after every timed task.
const UntimedSortKey = 99999

// shiftDayStartHour is where the business's logical shift day begins: tasks
// between midnight and 05:59 belong to the tail of the previous shift, so
// they sort after the 23:00 tasks. Ordering only, never deadline math.
const shiftDayStartHour = 6

// OperationalDayBounds shifts nowUTC into the tenant's fixed-offset frame,
// truncates to that frame's calendar day, and returns the UTC instants
// bounding 00:00:00.000-23:59:59.999 of it plus the day's weekday label.
// Queries scoped with these bounds keep evidence submitted near local
// midnight in the tenant's day rather than UTC's.
func OperationalDayBounds(nowUTC time.Time, offsetHours int) (time.Time, time.Time, string) {
	offset := time.Duration(offsetHours) * time.Hour
	shifted := nowUTC.UTC().Add(offset)
	year, month, day := shifted.Date()
	localStart := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	start := localStart.Add(-offset)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end, WeekdayLabels[localStart.Weekday()]
}

// LocalNow returns nowUTC expressed in the tenant's fixed-offset wall clock.
func LocalNow(nowUTC time.Time, offsetHours int) time.Time {
	return nowUTC.UTC().Add(time.Duration(offsetHours) * time.Hour)
}

// LocalDate formats the tenant-local calendar date of nowUTC.
func LocalDate(nowUTC time.Time, offsetHours int) string {
	return LocalNow(nowUTC, offsetHours).Format("2006-01-02")
}

// ParseLimitTime parses a strict 24h "HH:MM" string.
func ParseLimitTime(limitTime string) (int, int, error) {
	parts := strings.Split(limitTime, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid limit time %q, expected HH:MM", limitTime)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, fmt.Errorf("invalid hours in limit time %q", limitTime)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("invalid minutes in limit time %q", limitTime)
	}
	return hours, minutes, nil
}

// SortKey maps a limit time to an ordering key where the day starts at
// 06:00: hours in [0,6) are remapped past midnight so a 00:30 deadline
// sorts after 23:00. Empty or malformed times sort last.
func SortKey(limitTime string) int {
	if limitTime == "" {
		return UntimedSortKey
	}
	hours, minutes, err := ParseLimitTime(limitTime)
	if err != nil {
		return UntimedSortKey
	}
	if hours < shiftDayStartHour {
		hours += 24
	}
	return hours*60 + minutes
}

// DeadlineOn reconstructs the deadline instant for a given reference time:
// the reference's own date with the hour and minute overwritten by the
// limit time. The reference must already be in the tenant's wall-clock
// frame so the comparison does not drift by the tenant's offset.
func DeadlineOn(reference time.Time, limitTime string) (time.Time, error) {
	hours, minutes, err := ParseLimitTime(limitTime)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day := reference.Date()
	return time.Date(year, month, day, hours, minutes, 0, 0, reference.Location()), nil
}
