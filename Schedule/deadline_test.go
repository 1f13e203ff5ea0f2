package Schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"Vigil/Models"
)

func TestCheckFreshness(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckFreshness(now.Add(-14*time.Minute), now))
	assert.NoError(t, CheckFreshness(now.Add(-15*time.Minute), now))
	assert.ErrorIs(t, CheckFreshness(now.Add(-16*time.Minute), now), ErrStaleCapture)

	// Clock skew in the other direction is just as suspicious.
	assert.ErrorIs(t, CheckFreshness(now.Add(16*time.Minute), now), ErrStaleCapture)
	assert.NoError(t, CheckFreshness(now.Add(10*time.Minute), now))
}

func TestEvaluateCapture(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, Models.StatusDelayed, EvaluateCapture("14:00", day.Add(14*time.Hour+time.Minute)))
	assert.Equal(t, Models.StatusOnTime, EvaluateCapture("14:00", day.Add(13*time.Hour+59*time.Minute)))
	assert.Equal(t, Models.StatusOnTime, EvaluateCapture("14:00", day.Add(14*time.Hour)))
}

func TestEvaluateCaptureNoLimitTime(t *testing.T) {
	captured := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Models.StatusOnTime, EvaluateCapture("", captured))
}

func TestEvaluateMissingPastDate(t *testing.T) {
	reportDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	localNow := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, Models.StatusMissed, EvaluateMissing(reportDate, "", localNow))
	assert.Equal(t, Models.StatusMissed, EvaluateMissing(reportDate, "23:00", localNow))
}

func TestEvaluateMissingToday(t *testing.T) {
	reportDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	before := time.Date(2026, 9, 1, 13, 30, 0, 0, time.UTC)
	assert.Equal(t, Models.StatusPending, EvaluateMissing(reportDate, "14:00", before))

	after := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, Models.StatusMissed, EvaluateMissing(reportDate, "14:00", after))

	// An untimed task stays pending for the whole day.
	assert.Equal(t, Models.StatusPending, EvaluateMissing(reportDate, "", after))
}

func TestEvaluateMissingFutureDate(t *testing.T) {
	reportDate := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	localNow := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, Models.StatusPending, EvaluateMissing(reportDate, "08:00", localNow))
}
