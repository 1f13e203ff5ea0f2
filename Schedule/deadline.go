package Schedule

import (
	"errors"
	"time"

	"Vigil/Clock"
	"Vigil/Models"
)

// CaptureTolerance is the anti-gallery window: evidence whose reported
// capture instant is further than this from server receipt time was not
// captured live and is rejected outright.
const CaptureTolerance = 15 * time.Minute

// ErrStaleCapture is user-correctable: retake the photo and resubmit.
var ErrStaleCapture = errors.New("capture time is too far from server time, evidence must be captured live")

// CheckFreshness rejects evidence manufactured from an old gallery file.
// Hard rejection, not a flag.
func CheckFreshness(capturedAt, serverNow time.Time) error {
	drift := serverNow.Sub(capturedAt)
	if drift < 0 {
		drift = -drift
	}
	if drift > CaptureTolerance {
		return ErrStaleCapture
	}
	return nil
}

// EvaluateCapture decides ON_TIME or DELAYED for a submission, using the
// evidence's own capture instant as the time base: the deadline is the
// capture date with the limit time overlaid. capturedAt must already be in
// the tenant's wall-clock frame (see Clock.LocalNow). No limit time means
// always on time.
func EvaluateCapture(limitTime string, capturedAt time.Time) string {
	if limitTime == "" {
		return Models.StatusOnTime
	}
	deadline, err := Clock.DeadlineOn(capturedAt, limitTime)
	if err != nil {
		return Models.StatusOnTime
	}
	if capturedAt.After(deadline) {
		return Models.StatusDelayed
	}
	return Models.StatusOnTime
}

// EvaluateMissing decides MISSED or PENDING for a due task with no evidence
// yet. Unlike EvaluateCapture, the time base is the evaluation instant:
// a report date before today is MISSED; today's tasks turn MISSED the
// moment the local wall clock passes their limit time, otherwise they are
// PENDING. The two evaluations are deliberately separate functions.
func EvaluateMissing(reportDate time.Time, limitTime string, localNow time.Time) string {
	reportDay := time.Date(reportDate.Year(), reportDate.Month(), reportDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, time.UTC)

	if reportDay.Before(today) {
		return Models.StatusMissed
	}
	if reportDay.Equal(today) && limitTime != "" {
		deadline, err := Clock.DeadlineOn(localNow, limitTime)
		if err == nil && localNow.After(deadline) {
			return Models.StatusMissed
		}
	}
	return Models.StatusPending
}
