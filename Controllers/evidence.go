package Controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Vigil/Alerts"
	"Vigil/Clock"
	"Vigil/Models"
	"Vigil/Schedule"
)

// CommentMarker prefixes every appended follow-up note so the audit trail
// of supervisor remarks stays readable inside one text column.
const CommentMarker = "[Novedad]:"

type SubmitEvidenceRequest struct {
	TaskID     uint     `json:"task_id" validate:"required"`
	FileURL    string   `json:"file_url" validate:"required"`
	CapturedAt string   `json:"captured_at" validate:"required"`
	Comments   string   `json:"comments"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// SubmitEvidence validates and persists one compliance submission. The
// capture instant must be within the anti-gallery tolerance of server time,
// and the ON_TIME/DELAYED verdict is fixed here, at write time, against the
// tenant-local wall clock of the capture instant.
func SubmitEvidence(c *fiber.Ctx) error {
	user, staff, ok := currentActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	var req SubmitEvidenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	capturedAt, err := time.Parse(time.RFC3339, req.CapturedAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid captured_at, expected RFC3339 timestamp"})
	}

	var task Models.Task
	if err := Models.DB.First(&task, req.TaskID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	now := time.Now().UTC()
	if err := Schedule.CheckFreshness(capturedAt.UTC(), now); err != nil {
		if errors.Is(err, Schedule.ErrStaleCapture) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Evidence must be captured live: the photo or video is older than the allowed window. Please retake it and submit again.",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	localCapture := Clock.LocalNow(capturedAt, user.UTCOffsetHours)
	status := Schedule.EvaluateCapture(task.LimitTime, localCapture)

	evidence := Models.Evidence{
		TaskID:      task.ID,
		StaffID:     submitterID(staff),
		FileURL:     req.FileURL,
		CapturedAt:  capturedAt.UTC(),
		SubmittedAt: now,
		Status:      status,
		Comments:    req.Comments,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := Models.DB.Create(&evidence).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save evidence"})
	}

	invalidateViews(user)
	return c.Status(fiber.StatusCreated).JSON(evidence)
}

type AppendCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// AppendComment adds a follow-up note to an evidence row. Comments are
// append-only: an existing comment gets the new text concatenated on a new
// line behind the marker, never replaced.
func AppendComment(c *fiber.Ctx) error {
	if _, _, ok := currentActor(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid evidence ID"})
	}

	var req AppendCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var evidence Models.Evidence
	if err := Models.DB.First(&evidence, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Evidence not found"})
	}

	if evidence.Comments == "" {
		evidence.Comments = req.Text
	} else {
		evidence.Comments = evidence.Comments + "\n" + CommentMarker + " " + req.Text
	}

	if err := Models.DB.Model(&evidence).Update("comments", evidence.Comments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to append comment"})
	}
	return c.JSON(evidence)
}

type ReportIssueRequest struct {
	TaskID uint   `json:"task_id" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// ReportIssue is the escape hatch for a task that cannot be completed: it
// writes an ISSUE_REPORTED evidence row with no file and alerts the zone's
// owner. The alert is best-effort; a failed dispatch never rolls back the
// evidence write.
func ReportIssue(c *fiber.Ctx) error {
	user, staff, ok := currentActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	var req ReportIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var task Models.Task
	if err := Models.DB.First(&task, req.TaskID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}
	var zone Models.Zone
	if err := Models.DB.First(&zone, task.ZoneID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Zone not found"})
	}

	now := time.Now().UTC()
	evidence := Models.Evidence{
		TaskID:      task.ID,
		StaffID:     submitterID(staff),
		FileURL:     "",
		CapturedAt:  now,
		SubmittedAt: now,
		Status:      Models.StatusIssueReported,
		Comments:    req.Reason,
	}
	if err := Models.DB.Create(&evidence).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save issue report"})
	}

	go Alerts.NotifyIssueReported(Models.DB, zone, task, evidence)

	invalidateViews(user)
	return c.Status(fiber.StatusCreated).JSON(evidence)
}

// currentActor pulls the authenticated account and optional staff binding
// out of the request context.
func currentActor(c *fiber.Ctx) (Models.User, *Models.StaffMember, bool) {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return Models.User{}, nil, false
	}
	if staff, ok := c.Locals("staff").(Models.StaffMember); ok {
		return user, &staff, true
	}
	return user, nil, true
}

// submitterID is the identity evidence is attributed to. Sessions without
// a staff binding (an owner submitting directly) record staff id zero,
// which the leaderboard treats as unattributable.
func submitterID(staff *Models.StaffMember) uint {
	if staff != nil {
		return staff.ID
	}
	return 0
}
