package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Vigil/Access"
	"Vigil/Cache"
	"Vigil/Clock"
	"Vigil/Models"
)

type ZoneRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	StaffID     *uint  `json:"staff_id"`
}

// CreateZone creates a standalone zone owned by the current account.
func CreateZone(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	var req ZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	zone := Models.Zone{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
		StaffID:     req.StaffID,
	}
	if err := Models.DB.Create(&zone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create zone"})
	}

	invalidateViews(user)
	return c.Status(fiber.StatusCreated).JSON(zone)
}

// GetZones lists every zone the account itself owns, with tasks.
func GetZones(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	var zones []Models.Zone
	if err := Models.DB.Preload("Tasks").Where("user_id = ?", user.ID).Find(&zones).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve zones"})
	}
	return c.JSON(zones)
}

// GetVisibleZones resolves the actor's day view: the zones and tasks this
// identity is allowed to see, filtered to tasks due on the requested date
// (default: the tenant-local today) and ordered by the shift-day key.
func GetVisibleZones(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	var staffPtr *Models.StaffMember
	if staff, ok := c.Locals("staff").(Models.StaffMember); ok {
		staffPtr = &staff
	}

	actor := Access.Resolve(&user, staffPtr)
	if actor == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "No visible zones for this session"})
	}

	weekday := ""
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		}
		weekday = Clock.WeekdayLabels[day.Weekday()]
	} else {
		_, _, weekday = Clock.OperationalDayBounds(time.Now().UTC(), user.UTCOffsetHours)
	}

	zones, err := actor.VisibleZones(Models.DB, weekday)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve zones"})
	}
	return c.JSON(zones)
}

// UpdateZone updates name, description, or the zone manager.
func UpdateZone(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	zone, status, message := ownedZone(c, user)
	if zone == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	var req ZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	zone.Name = req.Name
	zone.Description = req.Description
	zone.StaffID = req.StaffID
	if err := Models.DB.Save(zone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update zone"})
	}

	invalidateViews(user)
	return c.JSON(zone)
}

// DeleteZone soft deletes a zone and its tasks. Historical evidence keeps
// referencing the deleted task ids and stays valid.
func DeleteZone(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	zone, status, message := ownedZone(c, user)
	if zone == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	Models.DB.Where("zone_id = ?", zone.ID).Delete(&Models.Task{})
	Models.DB.Delete(zone)

	invalidateViews(user)
	return c.JSON(fiber.Map{"message": "Zone deleted successfully"})
}

type TaskRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	LimitTime    string   `json:"limit_time" validate:"limittime"`
	EvidenceType string   `json:"evidence_type" validate:"evidencetype"`
	Days         []string `json:"days" validate:"dive,oneof=Sun Mon Tue Wed Thu Fri Sat"`
	StaffID      *uint    `json:"staff_id"`
}

// CreateTask adds a checklist item to a zone. An omitted day list defaults
// to all seven days here, at creation time.
func CreateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	zone, status, message := ownedZone(c, user)
	if zone == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task := Models.Task{
		ZoneID:       zone.ID,
		Title:        req.Title,
		Description:  req.Description,
		LimitTime:    req.LimitTime,
		EvidenceType: req.EvidenceType,
		StaffID:      req.StaffID,
	}
	if task.EvidenceType == "" {
		task.EvidenceType = Models.EvidenceBoth
	}
	if len(req.Days) == 0 {
		task.SetDays(Clock.WeekdayLabels[:])
	} else {
		task.SetDays(req.Days)
	}

	if err := Models.DB.Create(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}

	invalidateViews(user)
	return c.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask mutates a task. The limit-time change never touches stored
// evidence statuses; those are fixed at write time.
func UpdateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	task, status, message := ownedTask(c, user)
	if task == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task.Title = req.Title
	task.Description = req.Description
	task.LimitTime = req.LimitTime
	task.StaffID = req.StaffID
	if req.EvidenceType != "" {
		task.EvidenceType = req.EvidenceType
	}
	if len(req.Days) > 0 {
		task.SetDays(req.Days)
	}

	if err := Models.DB.Save(task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update task"})
	}

	invalidateViews(user)
	return c.JSON(task)
}

// DeleteTask soft deletes a task, excluding it from future recurrence.
func DeleteTask(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	task, status, message := ownedTask(c, user)
	if task == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	Models.DB.Delete(task)
	invalidateViews(user)
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}

// ownedZone resolves the :id param to a zone owned by the account or one
// of its branches.
func ownedZone(c *fiber.Ctx, user Models.User) (*Models.Zone, int, string) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, "Invalid zone ID"
	}

	tenantIDs, err := Models.BranchIDs(Models.DB, user)
	if err != nil {
		return nil, fiber.StatusInternalServerError, "Failed to resolve tenants"
	}

	var zone Models.Zone
	if err := Models.DB.Where("id = ? AND user_id IN ?", id, tenantIDs).First(&zone).Error; err != nil {
		return nil, fiber.StatusNotFound, "Zone not found"
	}
	return &zone, fiber.StatusOK, ""
}

// ownedTask resolves the :taskId param to a task in one of the account's
// zones.
func ownedTask(c *fiber.Ctx, user Models.User) (*Models.Task, int, string) {
	id, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return nil, fiber.StatusBadRequest, "Invalid task ID"
	}

	var task Models.Task
	if err := Models.DB.First(&task, id).Error; err != nil {
		return nil, fiber.StatusNotFound, "Task not found"
	}

	var zone Models.Zone
	if err := Models.DB.First(&zone, task.ZoneID).Error; err != nil {
		return nil, fiber.StatusNotFound, "Zone not found"
	}

	tenantIDs, err := Models.BranchIDs(Models.DB, user)
	if err != nil {
		return nil, fiber.StatusInternalServerError, "Failed to resolve tenants"
	}
	for _, tenantID := range tenantIDs {
		if zone.UserID == tenantID {
			return &task, fiber.StatusOK, ""
		}
	}
	return nil, fiber.StatusNotFound, "Task not found"
}

// invalidateViews drops the cached dashboards a write can stale: the acting
// account's own view and, for branch accounts, the organization owner's,
// whose report spans every branch.
func invalidateViews(user Models.User) {
	Cache.Views.Invalidate(user.ID)
	if user.ParentID != nil {
		Cache.Views.Invalidate(*user.ParentID)
	}
}
