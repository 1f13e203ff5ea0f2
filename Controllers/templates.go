package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"Vigil/Models"
)

type TemplateTaskRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	LimitTime    string   `json:"limit_time" validate:"limittime"`
	EvidenceType string   `json:"evidence_type" validate:"evidencetype"`
	Days         []string `json:"days" validate:"dive,oneof=Sun Mon Tue Wed Thu Fri Sat"`
}

type TemplateRequest struct {
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description"`
	Tasks       []TemplateTaskRequest `json:"tasks" validate:"dive"`
}

// CreateTemplate stores a zone blueprint for later bulk instantiation.
func CreateTemplate(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	var req TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	template := Models.Template{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	for _, taskReq := range req.Tasks {
		blueprint := Models.TemplateTask{
			Title:        taskReq.Title,
			Description:  taskReq.Description,
			LimitTime:    taskReq.LimitTime,
			EvidenceType: taskReq.EvidenceType,
		}
		if blueprint.EvidenceType == "" {
			blueprint.EvidenceType = Models.EvidenceBoth
		}
		if len(taskReq.Days) > 0 {
			task := Models.Task{}
			task.SetDays(taskReq.Days)
			blueprint.Days = task.Days
		}
		template.Tasks = append(template.Tasks, blueprint)
	}

	if err := Models.DB.Create(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// GetTemplates lists the account's blueprints.
func GetTemplates(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	var templates []Models.Template
	if err := Models.DB.Preload("Tasks").Where("user_id = ?", user.ID).Find(&templates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve templates"})
	}
	return c.JSON(templates)
}

type InstantiateRequest struct {
	BranchID *uint `json:"branch_id"`
	StaffID  *uint `json:"staff_id"`
}

// InstantiateTemplate bulk-creates a zone with its tasks from a blueprint,
// optionally into one of the organization's branch accounts. Template
// tasks with no day set come out as every-day tasks.
func InstantiateTemplate(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	var req InstantiateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	targetID := user.ID
	if req.BranchID != nil {
		var branch Models.User
		if err := Models.DB.Where("id = ? AND parent_id = ?", *req.BranchID, user.ID).First(&branch).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
		}
		targetID = branch.ID
	}

	zone, err := Models.InstantiateTemplate(Models.DB, uint(id), targetID, req.StaffID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	invalidateViews(user)
	return c.Status(fiber.StatusCreated).JSON(zone)
}

// DeleteTemplate removes a blueprint; zones already instantiated from it
// are untouched.
func DeleteTemplate(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	var template Models.Template
	if err := Models.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&template).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	Models.DB.Where("template_id = ?", template.ID).Delete(&Models.TemplateTask{})
	Models.DB.Delete(&template)
	return c.JSON(fiber.Map{"message": "Template deleted successfully"})
}
