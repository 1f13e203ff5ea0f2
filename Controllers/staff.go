package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"Vigil/Models"
)

type StaffRequest struct {
	Name     string `json:"name" validate:"required"`
	PhotoURL string `json:"photo_url"`
	PIN      string `json:"pin" validate:"omitempty,len=4,numeric"`
	IsActive *bool  `json:"is_active"`
}

// CreateStaff registers a team member under the current account. A PIN
// makes the member usable as an offline kiosk operator.
func CreateStaff(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	var req StaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	member := Models.StaffMember{
		UserID:   user.ID,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		IsActive: true,
	}
	if req.PIN != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash PIN"})
		}
		member.PINHash = hash
	}

	if err := Models.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create staff member"})
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// GetStaff lists the account's staff members.
func GetStaff(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	var staff []Models.StaffMember
	if err := Models.DB.Where("user_id = ?", user.ID).Find(&staff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve staff"})
	}
	return c.JSON(staff)
}

// UpdateStaff edits a member's profile, PIN, or active flag.
func UpdateStaff(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid staff ID"})
	}

	var member Models.StaffMember
	if err := Models.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&member).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	var req StaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	member.Name = req.Name
	member.PhotoURL = req.PhotoURL
	if req.PIN != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash PIN"})
		}
		member.PINHash = hash
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := Models.DB.Save(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update staff member"})
	}
	return c.JSON(member)
}

// DeleteStaff soft deletes a member; their historical evidence rows keep
// the staff id and stay attributable.
func DeleteStaff(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid staff ID"})
	}

	var member Models.StaffMember
	if err := Models.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&member).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	Models.DB.Delete(&member)
	return c.JSON(fiber.Map{"message": "Staff member deleted successfully"})
}
