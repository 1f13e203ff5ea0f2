package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"Vigil/Models"
	"Vigil/middleware"
)

type RegisterRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Permission     int    `json:"permission"`
	ParentID       *uint  `json:"parent_id"`
	UTCOffsetHours int    `json:"utc_offset_hours" validate:"min=-12,max=14"`
}

// RegisterUser creates a business account or, when ParentID is set, a
// branch account under an existing organization.
func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	password, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := Models.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       password,
		Permission:     req.Permission,
		ParentID:       req.ParentID,
		UTCOffsetHours: req.UTCOffsetHours,
	}
	if user.Permission == 0 {
		user.Permission = 3
	}

	if err := Models.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An account with this email already exists"})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an account and sets the JWT session cookie.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user Models.User
	if err := Models.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Incorrect password"})
	}

	token, err := issueToken(user.ID, "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not login"})
	}

	setSessionCookie(c, token)
	return c.JSON(fiber.Map{"message": "success", "user": user})
}

type OperatorLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	PIN   string `json:"pin" validate:"required"`
}

// OperatorLogin signs an offline operator in at a kiosk: the tenant account
// email plus the staff member's PIN resolve to a staff-bound session token.
func OperatorLogin(c *fiber.Ctx) error {
	var req OperatorLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user Models.User
	if err := Models.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	var staff []Models.StaffMember
	if err := Models.DB.Where("user_id = ? AND is_active = ?", user.ID, true).Find(&staff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Staff lookup failed"})
	}

	for _, member := range staff {
		if len(member.PINHash) == 0 {
			continue
		}
		if bcrypt.CompareHashAndPassword(member.PINHash, []byte(req.PIN)) == nil {
			token, err := issueToken(user.ID, strconv.Itoa(int(member.ID)))
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not login"})
			}
			setSessionCookie(c, token)
			return c.JSON(fiber.Map{"message": "success", "staff": member})
		}
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid PIN"})
}

// Logout expires the session cookie.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"message": "success"})
}

// User returns the current actor: the account and, for staff-bound
// sessions, the member identity.
func User(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(Models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}
	response := fiber.Map{"user": user}
	if staff, ok := c.Locals("staff").(Models.StaffMember); ok {
		response["staff"] = staff
	}
	return c.JSON(response)
}

// ValidateToken reports whether the session cookie still resolves.
func ValidateToken(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(Models.User); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"valid": false})
	}
	return c.JSON(fiber.Map{"valid": true})
}

func issueToken(userID uint, staffSubject string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(userID)),
		Subject:   staffSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	return token.SignedString(middleware.SecretKey())
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
	})
}
