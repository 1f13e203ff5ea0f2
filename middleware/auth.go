package middleware

import (
	"Vigil/Models"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SecretKey signs session tokens. Override with VIGIL_SECRET in production.
func SecretKey() []byte {
	if secret := os.Getenv("VIGIL_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("secret")
}

// Verify authenticates the JWT cookie and resolves the actor for the
// request. Claims.Issuer carries the account id; Claims.Subject, when set,
// binds the session to a staff member (online team member or offline PIN
// operator). The account lands in Locals("user") and the bound staff
// member, if any, in Locals("staff").
func Verify(requiredPermission int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies("jwt")
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not Logged In.",
			})
		}

		token, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return SecretKey(), nil
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token claims",
			})
		}

		var user Models.User
		result := Models.DB.Where("id = ?", claims.Issuer).First(&user)
		if result.Error != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		c.Locals("user", user)

		if claims.Subject != "" {
			var staff Models.StaffMember
			result := Models.DB.Where("id = ? AND user_id = ? AND is_active = ?",
				claims.Subject, user.ID, true).First(&staff)
			if result.Error != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Staff session no longer valid",
				})
			}
			c.Locals("staff", staff)
			// Staff-bound sessions act with member-level rights
			// regardless of the owning account's permission.
			if requiredPermission <= 1 {
				return c.Next()
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Insufficient permissions to access this resource",
			})
		}

		if requiredPermission == 0 {
			if user.Permission != 0 {
				return c.Next()
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to access this page",
			})
		}

		if user.Permission >= requiredPermission {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Insufficient permissions to access this resource",
		})
	}
}
