package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Ambil user_id dari c.Locals("user_id") yang diset middleware auth.
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uint, error) {
	v := c.Locals("user_id")
	if v == nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	switch t := v.(type) {
	case uint:
		if t == 0 {
			return 0, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case float64:
		if t <= 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
		return uint(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id == 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
		return uint(id), nil
	default:
		return 0, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
}

// GetUserRole mengembalikan role dari Locals ("ADMIN"/"OPERATOR"/...).
func GetUserRole(c *fiber.Ctx) string {
	if role, ok := c.Locals("userRole").(string); ok {
		return role
	}
	return ""
}
