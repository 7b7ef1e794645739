// file: internals/helpers/auth/claims.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hango_backend/internals/constants"
)

// Nomes de locals preenchidos pelo middleware AuthJWT.
const (
	LocUserID = "user_id"
	LocRole   = "role"
	LocCPF    = "cpf"
)

// GetUserID extrai o id do usuário autenticado dos locals.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id não encontrado no token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id inválido no token")
	}
	return id, nil
}

func Role(c *fiber.Ctx) string {
	if v := c.Locals(LocRole); v != nil {
		if s, ok := v.(string); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return ""
}

// IsStaff: equipe ou admin (capacidade de operação de balcão/cozinha).
func IsStaff(c *fiber.Ctx) bool {
	r := Role(c)
	return r == constants.RoleStaff || r == constants.RoleAdmin
}

func IsAdmin(c *fiber.Ctx) bool {
	return Role(c) == constants.RoleAdmin
}

func IsStudent(c *fiber.Ctx) bool {
	return Role(c) == constants.RoleStudent
}
