package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helperAuth "hango_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // usa cookie access_token se não houver Bearer
}

// AuthJWT valida o token HMAC e hidrata os locals esperados pelos guards
// (user_id, role, cpf).
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret é obrigatório")
	}

	return func(c *fiber.Ctx) error {
		// 1) Authorization: Bearer xxx (ou cookie, se permitido)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verificação de algoritmo
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals("jwt_claims", claims)

		// user_id: id/sub/user_id em ordem de preferência; precisa ser UUID
		sub := ""
		for _, k := range []string{"id", "sub", "user_id"} {
			if s := strClaim(claims, k); s != "" {
				sub = s
				break
			}
		}
		if sub == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "user_id ausente no token")
		}
		if _, err := uuid.Parse(sub); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "user_id inválido no token")
		}
		c.Locals(helperAuth.LocUserID, sub)

		if r := strClaim(claims, "role"); r != "" {
			c.Locals(helperAuth.LocRole, strings.ToLower(r))
		} else {
			c.Locals(helperAuth.LocRole, "student")
		}
		if cpf := strClaim(claims, "cpf"); cpf != "" {
			c.Locals(helperAuth.LocCPF, cpf)
		}

		return c.Next()
	}
}

// util para extrair claim string
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
