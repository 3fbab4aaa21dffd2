package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sainanduk/problemsolving-go/internal/utils"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and binds
// the authenticated user's identity to the request.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		userID, ok := extractUserIDFromClaims(claims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "token missing subject")
		}

		c.Locals("user_id", userID)
		if premium, ok := claims["isPremium"].(bool); ok {
			c.Locals("is_premium", premium)
		}
		if roles := extractRolesFromClaims(claims); roles != "" {
			c.Locals("user_roles", roles)
		}

		return c.Next()
	}
}

// extractUserIDFromClaims resolves the caller's UUID from the conventional
// claim keys ("userId" matches tokens issued by the auth service).
func extractUserIDFromClaims(claims jwt.MapClaims) (uuid.UUID, bool) {
	keys := []string{"userId", "sub", "user_id"}
	for _, key := range keys {
		value, ok := claims[key]
		if !ok {
			continue
		}
		raw, ok := value.(string)
		if !ok {
			continue
		}
		if parsed, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
			return parsed, true
		}
	}
	return uuid.Nil, false
}

func extractRolesFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"roles", "role"} {
		if value, ok := claims[key]; ok {
			switch v := value.(type) {
			case string:
				return strings.ToLower(strings.TrimSpace(v))
			case []interface{}:
				for _, item := range v {
					if str, ok := item.(string); ok && str != "" {
						return strings.ToLower(strings.TrimSpace(str))
					}
				}
			}
		}
	}
	return ""
}
