package middleware

import (
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"kitchen-copilot/domain"
	"kitchen-copilot/internal/api/presenters"
	"kitchen-copilot/pkg/jwt"
	"strings"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

// AuthMiddleware verifies the bearer token and stores the identity in
// c.Locals("user_id") and c.Locals("user_name"). EventSource clients cannot
// set headers, so the token may also arrive as the "token" query parameter.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		if header := c.Get(fiber.HeaderAuthorization); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
			}
			token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		} else {
			token = c.Query("token")
		}

		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		identity, err := jwtService.GetIdentityByToken(token)
		if err != nil {
			message := domain.MessageFailedTokenInvalid
			if errors.Is(err, domain.ErrTokenExpired) {
				message = domain.ErrTokenExpired.Error()
			}
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, message, err)
		}

		c.Locals("user_id", identity.UserID)
		c.Locals("user_name", identity.Name)
		return c.Next()
	}
}
