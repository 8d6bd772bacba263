package middleware

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/repository"
	"github.com/MarcoBender/GrubGo/internal/pkg/token"
	"github.com/MarcoBender/GrubGo/internal/pkg/usercontext"
)

// RequireAccessToken authenticates requests carrying a bearer access token
// and fills the request's user context.
func RequireAccessToken(codec *token.Codec, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := extractBearerToken(c)
		if bearer == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No auth header"})
		}

		userID, err := codec.VerifyAccessToken(bearer)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid access token"})
		}

		user, err := users.GetByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid access token"})
			}
			log.Printf("access token user lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}

		usercontext.SetUserContext(c, usercontext.UserContext{
			UserID:     user.ID,
			Name:       user.Name,
			Email:      user.Email,
			IsLoggedIn: true,
		})

		return c.Next()
	}
}

// RequireOwnUser guards routes carrying a :userId parameter: the token
// subject must match the path parameter.
func RequireOwnUser(c *fiber.Ctx) error {
	param, err := strconv.ParseUint(c.Params("userId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	if uint(param) != usercontext.GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}
	return c.Next()
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
