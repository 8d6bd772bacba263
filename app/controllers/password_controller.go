package controllers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/models"
	"github.com/MarcoBender/GrubGo/app/repository"
	"github.com/MarcoBender/GrubGo/internal/pkg/env"
	"github.com/MarcoBender/GrubGo/internal/pkg/mail"
)

// genericResetReply is returned whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
const genericResetReply = "If this email exists, a reset link was sent."

// PasswordResetController issues single-use, time-limited reset tokens and
// later consumes them.
type PasswordResetController struct {
	users  repository.UserRepository
	mailer mail.Mailer
}

func NewPasswordResetController(users repository.UserRepository, mailer mail.Mailer) *PasswordResetController {
	return &PasswordResetController{users: users, mailer: mailer}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// HandleForgotPassword stores a hashed reset token on the account and mails
// the plaintext token out-of-band.
func (p *PasswordResetController) HandleForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email is required"})
	}

	user, err := p.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"message": genericResetReply})
		}
		log.Printf("forgot-password lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	plaintext, err := user.GenerateResetToken()
	if err != nil {
		log.Printf("forgot-password token generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	if err := p.users.Update(user); err != nil {
		log.Printf("forgot-password save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", env.GetEnv("FRONTEND_ORIGIN", "http://localhost:3000"), plaintext)
	body := fmt.Sprintf(
		"<p>You requested a password reset.</p>"+
			"<p>Click the link below to reset your password:</p>"+
			`<a href="%s">%s</a>`,
		resetURL, resetURL,
	)

	if err := p.mailer.Send(user.Email, "Password Reset Request", body); err != nil {
		log.Printf("forgot-password mail failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"message": genericResetReply})
}

// HandleResetPassword consumes a reset token. The token is single-use: both
// reset fields are cleared unconditionally on success.
func (p *PasswordResetController) HandleResetPassword(c *fiber.Ctx) error {
	presented := c.Params("token")

	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password is required"})
	}
	if len(req.Password) < models.MinPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password must be at least 6 characters long"})
	}

	user, err := p.users.GetByResetTokenHash(models.HashResetToken(presented))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid or expired token"})
		}
		log.Printf("reset-password lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	// An expired token is as good as absent, even while still stored.
	if !user.HasValidResetToken() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid or expired token"})
	}

	if err := user.SetPassword(req.Password); err != nil {
		log.Printf("reset-password hash failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	user.ClearResetToken()

	if err := p.users.Update(user); err != nil {
		log.Printf("reset-password save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "Password has been reset successfully"})
}
