package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/models"
	"github.com/MarcoBender/GrubGo/app/repository"
	"github.com/MarcoBender/GrubGo/internal/pkg/env"
	"github.com/MarcoBender/GrubGo/internal/pkg/oauth"
	"github.com/MarcoBender/GrubGo/internal/pkg/token"
)

const (
	// RefreshCookieName carries the refresh token between the browser and
	// the refresh endpoint; never readable by scripts.
	RefreshCookieName = "jid"

	// RefreshCookiePath scopes the cookie to the one endpoint that needs it.
	RefreshCookiePath = "/api/auth/refresh"
)

// AuthController owns the session-token lifecycle: signup, login (local and
// OAuth), refresh rotation, logout and identity resolution.
type AuthController struct {
	users    repository.UserRepository
	codec    *token.Codec
	google   oauth.Verifier
	facebook oauth.Verifier

	// placeholderSecret peppers the provider id when deriving the
	// stand-in password hash for OAuth-only accounts.
	placeholderSecret string
}

func NewAuthController(users repository.UserRepository, codec *token.Codec, google, facebook oauth.Verifier) *AuthController {
	return &AuthController{
		users:             users,
		codec:             codec,
		google:            google,
		facebook:          facebook,
		placeholderSecret: env.GetEnv("JWT_ACCESS_SECRET", ""),
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Code string `json:"code"`
}

type facebookLoginRequest struct {
	AccessToken string `json:"accessToken"`
}

// HandleSignup registers a local account and opens a session.
func (a *AuthController) HandleSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Name is required"})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email is required"})
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password is required"})
	}
	if len(req.Password) < models.MinPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password must be at least 6 characters long"})
	}

	if _, err := a.users.GetByEmail(req.Email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email already registered"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("signup email lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid signup data"})
	}
	user.Phone = req.Phone

	if err := a.users.Create(user); err != nil {
		log.Printf("signup create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	accessToken, err := a.openSession(c, user)
	if err != nil {
		log.Printf("signup session failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":        fiber.Map{"id": user.ID, "name": user.Name, "email": user.Email},
		"accessToken": accessToken,
	})
}

// HandleLogin authenticates a local account. Every failure mode answers with
// the same generic 401 so callers cannot probe which emails exist.
func (a *AuthController) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing credentials"})
	}

	user, err := a.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		log.Printf("login lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	if !user.CheckPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	accessToken, err := a.openSession(c, user)
	if err != nil {
		log.Printf("login session failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"phone":   user.Phone,
			"address": user.Address,
			"city":    user.City,
			"pincode": user.Pincode,
		},
		"accessToken": accessToken,
	})
}

// HandleGoogleLogin exchanges a client-side authorization code for a session.
func (a *AuthController) HandleGoogleLogin(c *fiber.Ctx) error {
	var req googleLoginRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Google authorization code is missing"})
	}

	identity, err := a.google.Verify(c.Context(), req.Code)
	if err != nil {
		log.Printf("google login error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error during Google login"})
	}

	user, err := a.findOrCreateOAuthUser(identity, providerGoogle)
	if err != nil {
		log.Printf("google login error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error during Google login"})
	}

	accessToken, err := a.openSession(c, user)
	if err != nil {
		log.Printf("google login error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error during Google login"})
	}

	return c.JSON(fiber.Map{
		"user":        fiber.Map{"id": user.ID, "name": user.Name, "email": user.Email},
		"accessToken": accessToken,
	})
}

// HandleFacebookLogin validates a client-obtained access token for a session.
func (a *AuthController) HandleFacebookLogin(c *fiber.Ctx) error {
	var req facebookLoginRequest
	if err := c.BodyParser(&req); err != nil || req.AccessToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Facebook access token is missing"})
	}

	identity, err := a.facebook.Verify(c.Context(), req.AccessToken)
	if err != nil {
		log.Printf("facebook login error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid Facebook token"})
	}

	user, err := a.findOrCreateOAuthUser(identity, providerFacebook)
	if err != nil {
		log.Printf("facebook login error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error during Facebook login"})
	}

	accessToken, err := a.openSession(c, user)
	if err != nil {
		log.Printf("facebook login error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error during Facebook login"})
	}

	return c.JSON(fiber.Map{
		"user":        fiber.Map{"id": user.ID, "name": user.Name, "email": user.Email},
		"accessToken": accessToken,
	})
}

// HandleRefresh rotates the session: both tokens are re-issued and the old
// refresh token is invalidated. Presenting a rotated-out token is replay and
// is rejected.
func (a *AuthController) HandleRefresh(c *fiber.Ctx) error {
	presented := c.Cookies(RefreshCookieName)
	if presented == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token"})
	}

	userID, err := a.codec.VerifyRefreshToken(presented)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid refresh token"})
	}

	user, err := a.users.GetByID(userID)
	if err != nil || user.RefreshToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid refresh token"})
	}
	if user.RefreshToken != presented {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Refresh token mismatch"})
	}

	accessToken, err := a.openSession(c, user)
	if err != nil {
		log.Printf("refresh session failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"accessToken": accessToken})
}

// HandleLogout clears the stored refresh token best-effort; the cookie is
// removed unconditionally and the call never fails observably.
func (a *AuthController) HandleLogout(c *fiber.Ctx) error {
	if presented := c.Cookies(RefreshCookieName); presented != "" {
		if userID, err := a.codec.VerifyRefreshToken(presented); err == nil {
			if err := a.users.ClearRefreshToken(userID); err != nil {
				log.Printf("logout clear failed: %v", err)
			}
		}
	}

	a.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// HandleMe resolves the bearer access token to the user record, with the
// credential fields excluded.
func (a *AuthController) HandleMe(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	if auth == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No auth header"})
	}

	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid auth header"})
	}

	userID, err := a.codec.VerifyAccessToken(auth[len(prefix):])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid access token"})
	}

	user, err := a.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		log.Printf("me lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"user": user})
}

const (
	providerGoogle   = "google"
	providerFacebook = "facebook"
)

// findOrCreateOAuthUser maps a verified provider identity onto a local
// account, creating one with a placeholder password hash when absent.
func (a *AuthController) findOrCreateOAuthUser(identity *oauth.Identity, provider string) (*models.User, error) {
	user, err := a.lookupOAuthUser(identity, provider)
	if err == nil {
		a.linkProviderID(user, identity.ExternalID, provider)
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Non-guessable stand-in so the schema never holds an empty credential.
	hash, err := models.HashPassword(identity.ExternalID + a.placeholderSecret)
	if err != nil {
		return nil, err
	}

	name := identity.Name
	if name == "" {
		name = "User"
	}

	user = &models.User{
		Name:         name,
		Email:        identity.Email,
		PasswordHash: hash,
	}
	a.linkProviderID(user, identity.ExternalID, provider)

	if err := a.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *AuthController) lookupOAuthUser(identity *oauth.Identity, provider string) (*models.User, error) {
	if identity.Email != "" {
		if user, err := a.users.GetByEmail(identity.Email); err == nil {
			return user, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// Facebook profiles may omit the email; fall back to the external id.
	if provider == providerFacebook {
		return a.users.GetByFacebookID(identity.ExternalID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (a *AuthController) linkProviderID(user *models.User, externalID, provider string) {
	switch provider {
	case providerGoogle:
		if user.GoogleID == nil {
			id := externalID
			user.GoogleID = &id
		}
	case providerFacebook:
		if user.FacebookID == nil {
			id := externalID
			user.FacebookID = &id
		}
	}
}

// openSession issues a fresh token pair, stores the refresh token on the user
// (rotating out any previous one) and sets the refresh cookie.
func (a *AuthController) openSession(c *fiber.Ctx, user *models.User) (string, error) {
	accessToken, err := a.codec.IssueAccessToken(user.ID)
	if err != nil {
		return "", err
	}
	refreshToken, err := a.codec.IssueRefreshToken(user.ID)
	if err != nil {
		return "", err
	}

	user.RefreshToken = refreshToken
	if err := a.users.Update(user); err != nil {
		return "", err
	}

	a.setRefreshCookie(c, refreshToken)
	return accessToken, nil
}

func (a *AuthController) setRefreshCookie(c *fiber.Ctx, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    refreshToken,
		Path:     RefreshCookiePath,
		HTTPOnly: true,
		Secure:   !env.IsDev(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(token.RefreshTokenTTL),
		MaxAge:   int(token.RefreshTokenTTL.Seconds()),
	})
}

func (a *AuthController) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     RefreshCookiePath,
		HTTPOnly: true,
		Secure:   !env.IsDev(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
}
