package handlers

import (
	"errors"

	"github.com/Jean612/SoundScape/internal/config"
	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(db *database.DB, cfg *config.Config, mailer services.ConfirmationMailer) *AuthHandler {
	return &AuthHandler{
		service: services.NewAuthService(db, cfg, mailer),
	}
}

func SetupAuthRoutes(router fiber.Router, db *database.DB, cfg *config.Config, mailer services.ConfirmationMailer) {
	h := NewAuthHandler(db, cfg, mailer)

	router.Post("/register", h.Register)
	router.Post("/login", h.Login)
	router.Post("/refresh", h.RefreshToken)
	router.Post("/verify_otp", h.VerifyOTP)
	router.Post("/resend_otp", h.ResendOTP)
	router.Get("/confirm_email", h.ConfirmEmail)
	router.Post("/resend_confirmation", h.ResendConfirmation)
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.Register(&req)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":         "User created successfully. Please check your email to confirm your account.",
		"user":            services.NewUserResponse(user),
		"email_confirmed": false,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Credentials"
// @Success 200 {object} services.AuthResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	resp, err := h.service.Login(&req)
	if errors.Is(err, services.ErrEmailNotConfirmed) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":           "Please confirm your email address before logging in",
			"email_confirmed": false,
		})
	}
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	return c.JSON(resp)
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} services.AuthResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req services.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	resp, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	return c.JSON(resp)
}

type otpRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

// VerifyOTP godoc
// @Summary Confirm email with the OTP code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body otpRequest true "Email and OTP code"
// @Success 200 {object} map[string]string
// @Router /auth/verify_otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.OTPCode == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "OTP code is required"})
	}

	err := h.service.VerifyOTP(req.Email, req.OTPCode)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Email confirmed successfully"})
	case errors.Is(err, services.ErrAlreadyConfirmed):
		return c.JSON(fiber.Map{"message": "Email already confirmed"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrOTPExpired):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "OTP code has expired"})
	case errors.Is(err, services.ErrInvalidOTP):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid OTP code"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// ResendOTP godoc
// @Summary Send a new OTP code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body otpRequest true "Email"
// @Success 200 {object} map[string]string
// @Router /auth/resend_otp [post]
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := h.service.ResendOTP(req.Email)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "New OTP code sent to your email"})
	case errors.Is(err, services.ErrAlreadyConfirmed):
		return c.JSON(fiber.Map{"message": "Email already confirmed"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// ConfirmEmail godoc
// @Summary Confirm email via the emailed link token
// @Tags auth
// @Produce json
// @Param token query string true "Confirmation token"
// @Success 200 {object} map[string]string
// @Router /auth/confirm_email [get]
func (h *AuthHandler) ConfirmEmail(c *fiber.Ctx) error {
	err := h.service.ConfirmByToken(c.Query("token"))
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Email confirmed successfully"})
	case errors.Is(err, services.ErrAlreadyConfirmed):
		return c.JSON(fiber.Map{"message": "Email already confirmed"})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid confirmation token"})
	case errors.Is(err, services.ErrTokenExpired):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Confirmation token has expired"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// ResendConfirmation godoc
// @Summary Send a fresh confirmation email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body otpRequest true "Email"
// @Success 200 {object} map[string]string
// @Router /auth/resend_confirmation [post]
func (h *AuthHandler) ResendConfirmation(c *fiber.Ctx) error {
	// Same flow as resending the OTP: both live in one email.
	return h.ResendOTP(c)
}
