package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/Jean612/SoundScape/internal/config"
	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/logger"
	"github.com/Jean612/SoundScape/internal/models"
	"github.com/Jean612/SoundScape/pkg/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrAlreadyConfirmed   = errors.New("email already confirmed")
	ErrOTPExpired         = errors.New("OTP code has expired")
	ErrInvalidOTP         = errors.New("invalid OTP code")
	ErrInvalidToken       = errors.New("invalid confirmation token")
	ErrTokenExpired       = errors.New("confirmation token has expired")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrUsernameTaken      = errors.New("username is already taken")
)

const otpValidity = 15 * time.Minute

// ConfirmationMailer delivers the email confirmation message. Satisfied by
// pkg/email in production and stubbed in tests.
type ConfirmationMailer interface {
	SendEmailConfirmation(toEmail, name, otpCode, confirmationToken string) error
}

type AuthService struct {
	db     *database.DB
	cfg    *config.Config
	mailer ConfirmationMailer
	log    *zap.SugaredLogger
}

func NewAuthService(db *database.DB, cfg *config.Config, mailer ConfirmationMailer) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		mailer: mailer,
		log:    logger.GetLogger("auth"),
	}
}

// Request/Response types
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	Country   string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	User         *UserResponse `json:"user"`
}

type UserResponse struct {
	ID             uint    `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Username       string  `json:"username"`
	Country        string  `json:"country"`
	BirthDate      *string `json:"birth_date,omitempty"`
	EmailConfirmed bool    `json:"email_confirmed"`
}

func NewUserResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Username:       user.Username,
		Country:        user.Country,
		EmailConfirmed: user.EmailConfirmed,
	}
	if user.BirthDate != nil {
		birthDate := user.BirthDate.Format("2006-01-02")
		resp.BirthDate = &birthDate
	}
	return resp
}

// Register creates an unconfirmed user and sends the confirmation email.
// Mail delivery failure does not roll the user back; the code can be
// re-requested.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordDigest: hashed,
		Name:           req.Name,
		Username:       req.Username,
		Country:        req.Country,
	}

	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, errors.New("birth_date must be in YYYY-MM-DD format")
		}
		user.BirthDate = &birthDate
	}

	if err := s.issueConfirmation(&user); err != nil {
		return nil, err
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	s.deliverConfirmation(&user)

	return &user, nil
}

// Login authenticates a confirmed user and issues a token pair.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(req.Password, user.PasswordDigest) {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	return s.tokenResponse(&user)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(refreshToken string) (*AuthResponse, error) {
	claims, err := auth.ValidateRefreshToken(refreshToken, s.cfg.JWTSecretKey)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	return s.tokenResponse(&user)
}

// VerifyOTP confirms a user's email with the emailed 6-digit code.
func (s *AuthService) VerifyOTP(email, code string) error {
	user, err := s.findByEmail(email)
	if err != nil {
		return err
	}

	if user.EmailConfirmed {
		return ErrAlreadyConfirmed
	}
	if user.OTPExpired(time.Now()) {
		return ErrOTPExpired
	}
	if user.OTPCode == nil || *user.OTPCode != code {
		return ErrInvalidOTP
	}

	return s.confirmEmail(user)
}

// ResendOTP issues a fresh code and re-sends the confirmation email.
func (s *AuthService) ResendOTP(email string) error {
	user, err := s.findByEmail(email)
	if err != nil {
		return err
	}
	if user.EmailConfirmed {
		return ErrAlreadyConfirmed
	}

	if err := s.issueConfirmation(user); err != nil {
		return err
	}
	if err := s.db.Save(user).Error; err != nil {
		return err
	}

	s.deliverConfirmation(user)
	return nil
}

// ConfirmByToken confirms a user's email from the emailed link token.
func (s *AuthService) ConfirmByToken(token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	var user models.User
	err := s.db.Where("email_confirmation_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}

	if user.EmailConfirmed {
		return ErrAlreadyConfirmed
	}
	if user.ConfirmationExpired(time.Now()) {
		return ErrTokenExpired
	}

	return s.confirmEmail(&user)
}

func (s *AuthService) tokenResponse(user *models.User) (*AuthResponse, error) {
	accessToken, refreshToken, err := auth.GenerateTokenPair(
		user.ID, s.cfg.JWTSecretKey, s.cfg.JWTAccessTokenExpireMin, s.cfg.JWTRefreshTokenExpireDays)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		User:         NewUserResponse(user),
	}, nil
}

// issueConfirmation sets a fresh OTP code and confirmation token on the
// user without saving.
func (s *AuthService) issueConfirmation(user *models.User) error {
	otp, err := generateOTPCode()
	if err != nil {
		return err
	}
	token := uuid.NewString()
	now := time.Now()
	otpExpiry := now.Add(otpValidity)

	user.OTPCode = &otp
	user.OTPExpiresAt = &otpExpiry
	user.EmailConfirmationToken = &token
	user.EmailConfirmationSentAt = &now
	return nil
}

// generateOTPCode draws a 6-digit code from the OS entropy source.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *AuthService) deliverConfirmation(user *models.User) {
	if s.mailer == nil || user.OTPCode == nil || user.EmailConfirmationToken == nil {
		return
	}
	if err := s.mailer.SendEmailConfirmation(user.Email, user.Name, *user.OTPCode, *user.EmailConfirmationToken); err != nil {
		s.log.Errorw("failed to send confirmation email", "email", user.Email, "error", err)
	}
}

func (s *AuthService) confirmEmail(user *models.User) error {
	return s.db.Model(user).Updates(map[string]interface{}{
		"email_confirmed":          true,
		"email_confirmation_token": nil,
		"otp_code":                 nil,
		"otp_expires_at":           nil,
	}).Error
}

func (s *AuthService) findByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func validateRegistration(req *RegisterRequest) error {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errors.New("email is invalid")
	}
	if len(req.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(req.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(req.Country) == "" {
		return errors.New("country is required")
	}
	return nil
}
