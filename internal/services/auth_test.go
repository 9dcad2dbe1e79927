package services

import (
	"testing"
	"time"

	"github.com/Jean612/SoundScape/internal/config"
	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []sentConfirmation
	err  error
}

type sentConfirmation struct {
	Email string
	Name  string
	OTP   string
	Token string
}

func (m *fakeMailer) SendEmailConfirmation(toEmail, name, otpCode, confirmationToken string) error {
	m.sent = append(m.sent, sentConfirmation{Email: toEmail, Name: name, OTP: otpCode, Token: confirmationToken})
	return m.err
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:              "test-secret",
		JWTAccessTokenExpireMin:   15,
		JWTRefreshTokenExpireDays: 7,
	}
}

func newAuthService(t *testing.T) (*AuthService, *database.DB, *fakeMailer) {
	t.Helper()
	db := newTestDB(t)
	mailer := &fakeMailer{}
	return NewAuthService(db, authTestConfig(), mailer), db, mailer
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
		Name:     "Jane Doe",
		Username: "jane",
		Country:  "US",
	}
}

func TestRegisterCreatesUnconfirmedUser(t *testing.T) {
	svc, db, mailer := newAuthService(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	assert.False(t, user.EmailConfirmed)
	require.NotNil(t, user.OTPCode)
	assert.Len(t, *user.OTPCode, 6)
	require.NotNil(t, user.EmailConfirmationToken)
	assert.NotEqual(t, "supersecret", user.PasswordDigest)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jane@example.com", mailer.sent[0].Email)
	assert.Equal(t, *user.OTPCode, mailer.sent[0].OTP)
	assert.Equal(t, *user.EmailConfirmationToken, mailer.sent[0].Token)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "jane@example.com", stored.Email)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService(t)

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }},
		{"missing name", func(r *RegisterRequest) { r.Name = " " }},
		{"missing username", func(r *RegisterRequest) { r.Username = "" }},
		{"missing country", func(r *RegisterRequest) { r.Country = "" }},
		{"bad birth date", func(r *RegisterRequest) { r.BirthDate = "31-12-1990" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest()
			tt.mutate(req)
			_, err := svc.Register(req)
			assert.Error(t, err)
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "other"
	_, err = svc.Register(dup)
	assert.ErrorIs(t, err, ErrEmailTaken)

	dup = registerRequest()
	dup.Email = "other@example.com"
	_, err = svc.Register(dup)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginRequiresConfirmedEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "jane@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)

	require.NoError(t, svc.VerifyOTP("jane@example.com", *user.OTPCode))

	resp, err := svc.Login(&LoginRequest{Email: "jane@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.True(t, resp.User.EmailConfirmed)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)
	require.NoError(t, svc.VerifyOTP(user.Email, *user.OTPCode))

	_, err = svc.Login(&LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyOTP(t *testing.T) {
	svc, db, _ := newAuthService(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyOTP(user.Email, "000000"), ErrInvalidOTP)

	require.NoError(t, svc.VerifyOTP("  Jane@Example.com ", *user.OTPCode))

	// Confirmation clears the pending code and token
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, stored.EmailConfirmed)
	assert.Nil(t, stored.OTPCode)
	assert.Nil(t, stored.EmailConfirmationToken)

	assert.ErrorIs(t, svc.VerifyOTP(user.Email, *user.OTPCode), ErrAlreadyConfirmed)
	assert.ErrorIs(t, svc.VerifyOTP("nobody@example.com", "123456"), ErrUserNotFound)
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, db, _ := newAuthService(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(user).Update("otp_expires_at", expired).Error)

	assert.ErrorIs(t, svc.VerifyOTP(user.Email, *user.OTPCode), ErrOTPExpired)
}

func TestResendOTPRotatesCode(t *testing.T) {
	svc, db, mailer := newAuthService(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)
	original := *user.OTPCode

	require.NoError(t, svc.ResendOTP(user.Email))
	require.Len(t, mailer.sent, 2)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotNil(t, stored.OTPCode)
	assert.Equal(t, *stored.OTPCode, mailer.sent[1].OTP)

	// The old code no longer verifies unless it happened to repeat
	if original != *stored.OTPCode {
		assert.ErrorIs(t, svc.VerifyOTP(user.Email, original), ErrInvalidOTP)
	}
	require.NoError(t, svc.VerifyOTP(user.Email, *stored.OTPCode))

	assert.ErrorIs(t, svc.ResendOTP(user.Email), ErrAlreadyConfirmed)
}

func TestConfirmByToken(t *testing.T) {
	svc, db, _ := newAuthService(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ConfirmByToken(""), ErrInvalidToken)
	assert.ErrorIs(t, svc.ConfirmByToken("bogus"), ErrInvalidToken)

	require.NoError(t, svc.ConfirmByToken(*user.EmailConfirmationToken))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, stored.EmailConfirmed)
}

func TestConfirmByTokenExpired(t *testing.T) {
	svc, db, _ := newAuthService(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	stale := time.Now().Add(-25 * time.Hour)
	require.NoError(t, db.Model(user).Update("email_confirmation_sent_at", stale).Error)

	assert.ErrorIs(t, svc.ConfirmByToken(*user.EmailConfirmationToken), ErrTokenExpired)
}

func TestRefreshTokens(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)
	require.NoError(t, svc.VerifyOTP(user.Email, *user.OTPCode))

	resp, err := svc.Login(&LoginRequest{Email: user.Email, Password: "supersecret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, user.ID, refreshed.User.ID)

	// An access token is not accepted as a refresh token
	_, err = svc.Refresh(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Refresh("garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q is not all digits", code)
		}
	}
}

func TestMailerFailureDoesNotBlockRegistration(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{err: assert.AnError}
	svc := NewAuthService(db, authTestConfig(), mailer)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)
	require.NoError(t, svc.VerifyOTP(user.Email, *user.OTPCode))
}
