package models

import (
	"time"
)

// User represents the users table
// DB: users
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"column:email;size:255;not null;uniqueIndex:users_email_key" json:"email"`
	PasswordDigest string     `gorm:"column:password_digest;size:255;not null" json:"-"`
	Username       string     `gorm:"column:username;size:100;not null;uniqueIndex:users_username_key" json:"username"`
	Name           string     `gorm:"column:name;size:255;not null" json:"name"`
	Country        string     `gorm:"column:country;size:100;not null" json:"country"`
	BirthDate      *time.Time `gorm:"column:birth_date" json:"birth_date,omitempty"`

	EmailConfirmed          bool       `gorm:"column:email_confirmed;not null;default:false" json:"email_confirmed"`
	EmailConfirmationToken  *string    `gorm:"column:email_confirmation_token;size:255;uniqueIndex:users_email_confirmation_token_key" json:"-"`
	EmailConfirmationSentAt *time.Time `gorm:"column:email_confirmation_sent_at" json:"-"`
	OTPCode                 *string    `gorm:"column:otp_code;size:10" json:"-"`
	OTPExpiresAt            *time.Time `gorm:"column:otp_expires_at" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	// Relations
	Playlists       []Playlist        `gorm:"foreignKey:UserID" json:"playlists,omitempty"`
	SearchAnalytics []SearchAnalytic  `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// OTPExpired reports whether the current OTP code can no longer be used.
func (u *User) OTPExpired(now time.Time) bool {
	return u.OTPExpiresAt == nil || u.OTPExpiresAt.Before(now)
}

// ConfirmationExpired reports whether the email confirmation link has expired.
// Links are valid for 24 hours after being sent.
func (u *User) ConfirmationExpired(now time.Time) bool {
	return u.EmailConfirmationSentAt == nil || u.EmailConfirmationSentAt.Before(now.Add(-24*time.Hour))
}
