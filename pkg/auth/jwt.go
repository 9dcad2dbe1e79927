// Package auth issues and validates the HS256 token pair and hashes
// account passwords.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes the short-lived access token from the
// long-lived refresh token in the shared claims shape.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims is the payload of both tokens. The type claim prevents a
// refresh token from being replayed as an access token.
type Claims struct {
	UserID uint      `json:"user_id"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

func newSignedToken(userID uint, secretKey string, tokenType TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
}

func GenerateAccessToken(userID uint, secretKey string, expireMinutes int) (string, error) {
	return newSignedToken(userID, secretKey, AccessToken, time.Duration(expireMinutes)*time.Minute)
}

func GenerateRefreshToken(userID uint, secretKey string, expireDays int) (string, error) {
	return newSignedToken(userID, secretKey, RefreshToken, time.Duration(expireDays)*24*time.Hour)
}

// GenerateTokenPair issues the access and refresh tokens handed out on
// login and refresh.
func GenerateTokenPair(userID uint, secretKey string, accessExpireMin, refreshExpireDays int) (accessToken, refreshToken string, err error) {
	accessToken, err = GenerateAccessToken(userID, secretKey, accessExpireMin)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = GenerateRefreshToken(userID, secretKey, refreshExpireDays)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func ValidateAccessToken(tokenString, secretKey string) (*Claims, error) {
	return validateToken(tokenString, secretKey, AccessToken)
}

func ValidateRefreshToken(tokenString, secretKey string) (*Claims, error) {
	return validateToken(tokenString, secretKey, RefreshToken)
}

func validateToken(tokenString, secretKey string, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != expectedType {
		return nil, errors.New("invalid token type")
	}

	return claims, nil
}
