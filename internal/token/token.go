// Package token issues and verifies the two classes of signed credentials:
// short-lived access tokens and longer-lived refresh tokens. Each class has
// its own secret so one cannot be replayed as the other.
package token

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// defaultRefreshTTL is used when the configured refresh expiry string does
// not parse.
const defaultRefreshTTL = 7 * 24 * time.Hour

var expiryPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// Config holds the two signing contexts. Expiry values are duration strings
// of the form "<integer><unit>" with unit in s/m/h/d (e.g. "15m", "7d").
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  string
	RefreshExpiry string
}

// Manager signs and verifies tokens for both contexts.
type Manager struct {
	config *Config
}

// NewManager creates a token Manager.
func NewManager(config *Config) *Manager {
	return &Manager{config: config}
}

// IssueAccess signs a new access token for the user.
func (m *Manager) IssueAccess(userID string) (string, error) {
	return m.sign(userID, m.config.AccessSecret, parseExpiry(m.config.AccessExpiry, 15*time.Minute))
}

// IssueRefresh signs a new refresh token for the user.
func (m *Manager) IssueRefresh(userID string) (string, error) {
	return m.sign(userID, m.config.RefreshSecret, parseExpiry(m.config.RefreshExpiry, defaultRefreshTTL))
}

// VerifyAccess validates an access token and returns the embedded user ID.
func (m *Manager) VerifyAccess(tokenString string) (string, error) {
	return m.verify(tokenString, m.config.AccessSecret)
}

// VerifyRefresh validates a refresh token and returns the embedded user ID.
func (m *Manager) VerifyRefresh(tokenString string) (string, error) {
	return m.verify(tokenString, m.config.RefreshSecret)
}

// RefreshTokenExpiry returns the absolute expiry timestamp for a refresh
// token issued now, from the configured duration string.
func (m *Manager) RefreshTokenExpiry() time.Time {
	return time.Now().Add(parseExpiry(m.config.RefreshExpiry, defaultRefreshTTL))
}

func (m *Manager) sign(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
		// iat has second granularity; jti keeps two tokens signed for the
		// same user within one second from colliding on the unique token
		// column.
		"jti": uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (m *Manager) verify(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrTokenInvalid
	}
	return userID, nil
}

// parseExpiry parses "<integer><unit>" duration strings. Unknown formats fall
// back to the given default.
func parseExpiry(expiry string, fallback time.Duration) time.Duration {
	match := expiryPattern.FindStringSubmatch(expiry)
	if match == nil {
		return fallback
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return fallback
	}
	switch match[2] {
	case "s":
		return time.Duration(value) * time.Second
	case "m":
		return time.Duration(value) * time.Minute
	case "h":
		return time.Duration(value) * time.Hour
	case "d":
		return time.Duration(value) * 24 * time.Hour
	}
	return fallback
}
