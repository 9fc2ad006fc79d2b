package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// refreshTokenBytes is the entropy drawn for each refresh token before hex encoding.
const refreshTokenBytes = 32

// IssuedRefreshToken is a freshly drawn refresh token. Token goes to the client;
// only Hash and ExpiresAt are stored.
type IssuedRefreshToken struct {
	Token     string
	Hash      string
	ExpiresAt time.Time
}

// NewRefreshToken draws a refresh token that expires ttl after now.
func NewRefreshToken(now time.Time, ttl time.Duration) (IssuedRefreshToken, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return IssuedRefreshToken{}, fmt.Errorf("read random bytes for refresh token: %w", err)
	}
	token := hex.EncodeToString(buf)
	return IssuedRefreshToken{
		Token:     token,
		Hash:      refreshTokenHash(token),
		ExpiresAt: now.Add(ttl),
	}, nil
}

// RefreshTokenMatches compares a presented token against the stored hash in constant time.
func RefreshTokenMatches(token, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(refreshTokenHash(token)), []byte(storedHash)) == 1
}

func refreshTokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ErrPasswordTooLong is returned for passwords bcrypt would silently truncate.
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// HashPassword bcrypt-hashes a member's login password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// PasswordMatches reports whether password produced hash. An empty hash never matches,
// which covers accounts created through Google sign-in.
func PasswordMatches(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
