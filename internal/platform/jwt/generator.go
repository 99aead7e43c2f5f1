// Package jwtmw はログイントークンの発行と、gin用の認証・認可ミドルウェアを提供します。
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lodging_backend/internal/feature/auth/domain/entity"
)

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given principal.
	GenerateToken(p entity.Principal) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed HS256 token whose subject is the user ID and which carries the role.
func (g *generator) GenerateToken(p entity.Principal) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		"sub":   p.UserID,
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
		"email": p.Email,
		"role":  p.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
