package jwtmw

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the middleware.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

var errMissingBearer = errors.New("missing bearer token")

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			// JWT_SECRET 未設定はサーバーの設定ミス
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}
		if err := authenticate(c, secret); err != nil {
			msg := "invalid token"
			if errors.Is(err, errMissingBearer) {
				msg = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

// OptionalAuth は有効なトークンがあればユーザー情報をコンテキストに設定し、無くてもリクエストを通します。
// 民宿詳細のように、ログイン時だけお気に入り状態などを返すエンドポイントで使います。
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret != "" && c.GetHeader("Authorization") != "" {
			_ = authenticate(c, secret)
		}
		c.Next()
	}
}

// RequireRole は AuthRequired の後段で、指定ロールを持たないユーザーを403で拒否します。
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// UserIDFrom はコンテキストから認証済みユーザーIDを取り出します。
func UserIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func authenticate(c *gin.Context, secret string) error {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return errMissingBearer
	}
	tokenStr := strings.TrimPrefix(auth, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// HMAC以外の署名アルゴリズムは受け付けない
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok || sub <= 0 {
		return jwt.ErrTokenInvalidClaims
	}

	c.Set(ContextUserID, uint(sub))
	if email, ok := claims["email"].(string); ok {
		c.Set(ContextEmail, email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set(ContextRole, role)
	}
	return nil
}
