package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"flyerhub-backend/internal/config"
	"flyerhub-backend/internal/models"
)

const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
)

// Claims identify either an admin (Role "admin") or a web user (SocialID set).
type Claims struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	SocialID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// IsWebUser reports whether the token was issued to a storefront customer.
func (c *Claims) IsWebUser() bool {
	return c.SocialID != "" && c.Role == ""
}

// IssueToken signs claims with HS256, expiring after ttl.
func IssueToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Message: message})
}

// AuthMiddleware verifies the bearer token and stores its claims and id on
// the context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			unauthorized(c, "empty token")
			return
		}

		// Some clients URL-encode the token.
		if decoded, err := url.QueryUnescape(tokenString); err == nil && decoded != tokenString {
			tokenString = decoded
		}

		if len(strings.Split(tokenString, ".")) != 3 {
			unauthorized(c, "invalid token format")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if cfg.JWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				unauthorized(c, "token has expired")
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				unauthorized(c, "token signature is invalid")
			default:
				unauthorized(c, "invalid token")
			}
			return
		}
		if !token.Valid || claims.ID == 0 {
			unauthorized(c, "invalid token claims")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.ID)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "admin access required",
			})
			return
		}
		c.Next()
	}
}

// WebOnly must run after AuthMiddleware. Back-office tokens carry ids from
// a different table and are refused.
func WebOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || !claims.IsWebUser() {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "customer access required",
			})
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
