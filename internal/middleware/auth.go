package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bagoloot/bagoloot/internal/auth"
	"github.com/bagoloot/bagoloot/internal/metrics"
	"github.com/bagoloot/bagoloot/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthenticatedUser struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// AuthMiddleware rejects the request with 401 unless it carries a valid
// bearer token, and stores the caller as an AuthenticatedUser otherwise.
func AuthMiddleware(manager *auth.Manager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			metrics.TokenRejections.WithLabelValues("missing").Inc()
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			metrics.TokenRejections.WithLabelValues("malformed").Inc()
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := manager.Validate(parts[1])

		if err != nil {
			reason := "invalid"
			if errors.Is(err, jwt.ErrTokenExpired) {
				reason = "expired"
			}
			metrics.TokenRejections.WithLabelValues(reason).Inc()
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			Username: claims.Subject,
			Roles:    claims.Roles,
		})
		ctx.Next()
	}
}
