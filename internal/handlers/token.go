package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bagoloot/bagoloot/internal/auth"
	"github.com/bagoloot/bagoloot/internal/metrics"
	"github.com/bagoloot/bagoloot/internal/types"
	"github.com/bagoloot/bagoloot/internal/utils"
	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	manager *auth.Manager
	checker auth.CredentialChecker
}

func NewTokenHandler(manager *auth.Manager, checker auth.CredentialChecker) *TokenHandler {
	return &TokenHandler{
		manager: manager,
		checker: checker,
	}
}

// CreateToken exchanges username and password (form or query) for a
// bearer token. Any rejection is a plain 400.
func (h *TokenHandler) CreateToken(ctx *gin.Context) {
	username := utils.FormOrQuery(ctx, "username")
	password := utils.FormOrQuery(ctx, "password")

	identity, err := h.checker.Check(ctx.Request.Context(), username, password)

	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.TokenRejections.WithLabelValues("credentials").Inc()
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
			return
		}
		_ = ctx.Error(err)
		slog.Error("Failed to check credentials", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.respondToken(ctx, identity, "login")
}

// GetToken reports who the bearer token belongs to.
func (h *TokenHandler) GetToken(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	roles := currentUser.Roles
	if roles == nil {
		roles = []string{}
	}

	ctx.JSON(http.StatusOK, types.IdentityResponse{
		Username: currentUser.Username,
		Roles:    roles,
	})
}

// RefreshToken issues a new token for the bearer without asking for the
// password again.
func (h *TokenHandler) RefreshToken(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	h.respondToken(ctx, auth.Identity{Username: currentUser.Username, Roles: currentUser.Roles}, "refresh")
}

func (h *TokenHandler) respondToken(ctx *gin.Context, identity auth.Identity, kind string) {
	var (
		token string
		err   error
	)

	if kind == "refresh" {
		token, err = h.manager.Refresh(identity)
	} else {
		token, err = h.manager.Issue(identity)
	}

	if err != nil {
		_ = ctx.Error(err)
		slog.Error("Failed to generate JWT", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	metrics.TokensIssued.WithLabelValues(kind).Inc()

	ctx.JSON(http.StatusOK, types.TokenResponse{
		Token:     token,
		ExpiresIn: int64(h.manager.TTL().Seconds()),
	})
}
