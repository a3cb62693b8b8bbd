package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/config"
	"flyerhub-backend/internal/middleware"
	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	CreateAdmin(ctx context.Context, email, passwordHash, role string) (*models.AdminUser, error)
}

// AuthHandler signs back-office users in with email and password.
type AuthHandler struct {
	store AdminStore
	cfg   *config.Config
}

func NewAuthHandler(store AdminStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: store, cfg: cfg}
}

// EnsureBootstrapAdmin creates the configured first admin when no account
// with that email exists. It reports whether a user was created.
func EnsureBootstrapAdmin(ctx context.Context, store AdminStore, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	_, err := store.GetAdminByEmail(ctx, email)
	var nf *services.NotFoundError
	switch {
	case err == nil:
		return false, nil
	case !errors.As(err, &nf):
		return false, fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return false, err
	}
	if _, err := store.CreateAdmin(ctx, email, hash, models.RoleAdmin); err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	return true, nil
}

// Register godoc
// @Summary     Register a back-office user
// @Description Only an existing admin can create another one.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.AdminRegisterRequest true "Credentials"
// @Success     201 {object} models.AdminAuthResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.AdminRegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	hash, err := services.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.store.CreateAdmin(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), hash, req.Role)
	if err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) {
			badRequest(c, conflict.Message)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.AdminAuthResponse{Success: true, Message: "User registered successfully", User: user})
}

// Login godoc
// @Summary     Back-office sign in
// @Description Issues a JWT carrying id, email and role. The requested role must match the account.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.AdminLoginRequest true "Credentials"
// @Success     200 {object} models.AdminAuthResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.store.GetAdminByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondError(c, err)
		return
	}
	if user.Role != req.Role {
		respondError(c, &services.UnauthorizedError{Message: "Unauthorized role"})
		return
	}
	if !services.CheckPassword(user.PasswordHash, req.Password) {
		respondError(c, &services.UnauthorizedError{Message: "Invalid credentials"})
		return
	}

	token, err := middleware.IssueToken(h.cfg.JWTSecret, middleware.Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, h.cfg.AdminJWTExpires)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AdminAuthResponse{Success: true, Message: "Login successful", Token: token, User: user})
}
