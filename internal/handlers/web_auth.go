package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/config"
	"flyerhub-backend/internal/logging"
	"flyerhub-backend/internal/middleware"
	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

type WebUserStore interface {
	UpsertWebUser(ctx context.Context, fullname, email, userID string) (*models.WebUser, bool, error)
	GetWebUserBySocialID(ctx context.Context, userID string) (*models.WebUser, error)
	GetWebUser(ctx context.Context, id int64) (*models.WebUser, error)
	UpdateWebUserProfile(ctx context.Context, id int64, fullname, email string) (*models.WebUser, error)
	UpdateWebUserPassword(ctx context.Context, id int64, passwordHash string) error
}

// WebAuthHandler signs storefront customers in by their social provider id.
type WebAuthHandler struct {
	store WebUserStore
	cfg   *config.Config
}

func NewWebAuthHandler(store WebUserStore, cfg *config.Config) *WebAuthHandler {
	return &WebAuthHandler{store: store, cfg: cfg}
}

func (h *WebAuthHandler) issue(user *models.WebUser) (string, error) {
	return middleware.IssueToken(h.cfg.JWTSecret, middleware.Claims{
		ID:       user.ID,
		Email:    user.Email,
		SocialID: user.UserID,
	}, h.cfg.JWTExpires)
}

// Register godoc
// @Summary     Social sign-up
// @Description Creates the customer, or refreshes name and email when the provider id is known.
// @Tags        web-auth
// @Accept      json
// @Produce     json
// @Param       request body models.WebRegisterRequest true "Profile"
// @Success     200 {object} models.WebAuthResponse "Existing user updated"
// @Success     201 {object} models.WebAuthResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Router      /web/auth/register [post]
func (h *WebAuthHandler) Register(c *gin.Context) {
	var req models.WebRegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, created, err := h.store.UpsertWebUser(c.Request.Context(),
		strings.TrimSpace(req.Fullname),
		strings.ToLower(strings.TrimSpace(req.Email)),
		req.UserID,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.issue(user)
	if err != nil {
		respondError(c, err)
		return
	}

	status, message := http.StatusOK, "User updated successfully"
	if created {
		status, message = http.StatusCreated, "User registered successfully"
	}
	logging.Ctx(c.Request.Context()).Info().Int64("web_user_id", user.ID).Bool("created", created).Msg("web user signed up")
	c.JSON(status, models.WebAuthResponse{Success: true, Message: message, Token: token, User: user})
}

// Login godoc
// @Summary     Social sign-in
// @Tags        web-auth
// @Accept      json
// @Produce     json
// @Param       request body models.WebLoginRequest true "Provider id"
// @Success     200 {object} models.WebAuthResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Router      /web/auth/login [post]
func (h *WebAuthHandler) Login(c *gin.Context) {
	var req models.WebLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.store.GetWebUserBySocialID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.issue(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.WebAuthResponse{Success: true, Message: "Login successful", Token: token, User: user})
}

// currentUserID is the web_users id of the signed-in customer. Admin tokens
// are refused since their ids point at the users table.
func currentUserID(c *gin.Context) (int64, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, &services.UnauthorizedError{Message: "missing credentials"})
		return 0, false
	}
	if !claims.IsWebUser() {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Success: false, Message: "customer access required"})
		return 0, false
	}
	return claims.ID, true
}

// UpdateProfile godoc
// @Summary     Update the signed-in customer's profile
// @Tags        web-auth
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdateProfileRequest true "Profile"
// @Success     200 {object} models.WebAuthResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /web/auth/profile [put]
func (h *WebAuthHandler) UpdateProfile(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.store.UpdateWebUserProfile(c.Request.Context(), id,
		strings.TrimSpace(req.Fullname),
		strings.ToLower(strings.TrimSpace(req.Email)),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.WebAuthResponse{Success: true, Message: "Profile updated successfully", User: user})
}

// ChangePassword godoc
// @Summary     Change the signed-in customer's password
// @Tags        web-auth
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ChangePasswordRequest true "Passwords"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /web/auth/password [put]
func (h *WebAuthHandler) ChangePassword(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.GetWebUser(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user.PasswordHash == nil || *user.PasswordHash == "" {
		badRequest(c, "No password is set for this account")
		return
	}
	if !services.CheckPassword(*user.PasswordHash, req.CurrentPassword) {
		respondError(c, &services.UnauthorizedError{Message: "Current password is incorrect"})
		return
	}

	hash, err := services.HashPassword(req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.store.UpdateWebUserPassword(ctx, id, hash); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Password updated successfully"})
}
