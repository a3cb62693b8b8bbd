package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

type ContactStore interface {
	CreateContactMessage(ctx context.Context, m *models.ContactMessage) (*models.ContactMessage, error)
	ListContactMessages(ctx context.Context, limit int) ([]models.ContactMessage, error)
}

const contactListLimit = 100

type ContactHandler struct {
	store    ContactStore
	notifier services.Notifier
}

func NewContactHandler(store ContactStore, notifier services.Notifier) *ContactHandler {
	return &ContactHandler{store: store, notifier: notifier}
}

// SubmitContact godoc
// @Summary     Send a message to the shop
// @Tags        contact
// @Accept      json
// @Produce     json
// @Param       request body models.ContactRequest true "Message"
// @Success     201 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.store.CreateContactMessage(c.Request.Context(), &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifier.Emit(c.Request.Context(),
		"New Contact Message",
		fmt.Sprintf("%s (%s): %s", msg.Name, msg.Email, msg.Subject),
		models.SeverityInfo,
	)
	c.JSON(http.StatusCreated, models.MessageResponse{Success: true, Message: "Message sent successfully"})
}

// ListContactMessages godoc
// @Summary     Latest contact messages
// @Tags        contact
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ContactListResponse
// @Router      /contact [get]
func (h *ContactHandler) ListContactMessages(c *gin.Context) {
	messages, err := h.store.ListContactMessages(c.Request.Context(), contactListLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ContactListResponse{Success: true, Messages: messages})
}
