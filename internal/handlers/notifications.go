package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/models"
)

type NotificationStore interface {
	ListNotifications(ctx context.Context, limit int) ([]models.Notification, int, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) (int64, error)
}

const notificationsLimit = 50

type NotificationsHandler struct {
	store NotificationStore
}

func NewNotificationsHandler(store NotificationStore) *NotificationsHandler {
	return &NotificationsHandler{store: store}
}

// ListNotifications godoc
// @Summary     Latest admin notifications
// @Tags        notifications
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.NotificationListResponse
// @Router      /notifications [get]
func (h *NotificationsHandler) ListNotifications(c *gin.Context) {
	notifications, unread, err := h.store.ListNotifications(c.Request.Context(), notificationsLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NotificationListResponse{
		Success:       true,
		UnreadCount:   unread,
		Notifications: notifications,
	})
}

// MarkRead godoc
// @Summary     Mark a notification read
// @Tags        notifications
// @Produce     json
// @Security    Bearer
// @Param       id  path     int true "Notification ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /notifications/{id}/read [patch]
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.MarkNotificationRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Notification marked as read"})
}

// MarkAllRead godoc
// @Summary     Mark every notification read
// @Tags        notifications
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.MessageResponse
// @Router      /notifications/read-all [patch]
func (h *NotificationsHandler) MarkAllRead(c *gin.Context) {
	if _, err := h.store.MarkAllNotificationsRead(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "All notifications marked as read"})
}
