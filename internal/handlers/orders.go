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

// OrderQueries are the read and status operations behind the order routes.
type OrderQueries interface {
	GetOrderWithFlyer(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, webUserID int64, limit int) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (string, error)
}

const userOrdersLimit = 50

type OrdersHandler struct {
	composer *services.Composer
	store    OrderQueries
	notifier services.Notifier
	maxBytes int64
}

func NewOrdersHandler(composer *services.Composer, store OrderQueries, notifier services.Notifier, maxBytes int64) *OrdersHandler {
	return &OrdersHandler{
		composer: composer,
		store:    store,
		notifier: notifier,
		maxBytes: maxBytes,
	}
}

// parseSubmission reads a multipart (or urlencoded) order or cart form.
func parseSubmission(c *gin.Context, maxBytes int64) (services.Submission, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(maxBytes); err != nil {
			return services.Submission{}, services.NewValidationError("invalid multipart form: " + err.Error())
		}
		return services.SubmissionFromForm(c.Request.MultipartForm), nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return services.Submission{}, services.NewValidationError("invalid form body")
	}
	sub := services.Submission{Fields: map[string]string{}, Files: map[string]*services.UploadedFile{}}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			sub.Fields[key] = values[0]
		}
	}
	return sub, nil
}

// CreateOrder godoc
// @Summary     Create an order
// @Description Creates a flyer order from a multipart form. Asset slots accept an upload (dj_<i>, sponsor_<i>, host_file, venue_logo) or a library URL (dj_url_<i>, sponsor_url_<i>, host_url_0, venue_logo_url); uploads win.
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Param       web_user_id   formData int    false "Buyer (required unless email is given)"
// @Param       email         formData string false "Buyer email"
// @Param       flyer_is      formData int    false "Catalog flyer id"
// @Param       djs           formData string false "JSON array of {name}"
// @Param       host          formData string false "JSON object {name}"
// @Param       sponsors      formData string false "JSON array of {name}"
// @Param       total_price   formData string false "Total price"
// @Param       delivery_time formData string false "Delivery time"
// @Success     201 {object} models.OrderCreatedResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	sub, err := parseSubmission(c, h.maxBytes)
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := h.composer.CreateOrder(c.Request.Context(), sub)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OrderCreatedResponse{
		Success: true,
		Message: "Order created successfully",
		Order:   order,
	})
}

// ListOrders godoc
// @Summary     List all orders
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OrderListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OrderListResponse{Success: true, Count: len(orders), Orders: orders})
}

// GetOrder godoc
// @Summary     Get an order
// @Description Returns the order joined with its catalog flyer.
// @Tags        orders
// @Produce     json
// @Param       id  path     int true "Order ID"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.store.GetOrderWithFlyer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OrderResponse{Success: true, Order: order})
}

// ListUserOrders godoc
// @Summary     List a buyer's orders
// @Description Returns up to 50 of the buyer's newest orders.
// @Tags        orders
// @Produce     json
// @Param       web_user_id path     int true "Web user ID"
// @Success     200 {object} models.OrderListResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /orders/user/{web_user_id} [get]
func (h *OrdersHandler) ListUserOrders(c *gin.Context) {
	userID, ok := idParam(c, "web_user_id")
	if !ok {
		return
	}
	orders, err := h.store.ListOrdersByUser(c.Request.Context(), userID, userOrdersLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OrderListResponse{Success: true, Count: len(orders), Orders: orders})
}

// UpdateOrderStatus godoc
// @Summary     Update order status
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path     int                             true "Order ID"
// @Param       request body     models.UpdateOrderStatusRequest true "New status"
// @Success     200 {object} models.OrderStatusResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{id}/status [patch]
func (h *OrdersHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		badRequest(c, "Invalid status. Must be one of: "+strings.Join(models.OrderStatuses, ", "))
		return
	}

	old, err := h.store.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.notifier != nil {
		h.notifier.Emit(c.Request.Context(),
			"Order Status Updated",
			fmt.Sprintf("Order #%d status changed from %s to %s", id, old, req.Status),
			models.SeverityWarning,
		)
	}

	c.JSON(http.StatusOK, models.OrderStatusResponse{
		Success:   true,
		Message:   "Order status updated successfully",
		OrderID:   id,
		OldStatus: old,
		NewStatus: req.Status,
	})
}
