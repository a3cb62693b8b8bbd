package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
	"flyerhub-backend/internal/storage"
)

type OrderFileStore interface {
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	CreateOrderFile(ctx context.Context, f *models.OrderFile) (*models.OrderFile, error)
	ListOrderFilesByOrder(ctx context.Context, orderID int64) ([]models.OrderFile, error)
	ListOrderFilesByUser(ctx context.Context, userID int64) ([]models.OrderFile, error)
	DeleteOrderFile(ctx context.Context, id int64) (*models.OrderFile, error)
}

type OrderFilesHandler struct {
	store    OrderFileStore
	uploader *services.Uploader
}

func NewOrderFilesHandler(store OrderFileStore, uploader *services.Uploader) *OrderFilesHandler {
	return &OrderFilesHandler{store: store, uploader: uploader}
}

// UploadOrderFile godoc
// @Summary     Attach a deliverable to an order
// @Tags        order-files
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       order_id path     int  true "Order ID"
// @Param       file     formData file true "Image, ZIP or PDF (50 MB)"
// @Success     201 {object} models.OrderFileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /order-files/{order_id} [post]
func (h *OrderFilesHandler) UploadOrderFile(c *gin.Context) {
	orderID, ok := idParam(c, "order_id")
	if !ok {
		return
	}
	file := formFile(c, "file")
	if err := services.OrderFilePolicy.Check(file); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	order, err := h.store.GetOrder(ctx, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.WebUserID == nil {
		badRequest(c, "Order has no associated user")
		return
	}

	url, err := h.uploader.Store(ctx, storage.NamespaceOrderFiles, "order", file)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.store.CreateOrderFile(ctx, &models.OrderFile{
		OrderID:      orderID,
		UserID:       *order.WebUserID,
		FileURL:      url,
		FileType:     services.ClassifyFile(file.ContentType, file.Filename),
		OriginalName: file.Filename,
	})
	if err != nil {
		h.uploader.Remove(ctx, url)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.OrderFileResponse{Success: true, Message: "File uploaded successfully", File: created})
}

// ListOrderFiles godoc
// @Summary     List files attached to an order
// @Tags        order-files
// @Produce     json
// @Param       order_id path     int true "Order ID"
// @Success     200 {object} models.OrderFileListResponse
// @Router      /order-files/order/{order_id} [get]
func (h *OrderFilesHandler) ListOrderFiles(c *gin.Context) {
	orderID, ok := idParam(c, "order_id")
	if !ok {
		return
	}
	files, err := h.store.ListOrderFilesByOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OrderFileListResponse{Success: true, Files: files})
}

// ListUserOrderFiles godoc
// @Summary     List every file delivered to a user
// @Tags        order-files
// @Produce     json
// @Param       user_id path     int true "Web user ID"
// @Success     200 {object} models.OrderFileListResponse
// @Router      /order-files/user/{user_id} [get]
func (h *OrderFilesHandler) ListUserOrderFiles(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	files, err := h.store.ListOrderFilesByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OrderFileListResponse{Success: true, Files: files})
}

// DeleteOrderFile godoc
// @Summary     Delete an order file
// @Tags        order-files
// @Produce     json
// @Security    Bearer
// @Param       id  path     int true "File ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /order-files/{id} [delete]
func (h *OrderFilesHandler) DeleteOrderFile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	file, err := h.store.DeleteOrderFile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.uploader.Remove(c.Request.Context(), file.FileURL)
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "File deleted successfully"})
}
