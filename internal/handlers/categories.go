package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/models"
)

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string, rank int) (*models.Category, error)
	UpdateCategoryRank(ctx context.Context, id int64, rank int) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type CategoriesHandler struct {
	store CategoryStore
}

func NewCategoriesHandler(store CategoryStore) *CategoriesHandler {
	return &CategoriesHandler{store: store}
}

// ListCategories godoc
// @Summary     List categories by rank
// @Tags        categories
// @Produce     json
// @Success     200 {object} models.CategoryListResponse
// @Router      /categories [get]
func (h *CategoriesHandler) ListCategories(c *gin.Context) {
	categories, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CategoryListResponse{Success: true, Data: categories})
}

// CreateCategory godoc
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateCategoryRequest true "Category"
// @Success     201 {object} models.CategoryResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /categories [post]
func (h *CategoriesHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		badRequest(c, "Name is required")
		return
	}
	category, err := h.store.CreateCategory(c.Request.Context(), name, req.Rank)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CategoryResponse{Success: true, Message: "Category created", Data: category})
}

// UpdateCategoryRank godoc
// @Summary     Change a category's rank
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path int                              true "Category ID"
// @Param       request body models.UpdateCategoryRankRequest true "Rank"
// @Success     200 {object} models.CategoryResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /categories/{id}/rank [patch]
func (h *CategoriesHandler) UpdateCategoryRank(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCategoryRankRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.store.UpdateCategoryRank(c.Request.Context(), id, *req.Rank)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CategoryResponse{Success: true, Message: "Rank updated", Data: category})
}

// DeleteCategory godoc
// @Summary     Delete a category
// @Tags        categories
// @Produce     json
// @Security    Bearer
// @Param       id  path     int true "Category ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /categories/{id} [delete]
func (h *CategoriesHandler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Category deleted"})
}
