package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/models"
)

type FavoriteStore interface {
	AddFavorite(ctx context.Context, userID, flyerID int64) (bool, error)
	RemoveFavorite(ctx context.Context, userID, flyerID int64) error
	ListFavorites(ctx context.Context, userID int64) ([]models.Flyer, error)
}

type FavoritesHandler struct {
	store FavoriteStore
}

func NewFavoritesHandler(store FavoriteStore) *FavoritesHandler {
	return &FavoritesHandler{store: store}
}

// AddFavorite godoc
// @Summary     Favorite a flyer
// @Tags        favorites
// @Accept      json
// @Produce     json
// @Param       request body models.FavoriteRequest true "User and flyer"
// @Success     200 {object} models.MessageResponse "Already in favorites"
// @Success     201 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /favorites/add [post]
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if !bindJSON(c, &req) {
		return
	}
	inserted, err := h.store.AddFavorite(c.Request.Context(), req.UserID, req.FlyerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !inserted {
		c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Already in favorites"})
		return
	}
	c.JSON(http.StatusCreated, models.MessageResponse{Success: true, Message: "Added to favorites"})
}

// RemoveFavorite godoc
// @Summary     Unfavorite a flyer
// @Tags        favorites
// @Accept      json
// @Produce     json
// @Param       request body models.FavoriteRequest true "User and flyer"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /favorites/remove [post]
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.RemoveFavorite(c.Request.Context(), req.UserID, req.FlyerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Removed from favorites"})
}

// ListFavorites godoc
// @Summary     A user's favorite flyers
// @Tags        favorites
// @Produce     json
// @Param       user_id path     int true "Web user ID"
// @Success     200 {object} models.FavoriteListResponse
// @Router      /favorites/user/{user_id} [get]
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	flyers, err := h.store.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FavoriteListResponse{Success: true, Count: len(flyers), Favorites: flyers})
}
