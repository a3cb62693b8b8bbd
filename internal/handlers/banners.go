package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
	"flyerhub-backend/internal/storage"
	"flyerhub-backend/internal/supabase"
)

type BannerStore interface {
	ListBanners(ctx context.Context, filter supabase.BannerFilter) ([]models.Banner, error)
	GetBanner(ctx context.Context, id int64) (*models.Banner, error)
	CreateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error)
	UpdateBanner(ctx context.Context, id int64, patch models.BannerPatch) (*models.Banner, error)
	DeleteBanner(ctx context.Context, id int64) (*models.Banner, error)
	ReorderBanners(ctx context.Context, order []models.BannerOrder) error
	ListFlyerCategories(ctx context.Context) ([]string, error)
}

const bannerImagePrefix = "banner"

type BannersHandler struct {
	store    BannerStore
	uploader *services.Uploader
}

func NewBannersHandler(store BannerStore, uploader *services.Uploader) *BannersHandler {
	return &BannersHandler{store: store, uploader: uploader}
}

func (h *BannersHandler) storeImage(c *gin.Context, file *services.UploadedFile) (string, bool) {
	if err := services.ImagePolicy.Check(file); err != nil {
		respondError(c, err)
		return "", false
	}
	url, err := h.uploader.Store(c.Request.Context(), storage.NamespaceBanners, bannerImagePrefix, file)
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return url, true
}

// CreateBanner godoc
// @Summary     Create a home page banner
// @Tags        banners
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       title          formData string true  "Title"
// @Param       image          formData file   true  "Banner image"
// @Param       description    formData string false "Description"
// @Param       button_enabled formData bool   false "Show the call to action"
// @Param       button_text    formData string false "Call to action text"
// @Param       link_type      formData string false "category, flyer, external or none"
// @Param       link_value     formData string false "Link target"
// @Param       display_order  formData int    false "Position"
// @Param       status         formData bool   false "Active"
// @Success     201 {object} models.BannerResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /banners/create [post]
func (h *BannersHandler) CreateBanner(c *gin.Context) {
	body, err := readFields(c)
	if err != nil {
		respondError(c, err)
		return
	}
	title, _ := body.str("title")
	if title == "" {
		badRequest(c, "Title is required")
		return
	}
	file := formFile(c, "image")
	if file == nil {
		badRequest(c, "Banner image is required")
		return
	}

	linkType := models.LinkTypeNone
	if v, ok := body.str("link_type"); ok && v != "" {
		linkType = v
	}
	if !models.IsValidLinkType(linkType) {
		badRequest(c, "Invalid link_type")
		return
	}

	banner := &models.Banner{
		Title:       title,
		Description: body.strPtr("description"),
		LinkType:    linkType,
		Status:      true,
	}
	if linkType != models.LinkTypeNone {
		banner.LinkValue = body.strPtr("link_value")
	}
	if v := body.boolPtr("button_enabled"); v != nil {
		banner.ButtonEnabled = *v
	}
	if banner.ButtonEnabled {
		text := models.DefaultButtonText
		if v, _ := body.str("button_text"); v != "" {
			text = v
		}
		banner.ButtonText = &text
	}
	if v, ok := body.str("display_order"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "Invalid display_order")
			return
		}
		banner.DisplayOrder = n
	}
	if v := body.boolPtr("status"); v != nil {
		banner.Status = *v
	}

	url, ok := h.storeImage(c, file)
	if !ok {
		return
	}
	banner.ImageURL = &url

	created, err := h.store.CreateBanner(c.Request.Context(), banner)
	if err != nil {
		h.uploader.Remove(c.Request.Context(), url)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.BannerResponse{Success: true, Message: "Banner created successfully", Data: created})
}

// UpdateBanner godoc
// @Summary     Update a banner
// @Description Partial update; a new "image" replaces and deletes the old object.
// @Tags        banners
// @Accept      multipart/form-data
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id  path     int true "Banner ID"
// @Success     200 {object} models.BannerResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /banners/update/{id} [put]
func (h *BannersHandler) UpdateBanner(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	body, err := readFields(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.GetBanner(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	patch := models.BannerPatch{
		Title:         body.strPtr("title"),
		Description:   body.strPtr("description"),
		ButtonText:    body.strPtr("button_text"),
		ButtonEnabled: body.boolPtr("button_enabled"),
		LinkType:      body.strPtr("link_type"),
		LinkValue:     body.strPtr("link_value"),
		Status:        body.boolPtr("status"),
	}
	if patch.Title != nil && *patch.Title == "" {
		badRequest(c, "Title cannot be empty")
		return
	}
	if patch.LinkType != nil && !models.IsValidLinkType(*patch.LinkType) {
		badRequest(c, "Invalid link_type")
		return
	}
	if patch.ButtonEnabled != nil && *patch.ButtonEnabled && patch.ButtonText == nil && existing.ButtonText == nil {
		text := models.DefaultButtonText
		patch.ButtonText = &text
	}
	if v, ok := body.str("display_order"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "Invalid display_order")
			return
		}
		patch.DisplayOrder = &n
	}

	file := formFile(c, "image")
	if file != nil {
		url, ok := h.storeImage(c, file)
		if !ok {
			return
		}
		patch.ImageURL = &url
	}
	if patch.IsEmpty() {
		badRequest(c, "No fields to update")
		return
	}

	banner, err := h.store.UpdateBanner(ctx, id, patch)
	if err != nil {
		if patch.ImageURL != nil {
			h.uploader.Remove(ctx, *patch.ImageURL)
		}
		respondError(c, err)
		return
	}
	if patch.ImageURL != nil && existing.ImageURL != nil {
		h.uploader.Remove(ctx, *existing.ImageURL)
	}
	c.JSON(http.StatusOK, models.BannerResponse{Success: true, Message: "Banner updated successfully", Data: banner})
}

// DeleteBanner godoc
// @Summary     Delete a banner
// @Tags        banners
// @Produce     json
// @Security    Bearer
// @Param       id  path     int true "Banner ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /banners/delete/{id} [delete]
func (h *BannersHandler) DeleteBanner(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	banner, err := h.store.DeleteBanner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if banner.ImageURL != nil {
		h.uploader.Remove(c.Request.Context(), *banner.ImageURL)
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Banner deleted successfully"})
}

// SetBannerStatus godoc
// @Summary     Activate or deactivate a banner
// @Tags        banners
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path int                        true "Banner ID"
// @Param       request body models.BannerStatusRequest true "Status"
// @Success     200 {object} models.BannerResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /banners/status/{id} [patch]
func (h *BannersHandler) SetBannerStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.BannerStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Status == nil {
		badRequest(c, "status is required")
		return
	}
	status := services.ParseBool(req.Status)
	banner, err := h.store.UpdateBanner(c.Request.Context(), id, models.BannerPatch{Status: &status})
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Banner deactivated"
	if status {
		message = "Banner activated"
	}
	c.JSON(http.StatusOK, models.BannerResponse{Success: true, Message: message, Data: banner})
}

// ReorderBanners godoc
// @Summary     Reorder banners
// @Tags        banners
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ReorderBannersRequest true "New positions"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /banners/reorder [put]
func (h *BannersHandler) ReorderBanners(c *gin.Context) {
	var req models.ReorderBannersRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.ReorderBanners(c.Request.Context(), req.Banners); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Banners reordered successfully"})
}

// ListBanners godoc
// @Summary     List banners
// @Tags        banners
// @Produce     json
// @Param       active_only query bool false "Only active banners"
// @Param       status      query bool false "Filter by status"
// @Success     200 {object} models.BannerListResponse
// @Router      /banners [get]
func (h *BannersHandler) ListBanners(c *gin.Context) {
	var filter supabase.BannerFilter
	if services.ParseBool(c.Query("active_only")) {
		active := true
		filter.Status = &active
	} else if v, ok := c.GetQuery("status"); ok && v != "" {
		status := services.ParseBool(v)
		filter.Status = &status
	}

	banners, err := h.store.ListBanners(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.BannerListResponse{Success: true, Count: len(banners), Data: banners})
}

// GetBanner godoc
// @Summary     Get a banner
// @Tags        banners
// @Produce     json
// @Param       id  path     int true "Banner ID"
// @Success     200 {object} models.BannerResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /banners/{id} [get]
func (h *BannersHandler) GetBanner(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	banner, err := h.store.GetBanner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.BannerResponse{Success: true, Data: banner})
}

// ListLinkCategories godoc
// @Summary     Flyer categories a banner can link to
// @Tags        banners
// @Produce     json
// @Success     200 {object} models.StringListResponse
// @Router      /banners/categories [get]
func (h *BannersHandler) ListLinkCategories(c *gin.Context) {
	categories, err := h.store.ListFlyerCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StringListResponse{Success: true, Data: categories})
}
