package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
	"flyerhub-backend/internal/storage"
)

type UserMediaStore interface {
	CreateUserMedia(ctx context.Context, m *models.UserMedia) (*models.UserMedia, error)
	ListUserMedia(ctx context.Context, webUserID int64) ([]models.UserMedia, error)
	GetUserMedia(ctx context.Context, id, webUserID int64) (*models.UserMedia, error)
	UpdateUserMedia(ctx context.Context, id, webUserID int64, patch models.UserMediaPatch) (*models.UserMedia, error)
	DeleteUserMedia(ctx context.Context, id, webUserID int64) (*models.UserMedia, error)
}

// UserMediaHandler manages a customer's reusable logo and image library.
// Every mutation is scoped to the web_user_id sent with the request.
type UserMediaHandler struct {
	store    UserMediaStore
	uploader *services.Uploader
}

func NewUserMediaHandler(store UserMediaStore, uploader *services.Uploader) *UserMediaHandler {
	return &UserMediaHandler{store: store, uploader: uploader}
}

func mediaPrefix(webUserID int64) string {
	return fmt.Sprintf("user_%d_media", webUserID)
}

// mediaFileType is "pdf" for PDFs and "image" for everything else accepted.
func mediaFileType(f *services.UploadedFile) string {
	if services.ClassifyFile(f.ContentType, f.Filename) == models.FileTypePDF {
		return models.FileTypePDF
	}
	return models.FileTypeImage
}

func formUserID(c *gin.Context) (int64, bool) {
	raw, _ := formValue(c, "web_user_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "web_user_id is required")
		return 0, false
	}
	return id, true
}

// UploadMedia godoc
// @Summary     Upload to a user's media library
// @Tags        user-media
// @Accept      multipart/form-data
// @Produce     json
// @Param       web_user_id formData int  true "Owner"
// @Param       file        formData file true "Image, SVG or PDF (20 MB)"
// @Success     201 {object} models.UserMediaResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /user-media [post]
func (h *UserMediaHandler) UploadMedia(c *gin.Context) {
	file := formFile(c, "file")
	if file == nil {
		badRequest(c, "No file uploaded")
		return
	}
	webUserID, ok := formUserID(c)
	if !ok {
		return
	}
	if err := services.UserMediaPolicy.Check(file); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	url, err := h.uploader.Store(ctx, storage.NamespaceUserMedia, mediaPrefix(webUserID), file)
	if err != nil {
		respondError(c, err)
		return
	}
	media, err := h.store.CreateUserMedia(ctx, &models.UserMedia{
		WebUserID:    webUserID,
		OriginalName: file.Filename,
		FileURL:      url,
		FileType:     mediaFileType(file),
	})
	if err != nil {
		h.uploader.Remove(ctx, url)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.UserMediaResponse{Success: true, Message: "Media uploaded successfully", Media: media})
}

// ListMedia godoc
// @Summary     List a user's media library
// @Tags        user-media
// @Produce     json
// @Param       web_user_id path     int true "Owner"
// @Success     200 {object} models.UserMediaListResponse
// @Router      /user-media/{web_user_id} [get]
func (h *UserMediaHandler) ListMedia(c *gin.Context) {
	webUserID, ok := idParam(c, "web_user_id")
	if !ok {
		return
	}
	media, err := h.store.ListUserMedia(c.Request.Context(), webUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UserMediaListResponse{Success: true, Media: media})
}

func (h *UserMediaHandler) update(c *gin.Context, webUserID int64, patch models.UserMediaPatch, message string) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	media, err := h.store.UpdateUserMedia(c.Request.Context(), id, webUserID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UserMediaResponse{Success: true, Message: message, Media: media})
}

// RenameMedia godoc
// @Summary     Rename a media item
// @Tags        user-media
// @Accept      json
// @Produce     json
// @Param       id      path int                       true "Media ID"
// @Param       request body models.RenameMediaRequest true "New name"
// @Success     200 {object} models.UserMediaResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /user-media/{id}/rename [patch]
func (h *UserMediaHandler) RenameMedia(c *gin.Context) {
	var req models.RenameMediaRequest
	if !bindJSON(c, &req) {
		return
	}
	name := strings.TrimSpace(req.NewName)
	if name == "" {
		badRequest(c, "new_name is required")
		return
	}
	h.update(c, req.WebUserID, models.UserMediaPatch{OriginalName: &name}, "Media renamed successfully")
}

// SetLogo godoc
// @Summary     Flag a media item as a logo
// @Tags        user-media
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Media ID"
// @Param       request body models.SetLogoRequest true "Flag"
// @Success     200 {object} models.UserMediaResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /user-media/{id}/set-logo [patch]
func (h *UserMediaHandler) SetLogo(c *gin.Context) {
	var req models.SetLogoRequest
	if !bindJSON(c, &req) {
		return
	}
	isLogo := services.ParseBool(req.IsLogo)
	h.update(c, req.WebUserID, models.UserMediaPatch{IsLogo: &isLogo}, "Media updated successfully")
}

// SetImage godoc
// @Summary     Flag a media item as an image
// @Tags        user-media
// @Accept      json
// @Produce     json
// @Param       id      path int                    true "Media ID"
// @Param       request body models.SetImageRequest true "Flag"
// @Success     200 {object} models.UserMediaResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /user-media/{id}/set-image [patch]
func (h *UserMediaHandler) SetImage(c *gin.Context) {
	var req models.SetImageRequest
	if !bindJSON(c, &req) {
		return
	}
	isImage := services.ParseBool(req.IsImage)
	h.update(c, req.WebUserID, models.UserMediaPatch{IsImage: &isImage}, "Media updated successfully")
}

// ReplaceMedia godoc
// @Summary     Replace a media item's file
// @Description Stores the new file, points the row at it and deletes the old object.
// @Tags        user-media
// @Accept      multipart/form-data
// @Produce     json
// @Param       id          path     int  true "Media ID"
// @Param       web_user_id formData int  true "Owner"
// @Param       file        formData file true "Replacement"
// @Success     200 {object} models.UserMediaResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /user-media/{id}/replace [patch]
func (h *UserMediaHandler) ReplaceMedia(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	file := formFile(c, "file")
	if file == nil {
		badRequest(c, "No file uploaded")
		return
	}
	webUserID, ok := formUserID(c)
	if !ok {
		return
	}
	if err := services.UserMediaPolicy.Check(file); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.GetUserMedia(ctx, id, webUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	url, err := h.uploader.Store(ctx, storage.NamespaceUserMedia, mediaPrefix(webUserID), file)
	if err != nil {
		respondError(c, err)
		return
	}
	fileType := mediaFileType(file)
	media, err := h.store.UpdateUserMedia(ctx, id, webUserID, models.UserMediaPatch{
		OriginalName: &file.Filename,
		FileURL:      &url,
		FileType:     &fileType,
	})
	if err != nil {
		h.uploader.Remove(ctx, url)
		respondError(c, err)
		return
	}
	h.uploader.Remove(ctx, existing.FileURL)
	c.JSON(http.StatusOK, models.UserMediaResponse{Success: true, Message: "Media replaced successfully", Media: media})
}

// DeleteMedia godoc
// @Summary     Delete a media item
// @Tags        user-media
// @Accept      json
// @Produce     json
// @Param       id      path int                      true "Media ID"
// @Param       request body models.MediaOwnerRequest true "Owner"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /user-media/{id} [delete]
func (h *UserMediaHandler) DeleteMedia(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.MediaOwnerRequest
	if !bindJSON(c, &req) {
		return
	}
	media, err := h.store.DeleteUserMedia(c.Request.Context(), id, req.WebUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.uploader.Remove(c.Request.Context(), media.FileURL)
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Media deleted successfully"})
}
