package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"flyerhub-backend/internal/logging"
	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
	"flyerhub-backend/internal/storage"
)

type FlyerStore interface {
	ListFlyers(ctx context.Context) ([]models.Flyer, error)
	GetFlyer(ctx context.Context, id int64) (*models.Flyer, error)
	CreateFlyer(ctx context.Context, f *models.Flyer) (*models.Flyer, error)
	UpdateFlyer(ctx context.Context, id int64, patch models.FlyerPatch) (*models.Flyer, error)
	DeleteFlyer(ctx context.Context, id int64) (*models.Flyer, error)
}

const (
	maxBulkFlyers    = 50
	defaultFormType  = "With Photo"
	flyerImagePrefix = "template"
)

type FlyersHandler struct {
	store    FlyerStore
	uploader *services.Uploader
}

func NewFlyersHandler(store FlyerStore, uploader *services.Uploader) *FlyersHandler {
	return &FlyersHandler{store: store, uploader: uploader}
}

// ListFlyers godoc
// @Summary     List catalog flyers
// @Tags        flyers
// @Produce     json
// @Success     200 {array} models.Flyer
// @Router      /flyers [get]
func (h *FlyersHandler) ListFlyers(c *gin.Context) {
	flyers, err := h.store.ListFlyers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flyers)
}

// GetFlyer godoc
// @Summary     Get a catalog flyer
// @Tags        flyers
// @Produce     json
// @Param       id  path     int true "Flyer ID"
// @Success     200 {object} models.Flyer
// @Failure     404 {object} models.ErrorResponse
// @Router      /flyers/{id} [get]
func (h *FlyersHandler) GetFlyer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	flyer, err := h.store.GetFlyer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flyer)
}

// flyerInput is one entry of a bulk upload.
type flyerInput struct {
	Title            string      `json:"title"`
	Price            interface{} `json:"price"`
	FormType         string      `json:"formType"`
	FormTypeSnake    string      `json:"form_type"`
	RecentlyAdded    interface{} `json:"recentlyAdded"`
	Categories       interface{} `json:"categories"`
	ImageURL         string      `json:"image_url"`
	FileNameOriginal string      `json:"fileNameOriginal"`
}

func (in flyerInput) price() string {
	switch p := in.Price.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(p)
	default:
		s, _ := fields{"p": p}.str("p")
		return s
	}
}

func (in flyerInput) formType() string {
	switch {
	case in.FormType != "":
		return in.FormType
	case in.FormTypeSnake != "":
		return in.FormTypeSnake
	default:
		return defaultFormType
	}
}

func bulkInputs(c *gin.Context) ([]flyerInput, error) {
	form := c.Request.MultipartForm
	value := func(name string) string {
		if form != nil && len(form.Value[name]) > 0 {
			return strings.TrimSpace(form.Value[name][0])
		}
		return strings.TrimSpace(c.PostForm(name))
	}

	if raw := value("flyers"); raw != "" {
		var inputs []flyerInput
		if err := json.Unmarshal([]byte(raw), &inputs); err != nil || len(inputs) == 0 {
			return nil, services.NewValidationError("Invalid flyers")
		}
		return inputs, nil
	}
	if title := value("title"); title != "" {
		in := flyerInput{
			Title:            title,
			Price:            value("price"),
			FormType:         value("formType"),
			FormTypeSnake:    value("form_type"),
			Categories:       value("categories"),
			ImageURL:         value("image_url"),
			FileNameOriginal: value("fileNameOriginal"),
		}
		if v := value("recentlyAdded"); v != "" {
			in.RecentlyAdded = v
		} else if v := value("recently_added"); v != "" {
			in.RecentlyAdded = v
		}
		return []flyerInput{in}, nil
	}
	return nil, services.NewValidationError("No flyer data")
}

// CreateFlyers godoc
// @Summary     Bulk create catalog flyers
// @Description Accepts a "flyers" JSON array (or single-flyer fields) plus up to 50 "images" files matched by index. Each flyer's image comes from its file, else a base64 data URL in image_url, else an http(s) image_url. Entries without title or price are skipped.
// @Tags        flyers
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       flyers formData string false "JSON array of flyers"
// @Param       images formData file   false "Images matched by index"
// @Success     201 {object} models.FlyerBulkResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /flyers [post]
func (h *FlyersHandler) CreateFlyers(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(formMemory); err != nil {
			badRequest(c, "invalid multipart form")
			return
		}
	}

	inputs, err := bulkInputs(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var images []*services.UploadedFile
	if form := c.Request.MultipartForm; form != nil {
		for _, fh := range form.File["images"] {
			images = append(images, services.FileFromHeader(fh))
		}
	}
	if len(images) > maxBulkFlyers || len(inputs) > maxBulkFlyers {
		badRequest(c, fmt.Sprintf("At most %d flyers per upload", maxBulkFlyers))
		return
	}

	ctx := c.Request.Context()
	results := make([]models.FlyerResult, 0, len(inputs))
	created := 0
	for i, in := range inputs {
		title, price := strings.TrimSpace(in.Title), in.price()
		if title == "" || price == "" {
			results = append(results, models.FlyerResult{Index: i, Status: "skipped", Reason: "Missing title/price"})
			continue
		}

		var file *services.UploadedFile
		if i < len(images) {
			file = images[i]
		}
		imageURL, source := h.resolveImage(ctx, file, in.ImageURL)

		flyer, err := h.store.CreateFlyer(ctx, &models.Flyer{
			Title:            title,
			Price:            formatPrice(price),
			FormType:         in.formType(),
			Categories:       toStringList(in.Categories),
			ImageURL:         imageURL,
			FileNameOriginal: optionalString(in.FileNameOriginal),
			RecentlyAdded:    services.ParseBool(in.RecentlyAdded),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		created++
		results = append(results, models.FlyerResult{
			Index:    i,
			Status:   "saved",
			ID:       flyer.ID,
			Title:    flyer.Title,
			ImageURL: flyer.ImageURL,
			Source:   source,
		})
	}

	c.JSON(http.StatusCreated, models.FlyerBulkResponse{
		Success: true,
		Message: fmt.Sprintf("%d of %d flyers saved", created, len(inputs)),
		Created: created,
		Results: results,
	})
}

// resolveImage applies file, then data URL, then http URL precedence. A
// failed upload leaves the flyer without an image.
func (h *FlyersHandler) resolveImage(ctx context.Context, file *services.UploadedFile, imageURL string) (*string, string) {
	imageURL = strings.TrimSpace(imageURL)
	log := logging.Ctx(ctx)

	switch {
	case file != nil:
		if err := services.ImagePolicy.Check(file); err != nil {
			log.Warn().Err(err).Str("file", file.Filename).Msg("rejected flyer image")
			return nil, "file"
		}
		url, err := h.uploader.Store(ctx, storage.NamespaceFlyers, flyerImagePrefix, file)
		if err != nil {
			log.Warn().Err(err).Str("file", file.Filename).Msg("flyer image upload failed")
			return nil, "file"
		}
		return &url, "file"
	case services.IsImageDataURL(imageURL):
		url, err := h.uploader.StoreDataURL(ctx, storage.NamespaceFlyers, flyerImagePrefix, imageURL)
		if err != nil {
			log.Warn().Err(err).Msg("flyer data url upload failed")
			return nil, "base64"
		}
		return &url, "base64"
	case strings.HasPrefix(imageURL, "http"):
		return &imageURL, "url"
	}
	return nil, ""
}

// UpdateFlyer godoc
// @Summary     Update a catalog flyer
// @Description Partial update. Accepts JSON or multipart; a multipart "image" replaces the current image.
// @Tags        flyers
// @Accept      json
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       id  path     int true "Flyer ID"
// @Success     200 {object} models.FlyerResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /flyers/{id} [put]
func (h *FlyersHandler) UpdateFlyer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	body, err := readFields(c)
	if err != nil {
		respondError(c, err)
		return
	}

	patch := models.FlyerPatch{
		Title:         body.strPtr("title"),
		FormType:      body.strPtr("form_type", "formType"),
		RecentlyAdded: body.boolPtr("recently_added", "recentlyAdded"),
	}
	if price, ok := body.str("price"); ok {
		p := formatPrice(price)
		patch.Price = &p
	}
	if categories, ok := body.list("categories"); ok {
		patch.Categories = categories
	}

	ctx := c.Request.Context()
	file := formFile(c, "image")
	if patch.IsEmpty() && file == nil {
		badRequest(c, "No fields to update")
		return
	}

	var previous *models.Flyer
	if file != nil {
		if err := services.ImagePolicy.Check(file); err != nil {
			respondError(c, err)
			return
		}
		if previous, err = h.store.GetFlyer(ctx, id); err != nil {
			respondError(c, err)
			return
		}
		url, err := h.uploader.Store(ctx, storage.NamespaceFlyers, flyerImagePrefix, file)
		if err != nil {
			respondError(c, err)
			return
		}
		patch.ImageURL = &url
		patch.FileNameOriginal = &file.Filename
	}

	flyer, err := h.store.UpdateFlyer(ctx, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	if previous != nil && previous.ImageURL != nil {
		h.uploader.Remove(ctx, *previous.ImageURL)
	}

	c.JSON(http.StatusOK, models.FlyerResponse{Success: true, Message: "Flyer updated successfully", Flyer: flyer})
}

// DeleteFlyer godoc
// @Summary     Delete a catalog flyer
// @Tags        flyers
// @Produce     json
// @Security    Bearer
// @Param       id  path     int true "Flyer ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /flyers/{id} [delete]
func (h *FlyersHandler) DeleteFlyer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	flyer, err := h.store.DeleteFlyer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if flyer.ImageURL != nil {
		h.uploader.Remove(c.Request.Context(), *flyer.ImageURL)
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Flyer deleted successfully"})
}
