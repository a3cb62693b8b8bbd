package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/logging"
	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
	"flyerhub-backend/internal/validation"
)

// exposeInternalErrors controls whether 500 responses carry the raw error.
var exposeInternalErrors = true

// ConfigureErrors hides internal error text in production.
func ConfigureErrors(production bool) {
	exposeInternalErrors = !production
}

// respondError maps the error taxonomy onto a status code and the failure
// envelope. Anything unrecognised is a 500.
func respondError(c *gin.Context, err error) {
	var (
		verr     *services.ValidationError
		fieldErr validation.Errors
		nf       *services.NotFoundError
		conflict *services.ConflictError
		unauth   *services.UnauthorizedError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: verr.Error(),
			Errors:  verr.Problems,
		})
	case errors.As(err, &fieldErr):
		problems := make([]string, 0, len(fieldErr))
		for _, fe := range fieldErr {
			problems = append(problems, fe.Message)
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: strings.Join(problems, "; "),
			Errors:  problems,
		})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: notFoundMessage(nf)})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Success: false, Message: conflict.Message})
	case errors.As(err, &unauth):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Message: unauth.Message})
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		_ = c.Error(err)
		resp := models.ErrorResponse{Success: false, Message: "Server error"}
		if exposeInternalErrors {
			resp.Error = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}

func notFoundMessage(nf *services.NotFoundError) string {
	if nf.Message != "" {
		return nf.Message
	}
	if nf.Resource == "" {
		return "Not found"
	}
	return strings.ToUpper(nf.Resource[:1]) + nf.Resource[1:] + " not found"
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: message})
}

// idParam parses a positive integer path parameter, answering 400 otherwise.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// bindJSON decodes and validates a JSON body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, "Invalid request body")
		return false
	}
	if err := validation.Struct(req); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// formFile returns the named upload, or nil when the part is absent.
func formFile(c *gin.Context, name string) *services.UploadedFile {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return services.FileFromHeader(fh)
}

// formValue returns a trimmed form field and whether it was sent at all.
func formValue(c *gin.Context, name string) (string, bool) {
	v, ok := c.GetPostForm(name)
	return strings.TrimSpace(v), ok
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
