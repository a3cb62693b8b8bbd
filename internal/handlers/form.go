package handlers

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"flyerhub-backend/internal/services"
)

// fields is a flat view over a JSON object or a form body, so partial
// update endpoints accept either encoding.
type fields map[string]interface{}

const formMemory = 32 << 20

func readFields(c *gin.Context) (fields, error) {
	out := fields{}
	ct := c.ContentType()
	switch {
	case ct == "application/json":
		if c.Request.Body == nil {
			return out, nil
		}
		if err := json.NewDecoder(c.Request.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
			return nil, services.NewValidationError("invalid JSON body")
		}
	case strings.HasPrefix(ct, "multipart/"):
		if err := c.Request.ParseMultipartForm(formMemory); err != nil {
			return nil, services.NewValidationError("invalid multipart form")
		}
		for k, v := range c.Request.MultipartForm.Value {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, services.NewValidationError("invalid form body")
		}
		for k, v := range c.Request.PostForm {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
	}
	return out, nil
}

// str returns the field as trimmed text and whether it was present.
func (f fields) str(names ...string) (string, bool) {
	for _, name := range names {
		v, ok := f[name]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			return strings.TrimSpace(t), true
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), true
		default:
			return fmt.Sprint(t), true
		}
	}
	return "", false
}

func (f fields) strPtr(names ...string) *string {
	if v, ok := f.str(names...); ok {
		return &v
	}
	return nil
}

func (f fields) boolPtr(names ...string) *bool {
	for _, name := range names {
		if v, ok := f[name]; ok {
			b := services.ParseBool(v)
			return &b
		}
	}
	return nil
}

// list accepts a JSON array, a JSON-encoded array string or a comma list.
func (f fields) list(name string) ([]string, bool) {
	v, ok := f[name]
	if !ok || v == nil {
		return nil, false
	}
	return toStringList(v), true
}

func toStringList(v interface{}) []string {
	out := []string{}
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case string:
		s := strings.TrimSpace(t)
		if strings.HasPrefix(s, "[") {
			var arr []string
			if err := json.Unmarshal([]byte(s), &arr); err == nil {
				return toStringList(arr)
			}
		}
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// formatPrice renders a price with a leading "$".
func formatPrice(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" || strings.HasPrefix(p, "$") {
		return p
	}
	return "$" + p
}
