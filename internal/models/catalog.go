package models

import "time"

type Flyer struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Price            string    `json:"price"`
	FormType         string    `json:"form_type"`
	Categories       []string  `json:"categories"`
	ImageURL         *string   `json:"image_url"`
	FileNameOriginal *string   `json:"file_name_original"`
	RecentlyAdded    bool      `json:"recentlyAdded"`
	CreatedAt        time.Time `json:"created_at"`
}

// Banner link targets.
const (
	LinkTypeCategory = "category"
	LinkTypeFlyer    = "flyer"
	LinkTypeExternal = "external"
	LinkTypeNone     = "none"
)

func IsValidLinkType(s string) bool {
	switch s {
	case LinkTypeCategory, LinkTypeFlyer, LinkTypeExternal, LinkTypeNone:
		return true
	}
	return false
}

const DefaultButtonText = "GET IT"

type Banner struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"image_url"`
	ButtonText    *string   `json:"button_text"`
	ButtonEnabled bool      `json:"button_enabled"`
	LinkType      string    `json:"link_type"`
	LinkValue     *string   `json:"link_value"`
	DisplayOrder  int       `json:"display_order"`
	Status        bool      `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FlyerID   int64     `json:"flyer_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification severities.
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FlyerPatch carries the fields of a partial flyer update; nil means unchanged.
type FlyerPatch struct {
	Title            *string
	Price            *string
	FormType         *string
	Categories       []string
	RecentlyAdded    *bool
	ImageURL         *string
	FileNameOriginal *string
}

func (p FlyerPatch) IsEmpty() bool {
	return p.Title == nil && p.Price == nil && p.FormType == nil && p.Categories == nil &&
		p.RecentlyAdded == nil && p.ImageURL == nil && p.FileNameOriginal == nil
}

// BannerPatch carries the fields of a partial banner update.
type BannerPatch struct {
	Title         *string
	Description   *string
	ImageURL      *string
	ButtonText    *string
	ButtonEnabled *bool
	LinkType      *string
	LinkValue     *string
	DisplayOrder  *int
	Status        *bool
}

func (p BannerPatch) IsEmpty() bool {
	return p == BannerPatch{}
}
