package models

import "time"

const RoleAdmin = "admin"

// AdminUser is a back-office account. The password hash never leaves the server.
type AdminUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// WebUser is a storefront customer identified by a social provider id.
type WebUser struct {
	ID           int64     `json:"id"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	UserID       string    `json:"user_id"`
	PasswordHash *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// File categories for order attachments and user media.
const (
	FileTypeImage = "image"
	FileTypeZip   = "zip"
	FileTypePDF   = "pdf"
	FileTypeOther = "other"
)

type OrderFile struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"order_id"`
	UserID       int64     `json:"user_id"`
	FileURL      string    `json:"file_url"`
	FileType     string    `json:"file_type"`
	OriginalName string    `json:"original_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserMedia struct {
	ID           int64     `json:"id"`
	WebUserID    int64     `json:"web_user_id"`
	OriginalName string    `json:"original_name"`
	FileURL      string    `json:"file_url"`
	FileType     string    `json:"file_type"`
	IsLogo       bool      `json:"is_logo"`
	IsImage      bool      `json:"is_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserMediaPatch carries the fields of a media update; nil means unchanged.
type UserMediaPatch struct {
	OriginalName *string
	FileURL      *string
	FileType     *string
	IsLogo       *bool
	IsImage      *bool
}
