package models

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AdminRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// WebRegisterRequest is a social sign-in upsert. UserID carries the
// provider prefix, e.g. "google_1234".
type WebRegisterRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email" validate:"required,email"`
	UserID   string `json:"user_id" validate:"required,social_id"`
}

type WebLoginRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type UpdateProfileRequest struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Rank int    `json:"rank"`
}

type UpdateCategoryRankRequest struct {
	Rank *int `json:"rank" validate:"required"`
}

type FavoriteRequest struct {
	UserID  int64 `json:"user_id" validate:"required"`
	FlyerID int64 `json:"flyer_id" validate:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// BannerStatusRequest accepts true/false or "1"/"0".
type BannerStatusRequest struct {
	Status interface{} `json:"status" swaggertype:"boolean"`
}

type BannerOrder struct {
	ID           int64 `json:"id" validate:"required"`
	DisplayOrder int   `json:"display_order"`
}

type ReorderBannersRequest struct {
	Banners []BannerOrder `json:"banners" validate:"required,min=1,dive"`
}

type RenameMediaRequest struct {
	WebUserID int64  `json:"web_user_id" validate:"required"`
	NewName   string `json:"new_name" validate:"required"`
}

type SetLogoRequest struct {
	WebUserID int64       `json:"web_user_id" validate:"required"`
	IsLogo    interface{} `json:"is_logo" swaggertype:"boolean"`
}

type SetImageRequest struct {
	WebUserID int64       `json:"web_user_id" validate:"required"`
	IsImage   interface{} `json:"is_image" swaggertype:"boolean"`
}

type MediaOwnerRequest struct {
	WebUserID int64 `json:"web_user_id" validate:"required"`
}
