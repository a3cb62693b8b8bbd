package models

// ErrorResponse is the failure envelope for every endpoint.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type OrderCreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

type OrderResponse struct {
	Success bool   `json:"success"`
	Order   *Order `json:"order"`
}

type OrderListResponse struct {
	Success bool    `json:"success"`
	Count   int     `json:"count"`
	Orders  []Order `json:"orders"`
}

type OrderStatusResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	OrderID   int64  `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

type CartAddResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	CartItemID int64     `json:"cartItemId"`
	CartItem   *CartItem `json:"cart_item,omitempty"`
}

type CartResponse struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Cart    []CartItem `json:"cart"`
}

// FlyerResult reports one entry of a bulk flyer upload: "saved" or "skipped".
type FlyerResult struct {
	Index    int     `json:"index"`
	Status   string  `json:"status"`
	ID       int64   `json:"id,omitempty"`
	Title    string  `json:"title,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	Source   string  `json:"source,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}

type FlyerBulkResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Created int           `json:"created"`
	Results []FlyerResult `json:"results"`
}

type FlyerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Flyer   *Flyer `json:"flyer"`
}

type BannerResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Data    *Banner `json:"data"`
}

type BannerListResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Data    []Banner `json:"data"`
}

type StringListResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

type CategoryResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    *Category `json:"data"`
}

type CategoryListResponse struct {
	Success bool       `json:"success"`
	Data    []Category `json:"data"`
}

type NotificationListResponse struct {
	Success       bool           `json:"success"`
	UnreadCount   int            `json:"unread_count"`
	Notifications []Notification `json:"notifications"`
}

type FavoriteListResponse struct {
	Success   bool    `json:"success"`
	Count     int     `json:"count"`
	Favorites []Flyer `json:"favorites"`
}

type ContactListResponse struct {
	Success  bool             `json:"success"`
	Messages []ContactMessage `json:"messages"`
}

type OrderFileResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	File    *OrderFile `json:"file"`
}

type OrderFileListResponse struct {
	Success bool        `json:"success"`
	Files   []OrderFile `json:"files"`
}

type UserMediaResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Media   *UserMedia `json:"media"`
}

type UserMediaListResponse struct {
	Success bool        `json:"success"`
	Media   []UserMedia `json:"media"`
}

type AdminAuthResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Token   string     `json:"token,omitempty"`
	User    *AdminUser `json:"user,omitempty"`
}

type WebAuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token,omitempty"`
	User    *WebUser `json:"user,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
