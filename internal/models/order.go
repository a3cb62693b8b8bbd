package models

import "time"

// Order statuses accepted by the status update endpoint.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusDelivered  = "delivered"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusDelivered,
}

func IsValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Cart item statuses. Cart rows are never deleted.
const (
	CartStatusActive  = "active"
	CartStatusRemoved = "removed"
	CartStatusOrdered = "ordered"
)

// Delivery time categories.
const (
	DeliveryOneHour   = "1 Hours"
	DeliveryFiveHours = "5 Hours"
	DeliveryOneDay    = "24 Hours"
)

// EventDetails are the scalar fields shared by orders and cart items.
type EventDetails struct {
	Presenting        string     `json:"presenting"`
	EventTitle        string     `json:"event_title"`
	EventDate         *time.Time `json:"event_date"`
	FlyerInfo         string     `json:"flyer_info"`
	AddressPhone      string     `json:"address_phone"`
	DeliveryTime      *string    `json:"delivery_time"`
	CustomNotes       *string    `json:"custom_notes"`
	Email             *string    `json:"email"`
	StorySizeVersion  bool       `json:"story_size_version"`
	CustomFlyer       bool       `json:"custom_flyer"`
	AnimatedFlyer     bool       `json:"animated_flyer"`
	InstagramPostSize bool       `json:"instagram_post_size"`
	TotalPrice        Money      `json:"total_price" swaggertype:"number"`
}

type Order struct {
	ID        int64  `json:"id"`
	WebUserID *int64 `json:"web_user_id"`
	FlyerIs   *int64 `json:"flyer_is"`
	EventDetails
	AssetBundle
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Flyer     *FlyerSummary `json:"flyer,omitempty"`
}

type CartItem struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	FlyerIs int64 `json:"flyer_is"`
	EventDetails
	AssetBundle
	Status    string        `json:"status"`
	AddedTime time.Time     `json:"added_time"`
	Flyer     *FlyerSummary `json:"flyer,omitempty"`
}

// FlyerSummary is the catalog template joined onto orders and cart items.
type FlyerSummary struct {
	ID         int64    `json:"id"`
	Title      *string  `json:"title"`
	Price      *string  `json:"price"`
	Image      *string  `json:"image"`
	Type       *string  `json:"type"`
	Categories []string `json:"categories"`
}
