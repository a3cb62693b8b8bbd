package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/validation"
)

// DraftKind selects buyer rules and asset naming for a submission.
type DraftKind int

const (
	DraftOrder DraftKind = iota
	DraftCart
)

// Draft is a validated, typed submission ready for persistence.
type Draft struct {
	Kind DraftKind

	// UserID is the cart owner; WebUserID the ordering customer.
	UserID    *int64
	WebUserID *int64
	FlyerIs   *int64

	Details  models.EventDetails
	DJs      []models.DJ
	Host     models.Host
	Sponsors []models.Sponsor
}

// Buyer identifies who placed the draft, for notification text.
func (d *Draft) Buyer() string {
	switch {
	case d.WebUserID != nil:
		return strconv.FormatInt(*d.WebUserID, 10)
	case d.UserID != nil:
		return strconv.FormatInt(*d.UserID, 10)
	case d.Details.Email != nil:
		return *d.Details.Email
	default:
		return "Guest"
	}
}

type orderFields struct {
	WebUserID string `form:"web_user_id" validate:"required_without=Email"`
	Email     string `form:"email" validate:"omitempty,email"`
	FlyerIs   string `form:"flyer_is"`
}

type cartFields struct {
	UserID  string `form:"user_id" validate:"required,numeric"`
	FlyerIs string `form:"flyer_is" validate:"required,numeric"`
}

var eventDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04"}

// NormalizeOrder validates an order submission. An order needs a buyer,
// either web_user_id or email.
func NormalizeOrder(sub Submission) (*Draft, error) {
	fields := orderFields{
		WebUserID: sub.Value("web_user_id"),
		Email:     sub.Value("email"),
		FlyerIs:   sub.Value("flyer_is"),
	}

	var problems []string
	problems = append(problems, validationProblems(validation.Struct(&fields))...)

	draft := &Draft{Kind: DraftOrder}
	if fields.WebUserID != "" {
		id, err := parseID("web_user_id", fields.WebUserID)
		if err != nil {
			problems = append(problems, err.Error())
		}
		draft.WebUserID = id
	}
	if fields.FlyerIs != "" {
		id, err := parseID("flyer_is", fields.FlyerIs)
		if err != nil {
			problems = append(problems, err.Error())
		}
		draft.FlyerIs = id
	}

	problems = append(problems, normalizeCommon(sub, draft)...)
	if len(problems) > 0 {
		return nil, NewValidationError(dedupe(problems)...)
	}
	return draft, nil
}

// NormalizeCart validates a cart submission; user_id and flyer_is are required.
func NormalizeCart(sub Submission) (*Draft, error) {
	fields := cartFields{
		UserID:  sub.Value("user_id"),
		FlyerIs: sub.Value("flyer_is"),
	}

	var problems []string
	problems = append(problems, validationProblems(validation.Struct(&fields))...)

	draft := &Draft{Kind: DraftCart}
	if len(problems) == 0 {
		uid, err := parseID("user_id", fields.UserID)
		if err != nil {
			problems = append(problems, err.Error())
		}
		fid, err := parseID("flyer_is", fields.FlyerIs)
		if err != nil {
			problems = append(problems, err.Error())
		}
		draft.UserID, draft.FlyerIs = uid, fid
	}

	problems = append(problems, normalizeCommon(sub, draft)...)
	if len(problems) > 0 {
		return nil, NewValidationError(dedupe(problems)...)
	}
	return draft, nil
}

func normalizeCommon(sub Submission, draft *Draft) []string {
	var problems []string

	d := &draft.Details
	d.Presenting = sub.Value("presenting")
	d.EventTitle = sub.Value("event_title")
	d.FlyerInfo = sub.Value("flyer_info")
	d.AddressPhone = sub.Value("address_phone")
	d.CustomNotes = optional(sub.Value("custom_notes"))
	d.Email = optional(sub.Value("email"))
	d.DeliveryTime = NormalizeDeliveryTime(sub.Value("delivery_time"))

	d.StorySizeVersion = ParseBool(sub.Value("story_size_version"))
	d.CustomFlyer = ParseBool(sub.Value("custom_flyer"))
	d.AnimatedFlyer = ParseBool(sub.Value("animated_flyer"))
	d.InstagramPostSize = ParseBool(sub.Value("instagram_post_size"))

	if raw := sub.Value("event_date"); raw != "" {
		t, err := parseEventDate(raw)
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			d.EventDate = &t
		}
	}

	price, err := models.ParseMoney(sub.Value("total_price"))
	if err != nil {
		problems = append(problems, "total_price must be numeric")
	}
	d.TotalPrice = price

	draft.DJs = models.ParseDJs(sub.Value("djs"))
	draft.Host = models.ParseHost(sub.Value("host"))
	draft.Sponsors = models.ParseSponsors(sub.Value("sponsors"))

	return problems
}

// ParseBool reports whether v is one of the accepted truthy forms:
// "true", true, "1" or 1. Everything else, including absence, is false.
func ParseBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case int:
		return b == 1
	case int64:
		return b == 1
	case float64:
		return b == 1
	default:
		return false
	}
}

// NormalizeDeliveryTime maps free text onto a delivery category, or nil.
func NormalizeDeliveryTime(value string) *string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil
	}
	v := strings.ToLower(raw)

	var out string
	switch {
	case strings.Contains(v, "1") && strings.Contains(v, "hour"):
		out = models.DeliveryOneHour
	case strings.Contains(v, "5") && strings.Contains(v, "hour"):
		out = models.DeliveryFiveHours
	case strings.Contains(v, "24") || strings.Contains(v, "day"):
		out = models.DeliveryOneDay
	case raw == models.DeliveryOneHour || raw == models.DeliveryFiveHours || raw == models.DeliveryOneDay:
		out = raw
	default:
		return nil
	}
	return &out
}

func parseEventDate(raw string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("event_date must be a date (YYYY-MM-DD)")
}

func parseID(field, raw string) (*int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer", field)
	}
	return &id, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func validationProblems(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fe.Message)
		}
		return out
	}
	return []string{err.Error()}
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
