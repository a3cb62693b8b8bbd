package models

import (
	"strings"

	json "github.com/goccy/go-json"
)

// DJ is one performer slot on a flyer.
type DJ struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// Sponsor is one sponsor slot. Sponsors are frequently image-only, so the
// name is nullable.
type Sponsor struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// Host is the event host. An unnamed host without an image renders as {}.
type Host struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

func (h Host) IsZero() bool {
	return h.Name == "" && h.Image == nil
}

func (h Host) MarshalJSON() ([]byte, error) {
	if h.IsZero() {
		return []byte("{}"), nil
	}
	type host Host
	return json.Marshal(host(h))
}

// AssetBundle is the image-bearing part of an order or cart item.
// djs, host and sponsors are stored as JSON text columns.
type AssetBundle struct {
	VenueLogo *string   `json:"venue_logo"`
	DJs       []DJ      `json:"djs"`
	Host      Host      `json:"host"`
	Sponsors  []Sponsor `json:"sponsors"`
}

// Normalize replaces nil lists so they serialize as [].
func (b *AssetBundle) Normalize() {
	if b.DJs == nil {
		b.DJs = []DJ{}
	}
	if b.Sponsors == nil {
		b.Sponsors = []Sponsor{}
	}
}

// nameOf extracts a display name from a submitted entry, which may be a
// bare string or an object with a "name" key.
func nameOf(raw json.RawMessage) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var obj struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != nil {
		return *obj.Name, true
	}
	return "", false
}

// ParseDJs decodes a submitted or stored djs value. Anything that is not a
// JSON array yields an empty list.
func ParseDJs(raw string) []DJ {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []DJ{}
	}

	djs := make([]DJ, 0, len(entries))
	for _, e := range entries {
		dj := DJ{}
		dj.Name, _ = nameOf(e)

		var withImage struct {
			Image *string `json:"image"`
		}
		if err := json.Unmarshal(e, &withImage); err == nil {
			dj.Image = withImage.Image
		}
		djs = append(djs, dj)
	}
	return djs
}

// ParseSponsors decodes a sponsors value, with the same tolerance as ParseDJs.
func ParseSponsors(raw string) []Sponsor {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []Sponsor{}
	}

	sponsors := make([]Sponsor, 0, len(entries))
	for _, e := range entries {
		sp := Sponsor{}
		if name, ok := nameOf(e); ok && name != "" {
			sp.Name = &name
		}

		var withImage struct {
			Image *string `json:"image"`
		}
		if err := json.Unmarshal(e, &withImage); err == nil {
			sp.Image = withImage.Image
		}
		sponsors = append(sponsors, sp)
	}
	return sponsors
}

// ParseHost decodes a host value; malformed input yields the empty host.
func ParseHost(raw string) Host {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Host{}
	}

	var h Host
	if err := json.Unmarshal([]byte(trimmed), &h); err == nil {
		return h
	}

	var name string
	if err := json.Unmarshal([]byte(trimmed), &name); err == nil {
		return Host{Name: name}
	}
	return Host{}
}

// EncodeDJs, EncodeHost and EncodeSponsors produce the stored column text.
func EncodeDJs(djs []DJ) (string, error) {
	if djs == nil {
		djs = []DJ{}
	}
	b, err := json.Marshal(djs)
	return string(b), err
}

func EncodeHost(h Host) (string, error) {
	b, err := json.Marshal(h)
	return string(b), err
}

func EncodeSponsors(sponsors []Sponsor) (string, error) {
	if sponsors == nil {
		sponsors = []Sponsor{}
	}
	b, err := json.Marshal(sponsors)
	return string(b), err
}

// ParseStringList decodes a JSON array of strings such as flyer categories.
func ParseStringList(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func EncodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
