package services

import (
	"fmt"

	"flyerhub-backend/internal/storage"
)

// SlotKind is the role an asset plays on the flyer.
type SlotKind string

const (
	SlotVenueLogo SlotKind = "venue_logo"
	SlotDJ        SlotKind = "dj"
	SlotHost      SlotKind = "host"
	SlotSponsor   SlotKind = "sponsor"
)

// MaxSponsorSlots caps the sponsor positions that take an image. Parsed
// sponsors past it keep their name only.
const MaxSponsorSlots = 3

const hostNameField = "host.name"

func djNameField(i int) string      { return fmt.Sprintf("djs[%d].name", i) }
func sponsorNameField(i int) string { return fmt.Sprintf("sponsors[%d].name", i) }

// Slot names the form fields that can fill one asset position. NameField
// keys the draft's SlotNames; the venue logo has none.
type Slot struct {
	Kind      SlotKind
	Index     int
	NameField string
	FileField string
	URLField  string
}

// Namespace is the storage folder for the slot's kind.
func (s Slot) Namespace() string {
	switch s.Kind {
	case SlotVenueLogo:
		return storage.NamespaceVenueLogo
	case SlotDJ:
		return storage.NamespaceDJs
	case SlotHost:
		return storage.NamespaceHost
	default:
		return storage.NamespaceSponsors
	}
}

// Prefix is the file-name stem for the slot. Cart assets carry a "cart_"
// prefix so they never collide with order assets of the same id.
func (s Slot) Prefix(kind DraftKind) string {
	var p string
	switch s.Kind {
	case SlotVenueLogo:
		p = "venue"
	case SlotDJ:
		p = fmt.Sprintf("dj_%d", s.Index+1)
	case SlotHost:
		p = "host"
	default:
		p = fmt.Sprintf("sponsor_%d", s.Index+1)
	}
	if kind == DraftCart {
		return "cart_" + p
	}
	return p
}

// FileName builds "<prefix>_<id><ext>", defaulting the extension to .jpg.
func (s Slot) FileName(kind DraftKind, id int64, ext string) string {
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s_%d%s", s.Prefix(kind), id, ext)
}

// BuildSlots lists the slots for a draft in a fixed order: venue logo,
// one per submitted DJ, host, then sponsors. Sponsors cover the parsed
// entries plus any index that carries a file or library URL, never more
// than MaxSponsorSlots.
func BuildSlots(draft *Draft, sub Submission) []Slot {
	slots := []Slot{{
		Kind:      SlotVenueLogo,
		FileField: "venue_logo",
		URLField:  "venue_logo_url",
	}}

	for i := range draft.DJs {
		slots = append(slots, Slot{
			Kind:      SlotDJ,
			Index:     i,
			NameField: djNameField(i),
			FileField: fmt.Sprintf("dj_%d", i),
			URLField:  fmt.Sprintf("dj_url_%d", i),
		})
	}

	slots = append(slots, Slot{
		Kind:      SlotHost,
		NameField: hostNameField,
		FileField: "host_file",
		URLField:  "host_url_0",
	})

	sponsorCount := min(len(draft.Sponsors), MaxSponsorSlots)
	for i := 0; i < MaxSponsorSlots; i++ {
		if sub.File(fmt.Sprintf("sponsor_%d", i)) != nil || sub.Value(fmt.Sprintf("sponsor_url_%d", i)) != "" {
			if i+1 > sponsorCount {
				sponsorCount = i + 1
			}
		}
	}
	for i := 0; i < sponsorCount; i++ {
		slots = append(slots, Slot{
			Kind:      SlotSponsor,
			Index:     i,
			NameField: sponsorNameField(i),
			FileField: fmt.Sprintf("sponsor_%d", i),
			URLField:  fmt.Sprintf("sponsor_url_%d", i),
		})
	}

	return slots
}

// SlotNames maps each slot's NameField to the name the draft carries for it.
func (d *Draft) SlotNames() map[string]*string {
	names := make(map[string]*string, len(d.DJs)+len(d.Sponsors)+1)
	for i := range d.DJs {
		names[djNameField(i)] = &d.DJs[i].Name
	}
	names[hostNameField] = &d.Host.Name
	for i := range d.Sponsors {
		names[sponsorNameField(i)] = d.Sponsors[i].Name
	}
	return names
}
