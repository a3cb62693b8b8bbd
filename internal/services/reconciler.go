package services

import (
	"context"
	"fmt"

	"flyerhub-backend/internal/logging"
	"flyerhub-backend/internal/metrics"
	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/storage"
)

// Reconciler resolves every asset slot of a draft to a final URL.
type Reconciler struct {
	storage  storage.Backend
	maxBytes int64
}

// NewReconciler builds a reconciler. maxBytes <= 0 disables the size check.
func NewReconciler(backend storage.Backend, maxBytes int64) *Reconciler {
	return &Reconciler{storage: backend, maxBytes: maxBytes}
}

// Reconcile fills the asset bundle for a persisted row. For each slot an
// uploaded file wins, then a library URL, then null. A slot whose upload
// fails is logged and left null; it never fails the whole bundle.
func (r *Reconciler) Reconcile(ctx context.Context, draft *Draft, sub Submission, id int64) models.AssetBundle {
	bundle := models.AssetBundle{
		DJs:      make([]models.DJ, 0, len(draft.DJs)),
		Sponsors: []models.Sponsor{},
	}

	names := draft.SlotNames()
	for _, slot := range BuildSlots(draft, sub) {
		image := r.resolve(ctx, draft.Kind, slot, sub, id)
		name := names[slot.NameField]

		switch slot.Kind {
		case SlotVenueLogo:
			bundle.VenueLogo = image
		case SlotDJ:
			bundle.DJs = append(bundle.DJs, models.DJ{Name: valueOr(name), Image: image})
		case SlotHost:
			bundle.Host = models.Host{Name: valueOr(name), Image: image}
		case SlotSponsor:
			bundle.Sponsors = append(bundle.Sponsors, models.Sponsor{Name: name, Image: image})
		}
	}
	for i := MaxSponsorSlots; i < len(draft.Sponsors); i++ {
		bundle.Sponsors = append(bundle.Sponsors, models.Sponsor{Name: draft.Sponsors[i].Name})
	}

	return bundle
}

func (r *Reconciler) resolve(ctx context.Context, kind DraftKind, slot Slot, sub Submission, id int64) *string {
	if file := sub.File(slot.FileField); file != nil {
		url, err := r.store(ctx, kind, slot, file, id)
		if err != nil {
			logging.Ctx(ctx).Warn().
				Err(err).
				Str("slot", string(slot.Kind)).
				Int("index", slot.Index).
				Int64("row_id", id).
				Msg("asset upload failed; slot left empty")
			metrics.AssetSlots.WithLabelValues(string(slot.Kind), "failed").Inc()
			return nil
		}
		metrics.AssetSlots.WithLabelValues(string(slot.Kind), "uploaded").Inc()
		return &url
	}

	if url := sub.Value(slot.URLField); url != "" {
		metrics.AssetSlots.WithLabelValues(string(slot.Kind), "library").Inc()
		return &url
	}

	metrics.AssetSlots.WithLabelValues(string(slot.Kind), "empty").Inc()
	return nil
}

func (r *Reconciler) store(ctx context.Context, kind DraftKind, slot Slot, file *UploadedFile, id int64) (string, error) {
	key := storage.Key(slot.Namespace(), slot.FileName(kind, id, file.Ext()))

	if r.maxBytes > 0 && file.Size > r.maxBytes {
		return "", &StorageError{Op: "put", Key: key, Err: fmt.Errorf("file exceeds %d bytes", r.maxBytes)}
	}

	data, err := file.ReadAll()
	if err != nil {
		return "", &StorageError{Op: "read", Key: key, Err: err}
	}

	url, err := r.storage.Put(ctx, key, data, storage.DetectContentType(file.ContentType, file.Filename))
	if err != nil {
		return "", &StorageError{Op: "put", Key: key, Err: err}
	}
	return url, nil
}

func valueOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
