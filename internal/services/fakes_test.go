package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"flyerhub-backend/internal/models"
)

// memStorage records puts and fails keys with a configured prefix.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Name() string { return "mem" }

func (m *memStorage) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if m.failOn != "" && strings.HasPrefix(key, m.failOn) {
		return "", errors.New("bucket unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return "/uploads/" + key, nil
}

func (m *memStorage) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, strings.TrimPrefix(url, "/uploads/"))
	return nil
}

// memStore keeps rows with their asset columns encoded as text, the way the
// database does, so reads exercise the decoder.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]storedOrder
	cart   map[int64]storedCart
}

type storedAssets struct {
	venue               *string
	djs, host, sponsors string
}

type storedOrder struct {
	order  models.Order
	assets storedAssets
}

type storedCart struct {
	item   models.CartItem
	assets storedAssets
}

func newMemStore() *memStore {
	return &memStore{
		orders: map[int64]storedOrder{},
		cart:   map[int64]storedCart{},
	}
}

func encodeAssets(b models.AssetBundle) storedAssets {
	djs, _ := models.EncodeDJs(b.DJs)
	host, _ := models.EncodeHost(b.Host)
	sponsors, _ := models.EncodeSponsors(b.Sponsors)
	return storedAssets{venue: b.VenueLogo, djs: djs, host: host, sponsors: sponsors}
}

func decodeAssets(s storedAssets) models.AssetBundle {
	return models.AssetBundle{
		VenueLogo: s.venue,
		DJs:       models.ParseDJs(s.djs),
		Host:      models.ParseHost(s.host),
		Sponsors:  models.ParseSponsors(s.sponsors),
	}
}

func (s *memStore) InsertOrder(_ context.Context, o *models.Order) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	row := *o
	row.ID = s.nextID
	s.orders[row.ID] = storedOrder{order: row, assets: encodeAssets(o.AssetBundle)}
	return row.ID, nil
}

func (s *memStore) UpdateOrderAssets(_ context.Context, id int64, b models.AssetBundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.orders[id]
	if !ok {
		return &NotFoundError{Resource: "order", ID: id}
	}
	row.assets = encodeAssets(b)
	s.orders[id] = row
	return nil
}

func (s *memStore) GetOrder(_ context.Context, id int64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.orders[id]
	if !ok {
		return nil, &NotFoundError{Resource: "order", ID: id}
	}
	o := row.order
	o.AssetBundle = decodeAssets(row.assets)
	return &o, nil
}

func (s *memStore) FindActiveCartItem(_ context.Context, userID, flyerID int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.cart {
		if row.item.UserID == userID && row.item.FlyerIs == flyerID && row.item.Status == models.CartStatusActive {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (s *memStore) InsertCartItem(_ context.Context, item *models.CartItem) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	row := *item
	row.ID = s.nextID
	s.cart[row.ID] = storedCart{item: row, assets: encodeAssets(item.AssetBundle)}
	return row.ID, nil
}

func (s *memStore) UpdateCartAssets(_ context.Context, id int64, b models.AssetBundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.cart[id]
	if !ok {
		return &NotFoundError{Resource: "cart item", ID: id}
	}
	row.assets = encodeAssets(b)
	s.cart[id] = row
	return nil
}

func (s *memStore) GetCartItem(_ context.Context, id int64) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.cart[id]
	if !ok {
		return nil, &NotFoundError{Resource: "cart item", ID: id}
	}
	item := row.item
	item.AssetBundle = decodeAssets(row.assets)
	return &item, nil
}

func (s *memStore) activeCartRows(userID, flyerID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, row := range s.cart {
		if row.item.UserID == userID && row.item.FlyerIs == flyerID && row.item.Status == models.CartStatusActive {
			n++
		}
	}
	return n
}

type emitted struct {
	title, message, severity string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []emitted
}

func (r *recordingNotifier) Emit(_ context.Context, title, message, severity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, emitted{title, message, severity})
}

func submission(fields map[string]string, files map[string]*UploadedFile) Submission {
	if files == nil {
		files = map[string]*UploadedFile{}
	}
	return Submission{Fields: fields, Files: files}
}
