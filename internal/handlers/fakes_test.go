package handlers

import (
	"context"
	"sort"
	"sync"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
	"flyerhub-backend/internal/supabase"
)

// memDB is an in-memory stand-in for the database client.
type memDB struct {
	mu            sync.Mutex
	nextID        int64
	orders        map[int64]models.Order
	cart          map[int64]models.CartItem
	flyers        map[int64]models.Flyer
	favorites     map[[2]int64]bool
	banners       map[int64]models.Banner
	categories    map[int64]models.Category
	notifications map[int64]models.Notification
	orderFiles    map[int64]models.OrderFile
	media         map[int64]models.UserMedia
	contacts      []models.ContactMessage
	admins        map[string]models.AdminUser
	webUsers      map[int64]models.WebUser
	pingErr       error
}

func newMemDB() *memDB {
	return &memDB{
		orders:        map[int64]models.Order{},
		cart:          map[int64]models.CartItem{},
		flyers:        map[int64]models.Flyer{},
		favorites:     map[[2]int64]bool{},
		banners:       map[int64]models.Banner{},
		categories:    map[int64]models.Category{},
		notifications: map[int64]models.Notification{},
		orderFiles:    map[int64]models.OrderFile{},
		media:         map[int64]models.UserMedia{},
		admins:        map[string]models.AdminUser{},
		webUsers:      map[int64]models.WebUser{},
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) Ping(context.Context) error { return m.pingErr }

func (m *memDB) InsertOrder(_ context.Context, o *models.Order) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *o
	row.ID = m.id()
	m.orders[row.ID] = row
	return row.ID, nil
}

func (m *memDB) UpdateOrderAssets(_ context.Context, id int64, b models.AssetBundle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.orders[id]
	if !ok {
		return &services.NotFoundError{Resource: "order", ID: id}
	}
	b.Normalize()
	row.AssetBundle = b
	m.orders[id] = row
	return nil
}

func (m *memDB) GetOrder(_ context.Context, id int64) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.orders[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "order", ID: id}
	}
	return &row, nil
}

func (m *memDB) GetOrderWithFlyer(ctx context.Context, id int64) (*models.Order, error) {
	return m.GetOrder(ctx, id)
}

func (m *memDB) ListOrders(context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memDB) ListOrdersByUser(ctx context.Context, webUserID int64, limit int) ([]models.Order, error) {
	all, _ := m.ListOrders(ctx)
	out := []models.Order{}
	for _, o := range all {
		if o.WebUserID != nil && *o.WebUserID == webUserID && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memDB) UpdateOrderStatus(_ context.Context, id int64, status string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.orders[id]
	if !ok {
		return "", &services.NotFoundError{Resource: "order", ID: id}
	}
	old := row.Status
	row.Status = status
	m.orders[id] = row
	return old, nil
}

func (m *memDB) FindActiveCartItem(_ context.Context, userID, flyerID int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, item := range m.cart {
		if item.UserID == userID && item.FlyerIs == flyerID && item.Status == models.CartStatusActive {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (m *memDB) InsertCartItem(_ context.Context, item *models.CartItem) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *item
	row.ID = m.id()
	m.cart[row.ID] = row
	return row.ID, nil
}

func (m *memDB) UpdateCartAssets(_ context.Context, id int64, b models.AssetBundle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.cart[id]
	if !ok {
		return &services.NotFoundError{Resource: "cart item", ID: id}
	}
	b.Normalize()
	row.AssetBundle = b
	m.cart[id] = row
	return nil
}

func (m *memDB) GetCartItem(_ context.Context, id int64) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.cart[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "cart item", ID: id}
	}
	return &row, nil
}

func (m *memDB) ListActiveCart(_ context.Context, userID int64) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CartItem{}
	for _, item := range m.cart {
		if item.UserID == userID && item.Status == models.CartStatusActive {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memDB) RemoveCartItem(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.cart[id]
	if !ok || row.Status != models.CartStatusActive {
		return &services.NotFoundError{Resource: "cart item", ID: id}
	}
	row.Status = models.CartStatusRemoved
	m.cart[id] = row
	return nil
}

func (m *memDB) ClearCart(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, item := range m.cart {
		if item.UserID == userID && item.Status == models.CartStatusActive {
			item.Status = models.CartStatusOrdered
			m.cart[id] = item
			n++
		}
	}
	return n, nil
}

func (m *memDB) ListFlyers(context.Context) ([]models.Flyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Flyer{}
	for _, f := range m.flyers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memDB) GetFlyer(_ context.Context, id int64) (*models.Flyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flyers[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "flyer", ID: id}
	}
	return &f, nil
}

func (m *memDB) CreateFlyer(_ context.Context, f *models.Flyer) (*models.Flyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *f
	row.ID = m.id()
	if row.Categories == nil {
		row.Categories = []string{}
	}
	m.flyers[row.ID] = row
	return &row, nil
}

func (m *memDB) UpdateFlyer(_ context.Context, id int64, p models.FlyerPatch) (*models.Flyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flyers[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "flyer", ID: id}
	}
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Price != nil {
		f.Price = *p.Price
	}
	if p.FormType != nil {
		f.FormType = *p.FormType
	}
	if p.Categories != nil {
		f.Categories = p.Categories
	}
	if p.RecentlyAdded != nil {
		f.RecentlyAdded = *p.RecentlyAdded
	}
	if p.ImageURL != nil {
		f.ImageURL = p.ImageURL
	}
	if p.FileNameOriginal != nil {
		f.FileNameOriginal = p.FileNameOriginal
	}
	m.flyers[id] = f
	return &f, nil
}

func (m *memDB) DeleteFlyer(_ context.Context, id int64) (*models.Flyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flyers[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "flyer", ID: id}
	}
	delete(m.flyers, id)
	return &f, nil
}

func (m *memDB) AddFavorite(_ context.Context, userID, flyerID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, flyerID}
	if m.favorites[key] {
		return false, nil
	}
	m.favorites[key] = true
	return true, nil
}

func (m *memDB) RemoveFavorite(_ context.Context, userID, flyerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, flyerID}
	if !m.favorites[key] {
		return &services.NotFoundError{Message: "Favorite not found"}
	}
	delete(m.favorites, key)
	return nil
}

func (m *memDB) ListFavorites(_ context.Context, userID int64) ([]models.Flyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Flyer{}
	for key := range m.favorites {
		if key[0] == userID {
			if f, ok := m.flyers[key[1]]; ok {
				out = append(out, f)
			}
		}
	}
	return out, nil
}

func (m *memDB) ListBanners(_ context.Context, filter supabase.BannerFilter) ([]models.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Banner{}
	for _, b := range m.banners {
		if filter.Status == nil || b.Status == *filter.Status {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (m *memDB) GetBanner(_ context.Context, id int64) (*models.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.banners[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "banner", ID: id}
	}
	return &b, nil
}

func (m *memDB) CreateBanner(_ context.Context, b *models.Banner) (*models.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *b
	row.ID = m.id()
	m.banners[row.ID] = row
	return &row, nil
}

func (m *memDB) UpdateBanner(_ context.Context, id int64, p models.BannerPatch) (*models.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.banners[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "banner", ID: id}
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = p.Description
	}
	if p.ImageURL != nil {
		b.ImageURL = p.ImageURL
	}
	if p.ButtonText != nil {
		b.ButtonText = p.ButtonText
	}
	if p.ButtonEnabled != nil {
		b.ButtonEnabled = *p.ButtonEnabled
	}
	if p.LinkType != nil {
		b.LinkType = *p.LinkType
	}
	if p.LinkValue != nil {
		b.LinkValue = p.LinkValue
	}
	if p.DisplayOrder != nil {
		b.DisplayOrder = *p.DisplayOrder
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	m.banners[id] = b
	return &b, nil
}

func (m *memDB) DeleteBanner(_ context.Context, id int64) (*models.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.banners[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "banner", ID: id}
	}
	delete(m.banners, id)
	return &b, nil
}

// ReorderBanners applies nothing unless every id exists, like the
// transactional query.
func (m *memDB) ReorderBanners(_ context.Context, order []models.BannerOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range order {
		if _, ok := m.banners[o.ID]; !ok {
			return &services.NotFoundError{Resource: "banner", ID: o.ID}
		}
	}
	for _, o := range order {
		b := m.banners[o.ID]
		b.DisplayOrder = o.DisplayOrder
		m.banners[o.ID] = b
	}
	return nil
}

func (m *memDB) ListFlyerCategories(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, f := range m.flyers {
		for _, c := range f.Categories {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memDB) ListCategories(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Category{}
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memDB) CreateCategory(_ context.Context, name string, rank int) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name == name {
			return nil, &services.ConflictError{Message: "category already exists"}
		}
	}
	c := models.Category{ID: m.id(), Name: name, Rank: rank}
	m.categories[c.ID] = c
	return &c, nil
}

func (m *memDB) UpdateCategoryRank(_ context.Context, id int64, rank int) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "category", ID: id}
	}
	c.Rank = rank
	m.categories[id] = c
	return &c, nil
}

func (m *memDB) DeleteCategory(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return &services.NotFoundError{Resource: "category", ID: id}
	}
	delete(m.categories, id)
	return nil
}

func (m *memDB) addNotification(title, message, severity string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := models.Notification{ID: m.id(), Title: title, Message: message, Type: severity}
	m.notifications[n.ID] = n
	return n.ID
}

func (m *memDB) ListNotifications(_ context.Context, limit int) ([]models.Notification, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Notification{}
	unread := 0
	for _, n := range m.notifications {
		out = append(out, n)
		if !n.IsRead {
			unread++
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, unread, nil
}

func (m *memDB) MarkNotificationRead(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return &services.NotFoundError{Resource: "notification", ID: id}
	}
	n.IsRead = true
	m.notifications[id] = n
	return nil
}

func (m *memDB) MarkAllNotificationsRead(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var changed int64
	for id, n := range m.notifications {
		if !n.IsRead {
			n.IsRead = true
			m.notifications[id] = n
			changed++
		}
	}
	return changed, nil
}

func (m *memDB) CreateOrderFile(_ context.Context, f *models.OrderFile) (*models.OrderFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *f
	row.ID = m.id()
	m.orderFiles[row.ID] = row
	return &row, nil
}

func (m *memDB) listOrderFiles(match func(models.OrderFile) bool) []models.OrderFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.OrderFile{}
	for _, f := range m.orderFiles {
		if match(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *memDB) ListOrderFilesByOrder(_ context.Context, orderID int64) ([]models.OrderFile, error) {
	return m.listOrderFiles(func(f models.OrderFile) bool { return f.OrderID == orderID }), nil
}

func (m *memDB) ListOrderFilesByUser(_ context.Context, userID int64) ([]models.OrderFile, error) {
	return m.listOrderFiles(func(f models.OrderFile) bool { return f.UserID == userID }), nil
}

func (m *memDB) DeleteOrderFile(_ context.Context, id int64) (*models.OrderFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.orderFiles[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "file", ID: id}
	}
	delete(m.orderFiles, id)
	return &f, nil
}

func mediaNotOwned(id int64) error {
	return &services.NotFoundError{Resource: "media", ID: id, Message: "Media not found or not owned by user"}
}

func (m *memDB) CreateUserMedia(_ context.Context, media *models.UserMedia) (*models.UserMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *media
	row.ID = m.id()
	m.media[row.ID] = row
	return &row, nil
}

func (m *memDB) ListUserMedia(_ context.Context, webUserID int64) ([]models.UserMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.UserMedia{}
	for _, media := range m.media {
		if media.WebUserID == webUserID {
			out = append(out, media)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memDB) GetUserMedia(_ context.Context, id, webUserID int64) (*models.UserMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	media, ok := m.media[id]
	if !ok || media.WebUserID != webUserID {
		return nil, mediaNotOwned(id)
	}
	return &media, nil
}

func (m *memDB) UpdateUserMedia(_ context.Context, id, webUserID int64, p models.UserMediaPatch) (*models.UserMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	media, ok := m.media[id]
	if !ok || media.WebUserID != webUserID {
		return nil, mediaNotOwned(id)
	}
	if p.OriginalName != nil {
		media.OriginalName = *p.OriginalName
	}
	if p.FileURL != nil {
		media.FileURL = *p.FileURL
	}
	if p.FileType != nil {
		media.FileType = *p.FileType
	}
	if p.IsLogo != nil {
		media.IsLogo = *p.IsLogo
	}
	if p.IsImage != nil {
		media.IsImage = *p.IsImage
	}
	m.media[id] = media
	return &media, nil
}

func (m *memDB) DeleteUserMedia(_ context.Context, id, webUserID int64) (*models.UserMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	media, ok := m.media[id]
	if !ok || media.WebUserID != webUserID {
		return nil, mediaNotOwned(id)
	}
	delete(m.media, id)
	return &media, nil
}

func (m *memDB) CreateContactMessage(_ context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *msg
	row.ID = m.id()
	m.contacts = append(m.contacts, row)
	return &row, nil
}

func (m *memDB) ListContactMessages(_ context.Context, limit int) ([]models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ContactMessage{}
	for i := len(m.contacts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.contacts[i])
	}
	return out, nil
}

func (m *memDB) GetAdminByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.admins[email]
	if !ok {
		return nil, &services.NotFoundError{Resource: "user"}
	}
	return &u, nil
}

func (m *memDB) CreateAdmin(_ context.Context, email, passwordHash, role string) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[email]; ok {
		return nil, &services.ConflictError{Message: "User already exists"}
	}
	u := models.AdminUser{ID: m.id(), Email: email, PasswordHash: passwordHash, Role: role}
	m.admins[email] = u
	return &u, nil
}

func (m *memDB) UpsertWebUser(_ context.Context, fullname, email, userID string) (*models.WebUser, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.webUsers {
		if u.UserID == userID {
			u.Fullname, u.Email = fullname, email
			m.webUsers[id] = u
			return &u, false, nil
		}
	}
	u := models.WebUser{ID: m.id(), Fullname: fullname, Email: email, UserID: userID}
	m.webUsers[u.ID] = u
	return &u, true, nil
}

func (m *memDB) GetWebUserBySocialID(_ context.Context, userID string) (*models.WebUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.webUsers {
		if u.UserID == userID {
			return &u, nil
		}
	}
	return nil, &services.NotFoundError{Resource: "user"}
}

func (m *memDB) GetWebUser(_ context.Context, id int64) (*models.WebUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.webUsers[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "user", ID: id}
	}
	return &u, nil
}

func (m *memDB) UpdateWebUserProfile(_ context.Context, id int64, fullname, email string) (*models.WebUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.webUsers[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "user", ID: id}
	}
	for otherID, other := range m.webUsers {
		if otherID != id && other.Email == email {
			return nil, &services.ConflictError{Message: "Email is already in use"}
		}
	}
	u.Fullname, u.Email = fullname, email
	m.webUsers[id] = u
	return &u, nil
}

func (m *memDB) UpdateWebUserPassword(_ context.Context, id int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.webUsers[id]
	if !ok {
		return &services.NotFoundError{Resource: "user", ID: id}
	}
	u.PasswordHash = &passwordHash
	m.webUsers[id] = u
	return nil
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
