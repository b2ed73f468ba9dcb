package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"souqly_backend/internal/models"
	"souqly_backend/internal/repositories"
)

// In-memory fakes used by the service tests. They implement the repository
// interfaces with just enough behavior for the flows under test.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

type fakeConversationRepo struct {
	mu     sync.Mutex
	convs  map[string]*models.Conversation
	nextID int
}

func newFakeConversationRepo(convs ...*models.Conversation) *fakeConversationRepo {
	r := &fakeConversationRepo{convs: make(map[string]*models.Conversation)}
	for _, c := range convs {
		r.convs[c.ID] = c
	}
	return r
}

func (r *fakeConversationRepo) GetOrCreate(_ context.Context, productID, buyerID, sellerID string) (*models.Conversation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.convs {
		if c.ProductID == productID && c.BuyerID == buyerID && c.SellerID == sellerID {
			return c, false, nil
		}
	}
	r.nextID++
	conv := &models.Conversation{
		BaseModel: models.BaseModel{ID: fmt.Sprintf("conv-%d", r.nextID)},
		ProductID: productID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
	}
	r.convs[conv.ID] = conv
	return conv, true, nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id string) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return c, nil
}

func (r *fakeConversationRepo) ListByUser(_ context.Context, userID string) ([]models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Conversation
	for _, c := range r.convs {
		if c.BuyerID == userID || c.SellerID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) TouchLastMessage(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.convs[id]; ok {
		c.LastMessageAt = &at
	}
	return nil
}

type fakeMessageRepo struct {
	mu     sync.Mutex
	msgs   []*models.Message
	nextID int
}

func (r *fakeMessageRepo) Create(_ context.Context, m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = fmt.Sprintf("msg-%d", r.nextID)
	m.CreatedAt = time.Now()
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.msgs {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkReadForReceiver(_ context.Context, conversationID, receiverID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.msgs {
		if m.ConversationID == conversationID && m.ReceiverID == receiverID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) CountUnreadInConversation(_ context.Context, conversationID, receiverID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.msgs {
		if m.ConversationID == conversationID && m.ReceiverID == receiverID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) LastInConversation(_ context.Context, conversationID string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].ConversationID == conversationID {
			msg := *r.msgs[i]
			return &msg, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*models.Product
	likes    map[string]map[string]bool
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		products: make(map[string]*models.Product),
		likes:    make(map[string]map[string]bool),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	prod := *p
	return &prod, nil
}

func (r *fakeProductRepo) ListPromoted(_ context.Context, limit, offset int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, p := range r.products {
		if p.IsPromoted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CreateLike(_ context.Context, productID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.likes[productID] == nil {
		r.likes[productID] = make(map[string]bool)
	}
	if r.likes[productID][userID] {
		return repositories.ErrDuplicate
	}
	r.likes[productID][userID] = true
	return nil
}

func (r *fakeProductRepo) HasLiked(_ context.Context, productID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[productID][userID], nil
}

func (r *fakeProductRepo) RefreshLikeCount(_ context.Context, productID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := int64(len(r.likes[productID]))
	if p, ok := r.products[productID]; ok {
		p.LikeCount = int(count)
	}
	return count, nil
}

func (r *fakeProductRepo) Promote(_ context.Context, productID string, minLikes int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok || p.IsPromoted || p.LikeCount < minLikes {
		return false, nil
	}
	now := time.Now()
	p.IsPromoted = true
	p.PromotedAt = &now
	return true, nil
}

type fakeNotificationRepo struct {
	mu        sync.Mutex
	notifs    []*models.Notification
	nextID    int
	lastLimit int
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = fmt.Sprintf("notif-%d", r.nextID)
	n.CreatedAt = time.Now()
	r.notifs = append(r.notifs, n)
	return nil
}

func (r *fakeNotificationRepo) GetByIDForUser(_ context.Context, id, userID string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifs {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	var out []models.Notification
	for _, n := range r.notifs {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) ListByUserAndType(_ context.Context, userID, notifType string, limit, offset int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.notifs {
		if n.UserID == userID && n.Type == notifType {
			out = append(out, *n)
		}
	}
	return out, nil
}

func markRead(n *models.Notification) {
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifs {
		if n.ID == id && n.UserID == userID {
			markRead(n)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifs {
		if n.UserID == userID && !n.IsRead {
			markRead(n)
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAllAsReadByType(_ context.Context, userID, notifType string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifs {
		if n.UserID == userID && n.Type == notifType && !n.IsRead {
			markRead(n)
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notifs {
		if n.ID == id && n.UserID == userID {
			r.notifs = append(r.notifs[:i], r.notifs[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) DeleteAllByType(_ context.Context, userID, notifType string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*models.Notification
	var count int64
	for _, n := range r.notifs {
		if n.UserID == userID && n.Type == notifType {
			count++
			continue
		}
		kept = append(kept, n)
	}
	r.notifs = kept
	return count, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifs {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Stats(_ context.Context, userID string) (*repositories.NotificationStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repositories.NotificationStats{ByType: make(map[string]int64)}
	for _, n := range r.notifs {
		if n.UserID != userID {
			continue
		}
		stats.Total++
		if !n.IsRead {
			stats.Unread++
		}
		stats.ByType[n.Type]++
	}
	return stats, nil
}

// fakeDeliverer records every payload pushed per user.
type fakeDeliverer struct {
	mu       sync.Mutex
	payloads map[string][]any
	online   map[string]bool
}

func newFakeDeliverer(onlineUsers ...string) *fakeDeliverer {
	d := &fakeDeliverer{
		payloads: make(map[string][]any),
		online:   make(map[string]bool),
	}
	for _, u := range onlineUsers {
		d.online[u] = true
	}
	return d
}

func (d *fakeDeliverer) DeliverToUser(userID string, payload any) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.online[userID] {
		return false
	}
	d.payloads[userID] = append(d.payloads[userID], payload)
	return true
}

func (d *fakeDeliverer) payloadsFor(userID string) []any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.payloads[userID]
}
