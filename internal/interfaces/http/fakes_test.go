package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/techempire/storefront/internal/domain/build"
	"github.com/techempire/storefront/internal/domain/cart"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/domain/contact"
	"github.com/techempire/storefront/internal/domain/order"
	"github.com/techempire/storefront/internal/pkg/email"
)

type catalogRepo struct {
	mu       sync.Mutex
	products map[uint]catalog.Product
	nextID   uint
}

func newCatalogRepo(products ...catalog.Product) *catalogRepo {
	r := &catalogRepo{products: map[uint]catalog.Product{}, nextID: 1}
	for _, p := range products {
		_ = r.Create(context.Background(), &p)
	}
	return r
}

func (r *catalogRepo) List(_ context.Context, q catalog.ListQuery) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if q.Category == "" || string(p.Category) == q.Category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *catalogRepo) FindByID(_ context.Context, id uint) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

func (r *catalogRepo) Create(_ context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	r.products[p.ID] = *p
	return nil
}

func (r *catalogRepo) Update(_ context.Context, id uint, updates map[string]interface{}) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	if v, ok := updates["in_stock"].(bool); ok {
		p.InStock = v
	}
	if v, ok := updates["price"].(int64); ok {
		p.Price = v
	}
	if v, ok := updates["name"].(string); ok {
		p.Name = v
	}
	r.products[id] = p
	return &p, nil
}

func (r *catalogRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// blobs stands in for Redis: one JSON value per key
type blobs struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newBlobs() *blobs { return &blobs{data: map[string][]byte{}} }

func (b *blobs) get(key string, v interface{}) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	raw, ok := b.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (b *blobs) set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = raw
	return nil
}

type cartBlob struct {
	b   *blobs
	key string
}

func (s cartBlob) Load(context.Context) ([]cart.Entry, error) {
	var entries []cart.Entry
	_, err := s.b.get(s.key, &entries)
	return entries, err
}

func (s cartBlob) Save(_ context.Context, entries []cart.Entry) error {
	return s.b.set(s.key, entries)
}

type buildBlob struct {
	b   *blobs
	key string
}

func (s buildBlob) Load(context.Context) (map[catalog.Category]build.Component, error) {
	var components map[catalog.Category]build.Component
	_, err := s.b.get(s.key, &components)
	return components, err
}

func (s buildBlob) Save(_ context.Context, components map[catalog.Category]build.Component) error {
	return s.b.set(s.key, components)
}

type buildRepo struct {
	mu     sync.Mutex
	builds map[uint]build.SavedBuild
}

func (r *buildRepo) Create(_ context.Context, b *build.SavedBuild) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = uint(len(r.builds) + 1)
	r.builds[b.ID] = *b
	return nil
}

func (r *buildRepo) FindByID(_ context.Context, id uint) (*build.SavedBuild, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.builds[id]
	if !ok {
		return nil, build.ErrBuildNotFound
	}
	return &b, nil
}

type orderRepo struct {
	mu     sync.Mutex
	orders map[uint]order.Order
}

func (r *orderRepo) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = uint(len(r.orders) + 1)
	o.CreatedAt = time.Now()
	r.orders[o.ID] = *o
	return nil
}

func (r *orderRepo) FindByID(_ context.Context, id uint) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return &o, nil
}

func (r *orderRepo) List(_ context.Context, req *order.OrderListRequest) ([]order.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []order.Order
	for _, o := range r.orders {
		if req.UserID != 0 && o.UserID != req.UserID {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, id uint, updates map[string]interface{}, history order.OrderStatusHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	o.Status = updates["status"].(order.OrderStatus)
	o.StatusHistory = append(o.StatusHistory, history)
	r.orders[id] = o
	return nil
}

type contactRepo struct {
	mu   sync.Mutex
	subs []contact.Submission
}

func (r *contactRepo) Create(_ context.Context, s *contact.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = uint(len(r.subs) + 1)
	r.subs = append(r.subs, *s)
	return nil
}

func (r *contactRepo) List(_ context.Context, offset, limit int) ([]contact.Submission, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.subs) {
		return nil, int64(len(r.subs)), nil
	}
	end := offset + limit
	if end > len(r.subs) {
		end = len(r.subs)
	}
	return r.subs[offset:end], int64(len(r.subs)), nil
}

type mailer struct{}

func (mailer) SendOrderConfirmation(context.Context, email.OrderConfirmationData) error {
	return errors.New("smtp disabled")
}

func (mailer) SendContactNotification(context.Context, email.ContactNotificationData) error {
	return nil
}

type renderer struct{}

func (renderer) GenerateInvoice(*order.Order) (*bytes.Buffer, error) {
	return bytes.NewBufferString("%PDF-invoice"), nil
}

func (renderer) GenerateBuildSheet(*build.SavedBuild) (*bytes.Buffer, error) {
	return bytes.NewBufferString("%PDF-sheet"), nil
}

type checker struct{ err error }

func (c checker) Health(context.Context) error { return c.err }
