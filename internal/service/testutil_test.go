package service

import (
	"context"
	"strings"
	"sync"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository interfaces. They mirror the mongo
// behavior the services rely on: ErrNotFound sentinels, case-sensitive
// exact email matches (services normalize), substring name search.

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[primitive.ObjectID]domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[primitive.ObjectID]domain.Customer)}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.customers {
		if existing.Email == c.Email {
			return domain.NewValidationError("email", "Email já cadastrado")
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	f.customers[c.ID] = *c
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := c
	return &copied, nil
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.Email == email {
			copied := c
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCustomerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomerRepo) ListActive(_ context.Context) ([]domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Customer
	for _, c := range f.customers {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) SearchByName(_ context.Context, fragment string) ([]domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Customer
	for _, c := range f.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(fragment)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.customers[c.ID] = *c
	return nil
}

type fakeRestaurantRepo struct {
	mu          sync.Mutex
	restaurants map[primitive.ObjectID]domain.Restaurant
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{restaurants: make(map[primitive.ObjectID]domain.Restaurant)}
}

func (f *fakeRestaurantRepo) Create(_ context.Context, r *domain.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	f.restaurants[r.ID] = *r
	return nil
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.restaurants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := r
	return &copied, nil
}

func (f *fakeRestaurantRepo) List(_ context.Context) ([]domain.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Restaurant
	for _, r := range f.restaurants {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRestaurantRepo) Update(_ context.Context, r *domain.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.restaurants[r.ID]; !ok {
		return domain.ErrNotFound
	}
	f.restaurants[r.ID] = *r
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]domain.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (f *fakeProductRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) ListByRestaurant(_ context.Context, restaurantID primitive.ObjectID) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.products {
		if p.RestaurantID == restaurantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) ListByCategory(_ context.Context, category string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) SearchByName(_ context.Context, fragment string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(fragment)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) SetAvailability(_ context.Context, id primitive.ObjectID, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Available = available
	f.products[id] = p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products)
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]domain.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := o
	copied.Items = append([]domain.OrderItem(nil), o.Items...)
	return &copied, nil
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, customerID primitive.ObjectID) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	f.orders[o.ID] = *o
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domain.NewValidationError("email", "Email já cadastrado")
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]domain.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.Token] = *s
	return nil
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := s
	return &copied, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

type fakeAuditRepo struct {
	mu     sync.Mutex
	audits []domain.StatusAudit
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (f *fakeAuditRepo) Create(_ context.Context, a *domain.StatusAudit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audits = append(f.audits, *a)
	return nil
}

func (f *fakeAuditRepo) ListByEntity(_ context.Context, entityID string, limit int) ([]domain.StatusAudit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.StatusAudit
	for _, a := range f.audits {
		if a.EntityID == entityID {
			out = append(out, a)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// fakeBroker records published messages instead of talking to RabbitMQ.
type fakeBroker struct {
	mu        sync.Mutex
	published [][]byte
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{}
}

func (f *fakeBroker) Publish(_ context.Context, _ string, message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, message)
	return nil
}

func (f *fakeBroker) Subscribe(_ context.Context, _ string, _ queue.MessageHandler) error {
	return nil
}

func (f *fakeBroker) Close() error { return nil }

func (f *fakeBroker) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}
