package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

// --- customers ---

type stubCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
	deductErr error
}

func newStubCustomerRepo(customers ...*domain.Customer) *stubCustomerRepo {
	r := &stubCustomerRepo{customers: make(map[string]*domain.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = cloneCustomer(c)
	}
	return r
}

func cloneCustomer(c *domain.Customer) *domain.Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCustomerRepo) get(id string) *domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneCustomer(r.customers[id])
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.customers {
		if existing.Email == c.Email {
			return domain.ErrCustomerExists
		}
	}
	r.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	if c := r.get(id); c != nil {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == email {
			return cloneCustomer(c), nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) UpdateProfile(_ context.Context, id string, upd ports.ProfileUpdate) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	c.FirstName, c.LastName, c.Phone = upd.FirstName, upd.LastName, upd.Phone
	return cloneCustomer(c), nil
}

func (r *stubCustomerRepo) List(_ context.Context, f ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Customer
	for _, c := range r.customers {
		if f.Role != "" && string(c.Role) != f.Role {
			continue
		}
		out = append(out, cloneCustomer(c))
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.customers)), nil
}

func (r *stubCustomerRepo) SetDefaultAddress(_ context.Context, customerID, addressID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[customerID]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	c.DefaultAddressID = addressID
	return nil
}

func (r *stubCustomerRepo) ClearDefaultAddress(_ context.Context, customerID, addressID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[customerID]; ok && c.DefaultAddressID == addressID {
		c.DefaultAddressID = ""
	}
	return nil
}

func (r *stubCustomerRepo) DeductTryOnCredit(_ context.Context, id string, at time.Time) (*domain.Customer, error) {
	if r.deductErr != nil {
		return nil, r.deductErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if c.TryOnCredits <= 0 {
		return nil, domain.ErrNoCredits
	}
	c.TryOnCredits--
	c.TryOnCreditsUsed++
	c.LastTryOnAt = &at
	return cloneCustomer(c), nil
}

func (r *stubCustomerRepo) GrantTryOnCredits(_ context.Context, id string, amount int) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	c.TryOnCredits += amount
	return cloneCustomer(c), nil
}

func (r *stubCustomerRepo) RecordOrder(_ context.Context, id string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[id]; ok {
		c.OrderCount++
		c.TotalSpent += amount
	}
	return nil
}

// --- addresses ---

type stubAddressRepo struct {
	addresses map[string]*domain.Address
	order     []string
	afterFind func(id string) // runs after every successful FindByID
}

func newStubAddressRepo() *stubAddressRepo {
	return &stubAddressRepo{addresses: make(map[string]*domain.Address)}
}

func (r *stubAddressRepo) Create(_ context.Context, a *domain.Address) error {
	clone := *a
	r.addresses[a.ID] = &clone
	r.order = append(r.order, a.ID)
	return nil
}

func (r *stubAddressRepo) FindByID(_ context.Context, customerID, id string) (*domain.Address, error) {
	a, ok := r.addresses[id]
	if !ok || a.CustomerID != customerID {
		return nil, domain.ErrAddressNotFound
	}
	clone := *a
	if r.afterFind != nil {
		r.afterFind(id)
	}
	return &clone, nil
}

func (r *stubAddressRepo) ListByCustomer(_ context.Context, customerID string) ([]*domain.Address, error) {
	var out []*domain.Address
	for _, id := range r.order {
		if a, ok := r.addresses[id]; ok && a.CustomerID == customerID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubAddressRepo) Update(_ context.Context, a *domain.Address) error {
	existing, ok := r.addresses[a.ID]
	if !ok || existing.CustomerID != a.CustomerID {
		return domain.ErrAddressNotFound
	}
	clone := *a
	r.addresses[a.ID] = &clone
	return nil
}

func (r *stubAddressRepo) Delete(_ context.Context, customerID, id string) error {
	a, ok := r.addresses[id]
	if !ok || a.CustomerID != customerID {
		return domain.ErrAddressNotFound
	}
	delete(r.addresses, id)
	return nil
}

// --- products ---

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		clone := *p
		r.products[p.ID] = &clone
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	for _, existing := range r.products {
		if existing.Slug == p.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Product, error) {
	out := make(map[string]*domain.Product)
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			clone := *p
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context, f ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

// --- orders ---

type stubOrderRepo struct {
	orders []*domain.Order
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	clone := *o
	r.orders = append(r.orders, &clone)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) FindByNumber(_ context.Context, number, customerID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == number && (customerID == "" || o.CustomerID == customerID) {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	var out []*domain.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	total := int64(len(out))
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, upd ports.OrderStatusUpdate) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID != id {
			continue
		}
		if upd.Status != nil {
			o.Status = *upd.Status
		}
		if upd.PaymentStatus != nil {
			o.PaymentStatus = *upd.PaymentStatus
		}
		if upd.InternalNotes != nil {
			o.InternalNotes = *upd.InternalNotes
		}
		clone := *o
		return &clone, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) PaidRevenue(_ context.Context) (float64, error) {
	var sum float64
	for _, o := range r.orders {
		if o.PaymentStatus == domain.PaymentPaid {
			sum += o.TotalAmount
		}
	}
	return sum, nil
}

type stubPublisher struct {
	events []domain.OrderStatusEvent
}

func (p *stubPublisher) Publish(ev domain.OrderStatusEvent) {
	p.events = append(p.events, ev)
}

// --- try-on ---

type stubTryOnRepo struct {
	results    []*domain.TryOnResult
	history    []*domain.TryOnHistory
	resultErr  error
	historyErr error
}

func (r *stubTryOnRepo) InsertResult(_ context.Context, res *domain.TryOnResult) error {
	if r.resultErr != nil {
		return r.resultErr
	}
	r.results = append(r.results, res)
	return nil
}

func (r *stubTryOnRepo) InsertHistory(_ context.Context, h *domain.TryOnHistory) error {
	if r.historyErr != nil {
		return r.historyErr
	}
	r.history = append(r.history, h)
	return nil
}

func (r *stubTryOnRepo) ListResults(_ context.Context, customerID string, _ int) ([]*domain.TryOnResult, error) {
	var out []*domain.TryOnResult
	for _, res := range r.results {
		if res.CustomerID == customerID {
			out = append(out, res)
		}
	}
	return out, nil
}

type stubObjectStore struct {
	objects map[string][]byte
	failOn  string
}

func newStubObjectStore() *stubObjectStore {
	return &stubObjectStore{objects: make(map[string][]byte)}
}

func (s *stubObjectStore) Put(_ context.Context, key, _ string, body []byte) (string, error) {
	if s.failOn != "" && key == s.failOn {
		return "", errors.New("bucket unavailable")
	}
	s.objects[key] = body
	return "https://cdn.test/" + key, nil
}

type stubModel struct {
	calls  int
	err    error
	params domain.InferenceParams
}

func (m *stubModel) Generate(_ context.Context, garmentURL, personURL string, params domain.InferenceParams) (string, error) {
	m.calls++
	m.params = params
	if m.err != nil {
		return "", m.err
	}
	return "https://model.test/result.png", nil
}

type stubFetcher struct {
	images map[string]*ports.Image
	err    error
	calls  int
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*ports.Image, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if img, ok := f.images[url]; ok {
		return img, nil
	}
	return &ports.Image{Data: []byte("\x89PNG\r\n\x1a\nresult"), ContentType: "image/png"}, nil
}

type stubCompositor struct {
	err error
}

func (c *stubCompositor) Compose(_, _, _ []byte, _ time.Time) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []byte("combined"), nil
}

// --- tokens ---

type stubTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*domain.ImageToken
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]*domain.ImageToken)}
}

func (s *stubTokenStore) Save(_ context.Context, t *domain.ImageToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *t
	s.tokens[t.Token] = &clone
	return nil
}

func (s *stubTokenStore) Consume(_ context.Context, token string, now time.Time) (*domain.ImageToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if err := t.Check(now); err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			delete(s.tokens, token)
		}
		return nil, err
	}
	t.Used = true
	t.Downloads++
	clone := *t
	return &clone, nil
}

// --- dedup ---

type stubDedup struct {
	last map[string]string
	err  error
}

func newStubDedup() *stubDedup {
	return &stubDedup{last: make(map[string]string)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, orderID, transition string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	last, ok := d.last[orderID]
	return ok && last == transition, nil
}

func (d *stubDedup) Mark(_ context.Context, orderID, transition string) error {
	d.last[orderID] = transition
	return nil
}

type stubEventRepo struct {
	events []*domain.OrderStatusEvent
}

func (r *stubEventRepo) Insert(_ context.Context, ev *domain.OrderStatusEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func (r *stubEventRepo) ListByOrder(_ context.Context, orderID string) ([]*domain.OrderStatusEvent, error) {
	var out []*domain.OrderStatusEvent
	for _, ev := range r.events {
		if ev.OrderID == orderID {
			out = append(out, ev)
		}
	}
	return out, nil
}
