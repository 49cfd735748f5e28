package repository

import (
	"context"
	"sync"

	"github.com/shopmate/shopmate-bot/internal/cache"
	"github.com/shopmate/shopmate-bot/internal/models"
)

// In-memory store implementations. They satisfy the same interfaces as the
// Postgres repositories and back the test suite; nothing here persists.

// MemoryCatalogStore is an in-memory product catalog.
type MemoryCatalogStore struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int64
}

// NewMemoryCatalogStore creates an empty in-memory catalog.
func NewMemoryCatalogStore() *MemoryCatalogStore {
	return &MemoryCatalogStore{nextID: 1}
}

func (s *MemoryCatalogStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryCatalogStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryCatalogStore) AppendProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = s.nextID
	s.nextID++
	s.products = append(s.products, *product)
	return nil
}

func (s *MemoryCatalogStore) RemoveProduct(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// MemoryDealStore is an in-memory deal list.
type MemoryDealStore struct {
	mu    sync.Mutex
	deals []models.Deal
}

// NewMemoryDealStore creates an empty in-memory deal store.
func NewMemoryDealStore() *MemoryDealStore {
	return &MemoryDealStore{}
}

func (s *MemoryDealStore) ListDeals(ctx context.Context) ([]models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Deal, len(s.deals))
	copy(out, s.deals)
	return out, nil
}

func (s *MemoryDealStore) ReplaceDeals(ctx context.Context, deals []models.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deals = make([]models.Deal, len(deals))
	copy(s.deals, deals)
	for i := range s.deals {
		s.deals[i].Position = i + 1
	}
	return nil
}

// MemoryQueryStore is an in-memory query log with a traffic counter.
type MemoryQueryStore struct {
	mu      sync.Mutex
	queries []models.QueryRecord
	traffic int64
	nextID  int64
}

// NewMemoryQueryStore creates an empty in-memory query store.
func NewMemoryQueryStore() *MemoryQueryStore {
	return &MemoryQueryStore{nextID: 1}
}

func (s *MemoryQueryStore) AppendQuery(ctx context.Context, rec *models.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	rec.Status = models.QueryStatusPending
	s.queries = append(s.queries, *rec)
	s.traffic++
	return nil
}

func (s *MemoryQueryStore) MarkSuccess(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.queries {
		if s.queries[i].ID == id && s.queries[i].Status == models.QueryStatusPending {
			s.queries[i].Status = models.QueryStatusSuccess
		}
	}
	return nil
}

func (s *MemoryQueryStore) ListQueries(ctx context.Context) ([]models.QueryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.QueryRecord, len(s.queries))
	copy(out, s.queries)
	return out, nil
}

func (s *MemoryQueryStore) Traffic(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traffic, nil
}

// MemoryViewStore is an in-memory durable view counter table.
type MemoryViewStore struct {
	mu    sync.Mutex
	views map[int64]int64
}

// NewMemoryViewStore creates an empty in-memory view store.
func NewMemoryViewStore() *MemoryViewStore {
	return &MemoryViewStore{views: make(map[int64]int64)}
}

func (s *MemoryViewStore) Add(ctx context.Context, productID, n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[productID] += n
	return nil
}

func (s *MemoryViewStore) All(ctx context.Context) (map[int64]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]int64, len(s.views))
	for k, v := range s.views {
		out[k] = v
	}
	return out, nil
}

// MemoryUserStore is an in-memory chat registry.
type MemoryUserStore struct {
	mu    sync.Mutex
	users []models.User
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) Upsert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ChatID == user.ChatID {
			s.users[i].FirstName = user.FirstName
			s.users[i].LastName = user.LastName
			s.users[i].Username = user.Username
			return nil
		}
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryUserStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// MemoryViewCounter mirrors the Redis hot view-delta counter.
type MemoryViewCounter struct {
	mu     sync.Mutex
	deltas map[int64]int64
}

// NewMemoryViewCounter creates an empty in-memory view counter.
func NewMemoryViewCounter() *MemoryViewCounter {
	return &MemoryViewCounter{deltas: make(map[int64]int64)}
}

func (c *MemoryViewCounter) Incr(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deltas[productID]++
	return nil
}

func (c *MemoryViewCounter) Deltas(ctx context.Context) (map[int64]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int64]int64, len(c.deltas))
	for k, v := range c.deltas {
		out[k] = v
	}
	return out, nil
}

func (c *MemoryViewCounter) Deduct(ctx context.Context, productID, n int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deltas[productID] -= n
	if c.deltas[productID] == 0 {
		delete(c.deltas, productID)
	}
	return nil
}

// MemorySessionStore mirrors the Redis chat session cache.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[int64]cache.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[int64]cache.Session)}
}

func (s *MemorySessionStore) Put(ctx context.Context, sess *cache.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ChatID] = *sess
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, chatID int64) (*cache.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, nil
	}
	out := sess
	return &out, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}
