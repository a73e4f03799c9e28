package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu      sync.Mutex
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Create registers user unless email or username is taken.
func (s *UserRepositoryStub) Create(ctx context.Context, email, username, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	for _, u := range s.ByID {
		if u.Username == username {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	user := &model.User{ID: s.Next, Email: email, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.Next++
	s.ByEmail[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns users ordered by id.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.User
	for id := int64(1); id < s.Next; id++ {
		if u, ok := s.ByID[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// OrderRepositoryStub keeps per-user order histories. Appends are serialized
// like a single-row insert would be.
type OrderRepositoryStub struct {
	mu        sync.Mutex
	Histories map[int64][]model.Order
	Users     *UserRepositoryStub
	AppendFn  func(context.Context, int64, *model.Order) error
	Err       error
}

// AppendToUser attaches order to the user's history.
func (s *OrderRepositoryStub) AppendToUser(ctx context.Context, userID int64, order *model.Order) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, userID, order)
	}
	if s.Users != nil {
		if _, err := s.Users.GetByID(ctx, userID); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.Histories == nil {
		s.Histories = make(map[int64][]model.Order)
	}
	order.UserID = userID
	order.PurchaseDate = time.Now()
	stored := *order
	stored.ProductIDs = append([]string(nil), order.ProductIDs...)
	stored.Products = nil
	s.Histories[userID] = append(s.Histories[userID], stored)
	return nil
}

// ListByUser returns a copy of the user's history.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Order(nil), s.Histories[userID]...), nil
}

// Count reports how many orders the user has.
func (s *OrderRepositoryStub) Count(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Histories[userID])
}

// CatalogRepositoryStub serves bouquets from memory and counts lookups.
type CatalogRepositoryStub struct {
	mu           sync.Mutex
	OccasionList []model.Occasion
	Items        map[string]model.Bouquet
	FindCalls    int
	Err          error
}

// NewCatalogRepositoryStub indexes bouquets by id.
func NewCatalogRepositoryStub(bouquets ...model.Bouquet) *CatalogRepositoryStub {
	items := make(map[string]model.Bouquet, len(bouquets))
	for _, b := range bouquets {
		items[b.ID] = b
	}
	return &CatalogRepositoryStub{Items: items}
}

func (s *CatalogRepositoryStub) Occasions(ctx context.Context) ([]model.Occasion, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.OccasionList, nil
}

func (s *CatalogRepositoryStub) BouquetsByOccasion(ctx context.Context, occasionID string) ([]model.Bouquet, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Bouquet
	for _, b := range s.Items {
		if b.Occasion != nil && b.Occasion.ID == occasionID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (s *CatalogRepositoryStub) Bouquet(ctx context.Context, id string) (*model.Bouquet, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &b, nil
}

func (s *CatalogRepositoryStub) Featured(ctx context.Context) ([]model.Bouquet, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Bouquet
	for _, b := range s.Items {
		if b.Featured {
			result = append(result, b)
		}
	}
	return result, nil
}

func (s *CatalogRepositoryStub) FindBouquetsByIDs(ctx context.Context, ids []string) ([]model.Bouquet, error) {
	s.mu.Lock()
	s.FindCalls++
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Bouquet
	for _, id := range ids {
		if b, ok := s.Items[id]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository   = (*OrderRepositoryStub)(nil)
	_ repository.CatalogRepository = (*CatalogRepositoryStub)(nil)
)
