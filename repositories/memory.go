package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"mithai-mahal/models"

	"github.com/google/uuid"
)

// MemorySweetRepository keeps sweets in process memory, in insertion order.
// Used for local runs with STORE_DRIVER=memory and throughout the tests.
type MemorySweetRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.Sweet
	order []string
	now   func() time.Time
}

func NewMemorySweetRepository() *MemorySweetRepository {
	return &MemorySweetRepository{
		byID: map[string]*models.Sweet{},
		now:  time.Now,
	}
}

func (r *MemorySweetRepository) Create(ctx context.Context, sweet *models.Sweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Name == sweet.Name {
			return models.ErrDuplicateName
		}
	}

	now := r.now()
	sweet.ID = uuid.NewString()
	sweet.CreatedAt = now
	sweet.UpdatedAt = now

	stored := *sweet
	r.byID[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return nil
}

func (r *MemorySweetRepository) FindAll(ctx context.Context) ([]models.Sweet, error) {
	return r.Search(ctx, models.SweetFilter{})
}

func (r *MemorySweetRepository) FindByID(ctx context.Context, id string) (*models.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (r *MemorySweetRepository) FindByName(ctx context.Context, name string) (*models.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if s := r.byID[id]; s.Name == name {
			out := *s
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *MemorySweetRepository) Search(ctx context.Context, filter models.SweetFilter) ([]models.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(filter.Name)
	category := strings.ToLower(filter.Category)

	sweets := []models.Sweet{}
	for _, id := range r.order {
		s := r.byID[id]
		if name != "" && !strings.Contains(strings.ToLower(s.Name), name) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(s.Category), category) {
			continue
		}
		if filter.MinPrice != nil && s.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && s.Price > *filter.MaxPrice {
			continue
		}
		sweets = append(sweets, *s)
	}
	return sweets, nil
}

func (r *MemorySweetRepository) Update(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	updated := *s
	patch.Apply(&updated)
	if updated.Name != s.Name {
		for otherID, other := range r.byID {
			if otherID != id && other.Name == updated.Name {
				return nil, models.ErrDuplicateName
			}
		}
	}
	updated.UpdatedAt = r.now()
	*s = updated

	out := updated
	return &out, nil
}

func (r *MemorySweetRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemorySweetRepository) DecrementStock(ctx context.Context, id string) (*models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if s.QuantityInStock < 1 {
		return nil, models.ErrOutOfStock
	}
	s.QuantityInStock--
	s.UpdatedAt = r.now()

	out := *s
	return &out, nil
}

func (r *MemorySweetRepository) IncrementStock(ctx context.Context, id string, quantity int) (*models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if quantity < 1 || quantity > models.MaxStock-s.QuantityInStock {
		return nil, models.ErrInvalidQuantity
	}
	s.QuantityInStock += quantity
	s.UpdatedAt = r.now()

	out := *s
	return &out, nil
}

type MemoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byEmail: map[string]*models.User{}}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return models.ErrEmailTaken
	}

	now := time.Now()
	user.ID = uuid.NewString()
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byEmail[email] = &stored
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byEmail {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, models.ErrUserNotFound
}
