package product

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrConflict is returned when an update carries a stale version,
	// meaning another writer changed the row since it was read.
	ErrConflict = errors.New("product was modified concurrently")
)

// Repository hides soft-deleted products from every read path; callers can
// assume returned products are live.
type Repository interface {
	List() ([]Product, error)
	ListByIDs(ids []int) ([]Product, error)
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	// Update performs a compare-and-swap on p.Version. A stale version
	// yields ErrConflict; the stored version is bumped on success.
	Update(id int, p Product) (Product, error)
	Delete(id int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, p := range seed {
		if p.Version == 0 {
			p.Version = 1
		}
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if !p.Deleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		for _, p := range r.storage {
			if p.ID == id && !p.Deleted {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id && !p.Deleted {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	if p.Version == 0 {
		p.Version = 1
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID != id || r.storage[i].Deleted {
			continue
		}
		if r.storage[i].Version != p.Version {
			return Product{}, ErrConflict
		}
		p.ID = id
		p.Version++
		r.storage[i] = p
		return p, nil
	}
	return Product{}, ErrNotFound
}

// Delete flags the product as deleted; the row stays so historical orders
// keep a valid reference.
func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id && !r.storage[i].Deleted {
			r.storage[i].Deleted = true
			return nil
		}
	}
	return ErrNotFound
}
