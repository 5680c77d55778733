package address

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("address not found")

type Repository interface {
	ListByCustomer(customerID int) ([]Address, error)
	Create(a Address) (Address, error)
	Update(customerID, addressID int, a Address) (Address, error)
	Delete(customerID, addressID int) error
}

// InMemoryRepository for tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	data   map[int][]Address // keyed by customer id
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: map[int][]Address{}, nextID: 1}
}

func (r *InMemoryRepository) ListByCustomer(customerID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Address, len(r.data[customerID]))
	copy(out, r.data[customerID])
	return out, nil
}

func (r *InMemoryRepository) Create(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID
	r.nextID++
	r.data[a.CustomerID] = append(r.data[a.CustomerID], a)
	return a, nil
}

func (r *InMemoryRepository) Update(customerID, addressID int, a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.data[customerID] {
		if existing.ID == addressID {
			a.ID = addressID
			a.CustomerID = customerID
			r.data[customerID][i] = a
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(customerID, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := r.data[customerID]
	for i, existing := range addrs {
		if existing.ID == addressID {
			r.data[customerID] = append(addrs[:i], addrs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
