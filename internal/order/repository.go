package order

import "sync"

// Repository persists order aggregates. GetByID returns cancelled
// (soft-deleted) orders too -- the state machine needs to see them to reject
// a second cancel; ListByCustomer hides them.
type Repository interface {
	GetByID(id int) (Order, error)
	Create(o Order) (Order, error)
	Update(id int, o Order) (Order, error)
	ListByCustomer(customerID int) ([]Order, error)
}

// InMemoryRepository is used in tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	storage  []Order
	nextID   int
	nextItem int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, nextItem: 1}
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.storage {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	for i := range o.Items {
		o.Items[i].ID = r.nextItem
		o.Items[i].OrderID = o.ID
		r.nextItem++
	}
	r.storage = append(r.storage, cloneOrder(o))
	return o, nil
}

func (r *InMemoryRepository) Update(id int, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			o.ID = id
			r.storage[i] = cloneOrder(o)
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByCustomer(customerID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range r.storage {
		if o.CustomerID == customerID && !o.Deleted {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func cloneOrder(o Order) Order {
	items := make([]Item, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
