package basket

import (
	"errors"
	"sync"

	"github.com/storewise/storefront-backend/internal/product"
)

var (
	ErrNotFound     = errors.New("basket not found")
	ErrItemNotFound = errors.New("basket item not found")
)

// Repository persists basket aggregates. AddItem merges lines: adding a
// product that already has a line increments its quantity instead of
// creating a duplicate. A quantity that drops to zero or below removes the
// line.
type Repository interface {
	Create(customerID *int) (Basket, error)
	GetByID(id int) (Basket, error)
	AddItem(basketID, productID, qty int) (Basket, error)
	UpdateItem(basketID, itemID, qty int) (Basket, error)
	RemoveItem(basketID, itemID int) (Basket, error)
	Delete(id int) error
	AssignCustomer(basketID, customerID int) error
}

// ProductGetter fills item snapshots on reads.
type ProductGetter interface {
	GetByID(id int) (product.Product, error)
}

// InMemoryRepository is used in tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	baskets  []Basket
	nextID   int
	nextItem int
	products ProductGetter // optional
}

func NewInMemoryRepository(products ProductGetter) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, nextItem: 1, products: products}
}

func (r *InMemoryRepository) Create(customerID *int) (Basket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := Basket{ID: r.nextID, CustomerID: customerID, Items: []Item{}}
	r.nextID++
	r.baskets = append(r.baskets, b)
	return b, nil
}

func (r *InMemoryRepository) GetByID(id int) (Basket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.baskets {
		if b.ID == id {
			return r.withSnapshots(b), nil
		}
	}
	return Basket{}, ErrNotFound
}

func (r *InMemoryRepository) AddItem(basketID, productID, qty int) (Basket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.baskets {
		if r.baskets[i].ID != basketID {
			continue
		}
		b := &r.baskets[i]
		for j := range b.Items {
			if b.Items[j].ProductID == productID {
				b.Items[j].Quantity += qty
				if b.Items[j].Quantity <= 0 {
					b.Items = append(b.Items[:j], b.Items[j+1:]...)
				}
				return r.withSnapshots(*b), nil
			}
		}
		if qty > 0 {
			id := basketID
			b.Items = append(b.Items, Item{ID: r.nextItem, BasketID: &id, ProductID: productID, Quantity: qty})
			r.nextItem++
		}
		return r.withSnapshots(*b), nil
	}
	return Basket{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateItem(basketID, itemID, qty int) (Basket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.baskets {
		if r.baskets[i].ID != basketID {
			continue
		}
		b := &r.baskets[i]
		for j := range b.Items {
			if b.Items[j].ID == itemID {
				if qty <= 0 {
					b.Items = append(b.Items[:j], b.Items[j+1:]...)
				} else {
					b.Items[j].Quantity = qty
				}
				return r.withSnapshots(*b), nil
			}
		}
		return Basket{}, ErrItemNotFound
	}
	return Basket{}, ErrNotFound
}

func (r *InMemoryRepository) RemoveItem(basketID, itemID int) (Basket, error) {
	return r.UpdateItem(basketID, itemID, 0)
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.baskets {
		if r.baskets[i].ID == id {
			r.baskets = append(r.baskets[:i], r.baskets[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) AssignCustomer(basketID, customerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.baskets {
		if r.baskets[i].ID == basketID {
			r.baskets[i].CustomerID = &customerID
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) withSnapshots(b Basket) Basket {
	out := b
	out.Items = make([]Item, len(b.Items))
	copy(out.Items, b.Items)
	if r.products == nil {
		return out
	}
	for i := range out.Items {
		if p, err := r.products.GetByID(out.Items[i].ProductID); err == nil {
			out.Items[i].Product = p
		}
	}
	return out
}
