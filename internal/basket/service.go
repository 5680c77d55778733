package basket

import "errors"

var errInvalidQuantity = errors.New("quantity must be positive")

// Service orchestrates basket operations. Every mutating call here is its
// own write; the order workflow reaches the same repository code through its
// transaction-scoped stores instead of going through this service.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(customerID *int) (Basket, error) {
	return s.repo.Create(customerID)
}

func (s *Service) Get(id int) (Basket, error) {
	if id <= 0 {
		return Basket{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) AddItem(basketID, productID, qty int) (Basket, error) {
	if basketID <= 0 {
		return Basket{}, ErrNotFound
	}
	if productID <= 0 || qty <= 0 {
		return Basket{}, errInvalidQuantity
	}
	return s.repo.AddItem(basketID, productID, qty)
}

func (s *Service) UpdateItem(basketID, itemID, qty int) (Basket, error) {
	if basketID <= 0 {
		return Basket{}, ErrNotFound
	}
	if qty < 0 {
		return Basket{}, errInvalidQuantity
	}
	return s.repo.UpdateItem(basketID, itemID, qty)
}

func (s *Service) RemoveItem(basketID, itemID int) (Basket, error) {
	if basketID <= 0 {
		return Basket{}, ErrNotFound
	}
	return s.repo.RemoveItem(basketID, itemID)
}

// DecrementItem removes one unit from a line and deletes the line when it
// reaches zero.
func (s *Service) DecrementItem(basketID, itemID int) (Basket, error) {
	if basketID <= 0 {
		return Basket{}, ErrNotFound
	}
	b, err := s.repo.GetByID(basketID)
	if err != nil {
		return Basket{}, err
	}
	for _, it := range b.Items {
		if it.ID == itemID {
			return s.repo.UpdateItem(basketID, itemID, it.Quantity-1)
		}
	}
	return Basket{}, ErrItemNotFound
}

func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// Claim reassigns an anonymous basket to the customer who logged in.
func (s *Service) Claim(basketID, customerID int) (Basket, error) {
	if basketID <= 0 || customerID <= 0 {
		return Basket{}, ErrNotFound
	}
	if err := s.repo.AssignCustomer(basketID, customerID); err != nil {
		return Basket{}, err
	}
	return s.repo.GetByID(basketID)
}
