package address

import (
	"errors"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(customerID int) ([]Address, error) {
	if customerID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByCustomer(customerID)
}

func (s *Service) Add(customerID int, name, detail, phone string) (Address, error) {
	if customerID <= 0 {
		return Address{}, ErrNotFound
	}
	if name == "" && detail == "" {
		return Address{}, errors.New("addressName or addressDetail required")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(Address{
		CustomerID: customerID,
		Name:       name,
		Detail:     detail,
		Phone:      phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (s *Service) Update(customerID, addressID int, name, detail, phone string) (Address, error) {
	if customerID <= 0 || addressID <= 0 {
		return Address{}, ErrNotFound
	}
	if name == "" && detail == "" {
		return Address{}, errors.New("addressName or addressDetail required")
	}
	return s.repo.Update(customerID, addressID, Address{
		Name:      name,
		Detail:    detail,
		Phone:     phone,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Service) Delete(customerID, addressID int) error {
	if customerID <= 0 || addressID <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(customerID, addressID)
}
