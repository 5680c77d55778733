package product

import "errors"

// ServiceInterface lets other packages (order handler, tests) depend on the
// product service without pulling in the concrete type.
type ServiceInterface interface {
	List() ([]Product, error)
	ListByIDs(ids []int) ([]Product, error)
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	SetImageKey(id int, key string) (Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	if p.Name == "" {
		return Product{}, errors.New("product name is required")
	}
	if p.PriceCents < 0 {
		return Product{}, errors.New("price must be non-negative")
	}
	if p.StockQuantity < 0 {
		return Product{}, errors.New("stock must be non-negative")
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if p.PriceCents < 0 {
		return Product{}, errors.New("price must be non-negative")
	}
	if p.StockQuantity < 0 {
		return Product{}, errors.New("stock must be non-negative")
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// SetImageKey records the object-storage key of the uploaded product image.
// It re-reads first so the CAS update carries the current version.
func (s *Service) SetImageKey(id int, key string) (Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	p.ImageKey = &key
	return s.repo.Update(id, p)
}
