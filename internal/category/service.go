package category

import "errors"

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` categories.
func (s *Service) List(limit int) ([]Category, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.List(limit)
}

func (s *Service) Create(c Category) (Category, error) {
	if c.Name == "" {
		return Category{}, errors.New("category name is required")
	}
	return s.repo.Create(c)
}

func (s *Service) Update(id int, c Category) (Category, error) {
	if c.Name == "" {
		return Category{}, errors.New("category name is required")
	}
	return s.repo.Update(id, c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
