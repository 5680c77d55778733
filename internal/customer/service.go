package customer

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// ServiceInterface is what handlers and the mailer depend on.
type ServiceInterface interface {
	GetByID(id int) (Customer, error)
	Register(c Customer) (Customer, error)
	Authenticate(email, password string) (Customer, error)
	UpdateProfile(id int, c Customer) (Customer, error)
	IssueRefreshToken(customerID int) (RefreshToken, error)
	RotateRefreshToken(token string) (Customer, RefreshToken, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) GetByID(id int) (Customer, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(c Customer) (Customer, error) {
	if _, err := s.repo.GetByEmail(c.Email); err == nil {
		return Customer{}, ErrEmailExists
	} else if err != ErrNotFound {
		return Customer{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return Customer{}, err
	}

	c.Password = string(hashed)
	return s.repo.Create(c)
}

func (s *Service) Authenticate(email, password string) (Customer, error) {
	c, err := s.repo.GetByEmail(email)
	if err != nil {
		return Customer{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password)) != nil {
		return Customer{}, ErrInvalidCredentials
	}

	return c, nil
}

func (s *Service) UpdateProfile(id int, c Customer) (Customer, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Customer{}, err
	}
	if c.Email == "" {
		c.Email = existing.Email
	}
	c.Password = existing.Password
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, c)
}

func (s *Service) IssueRefreshToken(customerID int) (RefreshToken, error) {
	rt := RefreshToken{
		Token:      uuid.NewString(),
		CustomerID: customerID,
		ExpiresAt:  time.Now().UTC().Add(refreshTokenTTL).Format(time.RFC3339),
	}
	if err := s.repo.CreateRefreshToken(rt); err != nil {
		return RefreshToken{}, err
	}
	return rt, nil
}

// RotateRefreshToken exchanges a valid token for a fresh one. The old token
// is revoked first so a replay of it fails.
func (s *Service) RotateRefreshToken(token string) (Customer, RefreshToken, error) {
	rt, err := s.repo.GetRefreshToken(token)
	if err != nil {
		return Customer{}, RefreshToken{}, err
	}
	if rt.RevokedAt != nil {
		return Customer{}, RefreshToken{}, ErrTokenInvalid
	}
	if exp, err := time.Parse(time.RFC3339, rt.ExpiresAt); err != nil || time.Now().UTC().After(exp) {
		return Customer{}, RefreshToken{}, ErrTokenInvalid
	}

	c, err := s.repo.GetByID(rt.CustomerID)
	if err != nil {
		return Customer{}, RefreshToken{}, ErrTokenInvalid
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.RevokeRefreshToken(token, now); err != nil {
		return Customer{}, RefreshToken{}, err
	}
	fresh, err := s.IssueRefreshToken(rt.CustomerID)
	if err != nil {
		return Customer{}, RefreshToken{}, err
	}
	return c, fresh, nil
}
