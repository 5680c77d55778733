package customer

import (
	"errors"
	"testing"
	"time"
)

func TestRegisterHashesPassword(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	created, err := s.Register(Customer{Email: "jo@example.com", Password: "hunter2", FirstName: "Jo"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected an id")
	}
	if created.Password == "hunter2" || created.Password == "" {
		t.Errorf("password stored in the clear: %q", created.Password)
	}

	got, err := s.Authenticate("jo@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("authenticated id = %d, want %d", got.ID, created.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))
	if _, err := s.Register(Customer{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := s.Register(Customer{Email: "jo@example.com", Password: "other"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))
	if _, err := s.Register(Customer{Email: "jo@example.com", Password: "hunter2"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := s.Authenticate("jo@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := s.Authenticate("nobody@example.com", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
}

func TestUpdateProfileKeepsPassword(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))
	created, err := s.Register(Customer{Email: "jo@example.com", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := s.UpdateProfile(created.ID, Customer{FirstName: "Joan", Phone: "555-0101"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Joan" || updated.Email != "jo@example.com" {
		t.Errorf("profile = %+v", updated)
	}

	// the stored hash must survive a profile update
	if _, err := s.Authenticate("jo@example.com", "hunter2"); err != nil {
		t.Errorf("Authenticate after update: %v", err)
	}
}

func TestRotateRefreshToken(t *testing.T) {
	s := NewService(NewInMemoryRepository([]Customer{{ID: 5, Email: "jo@example.com"}}))

	issued, err := s.IssueRefreshToken(5)
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}

	c, fresh, err := s.RotateRefreshToken(issued.Token)
	if err != nil {
		t.Fatalf("RotateRefreshToken: %v", err)
	}
	if c.ID != 5 {
		t.Errorf("customer = %d, want 5", c.ID)
	}
	if fresh.Token == issued.Token {
		t.Error("rotation returned the same token")
	}

	// replaying the old token must fail after rotation
	if _, _, err := s.RotateRefreshToken(issued.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("replay err = %v, want ErrTokenInvalid", err)
	}

	// the fresh token still works
	if _, _, err := s.RotateRefreshToken(fresh.Token); err != nil {
		t.Errorf("fresh rotate err = %v", err)
	}
}

func TestRotateExpiredToken(t *testing.T) {
	repo := NewInMemoryRepository([]Customer{{ID: 5, Email: "jo@example.com"}})
	s := NewService(repo)

	expired := RefreshToken{
		Token:      "stale",
		CustomerID: 5,
		ExpiresAt:  time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
	}
	if err := repo.CreateRefreshToken(expired); err != nil {
		t.Fatalf("CreateRefreshToken: %v", err)
	}

	if _, _, err := s.RotateRefreshToken("stale"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestRotateUnknownToken(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	if _, _, err := s.RotateRefreshToken("no-such-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}
