package basket

import (
	"errors"
	"testing"

	"github.com/storewise/storefront-backend/internal/product"
)

func newService() (*Service, *product.InMemoryRepository) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Food Bowl", PriceCents: 1200, StockQuantity: 10},
		{ID: 2, Name: "Water Fountain", PriceCents: 5600, StockQuantity: 3},
	})
	return NewService(NewInMemoryRepository(products)), products
}

func TestAddItemMergesLines(t *testing.T) {
	s, _ := newService()
	b, err := s.Create(nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.AddItem(b.ID, 1, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	got, err := s.AddItem(b.ID, 1, 3)
	if err != nil {
		t.Fatalf("AddItem again: %v", err)
	}

	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1 merged line", len(got.Items))
	}
	if got.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", got.Items[0].Quantity)
	}
	if got.Items[0].Product.Name != "Food Bowl" {
		t.Errorf("snapshot = %+v", got.Items[0].Product)
	}
}

func TestAddItemValidation(t *testing.T) {
	s, _ := newService()
	b, _ := s.Create(nil)

	if _, err := s.AddItem(b.ID, 1, 0); !errors.Is(err, errInvalidQuantity) {
		t.Errorf("zero qty err = %v", err)
	}
	if _, err := s.AddItem(b.ID, 0, 1); !errors.Is(err, errInvalidQuantity) {
		t.Errorf("zero product err = %v", err)
	}
	if _, err := s.AddItem(99, 1, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown basket err = %v", err)
	}
}

func TestUpdateItemToZeroRemovesLine(t *testing.T) {
	s, _ := newService()
	b, _ := s.Create(nil)
	b, err := s.AddItem(b.ID, 1, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	got, err := s.UpdateItem(b.ID, b.Items[0].ID, 0)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if len(got.Items) != 0 {
		t.Errorf("items = %d, want 0", len(got.Items))
	}
}

func TestDecrementItem(t *testing.T) {
	s, _ := newService()
	b, _ := s.Create(nil)
	b, err := s.AddItem(b.ID, 2, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	itemID := b.Items[0].ID

	got, err := s.DecrementItem(b.ID, itemID)
	if err != nil {
		t.Fatalf("DecrementItem: %v", err)
	}
	if got.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", got.Items[0].Quantity)
	}

	// hitting zero removes the line
	got, err = s.DecrementItem(b.ID, itemID)
	if err != nil {
		t.Fatalf("DecrementItem to zero: %v", err)
	}
	if len(got.Items) != 0 {
		t.Errorf("items = %d, want 0", len(got.Items))
	}

	if _, err := s.DecrementItem(b.ID, itemID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("missing line err = %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	s, _ := newService()
	b, _ := s.Create(nil)
	b, _ = s.AddItem(b.ID, 1, 1)
	b, err := s.AddItem(b.ID, 2, 1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	got, err := s.RemoveItem(b.ID, b.Items[0].ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(got.Items) != 1 {
		t.Errorf("items = %d, want 1", len(got.Items))
	}
}

func TestClaimBasket(t *testing.T) {
	s, _ := newService()
	b, _ := s.Create(nil)

	got, err := s.Claim(b.ID, 12)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if got.CustomerID == nil || *got.CustomerID != 12 {
		t.Errorf("customer = %v, want 12", got.CustomerID)
	}
}

func TestDeleteBasket(t *testing.T) {
	s, _ := newService()
	b, _ := s.Create(nil)

	if err := s.Delete(b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted err = %v", err)
	}
}
