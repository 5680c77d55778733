package basket

import "github.com/storewise/storefront-backend/internal/product"

// Basket is the checkout aggregate. CustomerID stays nil for anonymous
// baskets until the basket is claimed after login or converted to an order.
type Basket struct {
	ID         int    `json:"basketId"`
	CustomerID *int   `json:"customerId,omitempty"`
	Items      []Item `json:"items"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Item is one basket line. Product is a denormalized read snapshot loaded
// with the basket; the order workflow always re-reads the live product row
// before touching stock.
type Item struct {
	ID        int             `json:"itemId"`
	BasketID  *int            `json:"basketId,omitempty"`
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   product.Product `json:"product"`
}
