package product

// Product maps to the `products` table. Price is stored in integer cents so
// order totals never accumulate float drift. Version is the optimistic
// concurrency token: every successful update bumps it, and writers must send
// back the version they read or the update is rejected.
type Product struct {
	ID            int     `json:"productId"`
	Name          string  `json:"productName"`
	Description   string  `json:"productDesc,omitempty"`
	PriceCents    int64   `json:"priceCents"`
	StockQuantity int     `json:"stockQuantity"`
	CategoryID    *int    `json:"categoryId,omitempty"`
	ImageKey      *string `json:"imageKey,omitempty"`
	Deleted       bool    `json:"-"`
	Version       int     `json:"version"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}
