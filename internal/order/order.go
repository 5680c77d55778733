package order

// Status is the order state machine. Pending is the only non-terminal state:
// it may move to completed or cancelled, and neither of those can move again.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is created once, from a basket, and after that mutates only through
// the Cancel/Complete transitions. Cancellation also sets the soft-delete
// flag; the row is never physically removed so history stays intact.
type Order struct {
	ID         int    `json:"orderId"`
	PublicID   string `json:"publicId"`
	CustomerID int    `json:"customerId"`
	Status     Status `json:"status"`
	TotalCents int64  `json:"totalCents"`
	Items      []Item `json:"items"`
	Deleted    bool   `json:"-"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Item snapshots one basket line at checkout. UnitPriceCents is copied from
// the live product at order-creation time, never referenced again, so
// historical totals survive later price changes.
type Item struct {
	ID             int    `json:"itemId"`
	PublicID       string `json:"publicId"`
	OrderID        int    `json:"orderId"`
	ProductID      int    `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}
