package customer

type Customer struct {
	ID        int    `json:"customerId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// RefreshToken is an opaque, single-use token. Rotation revokes the old
// token and issues a new one; a revoked or expired token is rejected.
type RefreshToken struct {
	Token      string
	CustomerID int
	ExpiresAt  string
	RevokedAt  *string
}
