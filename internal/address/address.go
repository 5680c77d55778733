package address

type Address struct {
	ID         int    `json:"addressId"`
	CustomerID int    `json:"customerId"`
	Name       string `json:"addressName"`
	Detail     string `json:"addressDetail"`
	Phone      string `json:"phone"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}
