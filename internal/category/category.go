package category

// Category is returned by the category API. Ord controls display order,
// higher first.
type Category struct {
	ID   int    `json:"categoryId"`
	Name string `json:"categoryName"`
	Ord  int    `json:"ord"`
}
