package catalogdto

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	Image        string `json:"image,omitempty"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"product_count"`
}

// CategoryPage bundles a category with its filtered products.
type CategoryPage struct {
	Category Category         `json:"category"`
	Sort     string           `json:"sort"`
	Query    string           `json:"q,omitempty"`
	Products []ProductSummary `json:"products"`
}

// Home is the landing page selection.
type Home struct {
	Categories  []Category       `json:"categories"`
	Featured    []ProductSummary `json:"featured"`
	NewArrivals []ProductSummary `json:"new_arrivals"`
}
