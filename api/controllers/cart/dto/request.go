package cartdto

// AddItemRequest adds quantity units of a catalog product.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1,max=999"`
}

// SetQuantityRequest replaces a line's quantity; zero removes the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=999"`
}
