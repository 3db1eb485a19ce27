package cart

import cartdto "github.com/angelmondragon/izishop-backend/api/controllers/cart/dto"

func addQuantity(payload cartdto.AddItemRequest) int {
	if payload.Quantity == nil {
		return 1
	}
	return *payload.Quantity
}

func setQuantity(payload cartdto.SetQuantityRequest) int {
	if payload.Quantity == nil {
		return 0
	}
	return *payload.Quantity
}
