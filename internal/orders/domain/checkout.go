package domain

// OrderItemRequest is the caller's input: one product/quantity pair.
// It lives only for the duration of a single placeOrder call.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int32 `json:"quantity" validate:"required,gt=0"`
}

// StockCheckResult is the inventory oracle's answer for one item. Results
// arrive in any order and are correlated back to the request by ProductID.
type StockCheckResult struct {
	ProductID         int64  `json:"product_id"`
	SKU               string `json:"sku"`
	Available         bool   `json:"available"`
	AvailableStock    int64  `json:"available_stock"`
	RequestedQuantity int32  `json:"requested_quantity"`
}

// ProductPrice is the product oracle's answer: the authoritative unit price.
type ProductPrice struct {
	ProductID int64 `json:"product_id"`
	Price     int64 `json:"price"`
}

// PricedItem joins a requested item with its unit price lookup.
type PricedItem struct {
	ProductID int64
	Quantity  int32
	UnitPrice int64
	LineTotal int64
}
