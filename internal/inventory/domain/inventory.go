package domain

import "time"

// Inventory is one stock record per product.
type Inventory struct {
	ID             int64     `db:"id" json:"id"`
	ProductID      int64     `db:"product_id" json:"product_id"`
	SKU            string    `db:"sku" json:"sku"`
	AvailableStock int64     `db:"available_stock" json:"available_stock"`
	ReservedStock  int64     `db:"reserved_stock" json:"reserved_stock"`
	MinimumStock   int64     `db:"minimum_stock" json:"minimum_stock"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// StockCheckResult answers one availability probe. An unknown product is
// reported as unavailable with an empty SKU and zero stock rather than an
// error.
type StockCheckResult struct {
	ProductID         int64  `json:"product_id"`
	SKU               string `json:"sku"`
	Available         bool   `json:"available"`
	AvailableStock    int64  `json:"available_stock"`
	RequestedQuantity int32  `json:"requested_quantity"`
}
