package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// Order is the root aggregate. It exclusively owns its items; both are
// written in one transaction and never mutated by this service afterwards.
type Order struct {
	ID     int64       `db:"id" json:"id"`
	UserID int64       `db:"user_id" json:"user_id"`
	Status OrderStatus `db:"status" json:"status"`
	Total  int64       `db:"total" json:"total"`
	Items  []OrderItem `db:"-" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// OrderItem is immutable once persisted. Price is the line total,
// unit price times quantity, in minor currency units.
type OrderItem struct {
	ID        int64 `db:"id" json:"id"`
	OrderID   int64 `db:"order_id" json:"order_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int32 `db:"quantity" json:"quantity"`
	Price     int64 `db:"price" json:"price"`
}

// CalculateTotal sums the line totals of the already-priced items.
func (o *Order) CalculateTotal() {
	var total int64
	for _, item := range o.Items {
		total += item.Price
	}
	o.Total = total
}
