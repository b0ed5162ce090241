package domain

import "time"

// Reward is a loyalty-points accrual credited for a completed order.
type Reward struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	OrderID   int64     `json:"order_id"`
	Points    int64     `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// PointsForTotal converts an order total in minor currency units into
// reward points: one point per whole currency unit spent.
func PointsForTotal(total int64) int64 {
	return total / 100
}
