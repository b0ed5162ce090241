package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusFailed   PaymentStatus = "failed"
)

type Payment struct {
	ID            int64         `db:"id"`
	OrderID       int64         `db:"order_id"`
	UserID        int64         `db:"user_id"`
	Amount        int64         `db:"amount"`
	Status        PaymentStatus `db:"status"`
	TransactionID string        `db:"transaction_id"`
	CreatedAt     time.Time     `db:"created_at"`
}
