package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusCreated  PaymentStatus = "created"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment is a gateway order tied to a borrow. The core only cares that a
// paid order transitions the borrow from approved to active; everything
// else is provider metadata.
type Payment struct {
	ID          int32         `json:"id"`
	BorrowID    int32         `json:"borrow_id"`
	OrderID     string        `json:"order_id"`
	PaymentID   string        `json:"payment_id,omitempty"`
	Provider    string        `json:"provider"` // "mock" or "gateway"
	AmountCents int32         `json:"amount_cents"`
	Currency    string        `json:"currency"`
	Status      PaymentStatus `json:"status"`
	PayerID     int32         `json:"payer_id"`
	PayeeID     int32         `json:"payee_id"`
	CreatedOn   time.Time     `json:"created_on"`
	UpdatedOn   time.Time     `json:"updated_on"`
}
