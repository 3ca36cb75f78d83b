package domain

import "time"

// Notification types emitted by the borrow lifecycle and payment flow.
const (
	NotificationBorrowRequest    = "borrow_request"
	NotificationBorrowApproved   = "borrow_approved"
	NotificationBorrowRejected   = "borrow_rejected"
	NotificationBorrowCancelled  = "borrow_cancelled"
	NotificationBorrowOverdue    = "borrow_overdue"
	NotificationPaymentReceived  = "payment_received"
	NotificationPaymentConfirmed = "payment_confirmed"
)

type Notification struct {
	ID        int32             `json:"id"`
	UserID    int32             `json:"user_id"`
	Type      string            `json:"type"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedOn time.Time         `json:"created_on"`
}
