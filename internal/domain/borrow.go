package domain

import "time"

type BorrowStatus string

const (
	BorrowStatusPending   BorrowStatus = "pending"
	BorrowStatusApproved  BorrowStatus = "approved"
	BorrowStatusRejected  BorrowStatus = "rejected"
	BorrowStatusActive    BorrowStatus = "active"
	BorrowStatusReturned  BorrowStatus = "returned"
	BorrowStatusOverdue   BorrowStatus = "overdue"
	BorrowStatusCancelled BorrowStatus = "cancelled"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// LenderApproval captures the item owner's accept/reject decision.
type LenderApproval struct {
	Status     ApprovalStatus `json:"status"`
	ApprovedAt *time.Time     `json:"approved_at,omitempty"`
	Reason     string         `json:"reason,omitempty"`
}

// Penalty is a late-return charge computed from days overdue.
type Penalty struct {
	AmountCents int32  `json:"amount_cents"`
	Reason      string `json:"reason,omitempty"`
}

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
)

// PaymentTerms is the borrower/lender agreement embedded on the borrow.
// Gateway order state lives in the separate Payment record.
type PaymentTerms struct {
	Method      PaymentMethod `json:"method"`
	AmountCents int32         `json:"amount_cents"`
	UPI         string        `json:"upi,omitempty"`
}

type Borrow struct {
	ID         int32 `json:"id"`
	ItemID     int32 `json:"item_id"`
	BorrowerID int32 `json:"borrower_id"`
	// LenderID is a snapshot of item.owner at request time. It records the
	// historical party and must never be rewritten if the item changes hands.
	LenderID               int32          `json:"lender_id"`
	Status                 BorrowStatus   `json:"status"`
	RequestDate            time.Time      `json:"request_date"`
	BorrowDate             time.Time      `json:"borrow_date"`
	ExpectedReturnDate     time.Time      `json:"expected_return_date"`
	ActualReturnDate       *time.Time     `json:"actual_return_date,omitempty"`
	LenderApproval         LenderApproval `json:"lender_approval"`
	Penalty                Penalty        `json:"penalty"`
	Payment                PaymentTerms   `json:"payment"`
	RequestedDurationDays  int32          `json:"requested_duration_days,omitempty"`
	Notes                  string         `json:"notes,omitempty"`
	ReturnComment          string         `json:"return_comment,omitempty"`
	Item                   *Item          `json:"item,omitempty"`     // Populated on listings
	Borrower               *User          `json:"borrower,omitempty"` // Populated on listings
	Lender                 *User          `json:"lender,omitempty"`   // Populated on listings
	CreatedOn              time.Time      `json:"created_on"`
	UpdatedOn              time.Time      `json:"updated_on"`
}

// Terminal reports whether no further lifecycle transition may leave s.
func (s BorrowStatus) Terminal() bool {
	return s == BorrowStatusRejected || s == BorrowStatusReturned || s == BorrowStatusCancelled
}
