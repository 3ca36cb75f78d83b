package domain

import (
	"regexp"
	"time"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDeleted   UserStatus = "deleted"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	upiPattern   = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,}@[a-zA-Z]{2,}$`)
)

type User struct {
	ID    int32  `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	// UPI is the user's payment handle; owners must have one on file
	// before listing items so they can receive payments.
	UPI      string   `json:"upi,omitempty"`
	Location Location `json:"location"`
	// TrustScore is a derived value in [0,100]. It is recomputed by the
	// trust score calculator whenever one of the user's borrows reaches
	// the returned state, never hand-edited.
	TrustScore   float64    `json:"trust_score"`
	TotalBorrows int32      `json:"total_borrows"`
	TotalLends   int32      `json:"total_lends"`
	IsVerified   bool       `json:"is_verified"`
	Status       UserStatus `json:"status"`
	CreatedOn    time.Time  `json:"created_on"`
	UpdatedOn    time.Time  `json:"updated_on"`
}

// ValidPhone reports whether phone is a 10-digit number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidUPI reports whether upi looks like a payment handle (name@bank).
func ValidUPI(upi string) bool {
	return upiPattern.MatchString(upi)
}
