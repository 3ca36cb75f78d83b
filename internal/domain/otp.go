package domain

import "time"

// Otp is the audit record of an issued one-time code. The code itself is
// stored as a bcrypt hash; live verification goes through the OTP service's
// keyed store, not this table.
type Otp struct {
	ID        int32     `json:"id"`
	Phone     string    `json:"phone"`
	CodeHash  string    `json:"-"`
	UserID    *int32    `json:"user_id,omitempty"`
	Used      bool      `json:"used"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedOn time.Time `json:"created_on"`
}
