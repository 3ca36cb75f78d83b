package domain

import "time"

type ReviewType string

const (
	// ReviewTypeLender is a review of the lender written by the borrower.
	ReviewTypeLender ReviewType = "lender-review"
	// ReviewTypeBorrower is a review of the borrower written by the lender.
	ReviewTypeBorrower ReviewType = "borrower-review"
)

type Review struct {
	ID         int32      `json:"id"`
	BorrowID   int32      `json:"borrow_id"`
	ItemID     int32      `json:"item_id"`
	ReviewerID int32      `json:"reviewer_id"`
	RevieweeID int32      `json:"reviewee_id"`
	Rating     int32      `json:"rating"` // 1-5
	Comment    string     `json:"comment,omitempty"`
	ReviewType ReviewType `json:"review_type"`
	Reviewer   *User      `json:"reviewer,omitempty"` // Populated on listings
	Item       *Item      `json:"item,omitempty"`     // Populated on listings
	CreatedOn  time.Time  `json:"created_on"`
}
