package domain

import "time"

type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "available"
	ItemStatusBorrowed    ItemStatus = "borrowed"
	ItemStatusUnavailable ItemStatus = "unavailable"
)

type ItemCondition string

const (
	ItemConditionLikeNew ItemCondition = "Like New"
	ItemConditionGood    ItemCondition = "Good"
	ItemConditionFair    ItemCondition = "Fair"
)

// ItemCategories is the closed set of listing categories.
var ItemCategories = []string{
	"Tools", "Electronics", "Outdoor", "Kitchen", "Sports", "Furniture", "Books", "Other",
}

// Location is a GeoJSON-style point. Coordinates are [longitude, latitude].
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Address   string  `json:"address,omitempty"`
}

type Item struct {
	ID            int32         `json:"id"`
	OwnerID       int32         `json:"owner_id"`
	Owner         *User         `json:"owner,omitempty"` // Populated when fetching item details
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	Condition     ItemCondition `json:"condition"`
	Location      Location      `json:"location"`
	MaxBorrowDays int32         `json:"max_borrow_days"`
	Status        ItemStatus    `json:"status"`
	// BorrowRequests is a non-owning back-reference to Borrow IDs, for lookup only.
	BorrowRequests []int32   `json:"borrow_requests,omitempty"`
	Rating         float64   `json:"rating"`
	ReviewCount    int32     `json:"review_count"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// ValidCategory reports whether c is one of the closed listing categories.
func ValidCategory(c string) bool {
	for _, v := range ItemCategories {
		if v == c {
			return true
		}
	}
	return false
}
