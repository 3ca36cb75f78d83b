package domain

import "time"

// ScoreHistoryEntry is one append-only entry in a user's score log.
type ScoreHistoryEntry struct {
	Score  float64   `json:"score"`
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`
}

// TrustScore is the one-to-one reputation record backing User.TrustScore.
// It is created lazily on first recalculation and updated only by the
// trust score calculator.
type TrustScore struct {
	ID               int32               `json:"id"`
	UserID           int32               `json:"user_id"`
	BaseScore        float64             `json:"base_score"`
	CompletedBorrows int32               `json:"completed_borrows"`
	CompletedLends   int32               `json:"completed_lends"`
	OnTimeReturns    int32               `json:"on_time_returns"`
	LateReturns      int32               `json:"late_returns"`
	AverageRating    float64             `json:"average_rating"`
	ScoreHistory     []ScoreHistoryEntry `json:"score_history,omitempty"`
	LastUpdated      time.Time           `json:"last_updated"`
}
