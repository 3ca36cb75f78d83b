package utils

import (
	"fmt"
	"math"
	"time"
)

// PenaltyBreakdown details a late-return charge.
type PenaltyBreakdown struct {
	DaysLate    int32
	PerDayCents int32
	TotalCents  int32
	Reason      string
}

// LateDays counts whole or partial days past the expected return date.
// A return even one hour late counts as one full late day; on-time or
// early returns count zero.
func LateDays(expected, actual time.Time) int32 {
	if !actual.After(expected) {
		return 0
	}
	return int32(math.Ceil(actual.Sub(expected).Hours() / 24))
}

// CalculatePenalty charges a flat per-day rate for every late day.
// Returns a zero breakdown for on-time returns.
func CalculatePenalty(expected, actual time.Time, perDayCents int32) PenaltyBreakdown {
	daysLate := LateDays(expected, actual)
	if daysLate == 0 {
		return PenaltyBreakdown{PerDayCents: perDayCents}
	}
	return PenaltyBreakdown{
		DaysLate:    daysLate,
		PerDayCents: perDayCents,
		TotalCents:  daysLate * perDayCents,
		Reason:      fmt.Sprintf("Late by %d days", daysLate),
	}
}
