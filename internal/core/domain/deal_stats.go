package domain

import (
	"github.com/shopspring/decimal"
)

// DealStats aggregates the current state of all deals.
type DealStats struct {
	Total        int                `json:"total"`
	ByStatus     map[DealStatus]int `json:"byStatus"` // Always holds every DealStatuses key
	WonAmount    decimal.Decimal    `json:"wonAmount"`
	AverageCheck decimal.Decimal    `json:"averageCheck"` // Mean amount of won deals
}

// ComputeDealStats aggregates deals read in one snapshot.
func ComputeDealStats(deals []Deal) DealStats {
	stats := DealStats{
		Total:        len(deals),
		ByStatus:     make(map[DealStatus]int, len(DealStatuses)),
		WonAmount:    decimal.Zero,
		AverageCheck: decimal.Zero,
	}
	for _, status := range DealStatuses {
		stats.ByStatus[status] = 0
	}

	won := 0
	for _, d := range deals {
		stats.ByStatus[d.Status]++
		if d.Status == DealStatusWon {
			won++
			stats.WonAmount = stats.WonAmount.Add(d.Amount)
		}
	}
	if won > 0 {
		stats.AverageCheck = stats.WonAmount.Div(decimal.NewFromInt(int64(won)))
	}
	return stats
}
