package models

// DailySummary is the finance rollup for one calendar day.
// Money fields are rounded to two decimals.
type DailySummary struct {
	Date              string  `json:"date"`
	SalesCount        int     `json:"salesCount"`
	TotalSold         float64 `json:"totalSold"`
	CommissionPercent float64 `json:"commissionPercent"`
	Commission        float64 `json:"commission"`
	Prizes            float64 `json:"prizes"`
	PrizesPaid        float64 `json:"prizesPaid"`
	PrizesPending     float64 `json:"prizesPending"`
	Net               float64 `json:"net"`
	ResultsCount      int     `json:"resultsCount"`
	WinningTickets    int     `json:"winningTickets"`
}

// BulkDeleteResult reports how many documents a batched purge removed
type BulkDeleteResult struct {
	Deleted int `json:"deleted"`
	Batches int `json:"batches"`
}
