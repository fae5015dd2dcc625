package models

// PageInfo describes the current page of a paginated result.
type PageInfo struct {
	Total          int
	PageSize       int
	Page           int
	RealTotalPages int
	TotalPages     int // capped
	Limited        bool
	Start          int
	End            int
}

// ShowTruncationNotice is true when the page cap hides data and the user
// is looking at the last reachable page.
func (p PageInfo) ShowTruncationNotice() bool {
	return p.Limited && p.Page == p.TotalPages
}

// InsightReport summarizes a transaction set.
type InsightReport struct {
	TotalRecords    int
	TradeRecords    int
	RentRecords     int
	AverageTrade    float64
	MinTrade        float64
	MaxTrade        float64
	MostExpensive   *TransactionRecord
	Largest         []*TransactionRecord
	RecordsByRegion map[string]int
}
