package models

// DealKind is the lease/sale kind inferred from a listing's price type text.
type DealKind string

const (
	DealKindNone    DealKind = ""
	DealKindMonthly DealKind = "MONTHLY"
	DealKindJeonse  DealKind = "JEONSE"
	DealKindTrading DealKind = "TRADING"
	DealKindAll     DealKind = "ALL"
)

// RoomCategory is the coarse room class used by the listing view tabs.
type RoomCategory string

const (
	RoomAll       RoomCategory = "ALL"
	RoomOneRoom   RoomCategory = "ONEROOM"
	RoomApartment RoomCategory = "APT"
	RoomVilla     RoomCategory = "VILLA"
	RoomOfficetel RoomCategory = "OFFICETEL"
	RoomEtc       RoomCategory = "ETC"
)

// ListingRecord holds a listing-site room plus the fields derived from it at load time.
// Deposit and rent amounts are in units of 10,000 KRW.
type ListingRecord struct {
	ID            string
	ItemTitle     string
	RoomTitle     string
	RoomTypeName  string
	PriceTypeName string
	PriceTitle    string
	SigunguName   string
	DongName      string
	RoomDesc      string
	RoomFloorName string
	Floor         any
	Thumbnail     string

	// Direct area candidates, in priority order.
	SupplyArea    any
	ExclusiveArea any
	Area          any
	RoomArea      any

	Location *Coordinate

	DealKind          DealKind
	DepositAmount     *float64
	MonthlyRentAmount *float64
	AreaSqm           *float64
	AreaPyeong        *float64
	Enriched          bool

	Raw map[string]any
}

// Title returns the first non-empty display title.
func (l *ListingRecord) Title() string {
	if t := l.SearchTitle(); t != "" {
		return t
	}
	return "제목 없음"
}

// SearchTitle is the first non-empty raw title, without the display placeholder.
func (l *ListingRecord) SearchTitle() string {
	for _, t := range []string{l.ItemTitle, l.RoomTitle, l.RoomTypeName} {
		if t != "" {
			return t
		}
	}
	return ""
}

// ListingCorpus is the enriched listing set used by the map view.
type ListingCorpus struct {
	LoadID   string
	Listings []*ListingRecord
}
