package models

// DefaultSido is the province selected when no region tree says otherwise.
const DefaultSido = "서울특별시"

// AllOption is the "no filtering on this axis" value shared by every selector.
const AllOption = "ALL"

// SortKey orders the transaction table.
type SortKey string

const (
	SortPriceDesc SortKey = "priceDesc"
	SortDateDesc  SortKey = "dateDesc"
	SortAreaDesc  SortKey = "areaDesc"
)

// AreaUnit is the display unit for areas.
type AreaUnit string

const (
	AreaUnitM2     AreaUnit = "M2"
	AreaUnitPyeong AreaUnit = "PYEONG"
)

// PyeongDivisor converts square meters to pyeong for filtering and listing display.
const PyeongDivisor = 3.3

// M2ToPyeong is the finer factor used when rendering transaction areas.
const M2ToPyeong = 1 / 3.3058

// Range is an optional [Min, Max] band; nil bounds are open.
type Range struct {
	ID    string
	Label string
	Min   *float64
	Max   *float64
}

// Contains applies the band to v. A nil v is never excluded.
func (r Range) Contains(v *float64) bool {
	if v == nil {
		return true
	}
	if r.Min != nil && *v < *r.Min {
		return false
	}
	if r.Max != nil && *v > *r.Max {
		return false
	}
	return true
}

// Scaled returns the band with both bounds divided by div.
func (r Range) Scaled(div float64) Range {
	out := Range{ID: r.ID, Label: r.Label}
	if r.Min != nil {
		v := *r.Min / div
		out.Min = &v
	}
	if r.Max != nil {
		v := *r.Max / div
		out.Max = &v
	}
	return out
}

func bound(v float64) *float64 { return &v }

// DepositRanges are in units of 10,000 KRW.
var DepositRanges = []Range{
	{ID: "D1", Label: "5,000 이하", Max: bound(5000)},
	{ID: "D2", Label: "5,000 ~ 1만", Min: bound(5000), Max: bound(10000)},
	{ID: "D3", Label: "1만 ~ 2만", Min: bound(10000), Max: bound(20000)},
	{ID: "D4", Label: "2만 이상", Min: bound(20000)},
}

// RentRanges are in units of 10,000 KRW per month.
var RentRanges = []Range{
	{ID: "R1", Label: "30 이하", Max: bound(30)},
	{ID: "R2", Label: "30 ~ 50", Min: bound(30), Max: bound(50)},
	{ID: "R3", Label: "50 ~ 80", Min: bound(50), Max: bound(80)},
	{ID: "R4", Label: "80 이상", Min: bound(80)},
}

// AreaRanges are authored in square meters.
var AreaRanges = []Range{
	{ID: "A1", Max: bound(33)},
	{ID: "A2", Min: bound(33), Max: bound(66)},
	{ID: "A3", Min: bound(66), Max: bound(99)},
	{ID: "A4", Min: bound(99), Max: bound(132)},
	{ID: "A5", Min: bound(132), Max: bound(165)},
	{ID: "A6", Min: bound(165), Max: bound(198)},
	{ID: "A7", Min: bound(198), Max: bound(231)},
	{ID: "A8", Min: bound(231)},
}

// FindRange looks id up in ranges. "ALL", "" and unknown ids report false.
func FindRange(ranges []Range, id string) (Range, bool) {
	if id == "" || id == AllOption {
		return Range{}, false
	}
	for _, r := range ranges {
		if r.ID == id {
			return r, true
		}
	}
	return Range{}, false
}

// FilterState is the complete set of user selections for one view.
// It is a value: the presentation layer replaces it wholesale on apply/reset.
type FilterState struct {
	Sido    string
	Sigungu string
	Dong    string

	RoomCategory   RoomCategory
	DealKind       DealKind
	DepositRangeID string
	RentRangeID    string
	AreaRangeID    string
	AreaUnit       AreaUnit

	// Transaction table selectors.
	PropertyType string
	DealType     string
	RegionCode   string
	Year         int
	MinPrice     *float64
	MaxPrice     *float64
	MinArea      *float64
	MaxArea      *float64

	Keyword       string
	FavoritesOnly bool

	SortKey  SortKey
	Page     int
	PageSize int
}

// DefaultFilterState is the "show everything" state.
func DefaultFilterState(sido string, pageSize int) FilterState {
	if sido == "" {
		sido = DefaultSido
	}
	return FilterState{
		Sido:           sido,
		Dong:           AllOption,
		RoomCategory:   RoomAll,
		DealKind:       DealKindAll,
		DepositRangeID: AllOption,
		RentRangeID:    AllOption,
		AreaRangeID:    AllOption,
		AreaUnit:       AreaUnitM2,
		PropertyType:   "all",
		DealType:       "all",
		RegionCode:     "all",
		SortKey:        SortPriceDesc,
		Page:           1,
		PageSize:       pageSize,
	}
}

// Reset restores the defaults while keeping the page size.
func (f FilterState) Reset(sido string) FilterState {
	return DefaultFilterState(sido, f.PageSize)
}

// SelectSido changes province and clears district and neighborhood.
func (f FilterState) SelectSido(sido string) FilterState {
	f.Sido = sido
	f.Sigungu = ""
	f.Dong = AllOption
	f.Page = 1
	return f
}

// SelectSigungu changes district and clears neighborhood.
func (f FilterState) SelectSigungu(gu string) FilterState {
	f.Sigungu = gu
	f.Dong = AllOption
	f.Page = 1
	return f
}

// SelectDong changes neighborhood; "" means all.
func (f FilterState) SelectDong(dong string) FilterState {
	if dong == "" {
		dong = AllOption
	}
	f.Dong = dong
	f.Page = 1
	return f
}

// DongSelected reports whether a specific neighborhood is active.
func (f FilterState) DongSelected() bool {
	return f.Dong != "" && f.Dong != AllOption
}
