package models

// Category identifies one government open-data export.
type Category string

const (
	CategoryAptTrade   Category = "aptTrade"
	CategoryAptRent    Category = "aptRent"
	CategoryOffiTrade  Category = "offiTrade"
	CategoryOffiRent   Category = "offiRent"
	CategoryDandiTrade Category = "dandiTrade"
	CategoryDandiRent  Category = "dandiRent"
	CategoryRowTrade   Category = "rowTrade"
	CategoryRowRent    Category = "rowRent"
)

// PropertyType is the building class of a transaction.
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyOfficetel PropertyType = "officetel"
	PropertyHouse     PropertyType = "house"
	PropertyVilla     PropertyType = "villa"
)

// DealType separates sales from leases.
type DealType string

const (
	DealTrade DealType = "trade"
	DealRent  DealType = "rent"
)

// CategoryKind is the (property type, deal type) pair a category resolves to.
type CategoryKind struct {
	PropertyType PropertyType
	DealType     DealType
}

// Categories maps every known export category to its kind.
var Categories = map[Category]CategoryKind{
	CategoryAptTrade:   {PropertyApartment, DealTrade},
	CategoryAptRent:    {PropertyApartment, DealRent},
	CategoryOffiTrade:  {PropertyOfficetel, DealTrade},
	CategoryOffiRent:   {PropertyOfficetel, DealRent},
	CategoryDandiTrade: {PropertyHouse, DealTrade},
	CategoryDandiRent:  {PropertyHouse, DealRent},
	CategoryRowTrade:   {PropertyVilla, DealTrade},
	CategoryRowRent:    {PropertyVilla, DealRent},
}

// KindOf resolves a category, defaulting to apartment/trade for unknown keys.
func KindOf(c Category) CategoryKind {
	if k, ok := Categories[c]; ok {
		return k
	}
	return CategoryKind{PropertyApartment, DealTrade}
}

// TransactionRecord is one normalized real-estate transaction.
// Records are built once by the normalizer and never mutated afterwards.
type TransactionRecord struct {
	ID           string       `json:"id"`
	Category     Category     `json:"category"`
	PropertyType PropertyType `json:"propertyType"`
	DealType     DealType     `json:"dealType"`

	RegionCode   string `json:"regionCode"`
	RegionName   string `json:"regionName"`
	Neighborhood string `json:"neighborhood"`
	BuildingName string `json:"buildingName"`

	AreaSqm *float64 `json:"areaSqm"`
	// Floor is kept as delivered: a number, a numeric string or free text.
	Floor any `json:"floor"`

	DealYear  int    `json:"dealYear"`
	DealMonth int    `json:"dealMonth"`
	DealDay   int    `json:"dealDay"`
	DateStr   string `json:"dateStr"`

	PriceLabel  string   `json:"priceLabel"`
	SortMetric  float64  `json:"sortMetric"`
	TradeAmount *float64 `json:"tradeAmount"`
	Deposit     *float64 `json:"deposit"`
	MonthlyRent *float64 `json:"monthlyRent"`

	Source map[string]any `json:"-"`
}

// TransactionCorpus is the flattened output of one transaction load.
type TransactionCorpus struct {
	LoadID  string
	Records []TransactionRecord
	Sources []SourceStat
}

// SourceStat reports what a single source contributed to a load.
type SourceStat struct {
	Name     string
	Category Category
	Records  int
	Err      error
}
