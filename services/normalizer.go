package services

import (
	"fmt"

	"estate-explorer/models"
	"estate-explorer/utils"
)

// Normalizer turns raw government export records into TransactionRecords.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// NormalizeAll normalizes items in order.
func (n *Normalizer) NormalizeAll(items []map[string]any, category models.Category) []models.TransactionRecord {
	out := make([]models.TransactionRecord, 0, len(items))
	for _, item := range items {
		out = append(out, n.Normalize(item, category))
	}
	n.logger.Debug("[normalizer] %s: normalized %d records", category, len(out))
	return out
}

// Normalize builds one canonical record. It never fails: absent fields get
// their empty value and unknown categories resolve to apartment/trade.
func (n *Normalizer) Normalize(raw map[string]any, category models.Category) models.TransactionRecord {
	kind := models.KindOf(category)
	code, regionName := ExtractRegion(raw)

	neighborhood := normaliseText(NeighborhoodField.Text(raw))
	name := normaliseText(BuildingNameField.Text(raw))

	var area *float64
	if v, ok := AreaField.First(raw); ok {
		area = strictFloat(v)
	}

	floor, ok := FloorField.First(raw)
	if !ok {
		floor = ""
	}

	year := toInt(firstOrNil(DealYearField, raw))
	month := toInt(firstOrNil(DealMonthField, raw))
	day := toInt(firstOrNil(DealDayField, raw))
	dateStr := BuildDateStr(year, month, day)

	rec := models.TransactionRecord{
		ID:           fmt.Sprintf("%s-%s-%s-%s-%s", category, code, dateStr, name, neighborhood),
		Category:     category,
		PropertyType: kind.PropertyType,
		DealType:     kind.DealType,
		RegionCode:   code,
		RegionName:   regionName,
		Neighborhood: neighborhood,
		BuildingName: name,
		AreaSqm:      area,
		Floor:        floor,
		DealYear:     year,
		DealMonth:    month,
		DealDay:      day,
		DateStr:      dateStr,
		Source:       raw,
	}

	if kind.DealType == models.DealTrade {
		amountRaw, _ := TradeAmountField.First(raw)
		amount := ParsePrice(amountRaw)
		rec.TradeAmount = &amount
		rec.PriceLabel = TradeAmountField.Text(raw)
		rec.SortMetric = amount
		return rec
	}

	depositRaw, _ := DepositField.First(raw)
	monthlyRaw, _ := MonthlyRentField.First(raw)
	deposit := ParsePrice(depositRaw)
	monthly := ParsePrice(monthlyRaw)
	rec.Deposit = &deposit
	rec.MonthlyRent = &monthly

	depositLabel := DepositField.Text(raw)
	if depositLabel == "" {
		depositLabel = "-"
	}
	if monthly != 0 {
		rec.PriceLabel = depositLabel + " / " + MonthlyRentField.Text(raw)
	} else {
		rec.PriceLabel = depositLabel
	}

	// monthly rent weighted 100:1 against deposit; ranking heuristic only
	rec.SortMetric = deposit + monthly*100
	return rec
}

func firstOrNil(f Field, raw map[string]any) any {
	v, _ := f.First(raw)
	return v
}
