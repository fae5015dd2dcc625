package services

import (
	"sort"

	"estate-explorer/models"
)

// Page sizes and caps of the two views.
const (
	TablePageSize = 100
	TablePageCap  = 100

	ListingPageSize = 15
	ListingPageCap  = 50

	tablePagesPerBlock = 10
	listingWindowSize  = 5
)

// SortTransactions returns a sorted copy of records; the input is untouched.
// Unknown keys sort by price.
func SortTransactions(records []models.TransactionRecord, key models.SortKey) []models.TransactionRecord {
	out := make([]models.TransactionRecord, len(records))
	copy(out, records)

	var less func(a, b *models.TransactionRecord) bool
	switch key {
	case models.SortDateDesc:
		less = func(a, b *models.TransactionRecord) bool {
			if a.DateStr != b.DateStr {
				return a.DateStr > b.DateStr
			}
			return a.SortMetric > b.SortMetric
		}
	case models.SortAreaDesc:
		less = func(a, b *models.TransactionRecord) bool {
			areaA, areaB := areaOrNegative(a.AreaSqm), areaOrNegative(b.AreaSqm)
			if areaA != areaB {
				return areaA > areaB
			}
			return a.SortMetric > b.SortMetric
		}
	default:
		less = func(a, b *models.TransactionRecord) bool {
			if a.SortMetric != b.SortMetric {
				return a.SortMetric > b.SortMetric
			}
			return a.DateStr > b.DateStr
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}

func areaOrNegative(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}

// Paginate computes page bounds for total items. The requested page is
// clamped into [1, displayed pages], where displayed pages never exceed pageCap.
func Paginate(total, page, pageSize, pageCap int) models.PageInfo {
	if pageSize < 1 {
		pageSize = 1
	}
	if total < 0 {
		total = 0
	}

	realPages := (total + pageSize - 1) / pageSize
	if realPages < 1 {
		realPages = 1
	}
	displayed := realPages
	if pageCap > 0 && displayed > pageCap {
		displayed = pageCap
	}

	if page > displayed {
		page = displayed
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return models.PageInfo{
		Total:          total,
		PageSize:       pageSize,
		Page:           page,
		RealTotalPages: realPages,
		TotalPages:     displayed,
		Limited:        realPages > displayed,
		Start:          start,
		End:            end,
	}
}

// PageSlice returns the items of the page described by info.
func PageSlice[T any](items []T, info models.PageInfo) []T {
	if info.Start >= len(items) {
		return []T{}
	}
	end := info.End
	if end > len(items) {
		end = len(items)
	}
	return items[info.Start:end]
}

// PageBlock returns the first and last page numbers of the ten-page block
// holding page, as shown by the transaction table pager.
func PageBlock(page, totalPages int) (first, last int) {
	if page < 1 {
		page = 1
	}
	first = (page-1)/tablePagesPerBlock*tablePagesPerBlock + 1
	last = first + tablePagesPerBlock - 1
	if last > totalPages {
		last = totalPages
	}
	return first, last
}

// PageWindow returns the five-page sliding window centred on page, as
// shown by the listing pager.
func PageWindow(page, totalPages int) (first, last int) {
	if totalPages < 1 {
		totalPages = 1
	}
	first = page - listingWindowSize/2
	if first < 1 {
		first = 1
	}
	last = first + listingWindowSize - 1
	if last > totalPages {
		last = totalPages
		first = last - listingWindowSize + 1
		if first < 1 {
			first = 1
		}
	}
	return first, last
}

// PageOfIndex returns the 1-based page holding the item at idx, or 0 when idx < 0.
func PageOfIndex(idx, pageSize int) int {
	if idx < 0 || pageSize < 1 {
		return 0
	}
	return idx/pageSize + 1
}
