package services

import (
	"strings"

	"estate-explorer/models"
)

// FavoriteSet answers favorites membership for the favorites-only filter.
type FavoriteSet interface {
	IsFavorite(id string) bool
}

// ComputeVisibleListings returns the listings that pass every active filter,
// in corpus order. The input is never modified.
func ComputeVisibleListings(listings []*models.ListingRecord, state models.FilterState, tree models.RegionTree, favorites FavoriteSet) []*models.ListingRecord {
	if len(listings) == 0 {
		return []*models.ListingRecord{}
	}

	var dongSet map[string]struct{}
	if !state.DongSelected() && state.Sigungu != "" {
		if dongs := tree.Neighborhoods(state.Sido, state.Sigungu); len(dongs) > 0 {
			dongSet = make(map[string]struct{}, len(dongs))
			for _, d := range dongs {
				dongSet[d] = struct{}{}
			}
		}
	}

	deposit, hasDeposit := models.FindRange(models.DepositRanges, state.DepositRangeID)
	rent, hasRent := models.FindRange(models.RentRanges, state.RentRangeID)
	area, hasArea := models.FindRange(models.AreaRanges, state.AreaRangeID)
	if hasArea && state.AreaUnit == models.AreaUnitPyeong {
		area = area.Scaled(models.PyeongDivisor)
	}
	keyword := FoldKeyword(state.Keyword)

	out := make([]*models.ListingRecord, 0, len(listings))
	for _, l := range listings {
		if state.DongSelected() {
			if l.DongName != state.Dong {
				continue
			}
		} else if dongSet != nil {
			if _, ok := dongSet[l.DongName]; !ok {
				continue
			}
		}

		if state.RoomCategory != "" && state.RoomCategory != models.RoomAll && RoomCategoryOf(l) != state.RoomCategory {
			continue
		}

		// listings without a resolvable deal kind are exempt
		if state.DealKind != "" && state.DealKind != models.DealKindAll && l.DealKind != "" && l.DealKind != state.DealKind {
			continue
		}

		if hasDeposit && !deposit.Contains(l.DepositAmount) {
			continue
		}
		if hasRent && l.DealKind == models.DealKindMonthly && !rent.Contains(l.MonthlyRentAmount) {
			continue
		}
		if hasArea && l.AreaSqm != nil {
			// AreaPyeong is rounded for display; compare the unrounded value
			v := *l.AreaSqm
			if state.AreaUnit == models.AreaUnitPyeong {
				v /= models.PyeongDivisor
			}
			if !area.Contains(&v) {
				continue
			}
		}

		if keyword != "" && !matchesKeyword(keyword, l.SearchTitle(), l.DongName, l.SigunguName) {
			continue
		}
		if state.FavoritesOnly && (favorites == nil || !favorites.IsFavorite(l.ID)) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// ComputeVisibleTransactions applies the transaction table filters, in corpus order.
func ComputeVisibleTransactions(records []models.TransactionRecord, state models.FilterState, favorites FavoriteSet) []models.TransactionRecord {
	if len(records) == 0 {
		return []models.TransactionRecord{}
	}

	keyword := FoldKeyword(state.Keyword)
	priceBand := models.Range{Min: state.MinPrice, Max: state.MaxPrice}
	areaBand := models.Range{Min: state.MinArea, Max: state.MaxArea}
	if state.AreaUnit == models.AreaUnitPyeong {
		areaBand = areaBand.Scaled(models.PyeongDivisor)
	}

	out := make([]models.TransactionRecord, 0, len(records))
	for _, r := range records {
		if !unrestricted(state.PropertyType) && string(r.PropertyType) != state.PropertyType {
			continue
		}
		if !unrestricted(state.DealType) && r.DealType != "" && string(r.DealType) != state.DealType {
			continue
		}
		if !unrestricted(state.RegionCode) && r.RegionCode != state.RegionCode {
			continue
		}
		if state.DongSelected() && r.Neighborhood != state.Dong {
			continue
		}
		if state.Year != 0 && r.DealYear != state.Year {
			continue
		}

		price := r.SortMetric
		if !priceBand.Contains(&price) {
			continue
		}
		if r.AreaSqm != nil {
			v := *r.AreaSqm
			if state.AreaUnit == models.AreaUnitPyeong {
				v /= models.PyeongDivisor
			}
			if !areaBand.Contains(&v) {
				continue
			}
		}

		if keyword != "" && !matchesKeyword(keyword, r.BuildingName, r.Neighborhood, r.RegionName) {
			continue
		}
		if state.FavoritesOnly && (favorites == nil || !favorites.IsFavorite(r.ID)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// unrestricted reports whether a table selector is left at "all".
func unrestricted(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

func matchesKeyword(folded string, fields ...string) bool {
	return strings.Contains(FoldKeyword(strings.Join(fields, " ")), folded)
}
