package main

import (
	"fmt"
	"strings"

	"estate-explorer/favorites"
	"estate-explorer/models"
	"estate-explorer/services"
)

func star(favs *favorites.Store, id string) string {
	if favs.IsFavorite(id) {
		return "★"
	}
	return "☆"
}

func printTable(page []models.TransactionRecord, info models.PageInfo, state models.FilterState, favs *favorites.Store) {
	sep := strings.Repeat("═", 96)
	fmt.Printf("\n\033[1;36m%s\033[0m\n", sep)
	fmt.Printf("\033[1;36m  실거래가  %s\033[0m\n", services.RegionPath(state))
	fmt.Printf("\033[1;36m%s\033[0m\n", sep)
	fmt.Printf("  %s\n\n", services.ResultCountText(info, len(page)))
	if len(page) == 0 {
		return
	}

	fmt.Printf("  %-4s %-6s %-16s %-10s %-10s %-8s %-20s %-12s %-8s %s\n",
		"", "순번", "유형", "거래일", "지역", "법정동", "단지/건물명", services.AreaHeader(state.AreaUnit), "층", "가격")
	for i, r := range page {
		date := r.DateStr
		if date == "" {
			date = "-"
		}
		fmt.Printf("  %-4s %-6d %-16s %-10s %-10s %-8s %-20s %-12s %-8s %s\n",
			star(favs, r.ID),
			info.Start+i+1,
			services.TypeLabel(r),
			date,
			r.RegionName,
			r.Neighborhood,
			truncate(services.FormatName(r), 20),
			services.FormatArea(r.AreaSqm, state.AreaUnit),
			services.FormatFloor(r.Floor),
			services.FormatTradePrice(r),
		)
	}

	first, last := services.PageBlock(info.Page, info.TotalPages)
	fmt.Printf("\n  %s\n", pager(first, last, info.Page, first > 1, last < info.TotalPages))
}

func printTableOptions(records []models.TransactionRecord, state models.FilterState) {
	fmt.Println("\n  지역:")
	for _, o := range services.DistrictOptions(records) {
		fmt.Printf("    %s  %s\n", o.Value, o.Label)
	}
	fmt.Printf("  법정동: %s\n", strings.Join(services.NeighborhoodOptions(records, state.RegionCode), ", "))

	years := services.YearOptions(records)
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = fmt.Sprint(y)
	}
	fmt.Printf("  연도: %s\n", strings.Join(labels, ", "))
}

func printListings(page []*models.ListingRecord, info models.PageInfo, state models.FilterState, favs *favorites.Store) {
	sep := strings.Repeat("─", 72)
	fmt.Printf("\n\033[1;36m  매물  %s\033[0m\n", services.RegionPath(state))
	fmt.Printf("  %s\n", sep)
	if info.Total == 0 {
		fmt.Println("  조건에 맞는 매물이 없습니다.")
		return
	}

	for _, l := range page {
		area := "-"
		if state.AreaUnit == models.AreaUnitPyeong && l.AreaPyeong != nil {
			area = fmt.Sprintf("%.1f평", *l.AreaPyeong)
		} else if l.AreaSqm != nil {
			area = fmt.Sprintf("%.1f㎡", *l.AreaSqm)
		}
		fmt.Printf("  %s [%s] %s\n", star(favs, l.ID), services.CategoryLabel(l), truncate(l.Title(), 40))
		fmt.Printf("      %s %s · %s · %s %s\n", l.PriceTypeName, l.PriceTitle, area, l.SigunguName, l.DongName)
	}

	first, last := services.PageWindow(info.Page, info.TotalPages)
	fmt.Printf("\n  %s\n", pager(first, last, info.Page, info.Page > 1, info.Page < info.TotalPages))
	if info.ShowTruncationNotice() {
		fmt.Printf("  ※ 최대 %d페이지까지만 제공됩니다.\n", info.TotalPages)
	}
}

func printClusters(visible []*models.ListingRecord, tree models.RegionTree, state models.FilterState, zoom int) {
	layer := services.ClusterLayer(zoom, state.DongSelected())
	fmt.Printf("\n  지도 (zoom %d, %s)\n", zoom, layer)

	var groups []models.RegionGroup[*models.ListingRecord]
	switch layer {
	case services.LayerDistrictChips:
		groups = services.GroupByDistrict(visible, tree, state.Sido)
	case services.LayerNeighborhoodChips:
		groups = services.NeighborhoodGroupsInDistrict(services.GroupByNeighborhood(visible), tree, state.Sido, state.Sigungu)
	default:
		// markers that share a cell are stacked under one pin
		groups = services.GroupBy(visible, services.ByGeohash(8), services.ListingLocation)
	}

	for _, g := range groups {
		if !g.Renderable() {
			continue
		}
		label := g.Key
		if layer == services.LayerMarkers {
			label = services.CategoryLabel(g.Records[0])
		}
		fmt.Printf("    ● %-10s %3d  (%.5f, %.5f)\n", label, len(g.Records), g.Centroid.Lat, g.Centroid.Lng)
	}
}

func pager(first, last, current int, prev, next bool) string {
	var b strings.Builder
	if prev {
		b.WriteString("‹ ")
	}
	for p := first; p <= last; p++ {
		if p == current {
			fmt.Fprintf(&b, "[%d] ", p)
		} else {
			fmt.Fprintf(&b, "%d ", p)
		}
	}
	if next {
		b.WriteString("›")
	}
	return strings.TrimSpace(b.String())
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
