package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"estate-explorer/models"
)

var typeLabels = map[models.CategoryKind]string{
	{PropertyType: models.PropertyApartment, DealType: models.DealTrade}: "아파트 매매",
	{PropertyType: models.PropertyApartment, DealType: models.DealRent}:  "아파트 전월세",
	{PropertyType: models.PropertyOfficetel, DealType: models.DealTrade}: "오피스텔 매매",
	{PropertyType: models.PropertyOfficetel, DealType: models.DealRent}:  "오피스텔 전월세",
	{PropertyType: models.PropertyHouse, DealType: models.DealTrade}:     "단독/다가구 매매",
	{PropertyType: models.PropertyHouse, DealType: models.DealRent}:      "단독/다가구 전월세",
	{PropertyType: models.PropertyVilla, DealType: models.DealTrade}:     "연립다세대 매매",
	{PropertyType: models.PropertyVilla, DealType: models.DealRent}:      "연립다세대 전월세",
}

var roomCategoryLabels = map[models.RoomCategory]string{
	models.RoomAll:       "전체",
	models.RoomOneRoom:   "원/투룸",
	models.RoomApartment: "아파트",
	models.RoomVilla:     "주택/빌라",
	models.RoomOfficetel: "오피스텔",
	models.RoomEtc:       "기타",
}

// TypeLabel is the table's "type" column, e.g. "아파트 매매".
func TypeLabel(r models.TransactionRecord) string {
	return typeLabels[models.CategoryKind{PropertyType: r.PropertyType, DealType: r.DealType}]
}

// CategoryLabel is the badge shown on a listing card.
func CategoryLabel(l *models.ListingRecord) string {
	if label, ok := roomCategoryLabels[RoomCategoryOf(l)]; ok {
		return label
	}
	return "기타"
}

// FormatFloor renders -2 as "지하 2층", 0 as "지상층" and 4 as "4층".
// Non-numeric floors are shown as delivered.
func FormatFloor(floor any) string {
	s, ok := textOf(floor)
	if !ok {
		return "-"
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return s
	}
	switch {
	case n < 0:
		return fmt.Sprintf("지하 %s층", strconv.FormatFloat(-n, 'f', -1, 64))
	case n == 0:
		return "지상층"
	}
	return strconv.FormatFloat(n, 'f', -1, 64) + "층"
}

// FormatName returns the building name or a type-specific fallback.
func FormatName(r models.TransactionRecord) string {
	if name := strings.TrimSpace(r.BuildingName); name != "" {
		return name
	}
	switch r.PropertyType {
	case models.PropertyHouse:
		return "단독주택"
	case models.PropertyVilla:
		return "연립다세대"
	}
	return "-"
}

// FormatArea renders a square-meter area in the requested unit with one decimal.
func FormatArea(area *float64, unit models.AreaUnit) string {
	if area == nil {
		return "-"
	}
	v := *area
	if unit == models.AreaUnitPyeong {
		v *= models.M2ToPyeong
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// AreaHeader is the table column title for unit.
func AreaHeader(unit models.AreaUnit) string {
	if unit == models.AreaUnitPyeong {
		return "전용면적(평)"
	}
	return "전용면적(㎡)"
}

// FormatTradePrice renders trade amounts in 억/만 units. Rent labels are
// returned unchanged.
func FormatTradePrice(r models.TransactionRecord) string {
	raw := strings.TrimSpace(r.PriceLabel)
	if raw == "" {
		return "-"
	}
	if r.DealType == models.DealRent {
		return raw
	}
	num, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return raw
	}
	return formatManwon(num)
}

// formatManwon renders an amount in 10,000-KRW units, e.g. 125000 as "12억 5,000만".
func formatManwon(num float64) string {
	eok := math.Floor(num / 10000)
	man := math.Mod(num, 10000)
	switch {
	case eok > 0 && man > 0:
		return fmt.Sprintf("%s억 %s만", humanize.Comma(int64(eok)), humanize.Commaf(man))
	case eok > 0:
		return humanize.Comma(int64(eok)) + "억"
	}
	return humanize.Commaf(num) + "만"
}

// ResultCountText is the summary line above the transaction table.
func ResultCountText(info models.PageInfo, displayed int) string {
	if info.Total == 0 {
		return "조건에 맞는 데이터가 없습니다."
	}
	text := fmt.Sprintf("총 %s건 중 %s건 표시 (페이지 %d / %d)",
		humanize.Comma(int64(info.Total)), humanize.Comma(int64(displayed)), info.Page, info.TotalPages)
	if info.ShowTruncationNotice() {
		text += fmt.Sprintf("  ※ 데이터량이 많아 최대 %d페이지까지만 제공됩니다. 필터를 더 좁혀서 조회해 주세요.", info.TotalPages)
	}
	return text
}

// RegionPath renders the region breadcrumb, e.g. "서울특별시 > 서초구 > 전체".
func RegionPath(state models.FilterState) string {
	sido := state.Sido
	if sido == "" {
		sido = "전국"
	}
	sigungu := state.Sigungu
	if sigungu == "" {
		sigungu = "전체"
	}
	dong := "전체"
	if state.DongSelected() {
		dong = state.Dong
	}
	return sido + " > " + sigungu + " > " + dong
}

// Option is one entry of a selector.
type Option struct {
	Value string
	Label string
}

// DistrictOptions lists the Seoul districts present in records, in code order.
func DistrictOptions(records []models.TransactionRecord) []Option {
	used := make(map[string]struct{})
	for _, r := range records {
		if r.RegionCode != "" {
			used[r.RegionCode] = struct{}{}
		}
	}
	codes := make([]string, 0, len(used))
	for code := range used {
		if _, ok := SeoulDistricts[code]; ok {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	out := make([]Option, 0, len(codes))
	for _, code := range codes {
		out = append(out, Option{Value: code, Label: SeoulDistricts[code]})
	}
	return out
}

// NeighborhoodOptions lists the neighborhoods of regionCode ("all" for every
// district) in Korean collation order.
func NeighborhoodOptions(records []models.TransactionRecord, regionCode string) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Neighborhood == "" {
			continue
		}
		if !unrestricted(regionCode) && r.RegionCode != regionCode {
			continue
		}
		seen[r.Neighborhood] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	collate.New(language.Korean).SortStrings(out)
	return out
}

// YearOptions lists the deal years present in records, newest first.
func YearOptions(records []models.TransactionRecord) []int {
	seen := make(map[int]struct{})
	for _, r := range records {
		if r.DealYear != 0 {
			seen[r.DealYear] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
