package services

import (
	"reflect"
	"strings"
	"testing"

	"estate-explorer/models"
)

func TestFormatFloor(t *testing.T) {
	tests := []struct {
		floor any
		want  string
	}{
		{"-2", "지하 2층"},
		{float64(-1), "지하 1층"},
		{"0", "지상층"},
		{"4", "4층"},
		{float64(12), "12층"},
		{"", "-"},
		{nil, "-"},
		{"B1", "B1"},
	}
	for _, tt := range tests {
		if got := FormatFloor(tt.floor); got != tt.want {
			t.Errorf("FormatFloor(%#v) = %q; want %q", tt.floor, got, tt.want)
		}
	}
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		rec  models.TransactionRecord
		want string
	}{
		{models.TransactionRecord{BuildingName: "래미안", PropertyType: models.PropertyApartment}, "래미안"},
		{models.TransactionRecord{PropertyType: models.PropertyHouse}, "단독주택"},
		{models.TransactionRecord{PropertyType: models.PropertyVilla}, "연립다세대"},
		{models.TransactionRecord{PropertyType: models.PropertyOfficetel}, "-"},
	}
	for _, tt := range tests {
		if got := FormatName(tt.rec); got != tt.want {
			t.Errorf("FormatName(%s) = %q; want %q", tt.rec.PropertyType, got, tt.want)
		}
	}
}

func TestFormatArea(t *testing.T) {
	tests := []struct {
		area *float64
		unit models.AreaUnit
		want string
	}{
		{f64(84.97), models.AreaUnitM2, "85.0"},
		{f64(59.8), models.AreaUnitM2, "59.8"},
		{f64(84.97), models.AreaUnitPyeong, "25.7"},
		{nil, models.AreaUnitPyeong, "-"},
	}
	for _, tt := range tests {
		if got := FormatArea(tt.area, tt.unit); got != tt.want {
			t.Errorf("FormatArea(%s, %s) = %q; want %q", fmtPtr(tt.area), tt.unit, got, tt.want)
		}
	}
}

func TestFormatTradePrice(t *testing.T) {
	tests := []struct {
		label    string
		dealType models.DealType
		want     string
	}{
		{"12,000", models.DealTrade, "1억 2,000만"},
		{"250,000", models.DealTrade, "25억"},
		{"8,500", models.DealTrade, "8,500만"},
		{"3,000 / 50", models.DealRent, "3,000 / 50"},
		{"", models.DealTrade, "-"},
		{"협의", models.DealTrade, "협의"},
	}
	for _, tt := range tests {
		got := FormatTradePrice(models.TransactionRecord{PriceLabel: tt.label, DealType: tt.dealType})
		if got != tt.want {
			t.Errorf("FormatTradePrice(%q) = %q; want %q", tt.label, got, tt.want)
		}
	}
}

func TestTypeAndCategoryLabels(t *testing.T) {
	if got := TypeLabel(models.TransactionRecord{PropertyType: models.PropertyHouse, DealType: models.DealRent}); got != "단독/다가구 전월세" {
		t.Errorf("TypeLabel = %q", got)
	}
	if got := CategoryLabel(&models.ListingRecord{RoomTypeName: "투룸"}); got != "원/투룸" {
		t.Errorf("CategoryLabel = %q", got)
	}
}

func TestResultCountText(t *testing.T) {
	if got := ResultCountText(Paginate(0, 1, 100, 100), 0); got != "조건에 맞는 데이터가 없습니다." {
		t.Errorf("empty = %q", got)
	}

	got := ResultCountText(Paginate(1234, 2, 100, 100), 100)
	if want := "총 1,234건 중 100건 표시 (페이지 2 / 13)"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}

	last := ResultCountText(Paginate(20000, 100, 100, 100), 100)
	if !strings.Contains(last, "최대 100페이지") {
		t.Errorf("truncated last page should carry the notice: %q", last)
	}
	notLast := ResultCountText(Paginate(20000, 99, 100, 100), 100)
	if strings.Contains(notLast, "※") {
		t.Errorf("notice shown before the last page: %q", notLast)
	}
}

func TestRegionPath(t *testing.T) {
	state := models.DefaultFilterState("서울특별시", ListingPageSize)
	if got := RegionPath(state); got != "서울특별시 > 전체 > 전체" {
		t.Errorf("RegionPath(default) = %q", got)
	}
	state = state.SelectSigungu("서초구").SelectDong("잠원동")
	if got := RegionPath(state); got != "서울특별시 > 서초구 > 잠원동" {
		t.Errorf("RegionPath = %q", got)
	}
	state = state.SelectSido("부산광역시")
	if got := RegionPath(state); got != "부산광역시 > 전체 > 전체" {
		t.Errorf("RegionPath after province change = %q", got)
	}
}

func TestSelectorOptions(t *testing.T) {
	records := []models.TransactionRecord{
		{RegionCode: "11680", Neighborhood: "역삼동", DealYear: 2023},
		{RegionCode: "11650", Neighborhood: "반포동", DealYear: 2024},
		{RegionCode: "11680", Neighborhood: "개포동", DealYear: 2024},
		{RegionCode: "41135", Neighborhood: "정자동"},
	}

	districts := DistrictOptions(records)
	want := []Option{{Value: "11650", Label: "서초구"}, {Value: "11680", Label: "강남구"}}
	if !reflect.DeepEqual(districts, want) {
		t.Errorf("DistrictOptions = %v; want %v", districts, want)
	}

	if got := NeighborhoodOptions(records, "11680"); !reflect.DeepEqual(got, []string{"개포동", "역삼동"}) {
		t.Errorf("NeighborhoodOptions(11680) = %v", got)
	}
	if got := NeighborhoodOptions(records, "all"); len(got) != 4 || got[0] != "개포동" {
		t.Errorf("NeighborhoodOptions(all) = %v", got)
	}

	if got := YearOptions(records); !reflect.DeepEqual(got, []int{2024, 2023}) {
		t.Errorf("YearOptions = %v; want [2024 2023]", got)
	}
}
