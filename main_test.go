package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"estate-explorer/models"
)

func TestPager(t *testing.T) {
	tests := []struct {
		first, last, current int
		prev, next           bool
		want                 string
	}{
		{1, 5, 1, false, true, "[1] 2 3 4 5 ›"},
		{11, 13, 12, true, false, "‹ 11 [12] 13"},
		{1, 1, 1, false, false, "[1]"},
	}
	for _, tt := range tests {
		if got := pager(tt.first, tt.last, tt.current, tt.prev, tt.next); got != tt.want {
			t.Errorf("pager(%d, %d, %d) = %q; want %q", tt.first, tt.last, tt.current, got, tt.want)
		}
	}
}

func TestFilterStateFromFlags(t *testing.T) {
	minPrice := 50000.0
	o := &options{
		sigungu: "강남구", dong: "역삼동",
		propertyType: "apartment", dealType: "all", regionCode: "11680",
		minPrice: &minPrice,
		room:     string(models.RoomAll), dealKind: string(models.DealKindAll),
		deposit: models.AllOption, rent: models.AllOption, areaRange: models.AllOption,
		sortKey: string(models.SortDateDesc), unit: string(models.AreaUnitPyeong), page: 3,
	}

	s := o.filterState("서울특별시", 100)
	if s.Sido != "서울특별시" || s.Sigungu != "강남구" || !s.DongSelected() {
		t.Errorf("region = %s/%s/%s", s.Sido, s.Sigungu, s.Dong)
	}
	if s.Page != 3 || s.PageSize != 100 || s.SortKey != models.SortDateDesc {
		t.Errorf("paging = page %d size %d sort %s", s.Page, s.PageSize, s.SortKey)
	}
	if s.MinPrice == nil || *s.MinPrice != 50000 || s.MaxPrice != nil {
		t.Errorf("price band = %v..%v", s.MinPrice, s.MaxPrice)
	}

	o.sido = "부산광역시"
	if got := o.filterState("서울특별시", 100).Sido; got != "부산광역시" {
		t.Errorf("-sido should override the default, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("래미안대치팰리스1단지", 8); got != "래미안대치..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("자이", 8); got != "자이" {
		t.Errorf("truncate = %q", got)
	}
}

func TestPrintListingsEmptyPage(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	printListings(nil, models.PageInfo{}, models.DefaultFilterState("서울특별시", 15), nil)
	os.Stdout = stdout
	w.Close()

	out, _ := io.ReadAll(r)
	if !strings.Contains(string(out), "조건에 맞는 매물이 없습니다.") {
		t.Errorf("empty page output = %q", out)
	}
}
