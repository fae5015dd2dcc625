package services

import (
	"reflect"
	"testing"

	"estate-explorer/models"
)

func dated(id, date string, metric float64, area *float64) models.TransactionRecord {
	return models.TransactionRecord{ID: id, DateStr: date, SortMetric: metric, AreaSqm: area}
}

func TestSortTransactions(t *testing.T) {
	corpus := []models.TransactionRecord{
		dated("a", "2024-01-10", 5000, f64(59)),
		dated("b", "2024-03-01", 5000, nil),
		dated("c", "2024-03-01", 9000, f64(84)),
		dated("d", "", 12000, f64(59)),
		dated("e", "2023-12-31", 5000, f64(84)),
	}

	tests := []struct {
		key  models.SortKey
		want []string
	}{
		{models.SortPriceDesc, []string{"d", "c", "b", "a", "e"}},
		{models.SortDateDesc, []string{"c", "b", "a", "e", "d"}},
		{models.SortAreaDesc, []string{"c", "e", "d", "a", "b"}},
		{models.SortKey("bogus"), []string{"d", "c", "b", "a", "e"}},
	}

	for _, tt := range tests {
		got := txnIDs(SortTransactions(corpus, tt.key))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SortTransactions(%s) = %v; want %v", tt.key, got, tt.want)
		}
	}

	if corpus[0].ID != "a" || corpus[4].ID != "e" {
		t.Error("SortTransactions must not reorder its input")
	}
}

func TestSortByPriceIsStable(t *testing.T) {
	corpus := []models.TransactionRecord{
		dated("first", "2024-01-01", 1000, nil),
		dated("second", "2024-01-01", 1000, nil),
		dated("third", "2024-01-01", 1000, nil),
	}
	got := txnIDs(SortTransactions(corpus, models.SortPriceDesc))
	if want := []string{"first", "second", "third"}; !reflect.DeepEqual(got, want) {
		t.Errorf("equal keys reordered: got %v; want %v", got, want)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		total, page, size, cap int
		wantReal, wantShown    int
		wantPage               int
		wantLimited, wantNote  bool
		wantStart, wantEnd     int
	}{
		{250, 1, 100, 100, 3, 3, 1, false, false, 0, 100},
		{250, 3, 100, 100, 3, 3, 3, false, false, 200, 250},
		{20000, 1, 100, 100, 200, 100, 1, true, false, 0, 100},
		{20000, 100, 100, 100, 200, 100, 100, true, true, 9900, 10000},
		{20000, 150, 100, 100, 200, 100, 100, true, true, 9900, 10000},
		{0, 5, 100, 100, 1, 1, 1, false, false, 0, 0},
		{10, 0, 15, 50, 1, 1, 1, false, false, 0, 10},
		{1000, 67, 15, 50, 67, 50, 50, true, true, 735, 750},
	}

	for _, tt := range tests {
		p := Paginate(tt.total, tt.page, tt.size, tt.cap)
		if p.RealTotalPages != tt.wantReal || p.TotalPages != tt.wantShown || p.Page != tt.wantPage {
			t.Errorf("Paginate(%d, %d, %d, %d) pages = %d/%d page %d; want %d/%d page %d",
				tt.total, tt.page, tt.size, tt.cap, p.RealTotalPages, p.TotalPages, p.Page, tt.wantReal, tt.wantShown, tt.wantPage)
		}
		if p.Limited != tt.wantLimited || p.ShowTruncationNotice() != tt.wantNote {
			t.Errorf("Paginate(%d, %d, %d, %d) limited = %v notice = %v; want %v, %v",
				tt.total, tt.page, tt.size, tt.cap, p.Limited, p.ShowTruncationNotice(), tt.wantLimited, tt.wantNote)
		}
		if p.Start != tt.wantStart || p.End != tt.wantEnd {
			t.Errorf("Paginate(%d, %d, %d, %d) range = [%d, %d); want [%d, %d)",
				tt.total, tt.page, tt.size, tt.cap, p.Start, p.End, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	if got := PageSlice(items, Paginate(len(items), 3, 3, 10)); !reflect.DeepEqual(got, []int{7}) {
		t.Errorf("last page = %v; want [7]", got)
	}
	if got := PageSlice([]int{}, Paginate(0, 1, 3, 10)); len(got) != 0 {
		t.Errorf("empty page = %v", got)
	}
}

func TestPageBlock(t *testing.T) {
	tests := []struct {
		page, total         int
		wantFirst, wantLast int
	}{
		{1, 100, 1, 10},
		{10, 100, 1, 10},
		{11, 100, 11, 20},
		{23, 25, 21, 25},
		{1, 3, 1, 3},
	}
	for _, tt := range tests {
		first, last := PageBlock(tt.page, tt.total)
		if first != tt.wantFirst || last != tt.wantLast {
			t.Errorf("PageBlock(%d, %d) = %d, %d; want %d, %d", tt.page, tt.total, first, last, tt.wantFirst, tt.wantLast)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		page, total         int
		wantFirst, wantLast int
	}{
		{1, 50, 1, 5},
		{2, 50, 1, 5},
		{10, 50, 8, 12},
		{50, 50, 46, 50},
		{49, 50, 46, 50},
		{2, 3, 1, 3},
	}
	for _, tt := range tests {
		first, last := PageWindow(tt.page, tt.total)
		if first != tt.wantFirst || last != tt.wantLast {
			t.Errorf("PageWindow(%d, %d) = %d, %d; want %d, %d", tt.page, tt.total, first, last, tt.wantFirst, tt.wantLast)
		}
	}
}

func TestPageOfIndex(t *testing.T) {
	tests := []struct{ idx, size, want int }{
		{0, 15, 1},
		{14, 15, 1},
		{15, 15, 2},
		{-1, 15, 0},
	}
	for _, tt := range tests {
		if got := PageOfIndex(tt.idx, tt.size); got != tt.want {
			t.Errorf("PageOfIndex(%d, %d) = %d; want %d", tt.idx, tt.size, got, tt.want)
		}
	}
}
