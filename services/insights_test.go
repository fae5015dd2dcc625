package services

import (
	"testing"

	"estate-explorer/models"
)

func sampleTransactions() []models.TransactionRecord {
	n := NewNormalizer(newTestLogger())
	trades := n.NormalizeAll([]map[string]any{
		{"aptNm": "래미안", "dealAmount": "200,000", "excluUseAr": "84.9", "sggCd": "11680"},
		{"aptNm": "자이", "dealAmount": "50,000", "excluUseAr": "59.9", "sggCd": "11680"},
		{"aptNm": "엘스", "dealAmount": "120,000", "excluUseAr": "119.9", "sggCd": "11710"},
		{"aptNm": "무명", "dealAmount": "", "sggCd": "11710"},
	}, models.CategoryAptTrade)
	rents := n.NormalizeAll([]map[string]any{
		{"offiNm": "오피스텔", "deposit": "1,000", "monthlyRent": "70", "excluUseAr": "24.5", "sggCd": "11440"},
	}, models.CategoryOffiRent)
	return append(trades, rents...)
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleTransactions())
	if r.TotalRecords != 5 {
		t.Errorf("TotalRecords: got %d, want 5", r.TotalRecords)
	}
	if r.TradeRecords != 4 {
		t.Errorf("TradeRecords: got %d, want 4", r.TradeRecords)
	}
	if r.RentRecords != 1 {
		t.Errorf("RentRecords: got %d, want 1", r.RentRecords)
	}
}

func TestInsightTradeAmounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleTransactions())
	wantAvg := 123333.33
	if r.AverageTrade != wantAvg {
		t.Errorf("AverageTrade: got %.2f, want %.2f", r.AverageTrade, wantAvg)
	}
	if r.MinTrade != 50000 {
		t.Errorf("MinTrade: got %.2f, want 50000", r.MinTrade)
	}
	if r.MaxTrade != 200000 {
		t.Errorf("MaxTrade: got %.2f, want 200000", r.MaxTrade)
	}
}

func TestInsightMostExpensive(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleTransactions())
	if r.MostExpensive == nil {
		t.Fatal("MostExpensive should not be nil")
	}
	if r.MostExpensive.BuildingName != "래미안" {
		t.Errorf("MostExpensive: got %q, want %q", r.MostExpensive.BuildingName, "래미안")
	}
}

func TestInsightLargest(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleTransactions())
	if len(r.Largest) != 4 {
		t.Errorf("Largest len: got %d, want 4", len(r.Largest))
	}
	if r.Largest[0].BuildingName != "엘스" {
		t.Errorf("Largest[0]: got %q, want %q", r.Largest[0].BuildingName, "엘스")
	}
}

func TestInsightRegionGrouping(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleTransactions())
	if r.RecordsByRegion["강남구"] != 2 {
		t.Errorf("강남구 count: got %d, want 2", r.RecordsByRegion["강남구"])
	}
	if r.RecordsByRegion["송파구"] != 2 {
		t.Errorf("송파구 count: got %d, want 2", r.RecordsByRegion["송파구"])
	}
	if r.RecordsByRegion["마포구"] != 1 {
		t.Errorf("마포구 count: got %d, want 1", r.RecordsByRegion["마포구"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(nil)
	if r.TotalRecords != 0 {
		t.Errorf("expected 0 total, got %d", r.TotalRecords)
	}
	if r.MostExpensive != nil {
		t.Error("MostExpensive should be nil for empty input")
	}
	if r.RecordsByRegion == nil {
		t.Error("RecordsByRegion should be initialised")
	}
}
