package services

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  any
		want float64
	}{
		{"12,000", 12000},
		{"115,000", 115000},
		{" 3,000 ", 3000},
		{"0", 0},
		{"", 0},
		{nil, 0},
		{"abc", 0},
		{"12억", 0},
		{float64(5000), 5000},
		{json.Number("8000"), 8000},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}

	for _, tt := range tests {
		got := ParsePrice(tt.raw)
		if got != tt.want {
			t.Errorf("ParsePrice(%#v) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParsePriceDigitsAndCommas(t *testing.T) {
	for _, raw := range []string{"1", "1,000", "10,000,000", "999,999", "1,2,3"} {
		want := 0.0
		for _, r := range raw {
			if r >= '0' && r <= '9' {
				want = want*10 + float64(r-'0')
			}
		}
		if got := ParsePrice(raw); got != want {
			t.Errorf("ParsePrice(%q) = %v; want %v", raw, got, want)
		}
	}
}

func TestNumericValue(t *testing.T) {
	tests := []struct {
		raw  any
		want *float64
	}{
		{"23.5", f64(23.5)},
		{"약 33m²", f64(33)},
		{"-2", f64(-2)},
		{"1,200", f64(1200)},
		{"", nil},
		{"없음", nil},
		{nil, nil},
		{"1.2.3", nil},
		{float64(42), f64(42)},
		{math.NaN(), nil},
	}

	for _, tt := range tests {
		got := NumericValue(tt.raw)
		if !samePtr(got, tt.want) {
			t.Errorf("NumericValue(%#v) = %s; want %s", tt.raw, fmtPtr(got), fmtPtr(tt.want))
		}
	}
}

func TestParseDepositToken(t *testing.T) {
	tests := []struct {
		raw  string
		want *float64
	}{
		{"2억", f64(20000)},
		{"2억 5000", f64(25000)},
		{"2억5,000", f64(25000)},
		{"8000", f64(8000)},
		{" 500 ", f64(500)},
		{"", nil},
		{"억", nil},
		{"0억", nil},
		{"협의", nil},
	}

	for _, tt := range tests {
		got := ParseDepositToken(tt.raw)
		if !samePtr(got, tt.want) {
			t.Errorf("ParseDepositToken(%q) = %s; want %s", tt.raw, fmtPtr(got), fmtPtr(tt.want))
		}
	}
}

func TestBuildDateStr(t *testing.T) {
	tests := []struct {
		y, m, d int
		want    string
	}{
		{2024, 3, 5, "2024-03-05"},
		{2023, 12, 31, "2023-12-31"},
		{0, 3, 5, ""},
		{2024, 0, 5, ""},
		{2024, 3, 0, ""},
		{0, 0, 0, ""},
	}

	for _, tt := range tests {
		got := BuildDateStr(tt.y, tt.m, tt.d)
		if got != tt.want {
			t.Errorf("BuildDateStr(%d, %d, %d) = %q; want %q", tt.y, tt.m, tt.d, got, tt.want)
		}
	}
}

func TestFoldKeyword(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  역삼 ", "역삼"},
		{"Raemian", "raemian"},
		{"XI 아파트", "xi 아파트"},
	}

	for _, tt := range tests {
		if got := FoldKeyword(tt.raw); got != tt.want {
			t.Errorf("FoldKeyword(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormaliseText(t *testing.T) {
	if got := normaliseText("  래미안\t 퍼스티지  "); got != "래미안 퍼스티지" {
		t.Errorf("normaliseText = %q; want %q", got, "래미안 퍼스티지")
	}
	// decomposed jamo compose to the precomposed syllable
	if got := normaliseText("\u1100\u1161"); got != "가" {
		t.Errorf("normaliseText(jamo) = %q; want %q", got, "가")
	}
}

func f64(v float64) *float64 { return &v }

func samePtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) < 1e-9
}

func fmtPtr(v *float64) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprint(*v)
}
