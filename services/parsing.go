package services

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonNumericRegexp matches everything a numeric token may not contain
	nonNumericRegexp = regexp.MustCompile(`[^0-9.\-]`)

	keywordFolder = cases.Fold()
)

const eokUnit = "억"

// ParsePrice converts a comma-formatted amount such as "115,000" to a number.
// Missing, malformed and non-finite inputs all yield 0.
func ParsePrice(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	}

	s := strings.TrimSpace(strings.ReplaceAll(fmt.Sprint(v), ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

// NumericValue strips every character that is not a digit, '.' or '-' and
// parses the rest. It returns nil instead of NaN.
func NumericValue(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return finiteOrNil(t)
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return finiteOrNil(f)
		}
	}

	cleaned := nonNumericRegexp.ReplaceAllString(fmt.Sprint(v), "")
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return finiteOrNil(f)
}

// ParseDepositToken converts "2억", "2억 5000" or "8000" to 10,000-KRW units.
// A token that sums to zero is reported as nil.
func ParseDepositToken(token string) *float64 {
	s := strings.TrimSpace(token)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, eokUnit) {
		return NumericValue(s)
	}

	parts := strings.Split(s, eokUnit)
	var sum float64
	if eok := NumericValue(parts[0]); eok != nil {
		sum += *eok * 10000
	}
	if rest := NumericValue(parts[1]); rest != nil {
		sum += *rest
	}
	if sum == 0 {
		return nil
	}
	return &sum
}

// BuildDateStr formats year/month/day as YYYY-MM-DD, or "" when any part is missing.
func BuildDateStr(year, month, day int) string {
	if year == 0 || month == 0 || day == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// FoldKeyword prepares text for case-insensitive substring matching.
func FoldKeyword(s string) string {
	return keywordFolder.String(norm.NFC.String(strings.TrimSpace(s)))
}

// normaliseText applies NFC composition, strips leading/trailing whitespace
// and collapses internal whitespace.
func normaliseText(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

// textOf renders a scalar JSON value as trimmed text; false when empty.
func textOf(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
	return s, s != ""
}

// strictFloat parses a plain number without stripping; nil on failure.
func strictFloat(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return finiteOrNil(t)
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	}
	s, ok := textOf(v)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return finiteOrNil(f)
}

// toInt reads a date component; anything unparseable is 0.
func toInt(v any) int {
	f := strictFloat(v)
	if f == nil {
		return 0
	}
	return int(*f)
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func finiteOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
