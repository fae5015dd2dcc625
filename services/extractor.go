package services

import (
	"strings"
)

// Accessor reads one candidate value out of a raw provider record.
type Accessor func(raw map[string]any) (any, bool)

// Key is the common Accessor: a top-level key whose value is present and non-empty.
func Key(name string) Accessor {
	return func(raw map[string]any) (any, bool) {
		v, ok := raw[name]
		if !ok || isMissingValue(v) {
			return nil, false
		}
		return v, true
	}
}

// Field is an ordered list of accessors for one logical field.
type Field []Accessor

// First returns the first populated candidate in priority order.
func (f Field) First(raw map[string]any) (any, bool) {
	if raw == nil {
		return nil, false
	}
	for _, get := range f {
		if v, ok := get(raw); ok {
			return v, true
		}
	}
	return nil, false
}

// Text returns the first populated candidate as text, or "".
func (f Field) Text(raw map[string]any) string {
	v, ok := f.First(raw)
	if !ok {
		return ""
	}
	s, _ := textOf(v)
	return s
}

// Transaction record fields across the government export schemas.
var (
	RegionCodeField   = Field{Key("__LAWD_CD"), Key("lawdCd"), Key("LAWD_CD"), Key("sggCd")}
	NeighborhoodField = Field{Key("umdNm"), Key("법정동"), Key("법정동명")}
	BuildingNameField = Field{Key("aptNm"), Key("offiNm"), Key("bldgNm"), Key("단지명"), Key("건물명")}
	AreaField         = Field{
		Key("excluUseAr"), Key("exclUseAr"), Key("exclArea"), Key("flrArea"),
		Key("연면적"), Key("전용면적"), Key("전용면적(㎡)"),
	}
	FloorField       = Field{Key("floor"), Key("flrNo"), Key("층")}
	DealYearField    = Field{Key("dealYear")}
	DealMonthField   = Field{Key("dealMonth")}
	DealDayField     = Field{Key("dealDay")}
	TradeAmountField = Field{Key("dealAmount"), Key("거래금액"), Key("거래금액(만원)")}
	DepositField     = Field{Key("deposit"), Key("보증금액"), Key("보증금"), Key("보증금(만원)")}
	MonthlyRentField = Field{Key("monthlyRent"), Key("rentFee"), Key("월세금액"), Key("월세")}
)

// SeoulDistricts maps 5-digit administrative codes to Seoul district names.
var SeoulDistricts = map[string]string{
	"11110": "종로구",
	"11140": "중구",
	"11170": "용산구",
	"11200": "성동구",
	"11215": "광진구",
	"11230": "동대문구",
	"11260": "중랑구",
	"11290": "성북구",
	"11305": "강북구",
	"11320": "도봉구",
	"11350": "노원구",
	"11380": "은평구",
	"11410": "서대문구",
	"11440": "마포구",
	"11470": "양천구",
	"11500": "강서구",
	"11530": "구로구",
	"11545": "금천구",
	"11560": "영등포구",
	"11590": "동작구",
	"11620": "관악구",
	"11650": "서초구",
	"11680": "강남구",
	"11710": "송파구",
	"11740": "강동구",
}

const regionCodeLen = 5

// ExtractRegion returns the zero-padded district code and its name. The name
// falls back to the last space-separated token of sggNm when the code is unknown.
func ExtractRegion(raw map[string]any) (code, name string) {
	code = padRegionCode(RegionCodeField.Text(raw))

	var fromCompound string
	if s, ok := raw["sggNm"].(string); ok {
		parts := strings.Split(s, " ")
		fromCompound = parts[len(parts)-1]
	}

	if n, ok := SeoulDistricts[code]; ok {
		return code, n
	}
	return code, fromCompound
}

// padRegionCode left-pads with zeros to five characters; longer legal-dong
// codes keep their district prefix.
func padRegionCode(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) >= regionCodeLen {
		return string(r[:regionCodeLen])
	}
	return strings.Repeat("0", regionCodeLen-len(r)) + s
}

func isMissingValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
