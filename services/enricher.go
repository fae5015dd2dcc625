package services

import (
	"regexp"
	"strings"

	"estate-explorer/models"
)

var (
	// descAreaRegexp finds "23.5㎡" style areas inside free-text room descriptions
	descAreaRegexp = regexp.MustCompile(`(?i)([\d,.]+)\s*(?:m²|㎡|m2)`)

	villaTypeRegexp   = regexp.MustCompile(`주택|빌라|다세대|연립`)
	oneRoomTypeRegexp = regexp.MustCompile(`원룸|투룸|쓰리룸|3룸|4룸|룸`)
)

// ListingFromRaw maps a listing-site room object onto a ListingRecord.
// Derived fields are left empty until Enrich runs.
func ListingFromRaw(raw map[string]any) *models.ListingRecord {
	str := func(key string) string {
		s, _ := textOf(raw[key])
		return s
	}
	l := &models.ListingRecord{
		ID:            str("id"),
		ItemTitle:     str("itemTitle"),
		RoomTitle:     str("roomTitle"),
		RoomTypeName:  str("roomTypeName"),
		PriceTypeName: str("priceTypeName"),
		PriceTitle:    str("priceTitle"),
		SigunguName:   str("sigunguName"),
		DongName:      str("dongName"),
		RoomDesc:      str("roomDesc"),
		RoomFloorName: str("roomFloorName"),
		Floor:         raw["floor"],
		Thumbnail:     pickThumbnail(raw),
		SupplyArea:    raw["supplyArea"],
		ExclusiveArea: raw["exclusiveArea"],
		Area:          raw["area"],
		RoomArea:      raw["roomArea"],
		Raw:           raw,
	}
	if loc, ok := raw["randomLocation"].(map[string]any); ok {
		lat, lng := NumericValue(loc["lat"]), NumericValue(loc["lng"])
		if lat != nil && lng != nil {
			l.Location = &models.Coordinate{Lat: *lat, Lng: *lng}
		}
	}
	return l
}

var thumbnailKeys = []string{
	"thumbnailUrl", "thumbnail", "imgUrl", "imageUrl", "image", "thumb", "image1", "img1",
}

// pickThumbnail returns the first image URL of a room; protocol-relative
// URLs are upgraded to https.
func pickThumbnail(raw map[string]any) string {
	candidates := make([]any, 0, len(thumbnailKeys)+2)
	for _, key := range []string{"imgUrlList", "images"} {
		if list, ok := raw[key].([]any); ok && len(list) > 0 {
			candidates = append(candidates, list[0])
		}
	}
	for _, key := range thumbnailKeys {
		candidates = append(candidates, raw[key])
	}
	for _, c := range candidates {
		s, ok := textOf(c)
		if !ok {
			continue
		}
		if strings.HasPrefix(s, "//") {
			return "https:" + s
		}
		return s
	}
	return ""
}

// Enrich derives deal kind, deposit, rent and both area units from the
// free-text price and description fields. It runs once per record.
func Enrich(l *models.ListingRecord) *models.ListingRecord {
	if l == nil || l.Enriched {
		return l
	}

	switch {
	case strings.Contains(l.PriceTypeName, "월세"):
		l.DealKind = models.DealKindMonthly
		depToken, rentToken, _ := strings.Cut(l.PriceTitle, "/")
		l.DepositAmount = ParseDepositToken(depToken)
		if strings.Contains(l.PriceTitle, "/") {
			l.MonthlyRentAmount = NumericValue(rentToken)
		}
	case strings.Contains(l.PriceTypeName, "전세"):
		l.DealKind = models.DealKindJeonse
		l.DepositAmount = ParseDepositToken(l.PriceTitle)
		zero := 0.0
		l.MonthlyRentAmount = &zero
	case strings.Contains(l.PriceTypeName, "매매"):
		l.DealKind = models.DealKindTrading
		l.DepositAmount = ParseDepositToken(l.PriceTitle)
	default:
		l.DealKind = models.DealKindNone
	}

	l.AreaSqm = listingArea(l)
	if l.AreaSqm != nil {
		p := round1(*l.AreaSqm / models.PyeongDivisor)
		l.AreaPyeong = &p
	}

	l.Enriched = true
	return l
}

// listingArea takes the first populated direct area field, then falls back
// to a number followed by an area unit in the description.
func listingArea(l *models.ListingRecord) *float64 {
	for _, v := range []any{l.SupplyArea, l.ExclusiveArea, l.Area, l.RoomArea} {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		if f := NumericValue(v); f != nil {
			return f
		}
		break
	}

	if l.RoomDesc == "" {
		return nil
	}
	m := descAreaRegexp.FindStringSubmatch(l.RoomDesc)
	if len(m) < 2 {
		return nil
	}
	return NumericValue(m[1])
}

// RoomCategoryOf classifies a listing by its room type name.
func RoomCategoryOf(l *models.ListingRecord) models.RoomCategory {
	name := l.RoomTypeName
	switch {
	case strings.Contains(name, "오피스텔"):
		return models.RoomOfficetel
	case strings.Contains(name, "아파트"):
		return models.RoomApartment
	case villaTypeRegexp.MatchString(name):
		return models.RoomVilla
	case oneRoomTypeRegexp.MatchString(name):
		return models.RoomOneRoom
	}
	return models.RoomEtc
}
