package services

import (
	"math"

	"github.com/mmcloughlin/geohash"

	"estate-explorer/models"
)

// OtherNeighborhood is the group key for listings without a neighborhood.
const OtherNeighborhood = "기타"

// Map zoom thresholds; larger levels are further out.
const (
	ZoomDistrictChips     = 8
	ZoomNeighborhoodChips = 6

	sameSpotTolerance = 0.00001
)

// Layer is what the map draws for a given zoom level.
type Layer int

const (
	LayerMarkers Layer = iota
	LayerNeighborhoodChips
	LayerDistrictChips
)

func (l Layer) String() string {
	switch l {
	case LayerDistrictChips:
		return "district"
	case LayerNeighborhoodChips:
		return "neighborhood"
	}
	return "markers"
}

// ClusterLayer picks the layer for a zoom level. Once a neighborhood is
// selected the map always shows individual markers.
func ClusterLayer(level int, dongSelected bool) Layer {
	if dongSelected {
		return LayerMarkers
	}
	switch {
	case level >= ZoomDistrictChips:
		return LayerDistrictChips
	case level >= ZoomNeighborhoodChips:
		return LayerNeighborhoodChips
	}
	return LayerMarkers
}

// GroupBy partitions records by keyFn, keeping first-seen key order. The
// centroid averages the coordinates coordFn reports; records without one
// are still members but do not move the centroid.
func GroupBy[T any](records []T, keyFn func(T) string, coordFn func(T) *models.Coordinate) []models.RegionGroup[T] {
	index := make(map[string]int)
	var groups []models.RegionGroup[T]
	for _, r := range records {
		key := keyFn(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.RegionGroup[T]{Key: key})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	for i := range groups {
		groups[i].Centroid = centroid(groups[i].Records, coordFn)
	}
	return groups
}

func centroid[T any](records []T, coordFn func(T) *models.Coordinate) *models.Coordinate {
	var sumLat, sumLng float64
	var count int
	for _, r := range records {
		c := coordFn(r)
		if c == nil || math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
			continue
		}
		sumLat += c.Lat
		sumLng += c.Lng
		count++
	}
	if count == 0 {
		return nil
	}
	return &models.Coordinate{Lat: sumLat / float64(count), Lng: sumLng / float64(count)}
}

// ListingLocation is the coordinate function for listings.
func ListingLocation(l *models.ListingRecord) *models.Coordinate {
	return l.Location
}

// ByNeighborhood keys listings by neighborhood name.
func ByNeighborhood(l *models.ListingRecord) string {
	if l.DongName == "" {
		return OtherNeighborhood
	}
	return l.DongName
}

// ByGeohash keys listings by the geohash cell of their location. Listings
// without a location share the "" cell.
func ByGeohash(precision uint) func(*models.ListingRecord) string {
	return func(l *models.ListingRecord) string {
		if l.Location == nil {
			return ""
		}
		return geohash.EncodeWithPrecision(l.Location.Lat, l.Location.Lng, precision)
	}
}

// GroupByNeighborhood builds the neighborhood chips.
func GroupByNeighborhood(listings []*models.ListingRecord) []models.RegionGroup[*models.ListingRecord] {
	return GroupBy(listings, ByNeighborhood, ListingLocation)
}

// GroupByDistrict builds the district chips of sido from the region tree.
// Districts with no member listings are omitted.
func GroupByDistrict(listings []*models.ListingRecord, tree models.RegionTree, sido string) []models.RegionGroup[*models.ListingRecord] {
	districts := make(map[string]bool)
	districtOf := make(map[string]string)
	for _, gu := range tree.Districts(sido) {
		districts[gu] = true
		for _, dong := range tree.Neighborhoods(sido, gu) {
			if _, taken := districtOf[dong]; !taken {
				districtOf[dong] = gu
			}
		}
	}

	// neighborhood names repeat across districts, so the tree is only
	// consulted when a listing does not name its own district
	byDistrict := make(map[string][]*models.ListingRecord)
	for _, l := range listings {
		gu := l.SigunguName
		if gu == "" {
			gu = districtOf[l.DongName]
		}
		if districts[gu] {
			byDistrict[gu] = append(byDistrict[gu], l)
		}
	}

	var groups []models.RegionGroup[*models.ListingRecord]
	for _, gu := range tree.Districts(sido) {
		members := byDistrict[gu]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, models.RegionGroup[*models.ListingRecord]{
			Key:      gu,
			Records:  members,
			Centroid: centroid(members, ListingLocation),
		})
	}
	return groups
}

// NeighborhoodGroupsInDistrict keeps the chips of neighborhoods listed under
// sigungu. With no district selected every group is kept.
func NeighborhoodGroupsInDistrict(groups []models.RegionGroup[*models.ListingRecord], tree models.RegionTree, sido, sigungu string) []models.RegionGroup[*models.ListingRecord] {
	if sigungu == "" {
		return groups
	}
	allowed := make(map[string]struct{})
	for _, d := range tree.Neighborhoods(sido, sigungu) {
		allowed[d] = struct{}{}
	}
	out := make([]models.RegionGroup[*models.ListingRecord], 0, len(groups))
	for _, g := range groups {
		if _, ok := allowed[g.Key]; ok {
			out = append(out, g)
		}
	}
	return out
}

// SameSpot reports whether two coordinates coincide closely enough for one
// marker to hide the other.
func SameSpot(a, b models.Coordinate) bool {
	return math.Abs(a.Lat-b.Lat) < sameSpotTolerance && math.Abs(a.Lng-b.Lng) < sameSpotTolerance
}
