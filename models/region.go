package models

import "sort"

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RegionTree maps province -> district -> neighborhoods.
type RegionTree map[string]map[string][]string

// Provinces returns the province names in sorted order.
func (t RegionTree) Provinces() []string {
	out := make([]string, 0, len(t))
	for p := range t {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// FirstProvince is the default province selection, "서울특별시" when the tree is empty.
func (t RegionTree) FirstProvince() string {
	if ps := t.Provinces(); len(ps) > 0 {
		return ps[0]
	}
	return DefaultSido
}

// Districts returns the district names of a province in sorted order.
func (t RegionTree) Districts(sido string) []string {
	m := t[sido]
	out := make([]string, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Neighborhoods returns the neighborhoods listed under a district, nil when unknown.
func (t RegionTree) Neighborhoods(sido, sigungu string) []string {
	if t == nil {
		return nil
	}
	return t[sido][sigungu]
}

// DistrictOf finds the district of sido that lists dong, or "".
func (t RegionTree) DistrictOf(sido, dong string) string {
	if dong == "" {
		return ""
	}
	for _, gu := range t.Districts(sido) {
		for _, d := range t[sido][gu] {
			if d == dong {
				return gu
			}
		}
	}
	return ""
}

// RegionGroup aggregates records that share an administrative unit.
// A nil Centroid means no member had coordinates and no marker should be placed.
type RegionGroup[T any] struct {
	Key      string
	Records  []T
	Centroid *Coordinate
}

// Renderable reports whether the group can be drawn on the map.
func (g RegionGroup[T]) Renderable() bool {
	return g.Centroid != nil
}
