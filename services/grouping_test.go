package services

import (
	"math"
	"reflect"
	"testing"

	"estate-explorer/models"
)

func located(id, dong string, lat, lng float64) *models.ListingRecord {
	return &models.ListingRecord{ID: id, DongName: dong, Location: &models.Coordinate{Lat: lat, Lng: lng}}
}

func TestGroupByNeighborhood(t *testing.T) {
	listings := []*models.ListingRecord{
		located("1", "역삼동", 37.50, 127.03),
		located("2", "잠실동", 37.51, 127.08),
		located("3", "역삼동", 37.52, 127.05),
		{ID: "4", DongName: "역삼동"},
		{ID: "5"},
	}

	groups := GroupByNeighborhood(listings)
	if len(groups) != 3 {
		t.Fatalf("groups = %d; want 3", len(groups))
	}

	wantKeys := []string{"역삼동", "잠실동", OtherNeighborhood}
	for i, want := range wantKeys {
		if groups[i].Key != want {
			t.Errorf("groups[%d].Key = %q; want %q", i, groups[i].Key, want)
		}
	}

	yeoksam := groups[0]
	if len(yeoksam.Records) != 3 {
		t.Errorf("역삼동 members = %d; want 3", len(yeoksam.Records))
	}
	if c := yeoksam.Centroid; c == nil || math.Abs(c.Lat-37.51) > 1e-9 || math.Abs(c.Lng-127.04) > 1e-9 {
		t.Errorf("역삼동 centroid = %+v; want 37.51,127.04", c)
	}

	other := groups[2]
	if other.Centroid != nil || other.Renderable() {
		t.Error("a group without coordinates must not be renderable")
	}
}

func TestGroupByDistrict(t *testing.T) {
	listings := []*models.ListingRecord{
		located("1", "역삼동", 37.50, 127.00),
		located("2", "잠실동", 37.52, 127.10),
		located("3", "삼성동", 37.52, 127.06),
		located("4", "망원동", 37.55, 126.90),
	}

	groups := GroupByDistrict(listings, testTree, "서울특별시")
	if len(groups) != 2 {
		t.Fatalf("groups = %d; want 2", len(groups))
	}
	if groups[0].Key != "강남구" || len(groups[0].Records) != 2 {
		t.Errorf("groups[0] = %s with %d members; want 강남구 with 2", groups[0].Key, len(groups[0].Records))
	}
	if c := groups[0].Centroid; c == nil || math.Abs(c.Lat-37.51) > 1e-9 || math.Abs(c.Lng-127.03) > 1e-9 {
		t.Errorf("강남구 centroid = %+v; want 37.51,127.03", c)
	}
	if groups[1].Key != "송파구" {
		t.Errorf("groups[1].Key = %q; want 송파구", groups[1].Key)
	}

	if got := GroupByDistrict(listings, testTree, "부산광역시"); len(got) != 0 {
		t.Errorf("unknown province produced %d groups", len(got))
	}
}

func TestGroupByDistrictSharedNeighborhoodName(t *testing.T) {
	tree := models.RegionTree{
		"서울특별시": {
			"강남구": {"신사동"},
			"관악구": {"신사동"},
		},
	}
	inGangnam := located("1", "신사동", 37.52, 127.02)
	inGangnam.SigunguName = "강남구"
	inGwanak := located("2", "신사동", 37.48, 126.92)
	inGwanak.SigunguName = "관악구"
	unnamed := located("3", "신사동", 37.52, 127.02)
	elsewhere := located("4", "신사동", 35.10, 129.03)
	elsewhere.SigunguName = "해운대구"

	groups := GroupByDistrict([]*models.ListingRecord{inGangnam, inGwanak, unnamed, elsewhere}, tree, "서울특별시")
	if len(groups) != 2 {
		t.Fatalf("groups = %d; want 2", len(groups))
	}
	tests := []struct {
		key  string
		want []string
		lat  float64
	}{
		{"강남구", []string{"1", "3"}, 37.52},
		{"관악구", []string{"2"}, 37.48},
	}
	for i, tt := range tests {
		g := groups[i]
		var got []string
		for _, l := range g.Records {
			got = append(got, l.ID)
		}
		if g.Key != tt.key || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("groups[%d] = %s %v; want %s %v", i, g.Key, got, tt.key, tt.want)
		}
		if g.Centroid == nil || math.Abs(g.Centroid.Lat-tt.lat) > 1e-9 {
			t.Errorf("%s centroid = %+v; want lat %v", tt.key, g.Centroid, tt.lat)
		}
	}
}

func TestGroupByGeohash(t *testing.T) {
	listings := []*models.ListingRecord{
		located("1", "역삼동", 37.50000, 127.03600),
		located("2", "역삼동", 37.50001, 127.03601),
		located("3", "잠실동", 37.51300, 127.10000),
		{ID: "4"},
	}

	groups := GroupBy(listings, ByGeohash(6), ListingLocation)
	if len(groups) != 3 {
		t.Fatalf("groups = %d; want 3", len(groups))
	}
	if len(groups[0].Records) != 2 || len(groups[0].Key) != 6 {
		t.Errorf("first cell = %q with %d members; want a 6-char cell with 2", groups[0].Key, len(groups[0].Records))
	}
	if groups[2].Key != "" || groups[2].Renderable() {
		t.Errorf("listings without location should share an unrenderable cell, got %q", groups[2].Key)
	}
}

func TestGroupByTransactions(t *testing.T) {
	records := []models.TransactionRecord{
		{ID: "1", RegionName: "강남구"},
		{ID: "2", RegionName: "서초구"},
		{ID: "3", RegionName: "강남구"},
	}
	groups := GroupBy(records,
		func(r models.TransactionRecord) string { return r.RegionName },
		func(models.TransactionRecord) *models.Coordinate { return nil })

	if len(groups) != 2 || groups[0].Key != "강남구" || len(groups[0].Records) != 2 {
		t.Errorf("groups = %+v", groups)
	}
	for _, g := range groups {
		if g.Renderable() {
			t.Errorf("group %s has no coordinates but is renderable", g.Key)
		}
	}
}

func TestNeighborhoodGroupsInDistrict(t *testing.T) {
	groups := GroupByNeighborhood([]*models.ListingRecord{
		located("1", "역삼동", 37.5, 127.0),
		located("2", "잠실동", 37.5, 127.1),
		located("3", "삼성동", 37.5, 127.0),
	})

	got := NeighborhoodGroupsInDistrict(groups, testTree, "서울특별시", "강남구")
	if len(got) != 2 || got[0].Key != "역삼동" || got[1].Key != "삼성동" {
		t.Errorf("강남구 chips = %v", groupKeys(got))
	}
	if all := NeighborhoodGroupsInDistrict(groups, testTree, "서울특별시", ""); len(all) != 3 {
		t.Errorf("no district selected should keep all chips, got %v", groupKeys(all))
	}
}

func groupKeys(groups []models.RegionGroup[*models.ListingRecord]) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Key)
	}
	return out
}

func TestClusterLayer(t *testing.T) {
	tests := []struct {
		level        int
		dongSelected bool
		want         Layer
	}{
		{12, false, LayerDistrictChips},
		{8, false, LayerDistrictChips},
		{7, false, LayerNeighborhoodChips},
		{6, false, LayerNeighborhoodChips},
		{5, false, LayerMarkers},
		{1, false, LayerMarkers},
		{9, true, LayerMarkers},
	}
	for _, tt := range tests {
		if got := ClusterLayer(tt.level, tt.dongSelected); got != tt.want {
			t.Errorf("ClusterLayer(%d, %v) = %s; want %s", tt.level, tt.dongSelected, got, tt.want)
		}
	}
}

func TestSameSpot(t *testing.T) {
	a := models.Coordinate{Lat: 37.5, Lng: 127.0}
	if !SameSpot(a, models.Coordinate{Lat: 37.500005, Lng: 127.000005}) {
		t.Error("points within tolerance should coincide")
	}
	if SameSpot(a, models.Coordinate{Lat: 37.5001, Lng: 127.0}) {
		t.Error("points 0.0001 apart should not coincide")
	}
}
