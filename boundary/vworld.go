package boundary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"estate-explorer/models"
	"estate-explorer/utils"
)

// DefaultBaseURL is the public VWorld data endpoint.
const DefaultBaseURL = "https://api.vworld.kr/req/data"

const (
	datasetDong     = "LT_C_ADEMD_INFO"
	datasetDistrict = "LT_C_ADSIGG_INFO"
)

// VWorldClient queries administrative boundaries from the VWorld GetFeature API.
type VWorldClient struct {
	baseURL string
	key     string
	domain  string
	client  *http.Client
	retry   *utils.RetryConfig
}

// NewVWorldClient creates a client. key and domain must match the registration
// in the VWorld console or every lookup comes back empty.
func NewVWorldClient(baseURL, key, domain string, retry *utils.RetryConfig) *VWorldClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	return &VWorldClient{
		baseURL: baseURL,
		key:     key,
		domain:  domain,
		client:  &http.Client{},
		retry:   retry,
	}
}

type featureResponse struct {
	Response struct {
		Status string `json:"status"`
		Result struct {
			FeatureCollection struct {
				Features []struct {
					Geometry geometry `json:"geometry"`
				} `json:"features"`
			} `json:"featureCollection"`
		} `json:"result"`
	} `json:"response"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func (v *VWorldClient) requestURL(req Request) string {
	dataset := datasetDistrict
	if req.Level == LevelDong {
		dataset = datasetDong
	}

	params := url.Values{}
	params.Set("service", "data")
	params.Set("request", "GetFeature")
	params.Set("version", "2.0")
	params.Set("format", "json")
	params.Set("page", "1")
	params.Set("size", "1000")
	params.Set("geometry", "true")
	params.Set("attribute", "false")
	params.Set("key", v.key)
	params.Set("domain", v.domain)
	params.Set("data", dataset)
	params.Set("attrFilter", "full_nm:=:"+req.FullName())
	return v.baseURL + "?" + params.Encode()
}

// Fetch returns the outer ring of the first matching feature as lat/lng points.
func (v *VWorldClient) Fetch(ctx context.Context, req Request) ([]models.Coordinate, error) {
	var body []byte
	err := v.retry.Do(ctx, "vworld "+req.FullName(), func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, v.requestURL(req), nil)
		if err != nil {
			return utils.Permanent(err)
		}
		resp, err := v.client.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return utils.Permanent(fmt.Errorf("vworld: status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("vworld: status %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}

	var fr featureResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("vworld: decode: %w", err)
	}
	features := fr.Response.Result.FeatureCollection.Features
	if len(features) == 0 {
		return nil, fmt.Errorf("vworld: %s: %w (status %s)", req.FullName(), ErrNoBoundary, strings.ToLower(fr.Response.Status))
	}

	ring, err := firstRing(features[0].Geometry)
	if err != nil {
		return nil, fmt.Errorf("vworld: %s: %w", req.FullName(), err)
	}
	if len(ring) == 0 {
		return nil, fmt.Errorf("vworld: %s: %w", req.FullName(), ErrNoBoundary)
	}

	coords := make([]models.Coordinate, 0, len(ring))
	for _, p := range ring {
		if len(p) < 2 {
			continue
		}
		// GeoJSON positions are [x, y] = [lng, lat]
		coords = append(coords, models.Coordinate{Lat: p[1], Lng: p[0]})
	}
	return coords, nil
}

// firstRing takes coordinates[0] of a Polygon and coordinates[0][0] of a MultiPolygon.
func firstRing(g geometry) ([][]float64, error) {
	switch g.Type {
	case "Polygon":
		var poly [][][]float64
		if err := json.Unmarshal(g.Coordinates, &poly); err != nil {
			return nil, fmt.Errorf("polygon: %w", err)
		}
		if len(poly) == 0 {
			return nil, nil
		}
		return poly[0], nil
	case "MultiPolygon":
		var multi [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &multi); err != nil {
			return nil, fmt.Errorf("multipolygon: %w", err)
		}
		if len(multi) == 0 || len(multi[0]) == 0 {
			return nil, nil
		}
		return multi[0][0], nil
	}
	return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
}
