package boundary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"estate-explorer/models"
	"estate-explorer/schemas"
	"estate-explorer/sources"
	"estate-explorer/utils"
)

var (
	// ErrNoBoundary means neither VWorld nor the fallback files know the region.
	ErrNoBoundary = errors.New("no boundary")
	// ErrIncompleteRequest means the names needed for the level are missing.
	ErrIncompleteRequest = errors.New("incomplete boundary request")
)

// Level is the administrative level of a boundary.
type Level string

const (
	LevelDong     Level = "dong"
	LevelDistrict Level = "sigungu"
)

// Request names the region whose outline is wanted.
type Request struct {
	Level   Level
	Sido    string
	Sigungu string
	Dong    string
}

// Name is the short name the fallback files are keyed by.
func (r Request) Name() string {
	if r.Level == LevelDong {
		return r.Dong
	}
	return r.Sigungu
}

// FullName is the space-joined administrative path VWorld matches on.
func (r Request) FullName() string {
	if r.Level == LevelDong {
		return r.Sido + " " + r.Sigungu + " " + r.Dong
	}
	return r.Sido + " " + r.Sigungu
}

func (r Request) validate() error {
	switch r.Level {
	case LevelDong:
		if r.Sido == "" || r.Sigungu == "" || r.Dong == "" {
			return fmt.Errorf("%w: dong needs sido, sigungu and dong", ErrIncompleteRequest)
		}
	case LevelDistrict:
		if r.Sido == "" || r.Sigungu == "" {
			return fmt.Errorf("%w: sigungu needs sido and sigungu", ErrIncompleteRequest)
		}
	default:
		return fmt.Errorf("%w: unknown level %q", ErrIncompleteRequest, r.Level)
	}
	return nil
}

func (r Request) cacheKey() string {
	return string(r.Level) + ":" + r.FullName()
}

// RequestFor picks the outline the current selection should show: the
// neighborhood when one is chosen, else the district, else nothing.
func RequestFor(state models.FilterState) (Request, bool) {
	switch {
	case state.DongSelected() && state.Sigungu != "":
		return Request{Level: LevelDong, Sido: state.Sido, Sigungu: state.Sigungu, Dong: state.Dong}, true
	case state.Sigungu != "":
		return Request{Level: LevelDistrict, Sido: state.Sido, Sigungu: state.Sigungu}, true
	}
	return Request{}, false
}

// Zoom windows outside which outlines are hidden. Larger levels are further out.
const (
	dongHideMin     = 4
	dongHideMax     = 10
	districtHideMin = 6
	districtHideMax = 12
)

// PolygonVisible reports whether an outline of level is drawn at zoom.
func PolygonVisible(level Level, zoom int) bool {
	switch level {
	case LevelDong:
		return zoom > dongHideMin && zoom < dongHideMax
	case LevelDistrict:
		return zoom > districtHideMin && zoom < districtHideMax
	}
	return false
}

// Table maps a region name to its outline.
type Table map[string][]models.Coordinate

// LoadTable reads a fallback file of name -> [[lat, lng], ...].
func LoadTable(ctx context.Context, fetcher sources.Fetcher, uri string) (Table, error) {
	data, err := fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("boundary: %w", err)
	}
	if err := schemas.Validate(schemas.Boundaries, data); err != nil {
		return nil, fmt.Errorf("boundary: %s: %w", uri, err)
	}

	var raw map[string][][2]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("boundary: %s: %w", uri, err)
	}
	table := make(Table, len(raw))
	for name, pairs := range raw {
		coords := make([]models.Coordinate, len(pairs))
		for i, p := range pairs {
			coords[i] = models.Coordinate{Lat: p[0], Lng: p[1]}
		}
		table[name] = coords
	}
	return table, nil
}

// Options configures a Provider.
type Options struct {
	Timeout   time.Duration
	CacheSize int
	Fallback  map[Level]Table
}

// Remote is the live boundary service.
type Remote interface {
	Fetch(ctx context.Context, req Request) ([]models.Coordinate, error)
}

// Provider resolves outlines from the remote service, then the fallback
// tables, and caches what it finds.
type Provider struct {
	remote   Remote
	fallback map[Level]Table
	cache    *lru.Cache[string, []models.Coordinate]
	group    singleflight.Group
	timeout  time.Duration
	logger   *utils.Logger
}

// NewProvider creates a Provider. remote may be nil to use the fallback tables only.
func NewProvider(remote Remote, opts Options, logger *utils.Logger) (*Provider, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	cache, err := lru.New[string, []models.Coordinate](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("boundary: cache: %w", err)
	}
	return &Provider{
		remote:   remote,
		fallback: opts.Fallback,
		cache:    cache,
		timeout:  opts.Timeout,
		logger:   logger,
	}, nil
}

// Lookup returns the outline for req. Concurrent lookups of the same region
// share one remote call. Only non-empty results are cached.
func (p *Provider) Lookup(ctx context.Context, req Request) ([]models.Coordinate, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	key := req.cacheKey()
	if coords, ok := p.cache.Get(key); ok {
		return coords, nil
	}

	v, err, _ := p.group.Do(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		coords, err := p.resolve(lookupCtx, req)
		if err != nil {
			return nil, err
		}
		p.cache.Add(key, coords)
		return coords, nil
	})
	if err != nil {
		p.logger.Warn("[boundary] %s %s: %v", req.Level, req.FullName(), err)
		return nil, err
	}
	return v.([]models.Coordinate), nil
}

func (p *Provider) resolve(ctx context.Context, req Request) ([]models.Coordinate, error) {
	if p.remote != nil {
		coords, err := p.remote.Fetch(ctx, req)
		if err == nil && len(coords) > 0 {
			return coords, nil
		}
		if err != nil {
			p.logger.Debug("[boundary] remote lookup of %s failed, trying fallback: %v", req.FullName(), err)
		}
	}

	if coords := p.fallback[req.Level][req.Name()]; len(coords) > 0 {
		return coords, nil
	}
	return nil, fmt.Errorf("boundary: %s: %w", req.FullName(), ErrNoBoundary)
}
