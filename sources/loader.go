package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"estate-explorer/models"
	"estate-explorer/schemas"
	"estate-explorer/services"
	"estate-explorer/utils"
)

// ErrNoData means a load produced nothing usable; callers render a
// zero-result state.
var ErrNoData = errors.New("no data loaded")

// SourceDescriptor names one transaction export and its category.
type SourceDescriptor struct {
	URI      string
	Category models.Category
}

// Loader fetches and normalizes source exports.
type Loader struct {
	fetcher     Fetcher
	normalizer  *services.Normalizer
	logger      *utils.Logger
	concurrency int
	rateLimitMs int
}

// NewLoader creates a Loader that runs at most concurrency fetches at a time.
func NewLoader(fetcher Fetcher, logger *utils.Logger, concurrency, rateLimitMs int) *Loader {
	return &Loader{
		fetcher:     fetcher,
		normalizer:  services.NewNormalizer(logger),
		logger:      logger,
		concurrency: concurrency,
		rateLimitMs: rateLimitMs,
	}
}

type sourceResult struct {
	records []models.TransactionRecord
	err     error
}

// LoadTransactions fetches every descriptor concurrently and flattens the
// normalized records in descriptor order. A failing source is logged and
// contributes nothing. ErrNoData is returned, along with the corpus, when no
// source yielded a record.
func (l *Loader) LoadTransactions(ctx context.Context, descriptors []SourceDescriptor) (*models.TransactionCorpus, error) {
	corpus := &models.TransactionCorpus{
		LoadID:  uuid.NewString(),
		Records: []models.TransactionRecord{},
	}

	seen := utils.NewKeySet()
	unique := make([]SourceDescriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if !seen.Add(string(d.Category) + "|" + d.URI) {
			l.logger.Warn("[loader] duplicate source %s (%s) skipped", d.URI, d.Category)
			continue
		}
		unique = append(unique, d)
	}

	l.logger.Info("[loader] load %s: fetching %d sources", corpus.LoadID, len(unique))

	results := make([]sourceResult, len(unique))
	pool := utils.NewWorkerPool(l.concurrency, l.rateLimitMs)
	for i, d := range unique {
		i, d := i, d
		pool.Submit(func() {
			results[i] = l.loadSource(ctx, d)
		})
	}
	pool.Wait()

	for i, d := range unique {
		res := results[i]
		corpus.Sources = append(corpus.Sources, models.SourceStat{
			Name:     d.URI,
			Category: d.Category,
			Records:  len(res.records),
			Err:      res.err,
		})
		if res.err != nil {
			l.logger.Error("[loader] %s (%s) failed: %v", d.URI, d.Category, res.err)
			continue
		}
		corpus.Records = append(corpus.Records, res.records...)
	}

	l.logger.Info("[loader] load %s: %d records from %d sources", corpus.LoadID, len(corpus.Records), len(unique))
	if len(corpus.Records) == 0 {
		return corpus, ErrNoData
	}
	return corpus, nil
}

func (l *Loader) loadSource(ctx context.Context, d SourceDescriptor) sourceResult {
	data, err := l.fetcher.Fetch(ctx, d.URI)
	if err != nil {
		return sourceResult{err: err}
	}
	items, err := ExtractItems(data)
	if err != nil {
		return sourceResult{err: fmt.Errorf("parse %s: %w", d.URI, err)}
	}
	l.logger.Debug("[loader] %s: %d items", d.URI, len(items))
	return sourceResult{records: l.normalizer.NormalizeAll(items, d.Category)}
}

// ExtractItems unwraps the three export shapes: a bare array, {"items": [...]}
// and {"response":{"body":{"items":{"item": object|array}}}}. Anything else
// holds no items.
func ExtractItems(data []byte) ([]map[string]any, error) {
	root, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}

	switch v := root.(type) {
	case []any:
		return objects(v), nil
	case map[string]any:
		if items, ok := v["items"].([]any); ok {
			return objects(items), nil
		}
		return objects(nestedItem(v)), nil
	}
	return []map[string]any{}, nil
}

func nestedItem(root map[string]any) []any {
	resp, _ := root["response"].(map[string]any)
	body, _ := resp["body"].(map[string]any)
	items, _ := body["items"].(map[string]any)
	switch item := items["item"].(type) {
	case []any:
		return item
	case map[string]any:
		return []any{item}
	}
	return nil
}

func objects(values []any) []map[string]any {
	out := make([]map[string]any, 0, len(values))
	for _, v := range values {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadListings reads the listing export, a bare array or {"rooms": [...]},
// and enriches every room once.
func (l *Loader) LoadListings(ctx context.Context, uri string) (*models.ListingCorpus, error) {
	corpus := &models.ListingCorpus{LoadID: uuid.NewString(), Listings: []*models.ListingRecord{}}

	data, err := l.fetcher.Fetch(ctx, uri)
	if err != nil {
		return corpus, fmt.Errorf("listings: %w", err)
	}
	root, err := decodeJSON(data)
	if err != nil {
		return corpus, fmt.Errorf("listings: parse %s: %w", uri, err)
	}

	var rooms []any
	switch v := root.(type) {
	case []any:
		rooms = v
	case map[string]any:
		rooms, _ = v["rooms"].([]any)
	}

	for _, raw := range objects(rooms) {
		corpus.Listings = append(corpus.Listings, services.Enrich(services.ListingFromRaw(raw)))
	}

	l.logger.Info("[loader] listings %s: %d rooms", corpus.LoadID, len(corpus.Listings))
	if len(corpus.Listings) == 0 {
		return corpus, ErrNoData
	}
	return corpus, nil
}

// LoadRegionTree reads and validates the province/district/neighborhood file.
func (l *Loader) LoadRegionTree(ctx context.Context, uri string) (models.RegionTree, error) {
	data, err := l.fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("region tree: %w", err)
	}
	if err := schemas.Validate(schemas.RegionTree, data); err != nil {
		return nil, fmt.Errorf("region tree: %s: %w", uri, err)
	}
	var tree models.RegionTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("region tree: %s: %w", uri, err)
	}
	return tree, nil
}

// MapData is everything the map view needs.
type MapData struct {
	Listings *models.ListingCorpus
	Tree     models.RegionTree
}

// LoadMapView loads the listings and the region tree in parallel. Either
// failing is fatal for the view and cancels the other.
func (l *Loader) LoadMapView(ctx context.Context, listingsURI, treeURI string) (*MapData, error) {
	out := &MapData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		corpus, err := l.LoadListings(gctx, listingsURI)
		out.Listings = corpus
		return err
	})
	g.Go(func() error {
		tree, err := l.LoadRegionTree(gctx, treeURI)
		out.Tree = tree
		return err
	})

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
