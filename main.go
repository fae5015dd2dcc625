package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"estate-explorer/boundary"
	"estate-explorer/config"
	"estate-explorer/favorites"
	"estate-explorer/models"
	"estate-explorer/services"
	"estate-explorer/sources"
	"estate-explorer/storage"
	"estate-explorer/utils"
)

type options struct {
	view string

	sido, sigungu, dong string

	propertyType, dealType, regionCode string
	year                               int
	minPrice, maxPrice                 *float64
	minArea, maxArea                   *float64

	room, dealKind             string
	deposit, rent, areaRange   string
	keyword, sortKey, unit     string
	page, zoom                 int
	favoritesOnly, showOptions bool

	export, insights, importPG bool
	toggle                     string
}

func parseFlags() *options {
	o := &options{}
	flag.StringVar(&o.view, "view", "table", "table (transactions) or map (listings)")
	flag.StringVar(&o.sido, "sido", "", "province")
	flag.StringVar(&o.sigungu, "sigungu", "", "district")
	flag.StringVar(&o.dong, "dong", models.AllOption, "neighborhood")
	flag.StringVar(&o.propertyType, "property", "all", "apartment | officetel | house | villa | all")
	flag.StringVar(&o.dealType, "deal", "all", "trade | rent | all")
	flag.StringVar(&o.regionCode, "region", "all", "5-digit district code or all")
	flag.IntVar(&o.year, "year", 0, "deal year, 0 for all")
	flag.Func("min-price", "minimum price (10,000 KRW)", floatInto(&o.minPrice))
	flag.Func("max-price", "maximum price (10,000 KRW)", floatInto(&o.maxPrice))
	flag.Func("min-area", "minimum area in ㎡, whatever -unit displays", floatInto(&o.minArea))
	flag.Func("max-area", "maximum area in ㎡, whatever -unit displays", floatInto(&o.maxArea))
	flag.StringVar(&o.room, "room", string(models.RoomAll), "ALL | ONEROOM | APT | VILLA | OFFICETEL | ETC")
	flag.StringVar(&o.dealKind, "deal-kind", string(models.DealKindAll), "ALL | MONTHLY | JEONSE | TRADING")
	flag.StringVar(&o.deposit, "deposit", models.AllOption, "deposit band D1..D4")
	flag.StringVar(&o.rent, "rent", models.AllOption, "monthly rent band R1..R4")
	flag.StringVar(&o.areaRange, "area", models.AllOption, "area band A1..A8")
	flag.StringVar(&o.keyword, "q", "", "keyword")
	flag.StringVar(&o.sortKey, "sort", string(models.SortPriceDesc), "priceDesc | dateDesc | areaDesc")
	flag.StringVar(&o.unit, "unit", string(models.AreaUnitM2), "M2 | PYEONG")
	flag.IntVar(&o.page, "page", 1, "page number")
	flag.IntVar(&o.zoom, "zoom", 5, "map zoom level, larger is further out")
	flag.BoolVar(&o.favoritesOnly, "favorites", false, "only show favorites")
	flag.BoolVar(&o.showOptions, "options", false, "print selector options")
	flag.BoolVar(&o.export, "export", false, "write the current table page to CSV")
	flag.BoolVar(&o.insights, "insights", false, "print transaction insights")
	flag.BoolVar(&o.importPG, "import-postgres", false, "copy file exports into PostgreSQL and exit")
	flag.StringVar(&o.toggle, "toggle", "", "toggle a record id in favorites")
	flag.Parse()
	return o
}

func floatInto(dst **float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

// filterState applies the flags on top of the defaults.
func (o *options) filterState(sido string, pageSize int) models.FilterState {
	if o.sido != "" {
		sido = o.sido
	}
	s := models.DefaultFilterState(sido, pageSize)
	s = s.SelectSigungu(o.sigungu).SelectDong(o.dong)

	s.PropertyType = o.propertyType
	s.DealType = o.dealType
	s.RegionCode = o.regionCode
	s.Year = o.year
	s.MinPrice, s.MaxPrice = o.minPrice, o.maxPrice
	s.MinArea, s.MaxArea = o.minArea, o.maxArea

	s.RoomCategory = models.RoomCategory(o.room)
	s.DealKind = models.DealKind(o.dealKind)
	s.DepositRangeID = o.deposit
	s.RentRangeID = o.rent
	s.AreaRangeID = o.areaRange
	s.AreaUnit = models.AreaUnit(o.unit)

	s.Keyword = o.keyword
	s.FavoritesOnly = o.favoritesOnly
	s.SortKey = models.SortKey(o.sortKey)
	s.Page = o.page
	return s
}

func main() {
	opts := parseFlags()
	cfg := config.Load()
	logger := utils.NewLoggerWith(utils.LoggerOptions{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== Estate Explorer starting ===")
	logger.Info("Config: data dir %s | concurrency %d | retries %d | view %s",
		cfg.DataDir, cfg.MaxConcurrency, cfg.MaxRetries, opts.view)

	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 500 * time.Millisecond, Logger: logger}
	files := &sources.FileFetcher{Dir: cfg.DataDir}
	router := &sources.Router{
		Files:   files,
		HTTP:    sources.NewHTTPFetcher(cfg.FetchTimeout, retry),
		Browser: sources.NewBrowserFetcher(cfg.ChromeBin, cfg.FetchTimeout, logger, retry),
	}

	if cfg.PostgresEnabled || opts.importPG {
		pg, err := storage.NewPostgresSource(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer pg.Close()
		router.Postgres = pg

		if opts.importPG {
			if err := importPostgres(ctx, cfg, files, pg, logger); err != nil {
				logger.Error("PostgreSQL import failed: %v", err)
				os.Exit(1)
			}
			return
		}
	}

	favs, err := favorites.Open(cfg.FavoritesDB, cfg.FavoritesUser, logger)
	if err != nil {
		logger.Error("Favorites unavailable: %v", err)
		favs = nil
	} else {
		defer favs.Close()
	}

	if favs != nil {
		unsubscribe := favs.Subscribe(func(ids []string) {
			logger.Info("[favorites] %d favorites, refreshing view", len(ids))
		})
		defer unsubscribe()
	}
	if opts.toggle != "" {
		toggleFavorite(favs, opts.toggle, logger)
	}

	loader := sources.NewLoader(router, logger, cfg.MaxConcurrency, cfg.RateLimitMs)

	switch opts.view {
	case "map":
		runMap(ctx, cfg, opts, loader, router, favs, logger)
	default:
		runTable(ctx, cfg, opts, loader, favs, logger)
	}
}

func toggleFavorite(favs *favorites.Store, id string, logger *utils.Logger) {
	if favs == nil {
		logger.Warn("Favorites store is not available")
		return
	}
	added, err := favs.Toggle(id)
	switch {
	case errors.Is(err, favorites.ErrLoginRequired):
		fmt.Println("  로그인이 필요합니다. (FAVORITES_USER)")
	case err != nil:
		logger.Error("Favorite toggle failed: %v", err)
	case added:
		fmt.Printf("  ★ %s 관심 목록에 추가\n", id)
	default:
		fmt.Printf("  ☆ %s 관심 목록에서 제거\n", id)
	}
}

func descriptors(cfg *config.Config) []sources.SourceDescriptor {
	var out []sources.SourceDescriptor
	for _, cat := range cfg.SourceOrder() {
		out = append(out, sources.SourceDescriptor{URI: cfg.Sources[cat], Category: cat})
	}
	return out
}

func runTable(ctx context.Context, cfg *config.Config, opts *options, loader *sources.Loader, favs *favorites.Store, logger *utils.Logger) {
	corpus, err := loader.LoadTransactions(ctx, descriptors(cfg))
	if err != nil && !errors.Is(err, sources.ErrNoData) {
		logger.Error("Transaction load failed: %v", err)
		os.Exit(1)
	}

	state := opts.filterState(cfg.DefaultSido, cfg.TablePageSize)
	visible := services.ComputeVisibleTransactions(corpus.Records, state, favoriteSet(favs))
	sorted := services.SortTransactions(visible, state.SortKey)
	info := services.Paginate(len(sorted), state.Page, cfg.TablePageSize, cfg.TablePageCap)
	page := services.PageSlice(sorted, info)

	if opts.showOptions {
		printTableOptions(corpus.Records, state)
	}
	printTable(page, info, state, favs)

	if opts.export {
		w, err := storage.NewCSVWriter(cfg.CSVOutputPath, state.AreaUnit)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
		} else if err := exportPage(w, page, info); err != nil {
			logger.Error("CSV write failed: %v", err)
		} else {
			logger.Info("Page %d saved to %s", info.Page, cfg.CSVOutputPath)
		}
	}

	if opts.insights {
		insightSvc := services.NewInsightService(logger)
		insightSvc.Print(insightSvc.Generate(visible))
	}
}

func runMap(ctx context.Context, cfg *config.Config, opts *options, loader *sources.Loader, fetcher sources.Fetcher, favs *favorites.Store, logger *utils.Logger) {
	data, err := loader.LoadMapView(ctx, cfg.ListingsFile, cfg.RegionTree)
	if err != nil {
		if errors.Is(err, sources.ErrNoData) {
			fmt.Println("  표시할 매물이 없습니다.")
			return
		}
		logger.Error("Map data load failed: %v", err)
		printListings(nil, models.PageInfo{}, opts.filterState(cfg.DefaultSido, cfg.ListingPageSize), favs)
		os.Exit(1)
	}

	state := opts.filterState(data.Tree.FirstProvince(), cfg.ListingPageSize)
	var sel boundary.Selection
	if req, ok := boundary.RequestFor(state); ok && boundary.PolygonVisible(req.Level, opts.zoom) {
		sel.Begin(req)
	}
	visible := services.ComputeVisibleListings(data.Listings.Listings, state, data.Tree, favoriteSet(favs))
	info := services.Paginate(len(visible), state.Page, cfg.ListingPageSize, cfg.ListingPageCap)

	printListings(services.PageSlice(visible, info), info, state, favs)
	printClusters(visible, data.Tree, state, opts.zoom)

	provider, err := newBoundaryProvider(ctx, cfg, fetcher, logger)
	if err != nil {
		logger.Warn("Boundary provider unavailable: %v", err)
		sel.Clear()
		return
	}
	drawBoundary(ctx, provider, &sel)
}

func newBoundaryProvider(ctx context.Context, cfg *config.Config, fetcher sources.Fetcher, logger *utils.Logger) (*boundary.Provider, error) {
	fallback := make(map[boundary.Level]boundary.Table)
	for level, uri := range map[boundary.Level]string{
		boundary.LevelDong:     cfg.DongBoundaryFile,
		boundary.LevelDistrict: cfg.GuBoundaryFile,
	} {
		table, err := boundary.LoadTable(ctx, fetcher, uri)
		if err != nil {
			logger.Debug("[boundary] no %s fallback: %v", level, err)
			continue
		}
		fallback[level] = table
	}

	var remote boundary.Remote
	if cfg.VWorldKey != "" {
		remote = boundary.NewVWorldClient(cfg.VWorldBaseURL, cfg.VWorldKey, cfg.VWorldDomain,
			&utils.RetryConfig{MaxAttempts: 2, BaseDelay: 300 * time.Millisecond, Logger: logger})
	}
	return boundary.NewProvider(remote, boundary.Options{
		Timeout:   cfg.BoundaryTimeout,
		CacheSize: cfg.BoundaryCache,
		Fallback:  fallback,
	}, logger)
}

// drawBoundary resolves the outline sel is waiting for. A lookup that
// finishes after the selection moved on is dropped.
func drawBoundary(ctx context.Context, provider *boundary.Provider, sel *boundary.Selection) {
	tok, pending := sel.Pending()
	if !pending {
		return
	}
	coords, err := provider.Lookup(ctx, tok.Target)
	if err != nil {
		fmt.Printf("  경계: %s 없음\n", tok.Target.FullName())
		return
	}
	if sel.Apply(tok, coords) {
		fmt.Printf("  경계: %s (%d points)\n", tok.Target.FullName(), len(sel.Drawn()))
	}
}

func exportPage(w storage.PageWriter, page []models.TransactionRecord, info models.PageInfo) error {
	defer w.Close()
	return w.WritePage(page, info)
}

// favoriteSet keeps a nil store from becoming a non-nil interface.
func favoriteSet(favs *favorites.Store) services.FavoriteSet {
	if favs == nil {
		return nil
	}
	return favs
}

func importPostgres(ctx context.Context, cfg *config.Config, files sources.Fetcher, pg *storage.PostgresSource, logger *utils.Logger) error {
	for _, d := range descriptors(cfg) {
		data, err := files.Fetch(ctx, d.URI)
		if err != nil {
			logger.Warn("[import] %s skipped: %v", d.URI, err)
			continue
		}
		items, err := sources.ExtractItems(data)
		if err != nil {
			logger.Warn("[import] %s skipped: %v", d.URI, err)
			continue
		}
		if err := pg.Import(ctx, d.Category, items); err != nil {
			return err
		}
		logger.Info("[import] %s: %d items stored as postgres:%s", d.URI, len(items), d.Category)
	}
	return nil
}
