package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"estate-explorer/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir string
	// Sources maps each transaction category to its export URI. A URI may be
	// a path under DataDir, an http(s) URL, "browser+<url>" or "postgres:<category>".
	Sources      map[models.Category]string
	ListingsFile string
	RegionTree   string
	DefaultSido  string

	DongBoundaryFile string
	GuBoundaryFile   string
	VWorldKey        string
	VWorldDomain     string
	VWorldBaseURL    string
	BoundaryTimeout  time.Duration
	BoundaryCache    int

	TablePageSize   int
	TablePageCap    int
	ListingPageSize int
	ListingPageCap  int

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	FetchTimeout   time.Duration

	FavoritesDB   string
	FavoritesUser string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ChromeBin     string
	CSVOutputPath string
	LogLevel      string
	LogJSON       bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataDir:      getEnv("DATA_DIR", "./data"),
		Sources:      loadSources(),
		ListingsFile: getEnv("LISTINGS_FILE", "rooms.json"),
		RegionTree:   getEnv("REGION_TREE_FILE", "region-tree-seoul.json"),
		DefaultSido:  getEnv("DEFAULT_SIDO", models.DefaultSido),

		DongBoundaryFile: getEnv("DONG_BOUNDARY_FILE", "dong-boundaries.json"),
		GuBoundaryFile:   getEnv("GU_BOUNDARY_FILE", "gu-boundaries.json"),
		VWorldKey:        getEnv("VWORLD_KEY", ""),
		VWorldDomain:     getEnv("VWORLD_DOMAIN", "localhost"),
		VWorldBaseURL:    getEnv("VWORLD_BASE_URL", "https://api.vworld.kr/req/data"),
		BoundaryTimeout:  getEnvDuration("BOUNDARY_TIMEOUT", 10*time.Second),
		BoundaryCache:    getEnvInt("BOUNDARY_CACHE_SIZE", 256),

		TablePageSize:   getEnvInt("TABLE_PAGE_SIZE", 100),
		TablePageCap:    getEnvInt("TABLE_PAGE_CAP", 100),
		ListingPageSize: getEnvInt("LISTING_PAGE_SIZE", 15),
		ListingPageCap:  getEnvInt("LISTING_PAGE_CAP", 50),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 0),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 30*time.Second),

		FavoritesDB:   getEnv("FAVORITES_DB", "./data/favorites.db"),
		FavoritesUser: getEnv("FAVORITES_USER", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "estate"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "estate123"),
		PostgresDB:       getEnv("POSTGRES_DB", "estate_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ChromeBin:     getEnv("CHROME_BIN", ""),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/transactions.csv"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogJSON:       getEnvBool("LOG_JSON", false),
	}
}

// sourceKeys are the env vars naming each category's export, in table order.
var sourceKeys = []struct {
	env      string
	category models.Category
}{
	{"SOURCE_APT_TRADE", models.CategoryAptTrade},
	{"SOURCE_APT_RENT", models.CategoryAptRent},
	{"SOURCE_OFFI_TRADE", models.CategoryOffiTrade},
	{"SOURCE_OFFI_RENT", models.CategoryOffiRent},
	{"SOURCE_DANDI_TRADE", models.CategoryDandiTrade},
	{"SOURCE_DANDI_RENT", models.CategoryDandiRent},
	{"SOURCE_ROW_TRADE", models.CategoryRowTrade},
	{"SOURCE_ROW_RENT", models.CategoryRowRent},
}

// loadSources defaults every category to "<category>.json". Setting a key to
// "-" disables that category.
func loadSources() map[models.Category]string {
	out := make(map[models.Category]string, len(sourceKeys))
	for _, k := range sourceKeys {
		uri := getEnv(k.env, string(k.category)+".json")
		if uri == "-" {
			continue
		}
		out[k.category] = uri
	}
	return out
}

// SourceOrder returns the configured categories in table order.
func (c *Config) SourceOrder() []models.Category {
	out := make([]models.Category, 0, len(c.Sources))
	for _, k := range sourceKeys {
		if _, ok := c.Sources[k.category]; ok {
			out = append(out, k.category)
		}
	}
	return out
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}
