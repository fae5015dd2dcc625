package config

import (
	"testing"
	"time"

	"estate-explorer/models"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"TABLE_PAGE_SIZE", "BOUNDARY_TIMEOUT", "LOG_JSON", "SOURCE_APT_TRADE"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.TablePageSize != 100 || cfg.TablePageCap != 100 {
		t.Errorf("table paging = %d/%d; want 100/100", cfg.TablePageSize, cfg.TablePageCap)
	}
	if cfg.ListingPageSize != 15 || cfg.ListingPageCap != 50 {
		t.Errorf("listing paging = %d/%d; want 15/50", cfg.ListingPageSize, cfg.ListingPageCap)
	}
	if cfg.BoundaryTimeout != 10*time.Second {
		t.Errorf("BoundaryTimeout = %v; want 10s", cfg.BoundaryTimeout)
	}
	if cfg.Sources[models.CategoryAptTrade] != "aptTrade.json" {
		t.Errorf("aptTrade source = %q", cfg.Sources[models.CategoryAptTrade])
	}
	if cfg.LogJSON {
		t.Error("LogJSON should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TABLE_PAGE_SIZE", "50")
	t.Setenv("TABLE_PAGE_CAP", "not-a-number")
	t.Setenv("BOUNDARY_TIMEOUT", "2s")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("POSTGRES_ENABLED", "yes")
	t.Setenv("SOURCE_APT_RENT", "-")
	t.Setenv("SOURCE_OFFI_TRADE", "https://example.org/offi.json")

	cfg := Load()
	if cfg.TablePageSize != 50 {
		t.Errorf("TablePageSize = %d; want 50", cfg.TablePageSize)
	}
	if cfg.TablePageCap != 100 {
		t.Errorf("unparseable int should fall back: got %d", cfg.TablePageCap)
	}
	if cfg.BoundaryTimeout != 2*time.Second {
		t.Errorf("BoundaryTimeout = %v; want 2s", cfg.BoundaryTimeout)
	}
	if !cfg.LogJSON {
		t.Error("LOG_JSON=true should enable JSON logs")
	}
	if cfg.PostgresEnabled {
		t.Error("unparseable bool should fall back to false")
	}
	if _, ok := cfg.Sources[models.CategoryAptRent]; ok {
		t.Error("\"-\" should disable a category")
	}

	order := cfg.SourceOrder()
	if len(order) != 7 || order[0] != models.CategoryAptTrade || order[1] != models.CategoryOffiTrade {
		t.Errorf("SourceOrder() = %v", order)
	}
	if cfg.Sources[models.CategoryOffiTrade] != "https://example.org/offi.json" {
		t.Errorf("offiTrade source = %q", cfg.Sources[models.CategoryOffiTrade])
	}
}

func TestDSN(t *testing.T) {
	c := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "estate", PostgresSSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=estate sslmode=disable"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q; want %q", got, want)
	}
}
