package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"estate-explorer/utils"
)

// Fetcher returns the raw bytes behind a source URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// FileFetcher reads sources from the local data directory.
type FileFetcher struct {
	Dir string
}

func (f *FileFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(uri, "file://")
	if !filepath.IsAbs(path) && f.Dir != "" {
		path = filepath.Join(f.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file: read %q: %w", path, err)
	}
	return data, nil
}

// HTTPFetcher downloads sources with retry. 4xx responses are not retried.
type HTTPFetcher struct {
	client *http.Client
	retry  *utils.RetryConfig
}

// NewHTTPFetcher creates an HTTPFetcher with a per-request timeout.
func NewHTTPFetcher(timeout time.Duration, retry *utils.RetryConfig) *HTTPFetcher {
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		retry:  retry,
	}
}

func (h *HTTPFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	var body []byte
	err := h.retry.Do(ctx, "fetch "+uri, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return utils.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := h.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return utils.Permanent(fmt.Errorf("http: %s: status %d", uri, resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("http: %s: status %d", uri, resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// ErrUnsupportedSource is returned for URIs no configured fetcher handles.
var ErrUnsupportedSource = errors.New("unsupported source")

// Router dispatches a URI to a fetcher by its scheme. Plain paths go to Files.
type Router struct {
	Files    Fetcher
	HTTP     Fetcher
	Browser  Fetcher
	Postgres Fetcher
}

const (
	browserPrefix  = "browser+"
	postgresPrefix = "postgres:"
)

func (r *Router) Fetch(ctx context.Context, uri string) ([]byte, error) {
	var f Fetcher
	target := uri
	switch {
	case strings.HasPrefix(uri, browserPrefix):
		f, target = r.Browser, strings.TrimPrefix(uri, browserPrefix)
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		f = r.HTTP
	case strings.HasPrefix(uri, postgresPrefix):
		f = r.Postgres
	default:
		f = r.Files
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, uri)
	}
	return f.Fetch(ctx, target)
}
