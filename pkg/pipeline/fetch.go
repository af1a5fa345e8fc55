package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/table"
)

const (
	fetchTimeout = 30 * time.Second

	// DefaultMaxFetchBytes bounds the size of a downloaded table.
	DefaultMaxFetchBytes = 64 << 20
)

// ErrFetch marks a failed table download.
var ErrFetch = stderrors.New("fetch failed")

// Fetcher downloads tables over HTTP. Connection failures and 5xx responses
// are retried with backoff.
type Fetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewFetcher creates a fetcher with a standard timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: fetchTimeout},
		MaxBytes: DefaultMaxFetchBytes,
	}
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch downloads rawURL. The format is taken from the URL path extension,
// then from the response Content-Type; it is empty when neither names one.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, table.Format, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, "", errors.New(errors.ErrCodeInvalidPath, "invalid table URL %q", rawURL)
	}

	var (
		data        []byte
		contentType string
	)
	err = cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, contentType, err = f.get(ctx, u.String())
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", errors.Wrap(errors.ErrCodeCancelled, err, "fetch %s", u.Redacted())
		}
		if errors.GetCode(err) != "" {
			return nil, "", err
		}
		return nil, "", errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", u.Redacted())
	}

	if format, err := table.Detect(path.Base(u.Path)); err == nil {
		return data, format, nil
	}
	return data, formatFromContentType(contentType), nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "text/csv, text/tab-separated-values, application/json;q=0.9, */*;q=0.5")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", cache.Retryable(fmt.Errorf("%w: %w", ErrFetch, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", errors.New(errors.ErrCodeNotFound, "table not found: %s", rawURL)
	case resp.StatusCode >= 500:
		return nil, "", cache.Retryable(fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode))
	default:
		return nil, "", fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxFetchBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", cache.Retryable(fmt.Errorf("%w: read body: %w", ErrFetch, err))
	}
	if int64(len(data)) > limit {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "table exceeds %d bytes", limit)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func formatFromContentType(ct string) table.Format {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "text/csv":
		return table.FormatCSV
	case "text/tab-separated-values":
		return table.FormatTSV
	case "application/json":
		return table.FormatJSON
	}
	return ""
}

// ExecuteURL downloads a table and executes the pipeline. An empty
// opts.Format is detected from the URL or the response; CSV is assumed when
// neither names a format.
func (r *Runner) ExecuteURL(ctx context.Context, rawURL string, opts Options) (*Result, error) {
	data, format, err := r.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if opts.Format == "" {
		opts.Format = string(format)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	logger.Debug("fetched table", "url", rawURL, "bytes", len(data), "format", opts.Format)
	return r.Execute(ctx, data, opts)
}
