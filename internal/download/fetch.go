// Package download streams remote assets into the local pack
// directory, one request at a time.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"
)

// Downloads can be large archive files, so the default budget is far
// above the catalog client's per-request timeout.
const defaultTimeout = 15 * time.Minute

// Fetcher downloads resolved links into a destination directory.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	log        *slog.Logger
	onProgress func(written, total int64)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(f *Fetcher) {
		f.log = log.With("component", "download")
	}
}

// WithProgress registers a callback invoked as body bytes are written.
// total is -1 when the server sent no Content-Length.
func WithProgress(fn func(written, total int64)) Option {
	return func(f *Fetcher) {
		f.onProgress = fn
	}
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: "DemoscenePackBuilder",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAndStore downloads rawURL into destDir and returns the stored
// file path. The filename comes from the Content-Disposition header
// when the server sends one, otherwise from the URL, sanitized either
// way. On any failure the partial file is removed.
func (f *Fetcher) FetchAndStore(ctx context.Context, rawURL, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	name := filenameFor(resp, rawURL)
	if name == "" {
		return "", fmt.Errorf("no usable filename for %s", rawURL)
	}

	dest := filepath.Join(destDir, name)
	if err := ValidatePath(dest, destDir); err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	var w io.Writer = out
	if f.onProgress != nil {
		w = &ProgressWriter{Writer: out, Total: resp.ContentLength, OnUpdate: f.onProgress}
	}

	written, copyErr := io.Copy(w, resp.Body)
	closeErr := out.Close()

	err = copyErr
	if err == nil {
		err = closeErr
	}
	if err == nil && resp.ContentLength > 0 && written != resp.ContentLength {
		err = fmt.Errorf("%w: got %d of %d bytes", ErrIncomplete, written, resp.ContentLength)
	}
	if err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}

	if f.log != nil {
		f.log.Debug("stored file", "url", rawURL, "path", dest, "bytes", written, "duration_ms", time.Since(start).Milliseconds())
	}
	return dest, nil
}

// filenameFor derives a safe local filename from the response's
// Content-Disposition header or, failing that, the request URL.
func filenameFor(resp *http.Response, rawURL string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := SanitizeFilename(params["filename"]); name != "" {
				return name
			}
		}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return SanitizeFilename(path.Base(u.Path))
}
