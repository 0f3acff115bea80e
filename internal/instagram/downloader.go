package instagram

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// userAgent is sent on page and media requests. Instagram serves the
// og:video meta tag to generic browser agents but not to Go's default one.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"

// maxPageBytes bounds how much of the post page is read looking for og:video.
const maxPageBytes = 4 << 20

var ogVideoPattern = regexp.MustCompile(`<meta[^>]+property="og:video"[^>]+content="([^"]+)"`)

// Downloader resolves a post URL to its video and saves it to a temp dir.
type Downloader struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Downloader during construction.
type Option func(*Downloader)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Downloader) { d.httpClient = c }
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(d *Downloader) { d.logger = l }
}

// NewDownloader returns a Downloader with a 30s default HTTP timeout.
func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches the post page, follows its og:video meta tag, and writes
// the video to a fresh temp dir. The returned cleanup removes the file and
// dir best-effort; callers defer it regardless of how the analysis ends.
// Posts without a video (login-walled, image-only, deleted) return an error.
// Callers route by IsPostURL; Download itself only cares that the page has
// an og:video tag.
func (d *Downloader) Download(ctx context.Context, postURL string) (path string, cleanup func(), err error) {
	videoURL, err := d.resolveVideoURL(ctx, postURL)
	if err != nil {
		return "", nil, err
	}

	tempDir, err := os.MkdirTemp("", "deepscan-instagram-")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	path = filepath.Join(tempDir, "instagram_video.mp4")
	cleanup = func() {
		_ = os.Remove(path)
		_ = os.Remove(tempDir)
	}

	if err := d.fetchTo(ctx, videoURL, path); err != nil {
		cleanup()
		return "", nil, err
	}

	d.logger.InfoContext(ctx, "instagram video downloaded", "post", postURL, "path", path)
	return path, cleanup, nil
}

// resolveVideoURL extracts the og:video target from the post page.
func (d *Downloader) resolveVideoURL(ctx context.Context, postURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, postURL, nil)
	if err != nil {
		return "", fmt.Errorf("create page request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch post page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch post page: HTTP %d", resp.StatusCode)
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read post page: %w", err)
	}

	m := ogVideoPattern.FindSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("post has no downloadable video (private, image-only, or removed)")
	}
	return html.UnescapeString(string(m[1])), nil
}

// fetchTo streams the video URL into the file at path.
func (d *Downloader) fetchTo(ctx context.Context, videoURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return fmt.Errorf("create video request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download video: HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create video file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write video file: %w", err)
	}
	return f.Close()
}
