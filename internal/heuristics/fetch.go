package heuristics

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/prospect-cli/internal/model"
)

// defaultMaxBodyBytes bounds the homepage read. It must sit above the
// scorer's 1.2 MiB poor-mobile cutoff or heavy pages would never trip it.
const defaultMaxBodyBytes = 4 * 1024 * 1024

const defaultUserAgent = "Mozilla/5.0 (compatible; ProspectBot/1.0)"

// Fetcher downloads homepages for heuristic extraction.
type Fetcher struct {
	http         *http.Client
	maxBodyBytes int64
	userAgent    string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.http.Timeout = d
	}
}

// WithMaxBodyBytes overrides the homepage read limit.
func WithMaxBodyBytes(n int64) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// WithUserAgent overrides the request User-Agent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// NewFetcher creates a Fetcher with sensible connect and read timeouts.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		maxBodyBytes: defaultMaxBodyBytes,
		userAgent:    defaultUserAgent,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch downloads the page at rawURL, decoded to UTF-8. The returned
// size is the raw byte count before decoding, which is what the
// page-weight rule scores.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (body []byte, rawSize int64, err error) {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, eris.Wrap(err, "heuristics: create request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, 0, eris.Wrap(err, "heuristics: fetch homepage")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return nil, 0, eris.Errorf("heuristics: homepage returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, 0, eris.Wrap(err, "heuristics: read homepage")
	}

	return decodeToUTF8(raw, resp.Header.Get("Content-Type")), int64(len(raw)), nil
}

// Crawl fetches rawURL and extracts its heuristics in one call.
func (f *Fetcher) Crawl(ctx context.Context, rawURL string) (model.HeuristicResult, error) {
	body, rawSize, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return model.HeuristicResult{}, err
	}

	h, err := Extract(body)
	if err != nil {
		return model.HeuristicResult{}, err
	}
	h.HTMLSizeBytes = rawSize

	zap.L().Debug("heuristics: crawl complete",
		zap.String("url", rawURL),
		zap.Int64("bytes", rawSize),
		zap.Bool("booking", h.HasBooking),
		zap.Bool("chat", h.HasChat),
	)
	return h, nil
}

// decodeToUTF8 converts a fetched page to UTF-8 using the detected
// charset. Pages that fail to decode are returned as-is; goquery copes
// with mostly-valid input.
func decodeToUTF8(raw []byte, contentType string) []byte {
	_, name, _ := charset.DetermineEncoding(raw, contentType)
	if name == "" || name == "utf-8" {
		return raw
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return raw
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return raw
	}
	return decoded
}
