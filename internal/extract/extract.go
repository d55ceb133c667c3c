// Package extract pulls readable text out of web pages so a bookmarked URL
// can be turned into a tweet.
package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"bookmarkbrain/internal/logger"
)

const (
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a page is read.
	maxBodyBytes = 5 << 20

	userAgent = "Mozilla/5.0 (compatible; BookMarkBrain/1.0; +https://github.com/bookmarkbrain)"
)

// contentSelectors are tried in order; the first non-empty match wins.
var contentSelectors = []string{"div.tweet-text", "article", "main", "body"}

// Page is the readable part of a fetched page. Content is empty when
// nothing could be extracted.
type Page struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Cache stores extracted pages between fetches.
type Cache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any)
}

// ErrForbiddenAddress is returned when a fetch would dial a loopback,
// private, link-local or otherwise non-public address.
var ErrForbiddenAddress = errors.New("address is not publicly routable")

// Extractor fetches pages over HTTP and parses them with goquery.
type Extractor struct {
	client *http.Client
	cache  Cache
	log    *logger.Logger

	// allowPrivate disables the public-address check. Tests only.
	allowPrivate bool
}

// New returns an Extractor. cache may be nil to disable caching.
//
// Every connection, including the ones made while following redirects, is
// checked after DNS resolution and refused unless the address is public.
// Proxies from the environment are ignored since they would dial on our
// behalf.
func New(timeout time.Duration, cache Cache, log *logger.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	e := &Extractor{
		cache: cache,
		log:   log.With("component", "extract"),
	}
	dialer := &net.Dialer{Timeout: timeout, Control: e.checkAddress}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	e.client = &http.Client{Timeout: timeout, Transport: transport}
	return e
}

func (e *Extractor) checkAddress(_, address string, _ syscall.RawConn) error {
	if e.allowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return errors.Wrap(err, "split dial address")
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublic(ip) {
		return errors.Wrapf(ErrForbiddenAddress, "dial %s", host)
	}
	return nil
}

// isPublic reports whether ip may be fetched on a user's behalf.
func isPublic(ip net.IP) bool {
	switch {
	case ip.IsUnspecified(), ip.IsLoopback(), ip.IsPrivate():
		return false
	case ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
		return false
	case ip.IsMulticast(), ip.IsInterfaceLocalMulticast():
		return false
	}
	// 100.64.0.0/10, carrier-grade NAT.
	if v4 := ip.To4(); v4 != nil && v4[0] == 100 && v4[1]&0xc0 == 64 {
		return false
	}
	return true
}

// Extract returns the readable content of rawURL. Network and parse
// failures are logged and produce a Page with empty content; only a URL
// that cannot form a request is reported as an error. Pages with content
// are cached.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Page, error) {
	key := cacheKey(rawURL)
	if e.cache != nil {
		var cached Page
		if e.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request for "+rawURL)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	page, err := e.fetch(req)
	if err != nil {
		e.log.Warn("page extraction failed", "url", rawURL, "error", err)
		return &Page{URL: rawURL}, nil
	}

	if page.Content != "" && e.cache != nil {
		e.cache.Set(ctx, key, page)
	}
	e.log.Debug("page extracted", "url", rawURL, "title", page.Title, "chars", len(page.Content))
	return page, nil
}

func (e *Extractor) fetch(req *http.Request) (*Page, error) {
	res, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch page")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errors.Errorf("unexpected status %d", res.StatusCode)
	}

	page, err := Parse(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	page.URL = req.URL.String()
	return page, nil
}

// Parse extracts title and content from an HTML document.
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}

	doc.Find("script, style, noscript, template").Remove()

	page := &Page{Title: collapse(doc.Find("head title").First().Text())}
	for _, sel := range contentSelectors {
		if text := collapse(doc.Find(sel).First().Text()); text != "" {
			page.Content = text
			break
		}
	}
	return page, nil
}

// collapse trims s and folds every whitespace run into a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}
