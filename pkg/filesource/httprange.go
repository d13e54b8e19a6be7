package filesource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/WhileEndless/go-rangedecode/pkg/chunkmap"
	"github.com/WhileEndless/go-rangedecode/pkg/rangeerr"
)

// HTTPRange is the "host blob" adapter: it fetches byte ranges of a
// remote resource over HTTP using the Range header, following redirects
// the way a plain http.Client would not when the target responds with a
// 3xx instead of honoring Range. Size is resolved once, at construction,
// from a HEAD request's Content-Length.
type HTTPRange struct {
	rt   http.RoundTripper
	uri  string
	size uint64
}

// NewHTTPRange issues a HEAD request against uri to learn its size and
// returns an HTTPRange reading from it. A nil rt uses
// http.DefaultTransport.
func NewHTTPRange(ctx context.Context, uri string, rt http.RoundTripper) (*HTTPRange, error) {
	if rt == nil {
		rt = http.DefaultTransport
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, uri, nil)
	if err != nil {
		return nil, rangeerr.Wrap("failed to build HEAD request", "NewHTTPRange", err)
	}

	res, err := rt.RoundTrip(req)
	if err != nil {
		return nil, rangeerr.Wrap("HEAD request failed", "NewHTTPRange", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, rangeerr.New(rangeerr.SourceReadError,
			fmt.Sprintf("HEAD %s returned status %d", uri, res.StatusCode), "NewHTTPRange")
	}

	size, err := strconv.ParseUint(res.Header.Get("Content-Length"), 10, 64)
	if err != nil {
		return nil, rangeerr.Wrap("missing or invalid Content-Length", "NewHTTPRange", err)
	}

	return &HTTPRange{rt: rt, uri: uri, size: size}, nil
}

func (h *HTTPRange) Size() uint64 {
	return h.size
}

// Read fetches r with a Range header, following any redirect the server
// issues instead of a 206 Partial Content response.
func (h *HTTPRange) Read(ctx context.Context, r chunkmap.Range) ([]byte, error) {
	if r.End > h.size || r.Start > r.End {
		return nil, rangeerr.New(rangeerr.OutOfCoverage,
			"range exceeds resource bounds", "HTTPRange.Read")
	}
	return h.readFrom(ctx, h.uri, r, 0)
}

const maxRedirects = 10

func (h *HTTPRange) readFrom(ctx context.Context, uri string, r chunkmap.Range, depth int) ([]byte, error) {
	if depth > maxRedirects {
		return nil, rangeerr.New(rangeerr.SourceReadError, "too many redirects", "HTTPRange.Read")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, rangeerr.Wrap("failed to build GET request", "HTTPRange.Read", err)
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", r.Start, r.End-1))

	res, err := h.rt.RoundTrip(req)
	if err != nil {
		return nil, rangeerr.Wrap("range request failed", "HTTPRange.Read", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusPartialContent:
		buf := make([]byte, r.Len())
		if _, err := io.ReadFull(res.Body, buf); err != nil {
			return nil, rangeerr.Wrap("short read on range response", "HTTPRange.Read", err)
		}
		return buf, nil
	case res.StatusCode/100 == 3:
		loc := res.Header.Get("Location")
		if loc == "" {
			return nil, rangeerr.New(rangeerr.SourceReadError,
				fmt.Sprintf("redirect status %d without Location", res.StatusCode), "HTTPRange.Read")
		}
		next, err := req.URL.Parse(loc)
		if err != nil {
			return nil, rangeerr.Wrap("invalid redirect location", "HTTPRange.Read", err)
		}
		return h.readFrom(ctx, next.String(), r, depth+1)
	default:
		return nil, rangeerr.New(rangeerr.SourceReadError,
			fmt.Sprintf("%q does not support range requests, saw status %d", uri, res.StatusCode), "HTTPRange.Read")
	}
}
