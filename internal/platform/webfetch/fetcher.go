package webfetch

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxBodySize = 6 << 20
	maxRedirects       = 5
)

// ErrUnexpectedStatus marks a non-2xx answer.
var ErrUnexpectedStatus = crerr.New("unexpected status")

type Config struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int
}

// Fetcher loads public web pages and small JSON documents that are not worth a
// dedicated API client.
type Fetcher struct {
	client    *fasthttp.Client
	userAgent string
	timeout   time.Duration
}

func New(cfg Config) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBody := cfg.MaxBodySize
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}
	return &Fetcher{
		client: &fasthttp.Client{
			ReadTimeout:              timeout,
			WriteTimeout:             timeout,
			MaxResponseBodySize:      maxBody,
			NoDefaultUserAgentHeader: true,
		},
		userAgent: strings.TrimSpace(cfg.UserAgent),
		timeout:   timeout,
	}
}

// Get returns the body of a GET request. Redirects are followed.
func (f *Fetcher) Get(ctx context.Context, url, accept string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if f.userAgent != "" {
		req.Header.SetUserAgent(f.userAgent)
	}
	if accept != "" {
		req.Header.Set(fasthttp.HeaderAccept, accept)
	}

	done := make(chan error, 1)
	go func() {
		done <- f.client.DoRedirects(req, resp, maxRedirects)
	}()

	select {
	case <-ctx.Done():
		// The request still owns req/resp until it returns.
		<-done
		return nil, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, crerr.Wrapf(err, "GET %s", url)
		}
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return nil, crerr.Wrapf(ErrUnexpectedStatus, "GET %s: status %d", url, status)
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		return nil, crerr.Wrapf(err, "GET %s: decode body", url)
	}
	return append([]byte(nil), body...), nil
}
