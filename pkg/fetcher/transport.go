package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// StatusUnknown marks a response whose status code could not be determined
const StatusUnknown = 0

type Request struct {
	URL     string
	Profile Profile
	Headers map[string]string
	Timeout time.Duration
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs a single GET. Non-2xx statuses are returned as
// responses; errors are reserved for failures with no status at all.
type Transport interface {
	Do(ctx context.Context, request Request) (*Response, error)
}

// HTTPTransport is the primary transport, built on net/http
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport whose cookie jar keeps any challenge
// cookies set by the upstream WAF between attempts
func NewHTTPTransport() *HTTPTransport {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		jar = nil
	}

	return &HTTPTransport{
		client: &http.Client{Jar: jar},
	}
}

func (t *HTTPTransport) Do(ctx context.Context, request Request) (*Response, error) {
	if request.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, request.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, request.URL, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range request.Headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
