package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/util"
)

type Options struct {
	Timeout            time.Duration
	Profile            Profile
	RetryCount         int
	AllowHTTPFallback  bool
	TrustUnknownStatus bool
}

func DefaultOptions() Options {
	return Options{
		Timeout:           10 * time.Second,
		Profile:           ProfileAuto,
		RetryCount:        1,
		AllowHTTPFallback: true,
	}
}

// JSONFetcher is satisfied by *Fetcher and by fakes in tests
type JSONFetcher interface {
	FetchJSON(ctx context.Context, rawURL string, options Options) (map[string]any, error)
}

// Fetcher retrieves JSON documents from the iTranvias endpoints. It walks a
// matrix of URL schemes and header profiles, retrying blocked responses with
// backoff and retrying them once through an alternate transport.
type Fetcher struct {
	primary   Transport
	alternate Transport
	timer     backoff.Timer
}

type Option func(*Fetcher)

// WithAlternateTransport sets the transport used when the primary is answered
// with 403 or 429
func WithAlternateTransport(transport Transport) Option {
	return func(f *Fetcher) {
		f.alternate = transport
	}
}

func withTimer(timer backoff.Timer) Option {
	return func(f *Fetcher) {
		f.timer = timer
	}
}

func New(primary Transport, options ...Option) *Fetcher {
	f := &Fetcher{primary: primary}
	for _, option := range options {
		option(f)
	}

	return f
}

// NewDefault uses net/http as the primary transport and curl as the alternate
func NewDefault(curlPath string) *Fetcher {
	return New(NewHTTPTransport(), WithAlternateTransport(NewCurlTransport(curlPath)))
}

// Targets lists the URLs to try. An https URL is followed by its http
// equivalent when fallback is allowed.
func Targets(rawURL string, allowHTTPFallback bool) []string {
	targets := []string{rawURL}
	if allowHTTPFallback && strings.HasPrefix(rawURL, "https://") {
		targets = append(targets, "http://"+strings.TrimPrefix(rawURL, "https://"))
	}

	return targets
}

// FetchJSON returns the decoded JSON object at rawURL. Every error it returns
// is a *FetchError.
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string, options Options) (map[string]any, error) {
	body, err := f.FetchBody(ctx, rawURL, options)
	if err != nil {
		return nil, err
	}

	return DecodeObject(body)
}

// FetchBody returns the raw body of the first successful attempt
func (f *Fetcher) FetchBody(ctx context.Context, rawURL string, options Options) ([]byte, error) {
	var lastErr error

	for _, target := range Targets(rawURL, options.AllowHTTPFallback) {
		for _, profile := range options.Profile.Expand() {
			body, err := f.attempt(ctx, target, profile, options)
			if err == nil {
				return body, nil
			}
			lastErr = err

			if ctx.Err() != nil {
				return nil, &FetchError{Code: ErrorCodeUnavailable, Err: ctx.Err()}
			}

			log.Debug().Err(err).Str("url", target).Str("profile", string(profile)).Msg("Fetch combination failed")
		}
	}

	return nil, exhaustedError(lastErr)
}

func (f *Fetcher) attempt(ctx context.Context, target string, profile Profile, options Options) ([]byte, error) {
	request := Request{
		URL:     target,
		Profile: profile,
		Headers: profile.Headers(),
		Timeout: options.Timeout,
	}

	retries := options.RetryCount
	if retries < 0 {
		retries = 0
	}
	policy := &blockingBackOff{}

	operation := func() ([]byte, error) {
		body, err := f.roundTrip(ctx, request, options)
		if err == nil {
			return body, nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Blocking() {
			policy.lastStatus = statusErr.StatusCode
			return nil, err
		}

		return nil, backoff.Permanent(err)
	}

	notify := func(err error, delay time.Duration) {
		log.Warn().
			Err(err).
			Str("url", target).
			Str("profile", string(profile)).
			Int("status", policy.lastStatus).
			Int("attempt", policy.attempt).
			Dur("delay", delay).
			Msg("Request blocked, backing off")
	}

	return backoff.RetryNotifyWithTimerAndData(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx),
		notify,
		f.timer,
	)
}

func (f *Fetcher) roundTrip(ctx context.Context, request Request, options Options) ([]byte, error) {
	response, err := f.primary.Do(ctx, request)
	if err != nil {
		return nil, &TransportError{URL: request.URL, Err: err}
	}

	if IsBlockingStatus(response.StatusCode) && f.alternate != nil {
		log.Debug().
			Int("status", response.StatusCode).
			Str("url", request.URL).
			Msg("Primary transport blocked, trying alternate transport")

		response, err = f.alternate.Do(ctx, request)
		if err != nil {
			return nil, &TransportError{URL: request.URL, Err: err}
		}
	}

	return f.accept(request, response, options)
}

func (f *Fetcher) accept(request Request, response *Response, options Options) ([]byte, error) {
	switch {
	case response.StatusCode == StatusUnknown:
		log.Warn().
			Str("url", request.URL).
			Bool("trusted", options.TrustUnknownStatus).
			Str("body", util.TrimString(string(response.Body), 120)).
			Msg("Response carried no status code")

		if options.TrustUnknownStatus {
			return response.Body, nil
		}
		return nil, &TransportError{URL: request.URL, Err: ErrUnknownStatus}
	case response.StatusCode >= 200 && response.StatusCode < 300:
		return response.Body, nil
	default:
		return nil, &StatusError{URL: request.URL, StatusCode: response.StatusCode}
	}
}

// DecodeObject parses body as a single JSON object. Numbers are kept as
// json.Number.
func DecodeObject(body []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, &FetchError{Code: ErrorCodeInvalidJSON, Err: err}
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, &FetchError{Code: ErrorCodeInvalidJSON, Err: errors.New("unexpected data after JSON document")}
	}

	object, ok := payload.(map[string]any)
	if !ok {
		return nil, &FetchError{Code: ErrorCodeInvalidRoot, Message: "JSON root is not an object"}
	}

	return object, nil
}
