// Package probe checks a running deployment against its configuration document.
//
// A probe issues GET requests for the landing page, the collections listing,
// and each published resource's collection endpoint, retrying transient
// failures with exponential backoff. The result is a per-endpoint report that
// the check command renders for the operator.
package probe

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"

	"github.com/geoatlas/geoconf/pkg/constants"
	"github.com/geoatlas/geoconf/pkg/document"
	"github.com/geoatlas/geoconf/pkg/errors"
	"github.com/geoatlas/geoconf/pkg/logging"
)

// EndpointResult captures the outcome of probing a single endpoint.
type EndpointResult struct {
	Path     string        `json:"path" yaml:"path"`
	Status   int           `json:"status,omitempty" yaml:"status,omitempty"`
	Latency  time.Duration `json:"latency" yaml:"latency"`
	Attempts int           `json:"attempts" yaml:"attempts"`
	Err      error         `json:"-" yaml:"-"`
}

// OK reports whether the endpoint responded with 200.
func (r EndpointResult) OK() bool {
	return r.Err == nil && r.Status == http.StatusOK
}

// Report holds the results of probing a deployment.
type Report struct {
	BaseURL string           `json:"base_url" yaml:"base_url"`
	Results []EndpointResult `json:"results" yaml:"results"`
	Elapsed time.Duration    `json:"elapsed" yaml:"elapsed"`
}

// Failed returns the number of endpoints that did not respond with 200.
func (r *Report) Failed() int {
	failed := 0
	for _, result := range r.Results {
		if !result.OK() {
			failed++
		}
	}
	return failed
}

// OK reports whether every probed endpoint responded with 200.
func (r *Report) OK() bool {
	return r.Failed() == 0
}

// Prober issues HTTP GET requests against a deployment's published endpoints.
type Prober struct {
	client          *http.Client
	maxTries        uint
	initialInterval time.Duration
}

// Option configures a Prober.
type Option func(*Prober)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) {
		p.client = client
	}
}

// WithMaxTries sets the number of attempts per endpoint, including the first.
func WithMaxTries(n uint) Option {
	return func(p *Prober) {
		if n > 0 {
			p.maxTries = n
		}
	}
}

// WithInitialInterval sets the first retry delay. Mainly useful in tests.
func WithInitialInterval(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.initialInterval = d
		}
	}
}

// New creates a Prober.
func New(opts ...Option) *Prober {
	p := &Prober{
		client:          &http.Client{Timeout: constants.DefaultHTTPTimeout},
		maxTries:        constants.MaxRetries,
		initialInterval: constants.RetryBackoff,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe requests the landing page, the collections listing, and each
// resource's collection endpoint. baseURL overrides the document's server
// url when non-empty. Results keep endpoint order regardless of which
// request finishes first.
func (p *Prober) Probe(ctx context.Context, baseURL string, doc *document.Document) (*Report, error) {
	if baseURL == "" {
		baseURL = doc.Server.URL
	}
	base := strings.TrimRight(baseURL, "/")

	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.NewValidationError("url", baseURL, "base URL must be absolute")
	}

	accept := doc.Server.Mimetype
	if accept == "" {
		accept = document.DefaultMimetype
	}

	paths := []string{"/", "/collections"}
	for _, key := range doc.ResourceKeys() {
		paths = append(paths, "/collections/"+key)
	}

	report := &Report{
		BaseURL: base,
		Results: make([]EndpointResult, len(paths)),
	}

	start := time.Now()

	// Bounded so a probe never hammers a struggling deployment.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(constants.MaxConcurrentProbes)

	var mu sync.Mutex
	for i, path := range paths {
		group.Go(func() error {
			result := p.fetch(groupCtx, base, path, accept)
			mu.Lock()
			report.Results[i] = result
			mu.Unlock()
			return nil
		})
	}

	// Goroutines always return nil; Wait only surfaces ctx cancellation.
	_ = group.Wait()
	report.Elapsed = time.Since(start)

	if err := ctx.Err(); err != nil {
		return report, err
	}

	return report, nil
}

// fetch requests a single endpoint, retrying transient failures.
func (p *Prober) fetch(ctx context.Context, base, path, accept string) EndpointResult {
	result := EndpointResult{Path: path}
	endpoint := base + path

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = p.initialInterval
	expBackoff.MaxInterval = constants.MaxRetryBackoff

	attempts := 0
	operation := func() (int, error) {
		attempts++

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return 0, backoff.Permanent(err)
		}
		req.Header.Set("Accept", accept)

		resp, err := p.client.Do(req)
		if err != nil {
			// Network errors are worth retrying
			return 0, err
		}
		defer func() { _ = resp.Body.Close() }()

		// Server errors may be transient; client errors are deterministic
		// and reported through the status code alone.
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp.StatusCode, errors.NewAPIError(endpoint, resp.StatusCode, http.StatusText(resp.StatusCode))
		}

		return resp.StatusCode, nil
	}

	start := time.Now()
	status, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxTries(p.maxTries),
		backoff.WithNotify(func(err error, delay time.Duration) {
			logging.Debug().
				Str("endpoint", endpoint).
				Dur("delay", delay).
				Err(err).
				Msg("Retrying probe")
		}),
	)

	result.Latency = time.Since(start)
	result.Attempts = attempts
	result.Status = status

	if err != nil {
		var apiErr *errors.APIError
		if stderrors.As(err, &apiErr) {
			result.Status = apiErr.StatusCode
		}
		result.Err = err
	}

	return result
}

// Probe runs a one-shot probe with default settings.
func Probe(ctx context.Context, baseURL string, doc *document.Document, opts ...Option) (*Report, error) {
	return New(opts...).Probe(ctx, baseURL, doc)
}
