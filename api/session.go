package api

import (
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultAPIRoot is the public CWMS Data API instance.
const DefaultAPIRoot = "https://cwms-data.usace.army.mil/cwms-data/"

// Session holds the connection configuration for a CDA instance. All fields
// are fixed at construction; a Session may be shared freely across
// goroutines.
type Session struct {
	apiRoot    string
	apiKey     string
	office     string
	keyInQuery bool
	http       *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	maxRetries uint64
}

// Option is a functional option for configuring a Session.
type Option func(*Session)

// WithAPIRoot sets the root URL of the CDA instance.
func WithAPIRoot(root string) Option {
	return func(s *Session) { s.apiRoot = root }
}

// WithAPIKey sets the authentication key attached to every request. The key
// is sent as `Authorization: apikey <key>` unless WithKeyAsQueryParam is
// also given.
func WithAPIKey(key string) Option {
	return func(s *Session) { s.apiKey = key }
}

// WithOffice sets the default office id reported by Session.Office. The
// library never injects it silently; callers and the CLI use it as the
// default when no office is given explicitly.
func WithOffice(office string) Option {
	return func(s *Session) { s.office = office }
}

// WithKeyAsQueryParam sends the API key as an `apikey` query parameter
// instead of an Authorization header.
func WithKeyAsQueryParam() Option {
	return func(s *Session) { s.keyInQuery = true }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.http = c }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.http.Timeout = d }
}

// WithRateLimit sets a client-side rate limiter applied before each request.
func WithRateLimit(rps float64) Option {
	return func(s *Session) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), int(math.Max(1, rps)))
		}
	}
}

// WithRetry enables bounded retries for idempotent GET requests. Only
// transport failures and 5xx responses are retried; everything else is
// surfaced immediately. Writes are never retried.
func WithRetry(maxRetries uint64) Option {
	return func(s *Session) { s.maxRetries = maxRetries }
}

// WithLogger sets the logger used for diagnostic output. The Session only
// logs at debug level; it never prints on the caller's behalf.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger.With("component", "cda-client") }
}

// NewSession creates a Session for a CDA instance. With no options the
// session points at DefaultAPIRoot with no authentication key, matching the
// behavior of an uninitialized client.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		apiRoot: DefaultAPIRoot,
		logger:  slog.Default().With("component", "cda-client"),
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	u, err := url.Parse(s.apiRoot)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &ValidationError{Err: &urlError{root: s.apiRoot}}
	}
	if !strings.HasSuffix(s.apiRoot, "/") {
		s.apiRoot += "/"
	}

	return s, nil
}

// APIRoot returns the root URL the session is connected to.
func (s *Session) APIRoot() string { return s.apiRoot }

// Office returns the session's default office id, which may be empty.
func (s *Session) Office() string { return s.office }

type urlError struct{ root string }

func (e *urlError) Error() string {
	return "api root is not a valid URL: " + e.root
}
