package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API versions understood by the CDA. Version 2 is the default for most
// endpoints; a handful of older resources are v1 only.
const (
	VersionJSON   = 1   // application/json
	VersionJSONv2 = 2   // application/json;version=2
	VersionXMLv2  = 102 // application/xml;version=2
)

// Request is a fully-formed descriptor for one CDA call. It is produced by
// the endpoint wrappers and executed by the Session transport.
type Request struct {
	Method   string
	Endpoint string // path relative to the API root, e.g. "timeseries"
	Query    url.Values
	Version  int
	Body     []byte
}

// acceptHeader returns the Accept (or Content-Type) media type for a CDA
// API version.
func acceptHeader(version int) (string, error) {
	switch version {
	case VersionJSON:
		return "application/json", nil
	case VersionJSONv2:
		return "application/json;version=2", nil
	case VersionXMLv2:
		return "application/xml;version=2", nil
	default:
		return "", &ValidationError{Err: fmt.Errorf("API version %d is not supported", version)}
	}
}

// buildURL joins the API root, endpoint path, and query string. The API key
// is appended here when the session is configured for query-parameter auth.
func (s *Session) buildURL(endpoint string, query url.Values) string {
	u := s.apiRoot + strings.TrimLeft(endpoint, "/")
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	if s.keyInQuery && s.apiKey != "" {
		q.Set("apikey", s.apiKey)
	}
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// Query accumulates CDA query parameters. Setters skip zero values so that
// optional parameters are simply absent from the request, matching the
// server's treatment of unset filters.
type Query struct {
	values url.Values
}

// NewQuery creates an empty parameter set.
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// Values returns the accumulated parameters. A nil Query yields an empty
// set so wrappers can pass through optional queries untouched.
func (q *Query) Values() url.Values {
	if q == nil {
		return url.Values{}
	}
	return q.values
}

// Set adds a string parameter unconditionally.
func (q *Query) Set(key, value string) *Query {
	q.values.Set(key, value)
	return q
}

// SetNonEmpty adds a string parameter unless it is empty.
func (q *Query) SetNonEmpty(key, value string) *Query {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

// SetInt adds an integer parameter unless it is zero.
func (q *Query) SetInt(key string, value int) *Query {
	if value != 0 {
		q.values.Set(key, strconv.Itoa(value))
	}
	return q
}

// SetFloat adds a numeric parameter unless it is nil. Optional numeric
// filters use pointers because zero is a meaningful value for them.
func (q *Query) SetFloat(key string, value *float64) *Query {
	if value != nil {
		q.values.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
	return q
}

// SetBool adds a boolean parameter.
func (q *Query) SetBool(key string, value bool) *Query {
	q.values.Set(key, strconv.FormatBool(value))
	return q
}

// SetTime adds an ISO 8601 extended timestamp unless the time is zero.
// Naive callers should pass UTC times; a location attached to the value is
// honored.
func (q *Query) SetTime(key string, value time.Time) *Query {
	if !value.IsZero() {
		q.values.Set(key, value.Format(time.RFC3339))
	}
	return q
}
