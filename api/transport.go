package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/HydrologicEngineeringCenter/cwms-go/internal/metrics"
)

// Get makes a GET request and returns the decoded JSON response. An empty
// response body decodes to an empty document.
func (s *Session) Get(ctx context.Context, endpoint string, query *Query, version int) (map[string]any, error) {
	req := Request{Method: http.MethodGet, Endpoint: endpoint, Query: query.Values(), Version: version}
	body, err := s.execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return decodeJSON(s.buildURL(endpoint, req.Query), body)
}

// GetBytes makes a GET request and returns the raw response body. Used for
// endpoints that serve content directly (blob values).
func (s *Session) GetBytes(ctx context.Context, endpoint string, query *Query, version int) ([]byte, error) {
	req := Request{Method: http.MethodGet, Endpoint: endpoint, Query: query.Values(), Version: version}
	return s.execute(ctx, req)
}

// Post makes a POST request. The data argument is JSON-marshaled unless it
// is already a []byte.
func (s *Session) Post(ctx context.Context, endpoint string, query *Query, version int, data any) error {
	body, err := marshalBody(data)
	if err != nil {
		return &ValidationError{Err: err}
	}
	req := Request{Method: http.MethodPost, Endpoint: endpoint, Query: query.Values(), Version: version, Body: body}
	_, err = s.execute(ctx, req)
	return err
}

// Patch makes a PATCH request. A nil data argument sends no body.
func (s *Session) Patch(ctx context.Context, endpoint string, query *Query, version int, data any) error {
	var body []byte
	if data != nil {
		var err error
		body, err = marshalBody(data)
		if err != nil {
			return &ValidationError{Err: err}
		}
	}
	req := Request{Method: http.MethodPatch, Endpoint: endpoint, Query: query.Values(), Version: version, Body: body}
	_, err := s.execute(ctx, req)
	return err
}

// Delete makes a DELETE request.
func (s *Session) Delete(ctx context.Context, endpoint string, query *Query, version int) error {
	req := Request{Method: http.MethodDelete, Endpoint: endpoint, Query: query.Values(), Version: version}
	_, err := s.execute(ctx, req)
	return err
}

// execute runs one request descriptor. GETs are retried with exponential
// backoff when the session was built with WithRetry; only transport
// failures and 5xx responses qualify.
func (s *Session) execute(ctx context.Context, req Request) ([]byte, error) {
	if req.Method != http.MethodGet || s.maxRetries == 0 {
		return s.do(ctx, req)
	}

	var body []byte
	op := func() error {
		b, err := s.do(ctx, req)
		if err != nil {
			var te *TransportError
			var se *ServerError
			if errors.As(err, &te) || errors.As(err, &se) {
				return err
			}
			return backoff.Permanent(err)
		}
		body = b
		return nil
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.maxRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return body, nil
}

// do performs a single HTTP round trip and maps the status to a typed
// error. The response body is returned verbatim on success.
func (s *Session) do(ctx context.Context, req Request) ([]byte, error) {
	reqURL := s.buildURL(req.Endpoint, req.Query)

	media, err := acceptHeader(req.Version)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: reqURL, Err: err}
		}
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, reqURL, bodyReader)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}

	switch req.Method {
	case http.MethodPost, http.MethodPatch:
		httpReq.Header.Set("Accept", "*/*")
		httpReq.Header.Set("Content-Type", media)
	default:
		httpReq.Header.Set("Accept", media)
	}
	if s.apiKey != "" && !s.keyInQuery {
		httpReq.Header.Set("Authorization", authorizationValue(s.apiKey))
	}

	s.logger.Debug("CDA request", "method", req.Method, "endpoint", req.Endpoint)

	start := time.Now()
	resp, err := s.http.Do(httpReq)
	metrics.Metrics.APIRequestsTotal.WithLabelValues(req.Method, req.Endpoint).Inc()
	metrics.Metrics.APILatency.WithLabelValues(req.Method, req.Endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Metrics.APIErrorsTotal.WithLabelValues(req.Method, "transport").Inc()
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Metrics.APIErrorsTotal.WithLabelValues(req.Method, "transport").Inc()
		return nil, &TransportError{URL: reqURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := statusError(resp.StatusCode, reqURL, body)
		metrics.Metrics.APIErrorsTotal.WithLabelValues(req.Method, errorKind(err)).Inc()
		s.logger.Debug("CDA error response", "method", req.Method, "endpoint", req.Endpoint, "status", resp.StatusCode)
		return nil, err
	}

	return body, nil
}

// authorizationValue builds the Authorization header. Bare keys gain the
// CDA "apikey" scheme; values that already carry a scheme pass through.
func authorizationValue(key string) string {
	if strings.Contains(key, " ") {
		return key
	}
	return "apikey " + key
}

func marshalBody(data any) ([]byte, error) {
	if b, ok := data.([]byte); ok {
		return b, nil
	}
	return json.Marshal(data)
}

// decodeJSON parses a success body. A blank body (writes, 204s) decodes to
// an empty document rather than an error.
func decodeJSON(url string, body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}
	return doc, nil
}

// errorKind returns the metric label for a typed error.
func errorKind(err error) string {
	var (
		ve *ValidationError
		te *TransportError
		ae *AuthorizationError
		ne *NotFoundError
		ce *ClientError
		se *ServerError
		de *DecodeError
		pe *ProtocolError
	)
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &te):
		return "transport"
	case errors.As(err, &ae):
		return "authorization"
	case errors.As(err, &ne):
		return "not_found"
	case errors.As(err, &ce):
		return "client"
	case errors.As(err, &se):
		return "server"
	case errors.As(err, &de):
		return "decode"
	case errors.As(err, &pe):
		return "protocol"
	default:
		return "unknown"
	}
}
