package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	clienterrors "github.com/carrental/carrental/client/internal/errors"
)

// RequestIDHeader correlates a request with the client's log lines.
const RequestIDHeader = "X-Request-Id"

const userAgent = "carrental-client-go"

// Config configures a Requester.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	Logger     zerolog.Logger
	Retry      RetryPolicy
	Observer   Observer
}

// Request describes one outbound call. The zero value is a GET with no body.
type Request struct {
	Method     string
	Headers    map[string]string // merged over the defaults; caller wins
	Body       any               // string, []byte and json.RawMessage are sent as-is
	PathParams map[string]string // substituted into {name} placeholders, escaped
}

// Requester is the single choke point for every outbound call: it merges
// headers, serializes the body, issues the request and normalizes failures
// into *errors.APIError or *errors.TransportError.
type Requester struct {
	rc       *resty.Client
	logger   zerolog.Logger
	retry    RetryPolicy
	observer Observer
}

// NewRequester builds a Requester on top of cfg.HTTPClient. The http.Client
// is used as-is, so its transport chain (auth, debug) stays in effect.
func NewRequester(cfg Config) *Requester {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	obs := cfg.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	rc := resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", userAgent).
		SetLogger(restyLogger{l: cfg.Logger})

	return &Requester{
		rc:       rc,
		logger:   cfg.Logger,
		retry:    cfg.Retry,
		observer: obs,
	}
}

// Do issues the request and returns the raw body of a 2xx response. A
// non-empty success body that is not JSON fails with *errors.InvalidResponseError.
// Every failure is logged before it is returned.
func (r *Requester) Do(ctx context.Context, endpoint string, req Request) (json.RawMessage, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	headers := withRequestID(req.Headers)
	logger := r.logger.With().
		Str("method", method).
		Str("endpoint", endpoint).
		Str("request_id", headers[RequestIDHeader]).
		Logger()

	if err := ctx.Err(); err != nil {
		r.observer.ObserveRequest(ctx, areaFor(endpoint), method, OutcomeTransportError, 0)
		tErr := clienterrors.NewTransportError(method, endpoint, err)
		logFailure(logger, tErr)
		return nil, tErr
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		err = fmt.Errorf("encode request body: %w", err)
		logFailure(logger, err)
		return nil, err
	}

	attempt := func() (json.RawMessage, error) {
		return r.once(ctx, method, endpoint, headers, req.PathParams, body)
	}

	var raw json.RawMessage
	if r.retry.enabledFor(method) {
		raw, err = r.retry.run(ctx, logger, method, endpoint, attempt)
	} else {
		raw, err = attempt()
	}
	if err != nil {
		logFailure(logger, err)
		return nil, err
	}
	return raw, nil
}

func (r *Requester) once(ctx context.Context, method, endpoint string, headers, pathParams map[string]string, body []byte) (json.RawMessage, error) {
	rreq := r.rc.R().
		SetContext(ctx).
		SetHeaders(headers)
	if len(pathParams) > 0 {
		rreq.SetPathParams(pathParams)
	}
	if body != nil {
		rreq.SetBody(body)
	}

	area := areaFor(endpoint)
	start := time.Now()
	resp, err := rreq.Execute(method, endpoint)
	elapsed := time.Since(start)

	url := rreq.URL
	if url == "" {
		url = endpoint
	}
	if err != nil {
		r.observer.ObserveRequest(ctx, area, method, OutcomeTransportError, elapsed)
		return nil, clienterrors.NewTransportError(method, url, err)
	}
	if !resp.IsSuccess() {
		r.observer.ObserveRequest(ctx, area, method, OutcomeAPIError, elapsed)
		return nil, clienterrors.NewAPIError(resp.StatusCode(), resp.Body())
	}
	raw := resp.Body()
	if len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
		r.observer.ObserveRequest(ctx, area, method, OutcomeInvalidResponse, elapsed)
		return nil, clienterrors.NewInvalidResponseError(resp.StatusCode(), raw)
	}
	r.observer.ObserveRequest(ctx, area, method, OutcomeSuccess, elapsed)
	return json.RawMessage(raw), nil
}

// encodeBody serializes v to JSON unless it is already textual.
func encodeBody(v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		return json.Marshal(v)
	}
}

func withRequestID(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[http.CanonicalHeaderKey(k)] = v
	}
	if out[RequestIDHeader] == "" {
		out[RequestIDHeader] = uuid.NewString()
	}
	return out
}

// areaFor returns the first path segment, used as a low-cardinality metric label.
func areaFor(endpoint string) string {
	seg := strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexAny(seg, "/?"); i >= 0 {
		seg = seg[:i]
	}
	if seg == "" {
		return "root"
	}
	return seg
}

func logFailure(logger zerolog.Logger, err error) {
	var apiErr *clienterrors.APIError
	if errors.As(err, &apiErr) {
		logger.Warn().Int("status_code", apiErr.StatusCode).Str("message", apiErr.Message).Msg("API request rejected")
		return
	}
	logger.Error().Err(err).Msg("API request error")
}

// call decodes the body of a successful request into T. An empty body
// yields the zero value.
func call[T any](ctx context.Context, r *Requester, op, endpoint string, req Request) (*T, error) {
	raw, err := r.Do(ctx, endpoint, req)
	if err != nil {
		return nil, err
	}
	var out T
	if len(bytes.TrimSpace(raw)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		err = fmt.Errorf("%s: decode response: %w", op, err)
		r.logger.Error().Err(err).Str("endpoint", endpoint).Msg("API response decode error")
		return nil, err
	}
	return &out, nil
}

// callList is call for endpoints returning a JSON array.
func callList[T any](ctx context.Context, r *Requester, op, endpoint string, req Request) ([]T, error) {
	out, err := call[[]T](ctx, r, op, endpoint, req)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
