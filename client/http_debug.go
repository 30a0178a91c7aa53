package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"
)

// debugTransport dumps every request and response at debug level.
//
// Enable it with WithDebugLogging or by exporting CARRENTAL_DEBUG=true
// (DEBUG=true also works). Dumps contain bearer tokens and auth payloads,
// so keep it out of production.
type debugTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.next().RoundTrip(req)
	if err != nil {
		dt.logger.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

func (dt *debugTransport) next() http.RoundTripper {
	if dt.base == nil {
		return http.DefaultTransport
	}
	return dt.base
}

// debugLoggingRequested reports whether CARRENTAL_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("CARRENTAL_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
