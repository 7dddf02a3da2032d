package venue_test

import (
	"io"
	"net/http"
	"strings"
	"time"

	"arbmonitor-service/internal/infrastructure/httpx"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

func jsonResponse(body string, code int) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// httpClient answers every request with the same body and status.
func httpClient(resBody string, code int) *httpx.Client {
	return &httpx.Client{HTTP: &http.Client{
		Timeout: 2 * time.Second,
		Transport: roundTripFunc(func(*http.Request) *http.Response {
			return jsonResponse(resBody, code)
		}),
	}}
}

// pathClient answers per request path; unmatched paths get a 404.
func pathClient(bodies map[string]string) *httpx.Client {
	return &httpx.Client{HTTP: &http.Client{
		Timeout: 2 * time.Second,
		Transport: roundTripFunc(func(r *http.Request) *http.Response {
			if body, ok := bodies[r.URL.Path]; ok {
				return jsonResponse(body, 200)
			}
			return jsonResponse(`{"message":"NotFound"}`, 404)
		}),
	}}
}
