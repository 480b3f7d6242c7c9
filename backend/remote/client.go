package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"vincit.fi/collector/api"
	"vincit.fi/collector/common/constants"
	"vincit.fi/collector/common/logger"
)

const (
	// Searches are typed by hand. The limiter only protects the backend from
	// runaway callers.
	searchRps   = 4.0
	searchBurst = 4
)

// Client is the HTTP client of the collections API. All requests carry the
// session cookies. Mutating requests carry the CSRF token.
type Client struct {
	baseUrl       *url.URL
	http          *http.Client
	jar           *sessionJar
	searchLimiter *rate.Limiter
}

var _ api.Remote = (*Client)(nil)

type Option func(*Client)

// WithTransport replaces the HTTP transport, e.g. with a test server's.
func WithTransport(transport http.RoundTripper) Option {
	return func(client *Client) {
		client.http.Transport = transport
	}
}

// WithTimeout sets a timeout for each request. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.http.Timeout = timeout
	}
}

func NewClient(baseUrl string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseUrl, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse API URL '%s': %w", baseUrl, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("API URL '%s' must be http or https", baseUrl)
	}

	jar := newSessionJar()
	client := &Client{
		baseUrl: parsed,
		http: &http.Client{
			Jar: jar,
		},
		jar:           jar,
		searchLimiter: rate.NewLimiter(rate.Limit(searchRps), searchBurst),
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

func (s *Client) BaseUrl() string {
	return s.baseUrl.String()
}

func (s *Client) resolve(path string, query url.Values) string {
	u := s.baseUrl.String() + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (s *Client) get(ctx context.Context, op string, path string, query url.Values, out interface{}) error {
	data, err := s.doRequest(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decode(op, data, out)
}

func (s *Client) send(ctx context.Context, op string, method string, path string, body *requestBody, out interface{}) error {
	data, err := s.doRequest(ctx, op, method, path, nil, body)
	if err != nil {
		return err
	}
	return decode(op, data, out)
}

// doRequest executes a request and returns the body of a 2xx response.
func (s *Client) doRequest(ctx context.Context, op string, method string, path string, query url.Values, body *requestBody) ([]byte, error) {
	csrfToken := ""
	if method != http.MethodGet {
		csrfToken = s.csrfToken(ctx)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.data)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.resolve(path, query), reader)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindNetwork, Message: networkErrorMessage, Err: fmt.Errorf("create request: %w", err)}
	}

	requestId := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.UserAgent)
	req.Header.Set(constants.RequestIdHeader, requestId)
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}
	if csrfToken != "" {
		req.Header.Set(constants.CsrfHeaderName, csrfToken)
	}

	logger.Debug.Printf("%s %s (%s, request %s)", method, path, op, requestId)
	resp, err := s.http.Do(req)
	if err != nil {
		logger.Warn.Printf("%s %s failed: %s", method, path, err)
		return nil, newNetworkError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(op, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn.Printf("%s %s returned %d: %s", method, path, resp.StatusCode, truncate(data))
		return nil, newStatusError(op, resp.StatusCode, data)
	}
	logger.Trace.Printf("%s %s returned %d", method, path, resp.StatusCode)
	return data, nil
}

// csrfToken returns the token of the CSRF cookie. The cookie is primed from
// the server if the jar does not have it yet. A failed prime is not an
// error: the request is sent without the header and the server decides.
func (s *Client) csrfToken(ctx context.Context) string {
	if token := s.cookieValue(constants.CsrfCookieName); token != "" {
		return token
	}
	if _, err := s.doRequest(ctx, "csrf", http.MethodGet, "get-csrf-token/", nil, nil); err != nil {
		logger.Warn.Printf("Failed to get CSRF token: %s", err)
	}
	token := s.cookieValue(constants.CsrfCookieName)
	if token == "" {
		logger.Warn.Printf("No '%s' cookie after priming", constants.CsrfCookieName)
	}
	return token
}

func decode(op string, data []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return newDecodeError(op, err)
	}
	return nil
}

func truncate(data []byte) string {
	const maxLength = 200
	if len(data) > maxLength {
		return string(data[:maxLength]) + "..."
	}
	return string(data)
}
