package weatherapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// Endpoint is the direct weatherapi.com forecast endpoint, used when
	// the user supplies their own API key.
	Endpoint = "https://api.weatherapi.com/v1/forecast.json"

	// DefaultProxy is the public forwarding endpoint used when no API key
	// is configured. Any tempyd deployment can stand in for it.
	DefaultProxy = "http://noprobelm.dev:80"

	// LocationHeader carries the query location on proxy requests.
	LocationHeader = "location"

	forecastDays = 3
)

// Client issues forecast requests, either directly against weatherapi.com
// or through a forwarding proxy. One request per call, no retries.
type Client struct {
	apiKey     string
	endpoint   string
	proxyURL   string
	httpClient *http.Client
}

type Options struct {
	// APIKey enables direct requests. When empty, requests go through the
	// proxy and the key stays server-side.
	APIKey   string
	Endpoint string
	ProxyURL string
	// HTTPClient overrides the default 10s-timeout client.
	HTTPClient *http.Client
}

func New(opts Options) *Client {
	c := &Client{
		apiKey:     opts.APIKey,
		endpoint:   opts.Endpoint,
		proxyURL:   opts.ProxyURL,
		httpClient: opts.HTTPClient,
	}
	if c.endpoint == "" {
		c.endpoint = Endpoint
	}
	if c.proxyURL == "" {
		c.proxyURL = DefaultProxy
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return c
}

// Forecast fetches and decodes the three-day forecast for q.Location.
// Failures map onto the tool's error kinds: NetworkError for transport
// problems, APIError for non-200 statuses, ParseError for undecodable
// bodies.
func (c *Client) Forecast(ctx context.Context, q Query) (*Forecast, error) {
	var (
		resp *http.Response
		err  error
	)
	if c.apiKey != "" {
		resp, err = c.getDirect(ctx, q.Location)
	} else {
		resp, err = c.getProxy(ctx, q.Location)
	}
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var fc Forecast
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if fc.Location.Name == "" && fc.Current.Condition.Text == "" {
		return nil, &ParseError{Err: errMissingFields}
	}
	return &fc, nil
}

// ForecastRaw performs the direct request and hands back the status and
// body untouched. tempyd relays both verbatim so keyless clients see the
// exact upstream schema.
func (c *Client) ForecastRaw(ctx context.Context, location string) (int, []byte, error) {
	resp, err := c.getDirect(ctx, location)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}
	return resp.StatusCode, body, nil
}

func (c *Client) getDirect(ctx context.Context, location string) (*http.Response, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", location)
	params.Set("days", strconv.Itoa(forecastDays))
	params.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

func (c *Client) getProxy(ctx context.Context, location string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.proxyURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(LocationHeader, location)
	return c.httpClient.Do(req)
}

// statusError extracts a message from either error shape seen on this
// path: the weatherapi.com envelope ({"error":{"message":...}}) or the
// flat JSON tempyd writes ({"error":"...","code":...}).
func statusError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		return apiErr
	}
	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		apiErr.Message = flat.Error
	}
	return apiErr
}

type missingFieldsError struct{}

func (missingFieldsError) Error() string {
	return "body decoded but carries no location or condition"
}

var errMissingFields = missingFieldsError{}
