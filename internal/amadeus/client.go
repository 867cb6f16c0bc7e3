// Package amadeus is the client for the remote flight-offers API: OAuth token
// acquisition with transparent refresh, flight-offer search, price analytics,
// and airport lookup.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/skyfare/skyfare/internal/models"
	"github.com/skyfare/skyfare/internal/ratelimit"
)

const DefaultBaseURL = "https://test.api.amadeus.com"

const (
	endpointToken        = "/v1/security/oauth2/token"
	endpointFlightOffers = "/v2/shopping/flight-offers"
	endpointLocations    = "/v1/reference-data/locations"
	endpointPriceMetrics = "/v1/analytics/itinerary-price-metrics"
)

const maxResults = 20

// ErrMissingCredentials is returned from the token step when no client ID or
// secret is configured. The orchestrator treats it as a search failure.
var ErrMissingCredentials = errors.New("amadeus: client credentials are not configured")

// APIError is a non-2xx response from the provider.
type APIError struct {
	Endpoint string
	Status   int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amadeus: %s returned status %d", e.Endpoint, e.Status)
}

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	MaxRetries   int
	RetryDelays  []time.Duration
	Limiter      *ratelimit.EndpointLimiter
}

type Client struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	if len(cfg.RetryDelays) == 0 {
		cfg.RetryDelays = []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
		}
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Token returns a valid bearer token, refreshing the cached one when it is
// within a minute of expiry.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return "", ErrMissingCredentials
	}

	if err := c.wait(ctx, "token"); err != nil {
		return "", err
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+endpointToken, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus: token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Endpoint: endpointToken, Status: resp.StatusCode}
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("amadeus: token response: %w", err)
	}

	c.accessToken = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

// SearchOffers runs a flight-offer search for the given params.
func (c *Client) SearchOffers(ctx context.Context, params models.SearchParams) ([]Offer, error) {
	query := url.Values{
		"originLocationCode":      {params.Origin},
		"destinationLocationCode": {params.Destination},
		"departureDate":           {params.DepartureDate},
		"adults":                  {strconv.Itoa(params.Passengers)},
		"currencyCode":            {"SAR"},
		"max":                     {strconv.Itoa(maxResults)},
		"travelClass":             {normalizeTravelClass(params.Class)},
	}
	if params.ReturnDate != "" {
		query.Set("returnDate", params.ReturnDate)
	}

	var body struct {
		Data []Offer `json:"data"`
	}
	if err := c.getWithRetry(ctx, endpointFlightOffers, query, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// PriceMetrics fetches the itinerary price-metrics series. The series is
// opaque to this client and passed through unmodified.
func (c *Client) PriceMetrics(ctx context.Context, params models.SearchParams) (json.RawMessage, error) {
	query := url.Values{
		"originIataCode":      {params.Origin},
		"destinationIataCode": {params.Destination},
		"departureDate":       {params.DepartureDate},
		"currencyCode":        {"SAR"},
		"oneWay":              {strconv.FormatBool(params.ReturnDate == "")},
	}

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.getWithRetry(ctx, endpointPriceMetrics, query, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// SearchLocations looks up airports by keyword.
func (c *Client) SearchLocations(ctx context.Context, keyword string, limit int) ([]Location, error) {
	query := url.Values{
		"subType":     {"AIRPORT"},
		"keyword":     {keyword},
		"page[limit]": {strconv.Itoa(limit)},
	}

	var body struct {
		Data []Location `json:"data"`
	}
	if err := c.getWithRetry(ctx, endpointLocations, query, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) getWithRetry(ctx context.Context, endpoint string, query url.Values, out any) error {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if attempt > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(c.cfg.RetryDelays) {
				delayIdx = len(c.cfg.RetryDelays) - 1
			}
			select {
			case <-time.After(c.cfg.RetryDelays[delayIdx]):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := c.get(ctx, endpoint, query, out)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrMissingCredentials) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}

	if err := c.wait(ctx, endpoint); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.amadeus+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("amadeus: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) wait(ctx context.Context, endpoint string) error {
	if c.cfg.Limiter == nil {
		return nil
	}
	return c.cfg.Limiter.Wait(ctx, endpoint)
}

// normalizeTravelClass maps the form's cabin-class value onto the values the
// provider accepts.
func normalizeTravelClass(class string) string {
	c := strings.ToUpper(class)
	switch c {
	case "ECONOMY", "BUSINESS", "FIRST":
		return c
	case "PREMIUM", "PREMIUM_ECONOMY":
		return "PREMIUM_ECONOMY"
	default:
		return "ECONOMY"
	}
}
