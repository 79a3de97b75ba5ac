// Package places wraps the Google Maps web services used by the analysis:
// Places Text Search for ranked business results and Geocoding for location
// resolution. The analytical core never talks to the network itself; it
// consumes what this client has already fetched.
package places

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultSearchURL  = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
)

// Client performs place search and geocoding against the provider.
type Client interface {
	// NearbySearch returns businesses for a keyword near a point, in the
	// provider's relevance order. A nil slice with nil error means zero
	// results, which is not an error.
	NearbySearch(ctx context.Context, keyword string, lat, lng, radiusM float64) ([]Business, error)

	// Geocode resolves free-text location input to coordinates. A nil result
	// with nil error means the provider had no match.
	Geocode(ctx context.Context, text string) (*GeocodeResult, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithSearchURL overrides the Text Search endpoint.
func WithSearchURL(u string) Option {
	return func(c *httpClient) { c.searchURL = u }
}

// WithGeocodeURL overrides the Geocoding endpoint.
func WithGeocodeURL(u string) Option {
	return func(c *httpClient) { c.geocodeURL = u }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithRateLimit sets the client-side requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

type httpClient struct {
	apiKey     string
	searchURL  string
	geocodeURL string
	http       *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a places Client with the given API key.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:     apiKey,
		searchURL:  defaultSearchURL,
		geocodeURL: defaultGeocodeURL,
		http:       &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(10, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) NearbySearch(ctx context.Context, keyword string, lat, lng, radiusM float64) ([]Business, error) {
	params := url.Values{
		"query":    {keyword},
		"location": {strconv.FormatFloat(lat, 'f', 6, 64) + "," + strconv.FormatFloat(lng, 'f', 6, 64)},
		"radius":   {strconv.FormatFloat(radiusM, 'f', 0, 64)},
		"key":      {c.apiKey},
	}

	body, err := c.get(ctx, c.searchURL, params)
	if err != nil {
		return nil, err
	}

	var resp textSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "places: parse search response")
	}
	if err := statusErr(resp.Status); err != nil {
		return nil, eris.Wrapf(err, "places: search %q", keyword)
	}

	businesses := make([]Business, 0, len(resp.Results))
	for _, r := range resp.Results {
		b := Business{
			PlaceID:   r.PlaceID,
			Name:      r.Name,
			Address:   r.FormattedAddress,
			Latitude:  r.Geometry.Location.Lat,
			Longitude: r.Geometry.Location.Lng,
		}
		if b.Address == "" {
			b.Address = r.Vicinity
		}
		if r.Rating != nil {
			b.Rating = *r.Rating
		}
		if r.UserRatingsTotal != nil {
			b.ReviewCount = *r.UserRatingsTotal
		}
		businesses = append(businesses, b)
	}
	return businesses, nil
}

func (c *httpClient) Geocode(ctx context.Context, text string) (*GeocodeResult, error) {
	params := url.Values{
		"address": {text},
		"key":     {c.apiKey},
	}

	body, err := c.get(ctx, c.geocodeURL, params)
	if err != nil {
		return nil, err
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "places: parse geocode response")
	}
	if err := statusErr(resp.Status); err != nil {
		return nil, eris.Wrapf(err, "places: geocode %q", text)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	r := resp.Results[0]
	return &GeocodeResult{
		Latitude:         r.Geometry.Location.Lat,
		Longitude:        r.Geometry.Location.Lng,
		FormattedAddress: r.FormattedAddress,
	}, nil
}

func (c *httpClient) get(ctx context.Context, base string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("places: unexpected HTTP status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
