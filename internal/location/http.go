package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPProvider reads the current position from a JSON geolocation endpoint.
// Permission is decided by configuration, not by the endpoint.
type HTTPProvider struct {
	url        string
	permission Permission
	client     *http.Client
}

// NewHTTPProvider creates a provider backed by url. A nil client uses http.DefaultClient.
func NewHTTPProvider(url string, permission Permission, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{url: url, permission: permission, client: client}
}

func (p *HTTPProvider) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return Denied, err
	}
	return p.permission, nil
}

// positionResponse accepts both {"latitude","longitude"} and {"lat","lon"} bodies.
type positionResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
}

func (p *HTTPProvider) CurrentPosition(ctx context.Context) (Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("location: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Coordinates{}, ctxErr
		}
		return Coordinates{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return Coordinates{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var body positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Coordinates{}, ctxErr
		}
		return Coordinates{}, fmt.Errorf("%w: invalid response body: %v", ErrUnavailable, err)
	}

	lat, lon := body.Latitude, body.Longitude
	if lat == nil || lon == nil {
		lat, lon = body.Lat, body.Lon
	}
	if lat == nil || lon == nil {
		return Coordinates{}, fmt.Errorf("%w: response has no coordinates", ErrUnavailable)
	}

	coords := Coordinates{Latitude: *lat, Longitude: *lon}
	if err := validate(coords); err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return coords, nil
}
