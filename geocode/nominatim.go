// Package geocode turns delivery coordinates into street addresses.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"restaurant-admin/geo"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "restaurant-admin/1.0"
	DefaultRetries   = 2
	DefaultBackoff   = time.Second
)

// Geocoder resolves a coordinate to a human readable address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) string
}

// Offline never leaves the process: it always answers with the coordinate
// fallback.
type Offline struct{}

func (Offline) ReverseGeocode(_ context.Context, lat, lon float64) string {
	return Fallback(lat, lon)
}

// Nominatim queries an OpenStreetMap Nominatim server. It never fails: when
// every attempt errors the coordinate itself is returned as text.
type Nominatim struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	// Retries is the number of extra attempts after the first one.
	Retries int
	// Backoff is multiplied by the attempt number before each retry.
	Backoff time.Duration
	// Sleep waits between attempts; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewNominatim(baseURL, userAgent string) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Nominatim{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		UserAgent:  userAgent,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Retries:    DefaultRetries,
		Backoff:    DefaultBackoff,
		Sleep:      SleepContext,
	}
}

// Fallback is the address used when no lookup succeeds.
func Fallback(lat, lon float64) string {
	return fmt.Sprintf("Lat: %s, Lng: %s", geo.ToFixed(lat, 4), geo.ToFixed(lon, 4))
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	fallback := Fallback(lat, lon)
	if lat == 0 || lon == 0 {
		return fallback
	}

	for attempt := 0; attempt <= n.Retries; attempt++ {
		if attempt > 0 {
			if err := n.Sleep(ctx, time.Duration(attempt)*n.Backoff); err != nil {
				return fallback
			}
		}

		name, err := n.lookup(ctx, lat, lon)
		if err != nil {
			log.Printf("⚠️  reverse geocode attempt %d failed: %v", attempt+1, err)
			continue
		}
		if name == "" {
			return fallback
		}
		return name
	}
	return fallback
}

func (n *Nominatim) lookup(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", geo.FormatCoord(lat))
	q.Set("lon", geo.FormatCoord(lon))
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", n.UserAgent)
	req.Header.Set("Accept", "application/json")

	client := n.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("HTTP error! status: %d", res.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.DisplayName, nil
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
