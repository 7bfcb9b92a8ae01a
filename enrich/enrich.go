// Package enrich decorates an owner's order list with customer details,
// delivery distance, a street address and a directions link.
package enrich

import (
	"context"
	"log"
	"time"

	"restaurant-admin/geo"
	"restaurant-admin/geocode"
	"restaurant-admin/models"
)

// DefaultPause is the wait after each reverse geocode, keeping the pipeline
// under Nominatim's one request per second usage policy.
const DefaultPause = 500 * time.Millisecond

// RestaurantFetcher loads a single restaurant by id.
type RestaurantFetcher interface {
	Restaurant(ctx context.Context, id string) (*models.Restaurant, error)
}

// RestaurantFetcherFunc adapts a function to RestaurantFetcher.
type RestaurantFetcherFunc func(ctx context.Context, id string) (*models.Restaurant, error)

func (f RestaurantFetcherFunc) Restaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	return f(ctx, id)
}

// Location is the customer's delivery point as seen from the restaurant.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	Distance  float64 `json:"distance"`
}

type Order struct {
	models.Order
	UserData      *models.UserSummary `json:"userData,omitempty"`
	Restaurant    *models.Restaurant  `json:"restaurant,omitempty"`
	UserLocation  *Location           `json:"userLocation,omitempty"`
	DirectionsURL string              `json:"directionsUrl,omitempty"`
}

type Pipeline struct {
	Restaurants RestaurantFetcher
	Geocoder    geocode.Geocoder
	Pause       time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error
}

func New(restaurants RestaurantFetcher, geocoder geocode.Geocoder) *Pipeline {
	return &Pipeline{
		Restaurants: restaurants,
		Geocoder:    geocoder,
		Pause:       DefaultPause,
		Sleep:       geocode.SleepContext,
	}
}

// UsersByID indexes a bulk user listing for customer lookups.
func UsersByID(users []models.User) map[string]models.User {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}

// Enrich processes orders one at a time, in order. A failed restaurant lookup
// only costs that order its restaurant-dependent fields.
func (p *Pipeline) Enrich(ctx context.Context, orders []models.Order, users map[string]models.User) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, p.enrichOne(ctx, o, users))
	}
	return out
}

func (p *Pipeline) enrichOne(ctx context.Context, o models.Order, users map[string]models.User) Order {
	enriched := Order{Order: o}

	if o.RestaurantID != "" {
		restaurant, err := p.Restaurants.Restaurant(ctx, o.RestaurantID)
		if err != nil {
			log.Printf("❌ Failed to fetch restaurant %s for order %s: %v", o.RestaurantID, o.ID, err)
		} else {
			enriched.Restaurant = restaurant
		}
	}

	if u, ok := users[o.UserID]; ok {
		summary := u.Summary()
		enriched.UserData = &summary
	}

	lat, lon, ok := o.DeliveryPoint()
	if !ok || enriched.Restaurant == nil {
		return enriched
	}

	r := enriched.Restaurant
	enriched.UserLocation = &Location{
		Latitude:  lat,
		Longitude: lon,
		Distance:  geo.HaversineKm(r.Latitude, r.Longitude, lat, lon),
		Address:   p.Geocoder.ReverseGeocode(ctx, lat, lon),
	}
	customerName := "Customer Location"
	if enriched.UserData != nil && enriched.UserData.Name != "" {
		customerName = enriched.UserData.Name
	}
	enriched.DirectionsURL = geo.DirectionsURL(r.Latitude, r.Longitude, lat, lon, r.Name, customerName)

	if p.Pause > 0 && p.Sleep != nil {
		_ = p.Sleep(ctx, p.Pause)
	}
	return enriched
}
