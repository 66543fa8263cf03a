// File: /services/places_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"googlemaps.github.io/maps"

	"w2meet-api/models"
)

// PlacesService wraps the Google Maps Platform client used to seed an event
// with nearby venue candidates at creation time.
type PlacesService struct {
	client *maps.Client
}

func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	return &PlacesService{client: client}, nil
}

// SearchEstablishments finds all places of the given categories within radius
// meters of center. The API only searches one category per call, so results
// are unioned across calls, keyed by place id, then ordered nearest first.
func (ps *PlacesService) SearchEstablishments(ctx context.Context, center models.Location, radius uint, categories ...string) ([]models.Establishment, error) {
	seen := make(map[string]maps.PlacesSearchResult)
	order := make([]string, 0)

	for _, category := range categories {
		response, err := ps.client.NearbySearch(ctx, &maps.NearbySearchRequest{
			Location: &maps.LatLng{Lat: center.Lat, Lng: center.Lng},
			Radius:   radius,
			Type:     maps.PlaceType(category),
		})
		if err != nil {
			return nil, fmt.Errorf("places search for %q failed: %w", category, err)
		}

		for _, place := range response.Results {
			if _, ok := seen[place.PlaceID]; !ok {
				order = append(order, place.PlaceID)
			}
			seen[place.PlaceID] = place
		}
	}

	establishments := make([]models.Establishment, 0, len(order))
	for _, placeID := range order {
		place := seen[placeID]
		location := models.Location{
			Name:    place.Name,
			Address: place.Vicinity,
			Lat:     place.Geometry.Location.Lat,
			Lng:     place.Geometry.Location.Lng,
		}

		establishments = append(establishments, models.Establishment{
			ID:       place.PlaceID,
			Location: location,
			Distance: ps.walkingDistance(ctx, center, location),
			Rating:   float64(place.Rating),
			Category: place.Types,
			VotedBy:  []string{},
			Link:     "",
		})
	}

	sort.Slice(establishments, func(i, j int) bool {
		return establishments[i].Distance < establishments[j].Distance
	})

	return establishments, nil
}

// walkingDistance asks the distance matrix for the walking distance in
// meters, falling back to the straight-line distance when the call fails.
func (ps *PlacesService) walkingDistance(ctx context.Context, origin, destination models.Location) float64 {
	response, err := ps.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{coordPair(origin)},
		Destinations: []string{coordPair(destination)},
		Mode:         maps.TravelModeWalking,
		Units:        maps.UnitsMetric,
	})

	if err == nil && len(response.Rows) > 0 && len(response.Rows[0].Elements) > 0 {
		element := response.Rows[0].Elements[0]
		if element.Status == "OK" {
			return float64(element.Distance.Meters)
		}
	}

	return haversineMeters(origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}

func coordPair(location models.Location) string {
	return fmt.Sprintf("%f,%f", location.Lat, location.Lng)
}

// haversineMeters calculates distance between two points using Haversine formula
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadius * c)
}
