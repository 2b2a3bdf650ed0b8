// Package maps talks to the Google Maps web services used for routing,
// reverse geocoding and place autocomplete.
package maps

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"padelfinder/internal/httpclient"
)

var (
	// ErrNoRoute is returned when the routing service has no driving route between two places.
	ErrNoRoute = errors.New("no route between origin and destination")
	// ErrNoCity is returned when a coordinate does not resolve to a city.
	ErrNoCity = errors.New("no city found for coordinates")
)

// APIError carries a non-OK status reported in the response body.
type APIError struct {
	Service string
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Service, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Status)
}

// Prediction is a single place autocomplete suggestion.
type Prediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// Client is a Google Maps web services client.
type Client struct {
	http   *httpclient.Client
	apiKey string
}

// NewClient builds a client against baseURL (normally https://maps.googleapis.com/maps/api).
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http:   httpclient.New(baseURL, timeout),
		apiKey: apiKey,
	}
}

type distanceMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance *struct {
				Value float64 `json:"value"`
				Text  string  `json:"text"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// DrivingDistanceKm returns the driving distance in kilometres between two
// free-text places.
func (c *Client) DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	query := url.Values{}
	query.Set("origins", origin)
	query.Set("destinations", destination)
	query.Set("mode", "driving")
	query.Set("units", "metric")
	query.Set("key", c.apiKey)

	var resp distanceMatrixResponse
	if err := c.http.Get(ctx, "/distancematrix/json", query, &resp); err != nil {
		return 0, fmt.Errorf("distance matrix: %w", err)
	}
	if err := checkStatus("distance matrix", resp.Status, resp.ErrorMessage); err != nil {
		return 0, err
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, ErrNoRoute
	}
	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" || element.Distance == nil || element.Distance.Value <= 0 {
		return 0, ErrNoRoute
	}

	return element.Distance.Value / 1000, nil
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// ReverseGeocodeCity resolves a coordinate to the city it lies in.
func (c *Client) ReverseGeocodeCity(ctx context.Context, lat, lng float64) (string, error) {
	query := url.Values{}
	query.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("key", c.apiKey)

	var resp geocodeResponse
	if err := c.http.Get(ctx, "/geocode/json", query, &resp); err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	if err := checkStatus("reverse geocode", resp.Status, resp.ErrorMessage); err != nil {
		return "", err
	}

	for _, result := range resp.Results {
		for _, component := range result.AddressComponents {
			for _, kind := range component.Types {
				if kind == "locality" || kind == "postal_town" {
					return component.LongName, nil
				}
			}
		}
	}

	return "", ErrNoCity
}

type autocompleteResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Predictions  []Prediction `json:"predictions"`
}

// Autocomplete returns city suggestions for a partial place name.
func (c *Client) Autocomplete(ctx context.Context, input string) ([]Prediction, error) {
	query := url.Values{}
	query.Set("input", input)
	query.Set("types", "(cities)")
	query.Set("key", c.apiKey)

	var resp autocompleteResponse
	if err := c.http.Get(ctx, "/place/autocomplete/json", query, &resp); err != nil {
		return nil, fmt.Errorf("place autocomplete: %w", err)
	}
	if err := checkStatus("place autocomplete", resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	if resp.Predictions == nil {
		return []Prediction{}, nil
	}
	return resp.Predictions, nil
}

func checkStatus(service, status, message string) error {
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	default:
		return &APIError{Service: service, Status: status, Message: message}
	}
}
