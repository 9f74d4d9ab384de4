// Package routing provides a road-distance estimator backed by an
// OSRM-compatible routing service.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/services"
	"fieldops/internal/pkg/errs"
)

// Client calls an OSRM-compatible /route endpoint and implements
// services.RouteEstimator. Any transport or protocol failure is returned as
// an error; the distance ranker treats that as "provider unavailable" and
// falls back to great-circle distance.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a routing client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "routing_client"),
	}, nil
}

// routeResponse is the subset of the OSRM route response the estimator needs.
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		DistanceMeters  float64 `json:"distance"`
		DurationSeconds float64 `json:"duration"`
	} `json:"routes"`
}

// Estimate returns road distance and travel duration between two points.
func (c *Client) Estimate(
	ctx context.Context,
	from, to kernel.GeoPoint,
) (services.RouteEstimate, error) {
	// OSRM takes lon,lat pairs.
	endpoint := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.baseURL,
		from.Longitude(), from.Latitude(),
		to.Longitude(), to.Latitude(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return services.RouteEstimate{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "routing request failed", "error", err)
		return services.RouteEstimate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "routing service returned non-OK status",
			"status", resp.StatusCode)
		return services.RouteEstimate{}, fmt.Errorf("routing service status %d", resp.StatusCode)
	}

	var route routeResponse
	if err = json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return services.RouteEstimate{}, err
	}

	if route.Code != "Ok" || len(route.Routes) == 0 {
		return services.RouteEstimate{}, fmt.Errorf("routing service code %q with %d routes",
			route.Code, len(route.Routes))
	}

	return services.RouteEstimate{
		DistanceMeters: route.Routes[0].DistanceMeters,
		Duration:       time.Duration(route.Routes[0].DurationSeconds * float64(time.Second)),
	}, nil
}
