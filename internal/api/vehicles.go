package api

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"carosearch/internal/domain"
)

const (
	vehiclesPublicPath = "/api/vehicles/public"
	vehiclePath        = "/api/vehicles/"
)

// listingResponse is the paged form of a search response. Some endpoints
// name the page size "size" instead of "limit".
type listingResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Size     int              `json:"size"`
	Pages    int              `json:"pages"`
}

// decodeListing accepts either a bare array of vehicles or a paged object
func decodeListing(body []byte) (domain.Listing, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var vehicles []domain.Vehicle
		if err := json.Unmarshal(body, &vehicles); err != nil {
			return domain.Listing{}, fmt.Errorf("failed to unmarshal vehicles: %w", err)
		}
		return domain.Listing{Vehicles: vehicles}, nil
	}

	var resp listingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Listing{}, fmt.Errorf("failed to unmarshal listing: %w", err)
	}
	limit := resp.Limit
	if limit == 0 {
		limit = resp.Size
	}
	return domain.Listing{
		Vehicles: resp.Vehicles,
		Pagination: &domain.Pagination{
			Total: resp.Total,
			Page:  resp.Page,
			Limit: limit,
			Pages: resp.Pages,
		},
	}, nil
}

// SearchVehicles runs a public listing search. params are the single-valued
// search parameters, page and limit included.
func (c *Client) SearchVehicles(ctx context.Context, params url.Values) (domain.Listing, error) {
	body, err := c.doRequest(ctx, http.MethodGet, vehiclesPublicPath, params)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("failed to search vehicles: %w", err)
	}
	return decodeListing(body)
}

// GetVehicle loads one listing
func (c *Client) GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := c.getJSON(ctx, vehiclePath+strconv.Itoa(id), nil, &v); err != nil {
		return nil, fmt.Errorf("failed to get vehicle %d: %w", id, err)
	}
	return &v, nil
}

// Makes counts the makes among public listings
func (c *Client) Makes(ctx context.Context) ([]domain.Facet, error) {
	listing, err := c.SearchVehicles(ctx, nil)
	if err != nil {
		return nil, err
	}
	return CountFacets(listing.Vehicles, func(v domain.Vehicle) string { return v.Make }), nil
}

// Models counts the models of one make among public listings
func (c *Client) Models(ctx context.Context, vehicleMake string) ([]domain.Facet, error) {
	listing, err := c.SearchVehicles(ctx, url.Values{"make": {vehicleMake}})
	if err != nil {
		return nil, err
	}
	return CountFacets(listing.Vehicles, func(v domain.Vehicle) string {
		if v.Make != vehicleMake {
			return ""
		}
		return v.Model
	}), nil
}

// Locations counts the locations among public listings
func (c *Client) Locations(ctx context.Context) ([]domain.Facet, error) {
	listing, err := c.SearchVehicles(ctx, nil)
	if err != nil {
		return nil, err
	}
	return CountFacets(listing.Vehicles, func(v domain.Vehicle) string { return v.Location }), nil
}

// CountFacets tallies the non-empty keys of vehicles, most frequent first
func CountFacets(vehicles []domain.Vehicle, key func(domain.Vehicle) string) []domain.Facet {
	counts := make(map[string]int)
	for _, v := range vehicles {
		if k := key(v); k != "" {
			counts[k]++
		}
	}
	facets := make([]domain.Facet, 0, len(counts))
	for name, count := range counts {
		facets = append(facets, domain.Facet{Name: name, Count: count})
	}
	slices.SortFunc(facets, func(a, b domain.Facet) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return facets
}
