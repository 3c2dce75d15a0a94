package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"carosearch/internal/domain"
)

const dealersPath = "/dealers"

// DealerQuery filters the dealer directory
type DealerQuery struct {
	Page     int
	Size     int
	City     string
	Province string
	Search   string
}

func (q DealerQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.City != "" {
		v.Set("city", q.City)
	}
	if q.Province != "" {
		v.Set("province", q.Province)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// DealerPage is one page of the dealer directory
type DealerPage struct {
	Dealers []domain.Dealer `json:"dealers"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
	Pages   int             `json:"pages"`
}

// ListDealers pages through the dealer directory
func (c *Client) ListDealers(ctx context.Context, q DealerQuery) (DealerPage, error) {
	var page DealerPage
	if err := c.getJSON(ctx, dealersPath, q.values(), &page); err != nil {
		return DealerPage{}, fmt.Errorf("failed to list dealers: %w", err)
	}
	return page, nil
}

// GetDealer loads one dealer profile
func (c *Client) GetDealer(ctx context.Context, id int) (*domain.Dealer, error) {
	var d domain.Dealer
	if err := c.getJSON(ctx, dealersPath+"/"+strconv.Itoa(id), nil, &d); err != nil {
		return nil, fmt.Errorf("failed to get dealer %d: %w", id, err)
	}
	return &d, nil
}

// DealerVehicles pages through the listings of one dealer
func (c *Client) DealerVehicles(ctx context.Context, id, page, size int) (domain.Listing, error) {
	body, err := c.doRequest(ctx, http.MethodGet, dealersPath+"/"+strconv.Itoa(id)+"/vehicles",
		DealerQuery{Page: page, Size: size}.values())
	if err != nil {
		return domain.Listing{}, fmt.Errorf("failed to get vehicles of dealer %d: %w", id, err)
	}
	return decodeListing(body)
}
