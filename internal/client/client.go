// Package client is a Go client for the brewery HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/matheusmosca/brewery-orders-service/internal/api"
	"github.com/matheusmosca/brewery-orders-service/internal/beer"
	"github.com/matheusmosca/brewery-orders-service/internal/customer"
	"github.com/matheusmosca/brewery-orders-service/internal/order"
	"github.com/matheusmosca/brewery-orders-service/internal/paging"
	"github.com/matheusmosca/brewery-orders-service/internal/shipment"
)

const apiPrefix = "/api/v1"

// APIError is a non-2xx answer. Problem is filled when the server sent a
// problem-detail body.
type APIError struct {
	StatusCode int
	Problem    *api.Problem
}

func (e *APIError) Error() string {
	if e.Problem != nil && e.Problem.Detail != "" {
		return fmt.Sprintf("brewery api: %d %s", e.StatusCode, e.Problem.Detail)
	}
	return fmt.Sprintf("brewery api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client talks to one brewery service.
type Client struct {
	http *resty.Client
}

// New creates a Client for baseURL, e.g. http://localhost:8080.
func New(baseURL string) *Client {
	return NewWithResty(resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json"))
}

// NewWithResty wraps an already configured resty client.
func NewWithResty(rc *resty.Client) *Client {
	return &Client{http: rc}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(&api.Problem{})
}

func send(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		if p, ok := resp.Error().(*api.Problem); ok && p.Status != 0 {
			apiErr.Problem = p
		}
		return apiErr
	}
	return nil
}

func path(parts ...any) string {
	p := apiPrefix
	for _, part := range parts {
		switch v := part.(type) {
		case int:
			p += "/" + strconv.Itoa(v)
		default:
			p += "/" + fmt.Sprint(v)
		}
	}
	return p
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) error {
	return send(c.request(ctx).Get("/health"))
}

func (c *Client) CreateBeer(ctx context.Context, in beer.BeerDTO) (beer.BeerDTO, error) {
	var out beer.BeerDTO
	err := send(c.request(ctx).SetBody(in).SetResult(&out).Post(path("beers")))
	return out, err
}

func (c *Client) GetBeer(ctx context.Context, id int) (beer.BeerDTO, error) {
	var out beer.BeerDTO
	err := send(c.request(ctx).SetResult(&out).Get(path("beers", id)))
	return out, err
}

// ListBeers calls GET /beers with q as query parameters; empty values are omitted.
func (c *Client) ListBeers(ctx context.Context, q beer.ListQuery) (paging.Page[beer.BeerDTO], error) {
	params := map[string]string{}
	for k, v := range map[string]string{
		"beerName":      q.BeerName,
		"beerStyle":     q.BeerStyle,
		"page":          q.Page,
		"size":          q.Size,
		"sortField":     q.SortField,
		"sortDirection": q.SortDirection,
	} {
		if v != "" {
			params[k] = v
		}
	}

	var out paging.Page[beer.BeerDTO]
	err := send(c.request(ctx).SetQueryParams(params).SetResult(&out).Get(path("beers")))
	return out, err
}

func (c *Client) UpdateBeer(ctx context.Context, id int, in beer.BeerDTO) (beer.BeerDTO, error) {
	var out beer.BeerDTO
	err := send(c.request(ctx).SetBody(in).SetResult(&out).Put(path("beers", id)))
	return out, err
}

func (c *Client) PatchBeer(ctx context.Context, id int, p beer.BeerPatchDTO) (beer.BeerDTO, error) {
	var out beer.BeerDTO
	err := send(c.request(ctx).SetBody(p).SetResult(&out).Patch(path("beers", id)))
	return out, err
}

func (c *Client) DeleteBeer(ctx context.Context, id int) error {
	return send(c.request(ctx).Delete(path("beers", id)))
}

func (c *Client) CreateCustomer(ctx context.Context, in customer.CustomerDTO) (customer.CustomerDTO, error) {
	var out customer.CustomerDTO
	err := send(c.request(ctx).SetBody(in).SetResult(&out).Post(path("customers")))
	return out, err
}

func (c *Client) GetCustomer(ctx context.Context, id int) (customer.CustomerDTO, error) {
	var out customer.CustomerDTO
	err := send(c.request(ctx).SetResult(&out).Get(path("customers", id)))
	return out, err
}

func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	return send(c.request(ctx).Delete(path("customers", id)))
}

func (c *Client) CreateOrder(ctx context.Context, cmd order.CreateOrderCommand) (order.BeerOrderDTO, error) {
	var out order.BeerOrderDTO
	err := send(c.request(ctx).SetBody(cmd).SetResult(&out).Post(path("orders")))
	return out, err
}

func (c *Client) GetOrder(ctx context.Context, id int) (order.BeerOrderDTO, error) {
	var out order.BeerOrderDTO
	err := send(c.request(ctx).SetResult(&out).Get(path("orders", id)))
	return out, err
}

func (c *Client) ListCustomerOrders(ctx context.Context, customerID int) ([]order.BeerOrderDTO, error) {
	var out []order.BeerOrderDTO
	err := send(c.request(ctx).SetResult(&out).Get(path("orders", "customer", customerID)))
	return out, err
}

// UpdateOrderStatus sends status as a plain-text body.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status string) (order.BeerOrderDTO, error) {
	var out order.BeerOrderDTO
	err := send(c.request(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(status).
		SetResult(&out).
		Patch(path("orders", id, "status")))
	return out, err
}

func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	return send(c.request(ctx).Delete(path("orders", id)))
}

func (c *Client) CreateShipment(ctx context.Context, cmd shipment.CreateShipmentCommand) (shipment.ShipmentDTO, error) {
	var out shipment.ShipmentDTO
	err := send(c.request(ctx).SetBody(cmd).SetResult(&out).Post(path("shipments")))
	return out, err
}

func (c *Client) UpdateShipment(ctx context.Context, id int, dto shipment.ShipmentDTO) (shipment.ShipmentDTO, error) {
	var out shipment.ShipmentDTO
	err := send(c.request(ctx).SetBody(dto).SetResult(&out).Put(path("shipments", id)))
	return out, err
}

func (c *Client) ListOrderShipments(ctx context.Context, orderID int) ([]shipment.ShipmentDTO, error) {
	var out []shipment.ShipmentDTO
	err := send(c.request(ctx).SetResult(&out).Get(path("orders", orderID, "shipments")))
	return out, err
}
