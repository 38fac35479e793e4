// Package catalogue provides the HTTP client for the dish catalogue service.
package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/ports"
	"grouporder/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client implements CatalogueLookup against the catalogue service's REST API.
// The catalogue is authoritative for dish names and prices; the engine never
// trusts client-supplied values for pricing.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalogue client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// dishResponse mirrors the catalogue service's dish representation.
type dishResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
}

// Dish fetches one dish by id.
// Returns an ObjectNotFoundError when the catalogue does not know the dish.
func (c *Client) Dish(ctx context.Context, dishID kernel.UUID) (ports.Dish, error) {
	endpoint := fmt.Sprintf("%s/dishes/%s", c.baseURL, url.PathEscape(dishID.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.Dish{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Dish{}, fmt.Errorf("catalogue request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ports.Dish{}, errs.NewObjectNotFoundError("dish", dishID.String())
	default:
		return ports.Dish{}, fmt.Errorf("catalogue returned unexpected status %d", resp.StatusCode)
	}

	var body dishResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.Dish{}, fmt.Errorf("catalogue response is malformed: %w", err)
	}

	id, err := kernel.UUIDFromString(body.ID)
	if err != nil {
		return ports.Dish{}, fmt.Errorf("catalogue returned invalid dish id: %w", err)
	}

	return ports.Dish{
		ID:        id,
		Name:      body.Name,
		UnitPrice: body.UnitPrice,
	}, nil
}
