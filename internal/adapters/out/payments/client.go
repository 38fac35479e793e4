// Package payments provides the HTTP client for the payment service.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"grouporder/internal/core/domain/services"
)

const defaultTimeout = 10 * time.Second

// Client implements PaymentInitiator against the payment service's REST API.
// Payment initiation happens after the finalize transition committed; the
// payment side owns retries, so a failed call here is reported but the
// finalized group order stays finalized.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a payment client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type paymentLine struct {
	UserID              string `json:"user_id"`
	DishID              string `json:"dish_id"`
	Name                string `json:"name"`
	Quantity            int    `json:"quantity"`
	UnitPrice           int64  `json:"unit_price"`
	Subtotal            int64  `json:"subtotal"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

type paymentRequest struct {
	OrderID            string        `json:"order_id"`
	GroupOrderID       string        `json:"group_order_id"`
	CreatorID          string        `json:"creator_id"`
	Lines              []paymentLine `json:"lines"`
	Total              int64         `json:"total"`
	DiscountPercentage int           `json:"discount_percentage"`
	DiscountAmount     int64         `json:"discount_amount"`
	FinalTotal         int64         `json:"final_total"`
}

// InitiatePayment submits the consolidated order for payment.
func (c *Client) InitiatePayment(ctx context.Context, order services.ConsolidatedOrder) error {
	lines := make([]paymentLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, paymentLine{
			UserID:              line.UserID.String(),
			DishID:              line.DishID.String(),
			Name:                line.Name,
			Quantity:            line.Quantity,
			UnitPrice:           line.UnitPrice,
			Subtotal:            line.Subtotal,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	payload, err := json.Marshal(paymentRequest{
		OrderID:            order.ID.String(),
		GroupOrderID:       order.GroupOrderID.String(),
		CreatorID:          order.CreatorID.String(),
		Lines:              lines,
		Total:              order.Total,
		DiscountPercentage: order.DiscountPercentage,
		DiscountAmount:     order.DiscountAmount,
		FinalTotal:         order.FinalTotal,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/payments", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("payment service returned unexpected status %d", resp.StatusCode)
	}

	return nil
}
