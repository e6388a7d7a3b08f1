package utils

import (
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// GatewayOrder is the order handle returned by the payment gateway
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   uint   `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// OrderClient talks to the payment gateway's orders API
type OrderClient struct {
	baseURL string
	keyID   string
	secret  string
	client  *resty.Client
}

// NewOrderClient builds a gateway client from credentials resolved at startup
func NewOrderClient(baseURL, keyID, secret string) *OrderClient {
	return &OrderClient{
		baseURL: baseURL,
		keyID:   keyID,
		secret:  secret,
		client:  resty.New(),
	}
}

// CreateOrder opens a gateway order for the given amount in minor units.
// No local state is written; a failure here leaves nothing to clean up.
func (o *OrderClient) CreateOrder(amount uint, currency, receipt string) (*GatewayOrder, error) {
	var order GatewayOrder

	resp, err := o.client.R().
		SetBasicAuth(o.keyID, o.secret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
		}).
		SetResult(&order).
		Post(o.baseURL + "/orders")
	if err != nil {
		log.Printf("Failed to create gateway order: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Gateway order creation returned %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode())
	}

	return &order, nil
}
