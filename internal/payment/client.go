package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const clientTimeout = 5 * time.Second

// Client talks to the external payment processor. The processor only
// hands out intents; settlement comes back through the record endpoint.
type Client struct {
	base   string
	apiKey string
	hc     *http.Client
}

func NewClient(base, apiKey string) *Client {
	return &Client{
		base:   base,
		apiKey: apiKey,
		hc:     &http.Client{Timeout: clientTimeout},
	}
}

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

func (c *Client) CreateIntent(ctx context.Context, email string, amount int64, currency string) (*Intent, error) {
	if currency == "" {
		currency = "usd"
	}
	body, _ := json.Marshal(map[string]any{
		"amount":   amount,
		"currency": currency,
		"metadata": map[string]string{"email": email},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v1/intents", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment processor: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("payment processor responded %d", resp.StatusCode)
	}
	var in Intent
	if err := json.NewDecoder(resp.Body).Decode(&in); err != nil {
		return nil, err
	}
	return &in, nil
}
