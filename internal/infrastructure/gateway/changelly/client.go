package changelly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jubbslineu/tokensale/internal/application/sale/usecases"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

const (
	createPaymentPath = "/payments"

	// Responses are small JSON documents; cap reads defensively.
	maxResponseSize = 1 << 20
)

// Client calls a Changelly API using the signature scheme it was built
// with. It implements the sale use cases' PaymentProvider.
type Client struct {
	scheme       Scheme
	httpClient   *http.Client
	signatureTTL time.Duration
	logger       logger.Interface
}

func NewClient(scheme Scheme, timeout, signatureTTL time.Duration, logger logger.Interface) *Client {
	return &Client{
		scheme:       scheme,
		httpClient:   &http.Client{Timeout: timeout},
		signatureTTL: signatureTTL,
		logger:       logger,
	}
}

var _ usecases.PaymentProvider = (*Client)(nil)

type createPaymentRequest struct {
	OrderID         string `json:"order_id"`
	CustomerID      string `json:"customer_id"`
	NominalAmount   string `json:"nominal_amount"`
	NominalCurrency string `json:"nominal_currency"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
}

type createPaymentResponse struct {
	ID         string `json:"id"`
	PaymentURL string `json:"payment_url"`
}

// CreatePayment creates a hosted payment and returns the checkout URL the
// buyer completes the payment at.
func (c *Client) CreatePayment(ctx context.Context, params usecases.CreatePaymentParams) (string, error) {
	body, err := json.Marshal(createPaymentRequest{
		OrderID:         params.OrderID,
		CustomerID:      params.CustomerID,
		NominalAmount:   params.NominalAmount.StringFixed(2),
		NominalCurrency: params.NominalCurrency,
		Title:           params.Title,
		Description:     params.Description,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment request: %w", err)
	}

	var response createPaymentResponse
	if err := c.do(ctx, http.MethodPost, createPaymentPath, body, &response); err != nil {
		return "", err
	}
	if response.PaymentURL == "" {
		return "", fmt.Errorf("payment response missing payment_url")
	}

	c.logger.Infow("payment created",
		"payment_id", response.ID, "order_id", params.OrderID)
	return response.PaymentURL, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	expiration := time.Now().Add(c.signatureTTL).Unix()
	signature, err := c.scheme.Sign(method, path, body, expiration)
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.scheme.BaseURL()+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.scheme.APIKey())
	req.Header.Set(c.scheme.SignatureHeader(), signature)
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Errorw("provider returned error",
			"status", resp.StatusCode, "path", path, "body", string(respBody))
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
