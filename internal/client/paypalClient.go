package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"fashion-cart/internal/config"
	"fashion-cart/internal/model"
)

type PaypalClient interface {
	CreateOrder(ctx context.Context, order *model.PaypalOrderRequest, requestID string) (*model.PaypalOrder, error)
	CaptureOrder(ctx context.Context, orderID string) (*model.PaypalOrder, error)
	VerifyWebhookSignature(ctx context.Context, headers http.Header, body []byte) error
}

type paypalClientImpl struct {
	httpClient         *http.Client
	baseApiURL         string
	paypalClientID     string
	paypalClientSecret string
	webhookID          string

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewPaypalClient(paypalCfg *config.Paypal) PaypalClient {
	return &paypalClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:         paypalCfg.APIURL(),
		paypalClientID:     paypalCfg.ClientID,
		paypalClientSecret: paypalCfg.ClientSecret,
		webhookID:          paypalCfg.WebhookID,
	}
}

// getAccessToken returns a cached client-credentials token, refreshing it a
// minute before PayPal expires it.
func (c *paypalClientImpl) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	if c.paypalClientID == "" || c.paypalClientSecret == "" {
		return "", model.NewError(model.ErrNotConfigured, "PayPal credentials are not configured")
	}

	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.paypalClientID + ":" + c.paypalClientSecret),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseApiURL+"/v1/oauth2/token",
		bytes.NewBufferString("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("paypal token error %d: %s", resp.StatusCode, string(b))
	}

	var res struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode paypal token: %w", err)
	}

	c.accessToken = res.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(res.ExpiresIn)*time.Second - time.Minute)

	return c.accessToken, nil
}

// send performs an authenticated JSON call and returns the raw response body.
func (c *paypalClientImpl) send(ctx context.Context, method, path string, payload any, headers map[string]string) ([]byte, error) {
	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get paypal access token: %w", err)
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal req payload: %w", err)
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseApiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read paypal response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paypal error %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

func (c *paypalClientImpl) CreateOrder(ctx context.Context, order *model.PaypalOrderRequest, requestID string) (*model.PaypalOrder, error) {
	body, err := c.send(ctx, http.MethodPost, "/v2/checkout/orders", order, map[string]string{
		"PayPal-Request-Id": requestID,
		"Prefer":            "return=representation",
	})
	if err != nil {
		return nil, fmt.Errorf("paypal create order: %w", err)
	}

	return decodePaypalOrder(body)
}

func (c *paypalClientImpl) CaptureOrder(ctx context.Context, orderID string) (*model.PaypalOrder, error) {
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID)

	body, err := c.send(ctx, http.MethodPost, path, nil, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		return nil, fmt.Errorf("paypal capture order: %w", err)
	}

	return decodePaypalOrder(body)
}

func (c *paypalClientImpl) VerifyWebhookSignature(ctx context.Context, headers http.Header, body []byte) error {
	if c.webhookID == "" {
		return model.NewError(model.ErrNotConfigured, "PayPal webhook id is not configured")
	}

	payload := map[string]any{
		"auth_algo":         headers.Get("PAYPAL-AUTH-ALGO"),
		"cert_url":          headers.Get("PAYPAL-CERT-URL"),
		"transmission_id":   headers.Get("PAYPAL-TRANSMISSION-ID"),
		"transmission_sig":  headers.Get("PAYPAL-TRANSMISSION-SIG"),
		"transmission_time": headers.Get("PAYPAL-TRANSMISSION-TIME"),
		"webhook_id":        c.webhookID,
		"webhook_event":     json.RawMessage(body),
	}

	respBody, err := c.send(ctx, http.MethodPost, "/v1/notifications/verify-webhook-signature", payload, nil)
	if err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	var res struct {
		VerificationStatus string `json:"verification_status"`
	}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return fmt.Errorf("decode verification response: %w", err)
	}

	if res.VerificationStatus != "SUCCESS" {
		return model.NewError(model.ErrUnauthorized, "invalid webhook signature")
	}

	return nil
}

func decodePaypalOrder(body []byte) (*model.PaypalOrder, error) {
	var order model.PaypalOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("decode paypal response: %w", err)
	}
	order.Raw = json.RawMessage(body)

	return &order, nil
}
