package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"fashion-cart/internal/config"
	"fashion-cart/internal/model"

	"github.com/shopspring/decimal"
)

type stubBraintree struct {
	txnID   string
	err     error
	charged []decimal.Decimal
}

func (s *stubBraintree) Charge(_ context.Context, _ string, amount decimal.Decimal) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.charged = append(s.charged, amount)
	return s.txnID, nil
}

type stubNotifier struct {
	orders    []*model.Order
	customers []*model.UserSummary
}

func (n *stubNotifier) OrderPlaced(_ context.Context, order *model.Order, customer *model.UserSummary) error {
	n.orders = append(n.orders, order)
	n.customers = append(n.customers, customer)
	return nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []*model.OrderEvent
}

func (p *stubPublisher) PublishOrderEvent(_ context.Context, event *model.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *stubPublisher) Close() error { return nil }

func (p *stubPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type stubPaypalClient struct {
	created   *model.PaypalOrderRequest
	requestID string
	verifyErr error
	captured  string
}

func (c *stubPaypalClient) CreateOrder(_ context.Context, order *model.PaypalOrderRequest, requestID string) (*model.PaypalOrder, error) {
	c.created = order
	c.requestID = requestID
	raw, _ := json.Marshal(map[string]string{"id": "PP-1", "status": "CREATED"})
	return &model.PaypalOrder{ID: "PP-1", Status: "CREATED", Raw: raw}, nil
}

func (c *stubPaypalClient) CaptureOrder(_ context.Context, orderID string) (*model.PaypalOrder, error) {
	c.captured = orderID
	return &model.PaypalOrder{
		ID:     orderID,
		Status: "COMPLETED",
		PurchaseUnits: []model.PurchaseUnit{{
			Payments: model.Payments{Captures: []model.Capture{{ID: "CAP-1", Status: "COMPLETED"}}},
		}},
	}, nil
}

func (c *stubPaypalClient) VerifyWebhookSignature(context.Context, http.Header, []byte) error {
	return c.verifyErr
}

// stubImageStore hands out URLs shaped like the image host's.
type stubImageStore struct {
	mu        sync.Mutex
	uploads   int
	folders   []string
	destroyed []string
	failAfter int
}

func (s *stubImageStore) Upload(_ context.Context, r io.Reader, folder string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	if s.failAfter > 0 && s.uploads >= s.failAfter {
		return "", model.Invalid("upload rejected")
	}
	s.uploads++
	s.folders = append(s.folders, folder)
	return "https://res.example.com/demo/image/upload/v1/" + folder + "/img" + string(rune('0'+s.uploads)) + ".jpg", nil
}

func (s *stubImageStore) Destroy(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = append(s.destroyed, publicID)
	return nil
}

// memCache is an in-process client.Cache.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func testTokenManager() *TokenManager {
	return NewTokenManager(&config.JWT{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
}
