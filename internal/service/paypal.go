package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"fashion-cart/internal/client"
	"fashion-cart/internal/currency"
	"fashion-cart/internal/dto"
	"fashion-cart/internal/metrics"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	eventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"

	paypalTextLimit = 127
)

type PaypalService interface {
	CreateOrder(ctx context.Context, req *dto.CreatePaypalOrderRequest) (*model.PaypalOrder, error)
	CaptureOrder(ctx context.Context, orderID string) (*model.PaypalOrder, error)
	HandleWebhook(ctx context.Context, headers http.Header, body []byte) error
}

type paypalServiceImpl struct {
	db               *gorm.DB
	paypalClient     client.PaypalClient
	environment      string
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	webhookEventRepo repository.WebhookEventRepository
	metrics          *metrics.Metrics
	log              zerolog.Logger
}

func NewPaypalService(
	db *gorm.DB,
	paypalClient client.PaypalClient,
	environment string,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	webhookEventRepo repository.WebhookEventRepository,
	m *metrics.Metrics,
	log zerolog.Logger,
) PaypalService {
	return &paypalServiceImpl{
		db:               db,
		paypalClient:     paypalClient,
		environment:      environment,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		webhookEventRepo: webhookEventRepo,
		metrics:          m,
		log:              log,
	}
}

func (s *paypalServiceImpl) CreateOrder(ctx context.Context, req *dto.CreatePaypalOrderRequest) (*model.PaypalOrder, error) {
	if len(req.Items) == 0 {
		return nil, model.Invalid("Order must contain at least one item")
	}

	productIDs := make([]string, 0, len(req.Items))
	for i := range req.Items {
		item := &req.Items[i]
		if item.ProductRef() == "" {
			return nil, model.Invalid("Product is required for every item")
		}
		if item.Quantity <= 0 {
			return nil, model.Invalid("Quantity must be at least 1")
		}
		productIDs = append(productIDs, item.ProductRef())
	}

	products, err := s.productRepo.FindMany(ctx, nil, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	byID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var currencyCode string
	subtotal := decimal.Zero
	itemTotal := decimal.Zero
	paypalItems := make([]model.PaypalItem, len(req.Items))
	for i := range req.Items {
		item := &req.Items[i]
		product, ok := byID[item.ProductRef()]
		if !ok {
			return nil, model.NotFound("Product not found")
		}

		var unit decimal.Decimal
		unit, currencyCode = currency.ConvertForPayPal(product.Price, s.environment)
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(product.Price.Mul(qty))
		itemTotal = itemTotal.Add(unit.Mul(qty))

		paypalItems[i] = model.PaypalItem{
			Name:        truncate(product.Name, paypalTextLimit),
			Description: truncate(product.Description, paypalTextLimit),
			Sku:         product.ID,
			UnitAmount:  model.Amount{Currency: currencyCode, Value: unit.StringFixed(2)},
			Quantity:    strconv.Itoa(item.Quantity),
			Category:    "PHYSICAL_GOODS",
		}
	}

	// a coupon makes the requested total smaller than the items; PayPal needs
	// the difference as a breakdown discount
	breakdown := &model.AmountBreakdown{
		ItemTotal: model.Amount{Currency: currencyCode, Value: itemTotal.StringFixed(2)},
	}
	value := itemTotal
	if req.Total.IsPositive() {
		if req.Total.Sub(subtotal).GreaterThan(totalTolerance) {
			return nil, model.Invalid("Order total mismatch")
		}
		converted, _ := currency.ConvertForPayPal(req.Total, s.environment)
		if discount := itemTotal.Sub(converted); discount.IsPositive() {
			breakdown.Discount = &model.Amount{Currency: currencyCode, Value: discount.StringFixed(2)}
			value = converted
		}
	}

	order, err := s.paypalClient.CreateOrder(ctx, &model.PaypalOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []model.PaypalPurchaseUnitIn{
			{
				Amount: model.PurchaseAmount{
					Currency:  currencyCode,
					Value:     value.StringFixed(2),
					Breakdown: breakdown,
				},
				Items: paypalItems,
			},
		},
	}, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("paypal api create order: %w", err)
	}

	s.log.Info().
		Str("paypal_order_id", order.ID).
		Str("amount", value.StringFixed(2)).
		Str("currency", currencyCode).
		Msg("paypal order created")
	return order, nil
}

func (s *paypalServiceImpl) CaptureOrder(ctx context.Context, orderID string) (*model.PaypalOrder, error) {
	if orderID == "" {
		return nil, model.Invalid("Order ID is required")
	}

	order, err := s.paypalClient.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("paypal api capture order: %w", err)
	}

	s.log.Info().
		Str("paypal_order_id", order.ID).
		Str("status", order.Status).
		Str("capture_id", order.CaptureID()).
		Msg("paypal order captured")
	return order, nil
}

func (s *paypalServiceImpl) HandleWebhook(ctx context.Context, headers http.Header, body []byte) error {
	// the body is forwarded verbatim to the verification call
	if !json.Valid(body) {
		s.metrics.ObserveWebhook("unknown", "invalid")
		return model.Invalid("Invalid webhook payload")
	}

	err := s.paypalClient.VerifyWebhookSignature(ctx, headers, body)
	if err != nil {
		s.metrics.ObserveWebhook("unknown", "rejected")
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	var event model.PayPalWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.metrics.ObserveWebhook("unknown", "invalid")
		return model.Invalid("Invalid webhook payload")
	}
	if event.ID == "" {
		s.metrics.ObserveWebhook(event.EventType, "invalid")
		return model.Invalid("Webhook event id is missing")
	}

	processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		s.log.Debug().Str("event_id", event.ID).Msg("webhook event already processed")
		s.metrics.ObserveWebhook(event.EventType, "duplicate")
		return nil
	}

	switch event.EventType {
	case eventCaptureCompleted:
		err = s.handleCaptureCompleted(ctx, &event)
	default:
		s.log.Debug().Str("event_type", event.EventType).Msg("ignoring webhook event")
		err = s.webhookEventRepo.MarkProcessed(ctx, nil, event.ID, event.EventType)
	}

	if errors.Is(err, model.ErrAlreadyExists) {
		// a concurrent delivery of the same event won the insert
		s.metrics.ObserveWebhook(event.EventType, "duplicate")
		return nil
	}
	if err != nil {
		s.metrics.ObserveWebhook(event.EventType, "failed")
		return err
	}

	s.metrics.ObserveWebhook(event.EventType, "processed")
	return nil
}

// handleCaptureCompleted completes payment for orders created with either the
// PayPal order id or the capture id as their payment id.
func (s *paypalServiceImpl) handleCaptureCompleted(ctx context.Context, event *model.PayPalWebhookEvent) error {
	var paymentIDs []string
	if id := event.Resource.SupplementaryData.RelatedIDs.OrderID; id != "" {
		paymentIDs = append(paymentIDs, id)
	}
	if event.Resource.ID != "" {
		paymentIDs = append(paymentIDs, event.Resource.ID)
	}
	if len(paymentIDs) == 0 {
		return model.Invalid("Could not find order_id in webhook payload")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated, err := s.orderRepo.MarkPaidByPaymentIDs(ctx, tx, paymentIDs)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}

		if err := s.webhookEventRepo.MarkProcessed(ctx, tx, event.ID, event.EventType); err != nil {
			return err
		}

		s.log.Info().
			Str("event_id", event.ID).
			Strs("payment_ids", paymentIDs).
			Int64("orders_updated", updated).
			Msg("paypal capture completed")
		return nil
	})
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
