package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"fashion-cart/internal/client"
	"fashion-cart/internal/dto"
	"fashion-cart/internal/invoice"
	"fashion-cart/internal/metrics"
	"fashion-cart/internal/model"
	"fashion-cart/internal/notification"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// totalTolerance is how far a client-computed total may drift from ours.
var totalTolerance = decimal.RequireFromString("0.01")

type OrderService interface {
	// Checkout places an order paid through PayPal or a card. COD orders go
	// through CreateCOD.
	Checkout(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error)
	CreateCOD(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, userID, orderID string) (*model.Order, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) (*model.Order, error)
	// Invoice writes the PDF invoice of orderID. Admins may fetch any order.
	Invoice(ctx context.Context, userID string, admin bool, orderID string, w io.Writer) error
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	braintree   client.BraintreeClient
	notifier    notification.Notifier
	events      client.EventPublisher
	cache       client.Cache
	metrics     *metrics.Metrics
	log         zerolog.Logger
	now         func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	userRepo repository.UserRepository,
	braintree client.BraintreeClient,
	notifier notification.Notifier,
	events client.EventPublisher,
	cache client.Cache,
	m *metrics.Metrics,
	log zerolog.Logger,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		userRepo:    userRepo,
		braintree:   braintree,
		notifier:    notifier,
		events:      events,
		cache:       cache,
		metrics:     m,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// pricedOrder is an order's lines priced from the catalog.
type pricedOrder struct {
	items    []model.OrderItem
	subtotal decimal.Decimal
	discount decimal.Decimal
	total    decimal.Decimal
	coupon   *model.Coupon
}

func (s *orderServiceImpl) Checkout(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentCreditCard
	}
	if req.PaymentMethod == model.PaymentCashOnDelivery {
		return s.CreateCOD(ctx, userID, req)
	}
	if !req.PaymentMethod.Valid() {
		return nil, model.Invalid("Invalid payment method")
	}

	order, err := s.checkout(ctx, userID, req)
	s.observe(req.PaymentMethod, err)
	return order, err
}

func (s *orderServiceImpl) CreateCOD(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	req.PaymentMethod = model.PaymentCashOnDelivery
	req.PaymentID = ""
	req.PaymentNonce = ""
	if req.AddressID == "" {
		return nil, model.Invalid("Address is required for COD orders")
	}

	order, err := s.checkout(ctx, userID, req)
	s.observe(req.PaymentMethod, err)
	return order, err
}

func (s *orderServiceImpl) observe(method model.PaymentMethod, err error) {
	result := "success"
	if err != nil {
		result = "failed"
	}
	s.metrics.ObserveCheckout(method, result)
}

func (s *orderServiceImpl) checkout(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	if err := validateOrderItems(req.Items); err != nil {
		return nil, err
	}
	if req.AddressID == "" {
		return nil, model.Invalid("Address is required")
	}

	address, err := s.addressRepo.FindForUser(ctx, userID, req.AddressID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("Address not found!")
		}
		return nil, fmt.Errorf("find address: %w", err)
	}

	cod := req.PaymentMethod == model.PaymentCashOnDelivery
	paymentStatus := model.PaymentStatusCompleted
	if cod {
		paymentStatus = model.PaymentStatusPending
	}

	paymentID := req.PaymentID
	if !cod && paymentID == "" {
		if req.PaymentNonce == "" {
			return nil, model.Invalid("Payment ID is required")
		}

		quote, err := s.price(ctx, nil, req.Items, req.CouponID)
		if err != nil {
			return nil, err
		}
		if err := checkClientTotal(req.Total, quote.total); err != nil {
			return nil, err
		}

		paymentID, err = s.braintree.Charge(ctx, req.PaymentNonce, quote.total)
		if err != nil {
			return nil, fmt.Errorf("charge card: %w", err)
		}
	}

	var (
		order  *model.Order
		priced *pricedOrder
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		priced, err = s.price(ctx, tx, req.Items, req.CouponID)
		if err != nil {
			return err
		}
		if err := checkClientTotal(req.Total, priced.total); err != nil {
			return err
		}

		if priced.coupon != nil {
			err := s.couponRepo.Redeem(ctx, tx, priced.coupon.ID, s.now())
			if errors.Is(err, model.ErrCouponUnavailable) {
				return model.NewError(model.ErrCouponUnavailable, "Coupon has reached its usage limit")
			}
			if err != nil {
				return fmt.Errorf("redeem coupon: %w", err)
			}
		}

		order = &model.Order{
			ID:            uuid.NewString(),
			UserID:        userID,
			AddressID:     address.ID,
			Total:         priced.total,
			Status:        model.OrderStatusPending,
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: paymentStatus,
			Items:         priced.items,
		}
		if priced.coupon != nil {
			order.CouponID = &priced.coupon.ID
		}
		if paymentID != "" {
			order.PaymentID = &paymentID
		}
		for i := range order.Items {
			order.Items[i].ID = uuid.NewString()
			order.Items[i].OrderID = order.ID
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range order.Items {
			err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			switch {
			case errors.Is(err, model.ErrInsufficientStock):
				return model.NewError(model.ErrInsufficientStock, fmt.Sprintf("Insufficient stock for %s", item.ProductName))
			case errors.Is(err, model.ErrNotFound):
				return model.NewError(model.ErrInsufficientStock, fmt.Sprintf("Product %s is no longer available", item.ProductName))
			case err != nil:
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		if err := s.cartRepo.ClearByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		if req.PaymentNonce != "" && paymentID != "" {
			s.log.Error().Err(err).
				Str("user_id", userID).
				Str("transaction_id", paymentID).
				Msg("card charged but order was not created")
		}
		return nil, err
	}

	order.Address = address
	order.Coupon = priced.coupon

	s.afterCheckout(ctx, order)
	return order, nil
}

func validateOrderItems(items []dto.OrderItemInput) error {
	if len(items) == 0 {
		return model.Invalid("Order must contain at least one item")
	}
	for _, item := range items {
		if item.ProductID == "" {
			return model.Invalid("Product is required for every item")
		}
		if item.Quantity < 1 {
			return model.Invalid("Quantity must be at least 1")
		}
	}
	return nil
}

func checkClientTotal(clientTotal, total decimal.Decimal) error {
	if clientTotal.Sub(total).Abs().GreaterThan(totalTolerance) {
		return model.Invalid("Order total mismatch")
	}
	return nil
}

// price snapshots catalog prices for items and applies the coupon. tx may be
// nil outside a transaction.
func (s *orderServiceImpl) price(ctx context.Context, tx *gorm.DB, items []dto.OrderItemInput, couponID string) (*pricedOrder, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.FindMany(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	byID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	priced := &pricedOrder{
		items:    make([]model.OrderItem, 0, len(items)),
		subtotal: decimal.Zero,
		discount: decimal.Zero,
	}
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			name := item.ProductName
			if name == "" {
				name = item.ProductID
			}
			return nil, model.NewError(model.ErrInsufficientStock, fmt.Sprintf("Product %s is no longer available", name))
		}

		line := model.OrderItem{
			ProductID:       product.ID,
			ProductName:     product.Name,
			ProductCategory: product.Category,
			Quantity:        item.Quantity,
			Size:            item.Size,
			Color:           item.Color,
			Price:           product.Price,
		}
		priced.subtotal = priced.subtotal.Add(line.LineTotal())
		priced.items = append(priced.items, line)
	}

	if couponID != "" {
		coupon, err := s.couponRepo.FindByID(ctx, tx, couponID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, model.NewError(model.ErrCouponUnavailable, "Invalid coupon code")
			}
			return nil, fmt.Errorf("find coupon: %w", err)
		}
		if err := checkRedeemable(coupon, s.now()); err != nil {
			return nil, err
		}
		priced.coupon = coupon
		priced.discount = coupon.Discount(priced.subtotal)
	}

	priced.total = priced.subtotal.Sub(priced.discount)
	return priced, nil
}

// afterCheckout runs the side effects of a committed order. Failures are
// logged only.
func (s *orderServiceImpl) afterCheckout(ctx context.Context, order *model.Order) {
	log := s.log.With().Str("order_id", order.ID).Logger()

	invalidateFeatured(ctx, s.cache, log)

	user, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		log.Warn().Err(err).Msg("could not load customer for order emails")
	} else {
		customer := &model.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
		if err := s.notifier.OrderPlaced(ctx, order, customer); err != nil {
			log.Warn().Err(err).Msg("failed to send order emails")
		}
	}

	s.publish(ctx, model.EventOrderCreated, order)

	log.Info().
		Str("payment_method", string(order.PaymentMethod)).
		Str("total", order.Total.StringFixed(2)).
		Msg("order placed")
}

func (s *orderServiceImpl) publish(ctx context.Context, eventType string, order *model.Order) {
	if err := s.events.PublishOrderEvent(ctx, model.NewOrderEvent(eventType, order)); err != nil {
		s.log.Warn().Err(err).
			Str("order_id", order.ID).
			Str("event", eventType).
			Msg("failed to publish order event")
	}
}

func (s *orderServiceImpl) Get(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

func (s *orderServiceImpl) ListForUser(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *orderServiceImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.UserID)
	}
	users, err := s.userRepo.Summaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load order customers: %w", err)
	}
	for _, o := range orders {
		if u, ok := users[o.UserID]; ok {
			o.User = &u
		}
	}

	return orders, nil
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.Invalid("Invalid order status")
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("Order not found")
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, model.EventOrderStatusChanged, order)
	return order, nil
}

func (s *orderServiceImpl) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.Invalid("Invalid payment status")
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("Order not found")
		}
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if status == model.PaymentStatusCompleted {
		s.publish(ctx, model.EventOrderPaymentReceived, order)
	}
	return order, nil
}

func (s *orderServiceImpl) Invoice(ctx context.Context, userID string, admin bool, orderID string, w io.Writer) error {
	var (
		order *model.Order
		err   error
	)
	if admin {
		order, err = s.orderRepo.FindByID(ctx, orderID)
	} else {
		order, err = s.orderRepo.FindForUser(ctx, userID, orderID)
	}
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NotFound("Order not found")
		}
		return err
	}

	var customer *model.UserSummary
	users, err := s.userRepo.Summaries(ctx, []string{order.UserID})
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("could not load customer for invoice")
	} else if u, ok := users[order.UserID]; ok {
		customer = &u
	}

	return invoice.Render(w, order, customer)
}
