package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"
	"fashion-cart/internal/testutil"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderFixture struct {
	db        *gorm.DB
	svc       OrderService
	braintree *stubBraintree
	notifier  *stubNotifier
	events    *stubPublisher
	cache     *memCache
	user      *model.User
	address   *model.Address
	product   *model.Product
	cartRepo  repository.CartRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := testutil.NewDB(t)

	f := &orderFixture{
		db:        db,
		braintree: &stubBraintree{txnID: "bt-txn-1"},
		notifier:  &stubNotifier{},
		events:    &stubPublisher{},
		cache:     newMemCache(),
		cartRepo:  repository.NewCartRepository(db),
	}
	f.svc = NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCouponRepository(db),
		f.cartRepo,
		repository.NewAddressRepository(db),
		repository.NewUserRepository(db),
		f.braintree,
		f.notifier,
		f.events,
		f.cache,
		nil,
		zerolog.Nop(),
	)

	f.user = testutil.CreateUser(t, db, "buyer@example.com", model.RoleUser)
	f.address = testutil.CreateAddress(t, db, f.user.ID)
	f.product = testutil.CreateProduct(t, db, "tee", "299.00", 5)
	return f
}

func (f *orderFixture) request(qty int, total string) *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		Items: []dto.OrderItemInput{{
			ProductID: f.product.ID,
			Quantity:  qty,
			Size:      "M",
			Color:     "red",
			// client prices are ignored
			Price: decimal.NewFromInt(1),
		}},
		AddressID:     f.address.ID,
		Total:         decimal.RequireFromString(total),
		PaymentID:     "PAYPAL-ORDER-1",
		PaymentMethod: model.PaymentPaypalWallet,
	}
}

func (f *orderFixture) stock(t *testing.T) (int, int) {
	t.Helper()
	var p model.Product
	if err := f.db.First(&p, "id = ?", f.product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p.Stock, p.SoldCount
}

func (f *orderFixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	cart, err := f.cartRepo.GetOrCreate(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	err = f.cartRepo.CreateItem(ctx, &model.CartItem{ID: uuid.NewString(), CartID: cart.ID, ProductID: f.product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("cart item: %v", err)
	}
}

func TestCheckoutPlacesOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.fillCart(t)
	ctx := context.Background()

	order, err := f.svc.Checkout(ctx, f.user.ID, f.request(2, "598.00"))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.PaymentStatus != model.PaymentStatusCompleted || order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected statuses %s/%s", order.Status, order.PaymentStatus)
	}
	if !order.Total.Equal(decimal.RequireFromString("598")) {
		t.Fatalf("total = %s", order.Total)
	}
	if len(order.Items) != 1 || !order.Items[0].Price.Equal(f.product.Price) || order.Items[0].ProductName != "tee" {
		t.Fatalf("item not snapshotted from catalog: %+v", order.Items)
	}
	if order.PaymentID == nil || *order.PaymentID != "PAYPAL-ORDER-1" {
		t.Fatalf("payment id = %v", order.PaymentID)
	}

	if stock, sold := f.stock(t); stock != 3 || sold != 2 {
		t.Fatalf("stock/sold = %d/%d, want 3/2", stock, sold)
	}

	lines, err := f.cartRepo.Lines(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart not cleared: %d lines", len(lines))
	}

	if len(f.notifier.orders) != 1 || f.notifier.customers[0].Email != "buyer@example.com" {
		t.Fatalf("expected one confirmation to the buyer, got %+v", f.notifier.customers)
	}
	if got := f.events.types(); len(got) != 1 || got[0] != model.EventOrderCreated {
		t.Fatalf("events = %v", got)
	}

	stored, err := f.svc.Get(ctx, f.user.ID, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Address == nil || len(stored.Items) != 1 {
		t.Fatalf("stored order missing details: %+v", stored)
	}
}

func TestCheckoutRefreshesFeaturedProducts(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	productRepo := repository.NewProductRepository(f.db)
	settings := NewSettingsService(repository.NewBannerRepository(f.db), productRepo, &stubImageStore{}, f.cache, zerolog.Nop())

	if err := settings.SetFeaturedProducts(ctx, []string{f.product.ID}); err != nil {
		t.Fatalf("set featured: %v", err)
	}
	if _, err := settings.FeaturedProducts(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if _, err := f.svc.Checkout(ctx, f.user.ID, f.request(2, "598.00")); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	featured, err := settings.FeaturedProducts(ctx)
	if err != nil || len(featured) != 1 {
		t.Fatalf("featured = %+v, %v", featured, err)
	}
	if featured[0].Stock != 3 || featured[0].SoldCount != 2 {
		t.Fatalf("featured stock/sold = %d/%d, want 3/2", featured[0].Stock, featured[0].SoldCount)
	}
}

func TestCheckoutWithoutCartIsFine(t *testing.T) {
	f := newOrderFixture(t)

	if _, err := f.svc.Checkout(context.Background(), f.user.ID, f.request(1, "299")); err != nil {
		t.Fatalf("checkout without cart: %v", err)
	}
}

func TestCheckoutAppliesCouponOnce(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	coupon := testutil.CreateCoupon(t, f.db, "SAVE10", 10, 1, 0)

	req := f.request(2, "538.20")
	req.CouponID = coupon.ID
	order, err := f.svc.Checkout(ctx, f.user.ID, req)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !order.Total.Equal(decimal.RequireFromString("538.20")) {
		t.Fatalf("total = %s", order.Total)
	}
	if order.CouponID == nil || *order.CouponID != coupon.ID {
		t.Fatalf("coupon not attached")
	}

	var stored model.Coupon
	f.db.First(&stored, "id = ?", coupon.ID)
	if stored.UsageCount != 1 {
		t.Fatalf("usage count = %d", stored.UsageCount)
	}

	again := f.request(1, "269.10")
	again.CouponID = coupon.ID
	_, err = f.svc.Checkout(ctx, f.user.ID, again)
	if !errors.Is(err, model.ErrCouponUnavailable) {
		t.Fatalf("expected exhausted coupon, got %v", err)
	}
	if stock, _ := f.stock(t); stock != 3 {
		t.Fatalf("failed checkout touched stock: %d", stock)
	}
}

func TestCheckoutTotalMismatch(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Checkout(context.Background(), f.user.ID, f.request(2, "2.00"))
	if !errors.Is(err, model.ErrInvalidInput) || err.Error() != "Order total mismatch" {
		t.Fatalf("expected total mismatch, got %v", err)
	}

	var count int64
	f.db.Model(&model.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("order persisted despite mismatch")
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	f := newOrderFixture(t)
	coupon := testutil.CreateCoupon(t, f.db, "SAVE10", 10, 5, 0)

	req := f.request(6, "1614.60")
	req.CouponID = coupon.ID
	_, err := f.svc.Checkout(context.Background(), f.user.ID, req)
	if !errors.Is(err, model.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	var stored model.Coupon
	f.db.First(&stored, "id = ?", coupon.ID)
	if stored.UsageCount != 0 {
		t.Fatalf("coupon redemption not rolled back: %d", stored.UsageCount)
	}
	var count int64
	f.db.Model(&model.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("order persisted despite rollback")
	}
}

func TestCheckoutValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	stranger := testutil.CreateUser(t, f.db, "stranger@example.com", model.RoleUser)

	noItems := f.request(1, "299")
	noItems.Items = nil
	if _, err := f.svc.Checkout(ctx, f.user.ID, noItems); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("empty items: %v", err)
	}

	zeroQty := f.request(0, "0")
	if _, err := f.svc.Checkout(ctx, f.user.ID, zeroQty); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("zero quantity: %v", err)
	}

	noPayment := f.request(1, "299")
	noPayment.PaymentID = ""
	if _, err := f.svc.Checkout(ctx, f.user.ID, noPayment); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("missing payment: %v", err)
	}

	badMethod := f.request(1, "299")
	badMethod.PaymentMethod = "BITCOIN"
	if _, err := f.svc.Checkout(ctx, f.user.ID, badMethod); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("bad method: %v", err)
	}

	if _, err := f.svc.Checkout(ctx, stranger.ID, f.request(1, "299")); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("foreign address: %v", err)
	}

	missing := f.request(1, "299")
	missing.Items[0].ProductID = uuid.NewString()
	if _, err := f.svc.Checkout(ctx, f.user.ID, missing); !errors.Is(err, model.ErrInsufficientStock) {
		t.Errorf("missing product: %v", err)
	}
}

func TestCheckoutChargesCardNonce(t *testing.T) {
	f := newOrderFixture(t)

	req := f.request(2, "598")
	req.PaymentID = ""
	req.PaymentNonce = "fake-valid-nonce"
	req.PaymentMethod = ""

	order, err := f.svc.Checkout(context.Background(), f.user.ID, req)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.PaymentMethod != model.PaymentCreditCard {
		t.Fatalf("default payment method = %s", order.PaymentMethod)
	}
	if order.PaymentID == nil || *order.PaymentID != "bt-txn-1" {
		t.Fatalf("payment id = %v", order.PaymentID)
	}
	if len(f.braintree.charged) != 1 || !f.braintree.charged[0].Equal(decimal.NewFromInt(598)) {
		t.Fatalf("charged = %v", f.braintree.charged)
	}
}

func TestCheckoutDeclinedCardCreatesNothing(t *testing.T) {
	f := newOrderFixture(t)
	f.braintree.err = model.Invalid("Card was declined: Insufficient Funds")

	req := f.request(1, "299")
	req.PaymentID = ""
	req.PaymentNonce = "fake-processor-declined-visa-nonce"

	if _, err := f.svc.Checkout(context.Background(), f.user.ID, req); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected decline, got %v", err)
	}
	if stock, _ := f.stock(t); stock != 5 {
		t.Fatalf("stock changed after decline: %d", stock)
	}
}

func TestCreateCOD(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	noAddress := f.request(1, "299")
	noAddress.AddressID = ""
	_, err := f.svc.CreateCOD(ctx, f.user.ID, noAddress)
	if !errors.Is(err, model.ErrInvalidInput) || err.Error() != "Address is required for COD orders" {
		t.Fatalf("expected address error, got %v", err)
	}

	order, err := f.svc.CreateCOD(ctx, f.user.ID, f.request(1, "299"))
	if err != nil {
		t.Fatalf("cod: %v", err)
	}
	if order.PaymentMethod != model.PaymentCashOnDelivery || order.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("unexpected payment %s/%s", order.PaymentMethod, order.PaymentStatus)
	}
	if order.PaymentID != nil {
		t.Fatalf("cod order should carry no payment id")
	}
}

func TestOrderStatusUpdates(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateCOD(ctx, f.user.ID, f.request(1, "299"))
	if err != nil {
		t.Fatalf("cod: %v", err)
	}

	if _, err := f.svc.UpdateStatus(ctx, order.ID, "LOST"); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, uuid.NewString(), model.OrderStatusShipped); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	updated, err := f.svc.UpdateStatus(ctx, order.ID, model.OrderStatusShipped)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.OrderStatusShipped {
		t.Fatalf("status = %s", updated.Status)
	}

	paid, err := f.svc.UpdatePaymentStatus(ctx, order.ID, model.PaymentStatusCompleted)
	if err != nil {
		t.Fatalf("update payment: %v", err)
	}
	if paid.PaymentStatus != model.PaymentStatusCompleted {
		t.Fatalf("payment status = %s", paid.PaymentStatus)
	}

	want := []string{model.EventOrderCreated, model.EventOrderStatusChanged, model.EventOrderPaymentReceived}
	got := f.events.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestListAllAttachesCustomers(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CreateCOD(ctx, f.user.ID, f.request(1, "299")); err != nil {
		t.Fatalf("cod: %v", err)
	}

	orders, err := f.svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(orders) != 1 || orders[0].User == nil || orders[0].User.Email != "buyer@example.com" {
		t.Fatalf("customer not attached: %+v", orders)
	}

	mine, err := f.svc.ListForUser(ctx, f.user.ID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("list for user = %d, %v", len(mine), err)
	}
}

func TestInvoiceAccess(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	other := testutil.CreateUser(t, f.db, "other@example.com", model.RoleUser)

	order, err := f.svc.CreateCOD(ctx, f.user.ID, f.request(1, "299"))
	if err != nil {
		t.Fatalf("cod: %v", err)
	}

	var buf bytes.Buffer
	if err := f.svc.Invoice(ctx, f.user.ID, false, order.ID, &buf); err != nil {
		t.Fatalf("owner invoice: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatal("invoice is not a pdf")
	}

	if err := f.svc.Invoice(ctx, other.ID, false, order.ID, &bytes.Buffer{}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}
	if err := f.svc.Invoice(ctx, other.ID, true, order.ID, &bytes.Buffer{}); err != nil {
		t.Fatalf("admin invoice: %v", err)
	}
}
