package dto

import (
	"fashion-cart/internal/model"

	"github.com/shopspring/decimal"
)

// Response is the envelope every non-passthrough endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func OK(message string) Response {
	return Response{Success: true, Message: message}
}

// PaypalItemProduct is the product snapshot the checkout page attaches to each
// cart line.
type PaypalItemProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type PaypalOrderItem struct {
	ID          string             `json:"id"`
	ProductID   string             `json:"productId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Quantity    int                `json:"quantity"`
	Product     *PaypalItemProduct `json:"product,omitempty"`
}

// ProductRef resolves which catalog product the line points at.
func (i *PaypalOrderItem) ProductRef() string {
	if i.Product != nil && i.Product.ID != "" {
		return i.Product.ID
	}
	if i.ProductID != "" {
		return i.ProductID
	}
	return i.ID
}

type CreatePaypalOrderRequest struct {
	Items []PaypalOrderItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

type CapturePaypalOrderRequest struct {
	OrderID string `json:"orderId"`
}

type OrderItemInput struct {
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductCategory string          `json:"productCategory"`
	Quantity        int             `json:"quantity"`
	Size            string          `json:"size"`
	Color           string          `json:"color"`
	Price           decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	Items         []OrderItemInput    `json:"items"`
	AddressID     string              `json:"addressId"`
	CouponID      string              `json:"couponId"`
	Total         decimal.Decimal     `json:"total"`
	PaymentID     string              `json:"paymentId"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	PaymentNonce  string              `json:"paymentNonce"`
}

type CODOrderResponse struct {
	Response
	Order *model.Order `json:"order"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus model.PaymentStatus `json:"paymentStatus"`
}

type OrderResponse struct {
	Response
	Order *model.Order `json:"order"`
}
