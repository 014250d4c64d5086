// Package notification renders and sends the order emails.
package notification

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"fashion-cart/internal/client"
	"fashion-cart/internal/currency"
	"fashion-cart/internal/model"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"price":         currency.FormatPrice,
	"paymentMethod": PaymentMethodLabel,
	"date":          func(t time.Time) string { return t.Format("02 Jan 2006") },
}).ParseFS(templateFS, "templates/*.html"))

type Notifier interface {
	// OrderPlaced emails the customer and, when configured, the shop admin.
	OrderPlaced(ctx context.Context, order *model.Order, customer *model.UserSummary) error
}

type mailNotifier struct {
	mailer     client.Mailer
	adminEmail string
	log        zerolog.Logger
}

func NewNotifier(mailer client.Mailer, adminEmail string, log zerolog.Logger) Notifier {
	return &mailNotifier{
		mailer:     mailer,
		adminEmail: adminEmail,
		log:        log,
	}
}

type emailData struct {
	Order    *model.Order
	Customer *model.UserSummary
	COD      bool
}

// PaymentMethodLabel turns CREDIT_CARD into "CREDIT CARD"; COD reads as
// "Cash on Delivery".
func PaymentMethodLabel(m model.PaymentMethod) string {
	if m == model.PaymentCashOnDelivery {
		return "Cash on Delivery"
	}
	return strings.ReplaceAll(string(m), "_", " ")
}

func CustomerSubject(order *model.Order) string {
	if order.PaymentMethod == model.PaymentCashOnDelivery {
		return "COD Order Confirmation - " + order.ID
	}
	return "Order Confirmation - " + order.ID
}

func AdminSubject(order *model.Order) string {
	if order.PaymentMethod == model.PaymentCashOnDelivery {
		return "New COD Order - " + order.ID
	}
	return "New Order Received - " + order.ID
}

func RenderCustomerEmail(order *model.Order, customer *model.UserSummary) (string, error) {
	return render("order_confirmation.html", order, customer)
}

func RenderAdminEmail(order *model.Order, customer *model.UserSummary) (string, error) {
	return render("admin_order.html", order, customer)
}

func render(name string, order *model.Order, customer *model.UserSummary) (string, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, name, emailData{
		Order:    order,
		Customer: customer,
		COD:      order.PaymentMethod == model.PaymentCashOnDelivery,
	})
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (n *mailNotifier) OrderPlaced(ctx context.Context, order *model.Order, customer *model.UserSummary) error {
	if customer == nil || customer.Email == "" {
		return nil
	}

	html, err := RenderCustomerEmail(order, customer)
	if err != nil {
		return err
	}
	err = n.mailer.Send(ctx, &client.Mail{
		To:      []string{customer.Email},
		Subject: CustomerSubject(order),
		HTML:    html,
	})
	if errors.Is(err, model.ErrNotConfigured) {
		n.log.Debug().Str("order_id", order.ID).Msg("email not configured, skipping order emails")
		return nil
	}
	if err != nil {
		return fmt.Errorf("send customer email: %w", err)
	}

	if n.adminEmail == "" {
		return nil
	}

	html, err = RenderAdminEmail(order, customer)
	if err != nil {
		return err
	}
	err = n.mailer.Send(ctx, &client.Mail{
		To:      []string{n.adminEmail},
		Subject: AdminSubject(order),
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("send admin email: %w", err)
	}

	return nil
}
