package client

import (
	"context"
	"fmt"

	"fashion-cart/internal/config"
	"fashion-cart/internal/model"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

type BraintreeClient interface {
	// Charge settles a one-time sale for a card nonce produced by the drop-in UI
	// and returns the Braintree transaction id.
	Charge(ctx context.Context, nonce string, amount decimal.Decimal) (string, error)
}

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeClient returns a client that refuses charges when the merchant
// credentials are missing.
func NewBraintreeClient(cfg *config.Braintree) BraintreeClient {
	if !cfg.Enabled() {
		return disabledBraintreeClient{}
	}

	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

func (c *braintreeClientImpl) Charge(ctx context.Context, nonce string, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", model.Invalid("charge amount must be positive")
	}

	// braintree expects NewDecimal(unscaled, scale): 50.00 -> NewDecimal(5000, 2)
	cents := amount.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	btAmount := braintree.NewDecimal(cents, 2)

	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             btAmount,
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transaction creation failed: %w", err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined || tx.Status == braintree.TransactionStatusGatewayRejected {
		return "", model.NewError(model.ErrInvalidInput, "Card was declined: "+tx.ProcessorResponseText)
	}

	return tx.Id, nil
}

type disabledBraintreeClient struct{}

func (disabledBraintreeClient) Charge(context.Context, string, decimal.Decimal) (string, error) {
	return "", model.NewError(model.ErrNotConfigured, "Card payments are not configured")
}
