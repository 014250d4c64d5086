package model

import "encoding/json"

type Payer struct {
	PayerID string `json:"payer_id"`
	Email   string `json:"email_address"`
}

type PaypalLink struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

type Amount struct {
	Currency string `json:"currency_code"`
	Value    string `json:"value"`
}

type AmountBreakdown struct {
	ItemTotal Amount  `json:"item_total"`
	Discount  *Amount `json:"discount,omitempty"`
}

type PurchaseAmount struct {
	Currency  string           `json:"currency_code"`
	Value     string           `json:"value"`
	Breakdown *AmountBreakdown `json:"breakdown,omitempty"`
}

type PaypalItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Sku         string `json:"sku,omitempty"`
	UnitAmount  Amount `json:"unit_amount"`
	Quantity    string `json:"quantity"`
	Category    string `json:"category"`
}

type PaypalOrderRequest struct {
	Intent        string                `json:"intent"`
	PurchaseUnits []PaypalPurchaseUnitIn `json:"purchase_units"`
}

type PaypalPurchaseUnitIn struct {
	Amount PurchaseAmount `json:"amount"`
	Items  []PaypalItem   `json:"items"`
}

type Capture struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	CreateTime string `json:"create_time"`
	Final      bool   `json:"final_capture"`
	Amount     Amount `json:"amount"`
}

type Payments struct {
	Captures []Capture `json:"captures"`
}

type PurchaseUnit struct {
	ReferenceID string   `json:"reference_id"`
	Payments    Payments `json:"payments"`
}

// PaypalOrder is the subset of the checkout order resource the API reads.
// Raw holds the response body as PayPal sent it; handlers relay it as-is.
type PaypalOrder struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	Links         []PaypalLink    `json:"links"`
	Payer         Payer           `json:"payer"`
	PurchaseUnits []PurchaseUnit  `json:"purchase_units"`
	Raw           json.RawMessage `json:"-"`
}

// CaptureID returns the first capture id, if any.
func (o *PaypalOrder) CaptureID() string {
	for _, unit := range o.PurchaseUnits {
		for _, capture := range unit.Payments.Captures {
			if capture.ID != "" {
				return capture.ID
			}
		}
	}
	return ""
}

type RelatedIDs struct {
	OrderID string `json:"order_id"`
}

type SupplementaryData struct {
	RelatedIDs RelatedIDs `json:"related_ids"`
}

type PaypalResource struct {
	ID                string            `json:"id"`
	Status            string            `json:"status"`
	Amount            Amount            `json:"amount"`
	SupplementaryData SupplementaryData `json:"supplementary_data"`
}

type PayPalWebhookEvent struct {
	ID         string         `json:"id"`
	EventType  string         `json:"event_type"`
	CreateTime string         `json:"create_time"`
	Resource   PaypalResource `json:"resource"`
}
