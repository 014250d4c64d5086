// Package invoice renders order invoices as PDF documents.
package invoice

import (
	"fmt"
	"io"
	"strconv"

	"fashion-cart/internal/currency"
	"fashion-cart/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	shopName = "Fashion Cart"

	colProduct = 80.0
	colQty     = 20.0
	colPrice   = 40.0
	colTotal   = 40.0
	rowHeight  = 8.0
)

// Filename is the attachment name offered to the browser.
func Filename(order *model.Order) string {
	return "invoice-" + order.ID + ".pdf"
}

// Render writes the invoice of order to w. customer may be nil.
func Render(w io.Writer, order *model.Order, customer *model.UserSummary) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+order.ID, true)
	pdf.SetAuthor(shopName, true)
	pdf.AddPage()

	// core fonts are cp1252; names and addresses arrive as UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, shopName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "INVOICE", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Order ID", order.ID},
		{"Order Date", order.CreatedAt.Format("02 Jan 2006")},
		{"Status", string(order.Status)},
		{"Payment Method", string(order.PaymentMethod)},
		{"Payment Status", string(order.PaymentStatus)},
	}
	if customer != nil {
		meta = append(meta, [2]string{"Customer", fmt.Sprintf("%s <%s>", customer.Name, customer.Email)})
	}
	for _, kv := range meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, kv[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if a := order.Address; a != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Ship To", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range []string{
			a.Name,
			a.Address,
			a.City + ", " + a.Country + " " + a.PostalCode,
			"Phone: " + a.Phone,
		} {
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colProduct, rowHeight, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, rowHeight, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colPrice, rowHeight, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, rowHeight, "Total", "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 10)
	subtotal := decimal.Zero
	for i := range order.Items {
		item := &order.Items[i]
		subtotal = subtotal.Add(item.LineTotal())

		name := item.ProductName
		if variant := variantLabel(item); variant != "" {
			name += " (" + variant + ")"
		}
		pdf.CellFormat(colProduct, rowHeight, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, rowHeight, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, rowHeight, currency.PDFPrice(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, rowHeight, currency.PDFPrice(item.LineTotal()), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	labelWidth := colProduct + colQty + colPrice
	pdf.CellFormat(labelWidth, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 6, currency.PDFPrice(subtotal), "", 1, "R", false, 0, "")
	if order.Coupon != nil {
		label := fmt.Sprintf("Coupon %s (%s%%)", order.Coupon.Code, order.Coupon.DiscountPercent.String())
		pdf.CellFormat(labelWidth, 6, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, "- "+currency.PDFPrice(subtotal.Sub(order.Total)), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelWidth, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 8, currency.PDFPrice(order.Total), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "Thank you for shopping with us!", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write invoice pdf: %w", err)
	}
	return nil
}

func variantLabel(item *model.OrderItem) string {
	switch {
	case item.Size != "" && item.Color != "":
		return item.Size + ", " + item.Color
	case item.Size != "":
		return item.Size
	default:
		return item.Color
	}
}
