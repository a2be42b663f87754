package order

import (
	"time"

	"orderhistory/internal/money"
)

// Order is one purchase order as shown on an order detail page. An Order is
// only ever returned with its ID set and at least one item.
type Order struct {
	ID         string       `json:"id"`
	Date       *time.Time   `json:"date,omitempty"`
	Kind       Kind         `json:"kind"`
	Total      *money.Money `json:"total,omitempty"`
	Subtotal   *money.Money `json:"subtotal,omitempty"`
	Tax        *money.Money `json:"tax,omitempty"`
	// GST and PST are the Canadian federal and provincial sales taxes,
	// shown as separate rows and never folded into Tax.
	GST            *money.Money `json:"gst,omitempty"`
	PST            *money.Money `json:"pst,omitempty"`
	Shipping       *money.Money `json:"shipping,omitempty"`
	ShippingRefund *money.Money `json:"shipping_refund,omitempty"`
	// Discount is the Subscribe & Save saving, negative as shown.
	Discount   *money.Money `json:"discount,omitempty"`
	GiftCard   *money.Money `json:"gift_card,omitempty"`
	Refund     *money.Money `json:"refund,omitempty"`
	InvoiceURL string       `json:"invoice_url,omitempty"`
	Recipient  string       `json:"recipient,omitempty"`
	// Payments are the payment instruments as shown, like "Visa ending in 1234".
	Payments []string   `json:"payments,omitempty"`
	Items    []LineItem `json:"items"`
}

type LineItem struct {
	// Row is the 0-based position of the item within its order.
	Row        int          `json:"row"`
	Title      string       `json:"title"`
	ProductURL string       `json:"product_url,omitempty"`
	ASIN       string       `json:"asin,omitempty"`
	Seller     string       `json:"seller,omitempty"`
	UnitPrice  *money.Money `json:"unit_price,omitempty"`
	Quantity   int          `json:"quantity"`
}

// Header is the summary of an order shown on an order history list page.
type Header struct {
	ID        string       `json:"id"`
	Date      *time.Time   `json:"date,omitempty"`
	Total     *money.Money `json:"total,omitempty"`
	Recipient string       `json:"recipient,omitempty"`
	DetailURL string       `json:"detail_url,omitempty"`
}
