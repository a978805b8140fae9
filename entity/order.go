package entity

import "github.com/shopspring/decimal"

// OrderSummary is the minimal order reference returned by the OMS list
// endpoint. Only the id is needed to request the full record.
type OrderSummary struct {
	OrderId string `json:"orderId"`
}

// OrderList is one page of the OMS list endpoint response.
type OrderList struct {
	List []OrderSummary `json:"list"`
}

// OrderDetail is the full order record from the OMS detail endpoint,
// reduced to the fields the report reads. Monetary values arrive in
// integer minor units (centavos).
type OrderDetail struct {
	OrderId      string        `json:"orderId"`
	InvoicedDate string        `json:"invoicedDate"`
	Sellers      []OrderSeller `json:"sellers"`
	Totals       []OrderTotal  `json:"totals"`
	PaymentData  PaymentData   `json:"paymentData"`
}

type OrderSeller struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type OrderTotal struct {
	Id    string `json:"id"`
	Value int64  `json:"value"`
}

type PaymentData struct {
	Transactions []Transaction `json:"transactions"`
}

type Transaction struct {
	Payments []Payment `json:"payments"`
}

type Payment struct {
	Value        int64 `json:"value"`
	Installments int   `json:"installments"`
}

// HasSeller reports whether the seller participates in the order.
func (d *OrderDetail) HasSeller(id string) bool {
	for _, s := range d.Sellers {
		if s.Id == id {
			return true
		}
	}
	return false
}

// Total returns the totals entry tagged with the given id converted from
// minor units, or zero when the tag is absent.
func (d *OrderDetail) Total(id string) decimal.Decimal {
	for _, t := range d.Totals {
		if t.Id == id {
			return centsToDecimal(t.Value)
		}
	}
	return decimal.Zero
}

// centsToDecimal converts an int64 minor-unit amount to a decimal value
func centsToDecimal(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}
