package entity

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxInstallments caps how many due-date columns a circularized row carries.
const MaxInstallments = 12

// ReportRow is one line of the raw sales report: one per payment of an
// invoiced order. Every row of the same order carries identical totals,
// only the installment count differs per payment. Installments 0 means
// the payment did not inform a count.
type ReportRow struct {
	InvoicedDate string
	OrderId      string
	Seller       string
	Items        decimal.Decimal
	Shipping     decimal.Decimal
	Total        decimal.Decimal
	Installments int
}

// Key identifies a row for deduplication by exact field equality.
// decimal.Decimal is not comparable with ==, so rows are keyed by their
// rendered form. Money renders with two fixed decimals so a row keeps its
// key across a spreadsheet round trip.
func (r ReportRow) Key() string {
	return strings.Join([]string{
		r.InvoicedDate,
		r.OrderId,
		r.Seller,
		r.Items.StringFixed(2),
		r.Shipping.StringFixed(2),
		r.Total.StringFixed(2),
		strconv.Itoa(r.Installments),
	}, "|")
}

// CircularizedRow is a ReportRow with the projected installment due dates.
// Unused slots stay empty; a row with no installment count has all twelve
// empty.
type CircularizedRow struct {
	ReportRow
	DueDates [MaxInstallments]string
}
