package report

import (
	"vtexreport/entity"
	"vtexreport/lib/clock"
)

// BuildRows projects one invoiced order into report rows, one per payment
// of each payment transaction. Orders the seller did not participate in
// produce nothing. All rows of an order carry the same totals; only the
// installment count comes from the individual payment.
func BuildRows(order *entity.OrderDetail, seller entity.Seller) []entity.ReportRow {
	if !order.HasSeller(seller.Id) {
		return nil
	}

	items := order.Total("Items")
	shipping := order.Total("Shipping")
	total := items.Add(shipping)
	invoiced := clock.FormatShortDate(order.InvoicedDate)

	var rows []entity.ReportRow
	for _, tx := range order.PaymentData.Transactions {
		for _, p := range tx.Payments {
			rows = append(rows, entity.ReportRow{
				InvoicedDate: invoiced,
				OrderId:      order.OrderId,
				Seller:       seller.Display,
				Items:        items,
				Shipping:     shipping,
				Total:        total,
				Installments: p.Installments,
			})
		}
	}
	return rows
}

// Dedupe drops exact duplicates, keeping first-occurrence order.
func Dedupe(rows []entity.ReportRow) []entity.ReportRow {
	seen := make(map[string]struct{}, len(rows))
	out := make([]entity.ReportRow, 0, len(rows))
	for _, r := range rows {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
