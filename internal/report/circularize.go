package report

import (
	"time"
	"vtexreport/entity"
)

const shortDate = "02/01/2006"

// Circularize projects the installment due dates of each distinct row.
// Due date p is day 15 of the invoiced month plus p; dates landing on a
// weekend move to the next Monday. There is no holiday calendar. Counts
// above twelve are capped, rows without a count keep all slots empty.
// The function is idempotent over the same input.
func Circularize(rows []entity.ReportRow) []entity.CircularizedRow {
	rows = Dedupe(rows)
	out := make([]entity.CircularizedRow, 0, len(rows))
	for _, r := range rows {
		cr := entity.CircularizedRow{ReportRow: r}
		invoiced, err := time.Parse(shortDate, r.InvoicedDate)
		if err == nil && r.Installments > 0 {
			n := r.Installments
			if n > entity.MaxInstallments {
				n = entity.MaxInstallments
			}
			for p := 1; p <= n; p++ {
				cr.DueDates[p-1] = dueDate(invoiced, p).Format(shortDate)
			}
		}
		out = append(out, cr)
	}
	return out
}

// dueDate computes installment p of an invoiced date. Month arithmetic is
// exact (no day-overflow normalization): the day is forced to 15 of the
// target month before the weekend shift.
func dueDate(invoiced time.Time, p int) time.Time {
	m := int(invoiced.Month()) + p
	y := invoiced.Year() + (m-1)/12
	m = (m-1)%12 + 1

	d := time.Date(y, time.Month(m), 15, 0, 0, 0, 0, invoiced.Location())
	switch d.Weekday() {
	case time.Saturday:
		d = d.AddDate(0, 0, 2)
	case time.Sunday:
		d = d.AddDate(0, 0, 1)
	}
	return d
}
