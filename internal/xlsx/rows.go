package xlsx

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"vtexreport/entity"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column headers of the raw report. The circularized file appends the
// twelve Parcela columns. Header names are part of the report contract
// with the accounting recipients and stay in Portuguese.
var rawHeader = []string{"Faturado em", "Pedido", "Seller", "Total_itens", "Frete", "Valor_total", "Parcelas"}

// WriteRows persists the raw row set. Money lands in numeric cells; an
// installment count of zero becomes an empty Parcelas cell.
func (s *Store) WriteRows(path string, rows []entity.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := setRow(f, sheet, 1, toAny(rawHeader)); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, rawValues(r)); err != nil {
			return err
		}
	}
	return s.save(f, path)
}

// ReadRows loads a previously written raw report. The circularization
// engine runs on the persisted form, not on in-memory rows.
func (s *Store) ReadRows(path string) ([]entity.ReportRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	defer f.Close()

	cells, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read report sheet: %w", err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("report file %s: empty sheet", path)
	}

	col := make(map[string]int, len(cells[0]))
	for i, h := range cells[0] {
		col[strings.TrimSpace(h)] = i
	}
	for _, name := range rawHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("report file %s: missing column %s", path, name)
		}
	}
	cell := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	blank := func(row []string) bool {
		for _, name := range rawHeader {
			if cell(row, name) != "" {
				return false
			}
		}
		return true
	}

	var rows []entity.ReportRow
	for _, row := range cells[1:] {
		if blank(row) {
			continue
		}
		r := entity.ReportRow{
			InvoicedDate: cell(row, "Faturado em"),
			OrderId:      cell(row, "Pedido"),
			Seller:       cell(row, "Seller"),
			Items:        parseMoney(cell(row, "Total_itens")),
			Shipping:     parseMoney(cell(row, "Frete")),
			Total:        parseMoney(cell(row, "Valor_total")),
		}
		if v := cell(row, "Parcelas"); v != "" {
			r.Installments, _ = strconv.Atoi(v)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// WriteCircularized persists the final report with the due-date columns.
func (s *Store) WriteCircularized(path string, rows []entity.CircularizedRow) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]string, 0, len(rawHeader)+entity.MaxInstallments)
	header = append(header, rawHeader...)
	for i := 1; i <= entity.MaxInstallments; i++ {
		header = append(header, fmt.Sprintf("Parcela %d", i))
	}
	if err := setRow(f, sheet, 1, toAny(header)); err != nil {
		return err
	}

	for i, r := range rows {
		values := rawValues(r.ReportRow)
		for _, due := range r.DueDates {
			values = append(values, due)
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return s.save(f, path)
}

func (s *Store) save(f *excelize.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report file: %w", err)
	}
	s.log.With(slog.String("file", path)).Debug("report file saved")
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func rawValues(r entity.ReportRow) []interface{} {
	values := []interface{}{
		r.InvoicedDate,
		r.OrderId,
		r.Seller,
		r.Items.InexactFloat64(),
		r.Shipping.InexactFloat64(),
		r.Total.InexactFloat64(),
	}
	if r.Installments > 0 {
		values = append(values, r.Installments)
	} else {
		values = append(values, nil)
	}
	return values
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func parseMoney(v string) decimal.Decimal {
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
