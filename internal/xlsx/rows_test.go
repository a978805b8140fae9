package xlsx

import (
	"path/filepath"
	"testing"
	"vtexreport/entity"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []entity.ReportRow {
	items := decimal.RequireFromString("100.50")
	shipping := decimal.RequireFromString("19.99")
	return []entity.ReportRow{
		{
			InvoicedDate: "28/06/2024",
			OrderId:      "1100293847-01",
			Seller:       "Farma Conde",
			Items:        items,
			Shipping:     shipping,
			Total:        items.Add(shipping),
			Installments: 3,
		},
		{
			InvoicedDate: "28/06/2024",
			OrderId:      "1100293848-01",
			Seller:       "Farma Conde",
			Items:        decimal.RequireFromString("55"),
			Shipping:     decimal.Zero,
			Total:        decimal.RequireFromString("55"),
			Installments: 0,
		},
	}
}

func TestWriteReadRowsRoundTrip(t *testing.T) {
	store := testStore()
	path := filepath.Join(t.TempDir(), "vendas_2024-06-28.xlsx")

	rows := sampleRows()
	if err := store.WriteRows(path, rows); err != nil {
		t.Fatal(err)
	}

	got, err := store.ReadRows(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i].Key() != rows[i].Key() {
			t.Errorf("row %d changed across the round trip:\n got %s\nwant %s",
				i, got[i].Key(), rows[i].Key())
		}
	}
}

func TestWriteRowsCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "bruto", "vendas_2024-06-28.xlsx")
	if err := testStore().WriteRows(path, sampleRows()); err != nil {
		t.Fatal(err)
	}
}

func TestReadRowsSkipsBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendas.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"Faturado em", "Pedido", "Seller", "Total_itens", "Frete", "Valor_total", "Parcelas"},
		{"28/06/2024", "1100293847-01", "Farma Conde", 100.5, 19.99, 120.49, 3},
		{"", "", "", "", "", "", ""},
		{"29/06/2024", "1100293848-01", "Farma Conde", 55.0, 0.0, 55.0, nil},
	})

	got, err := testStore().ReadRows(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2 (blank row skipped)", len(got))
	}
	if got[0].OrderId != "1100293847-01" || got[1].OrderId != "1100293848-01" {
		t.Errorf("rows = %q/%q", got[0].OrderId, got[1].OrderId)
	}
}

func TestReadRowsMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"Faturado em", "Pedido"},
		{"28/06/2024", "1100293847-01"},
	})

	if _, err := testStore().ReadRows(path); err == nil {
		t.Fatal("expected an error for a sheet without the report columns")
	}
}

func TestWriteCircularized(t *testing.T) {
	store := testStore()
	path := filepath.Join(t.TempDir(), "Farma-Conde_28-06-24.xlsx")

	rows := sampleRows()
	circ := []entity.CircularizedRow{
		{ReportRow: rows[0]},
		{ReportRow: rows[1]},
	}
	circ[0].DueDates[0] = "15/07/2024"
	circ[0].DueDates[1] = "15/08/2024"
	circ[0].DueDates[2] = "16/09/2024"

	if err := store.WriteCircularized(path, circ); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	cells, err := f.GetRows(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 3 {
		t.Fatalf("got %d sheet rows, want header plus 2", len(cells))
	}
	if got := len(cells[0]); got != len(rawHeader)+entity.MaxInstallments {
		t.Errorf("header has %d columns, want %d", got, len(rawHeader)+entity.MaxInstallments)
	}
	if cells[0][7] != "Parcela 1" || cells[0][18] != "Parcela 12" {
		t.Errorf("due-date headers = %q..%q", cells[0][7], cells[0][18])
	}

	due1, err := f.GetCellValue(sheet, "H2")
	if err != nil {
		t.Fatal(err)
	}
	if due1 != "15/07/2024" {
		t.Errorf("first due date cell = %q, want 15/07/2024", due1)
	}
	due3, _ := f.GetCellValue(sheet, "J2")
	if due3 != "16/09/2024" {
		t.Errorf("third due date cell = %q, want 16/09/2024", due3)
	}
	// row without installments keeps the due-date columns empty
	if v, _ := f.GetCellValue(sheet, "H3"); v != "" {
		t.Errorf("due date of zero-installment row = %q, want empty", v)
	}
}
