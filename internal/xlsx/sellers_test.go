package xlsx

import (
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testStore() *Store {
	return NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSellers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sellers.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"sellerId", "sellerName", "emailTo", "emailCc", "ativo"},
		{"farmaconde", "Farma Conde", "fin@conde.com; nan ;;dir@conde.com", " nan ", "Sim"},
		{"other", "Other Seller", "x@other.com", "", "nao"},
		{"", "No Id", "x@noid.com", "", "sim"},
	})

	sellers, err := testStore().LoadSellers(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sellers) != 1 {
		t.Fatalf("got %d sellers, want 1 (inactive and invalid rows skipped)", len(sellers))
	}

	s := sellers[0]
	if s.Id != "farmaconde" || s.Display != "Farma Conde" {
		t.Errorf("unexpected seller %q/%q", s.Id, s.Display)
	}
	if want := []string{"fin@conde.com", "dir@conde.com"}; !reflect.DeepEqual(s.EmailTo, want) {
		t.Errorf("EmailTo = %v, want %v", s.EmailTo, want)
	}
	if len(s.EmailCc) != 0 {
		t.Errorf("EmailCc = %v, want empty", s.EmailCc)
	}
}

func TestLoadSellersMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sellers.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"sellerId", "sellerName", "emailTo", "emailCc"},
		{"farmaconde", "Farma Conde", "fin@conde.com", ""},
	})

	if _, err := testStore().LoadSellers(path); err == nil {
		t.Fatal("expected an error for a sheet without the ativo column")
	}
}

func TestLoadSellersMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.xlsx")
	if _, err := testStore().LoadSellers(path); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
