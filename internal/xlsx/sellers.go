// Package xlsx is the spreadsheet codec of the report: it reads the
// hand-maintained seller directory and persists the raw and circularized
// row sets.
package xlsx

import (
	"fmt"
	"log/slog"
	"strings"
	"vtexreport/entity"
	"vtexreport/lib/sl"
	"vtexreport/lib/validate"

	"github.com/xuri/excelize/v2"
)

var sellerColumns = []string{"sellerId", "sellerName", "emailTo", "emailCc", "ativo"}

type Store struct {
	log *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{log: logger.With(sl.Module("xlsx"))}
}

// LoadSellers reads the seller directory workbook: first sheet, header row
// with the sellerId/sellerName/emailTo/emailCc/ativo columns in any order.
// Only rows with ativo == "sim" are returned; rows without an id or name
// are skipped with a warning. A missing file or column is an error.
func (s *Store) LoadSellers(path string) ([]entity.Seller, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open sellers file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sellers sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sellers file %s: empty sheet", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[strings.TrimSpace(h)] = i
	}
	for _, name := range sellerColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("sellers file %s: missing column %s", path, name)
		}
	}
	cell := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var sellers []entity.Seller
	for _, row := range rows[1:] {
		if !strings.EqualFold(cell(row, "ativo"), "sim") {
			continue
		}
		seller := entity.Seller{
			Id:      cell(row, "sellerId"),
			Display: cell(row, "sellerName"),
			EmailTo: entity.CleanAddresses(strings.Split(cell(row, "emailTo"), ";")),
			EmailCc: entity.CleanAddresses(strings.Split(cell(row, "emailCc"), ";")),
		}
		if err = validate.Struct(seller); err != nil {
			s.log.Warn("seller row skipped",
				slog.String("seller_id", seller.Id),
				sl.Err(err))
			continue
		}
		sellers = append(sellers, seller)
	}
	s.log.With(slog.Int("count", len(sellers))).Debug("active sellers loaded")
	return sellers, nil
}
