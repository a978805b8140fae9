package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"vtexreport/entity"
	"vtexreport/internal/config"
	"vtexreport/lib/clock"
	"vtexreport/lib/sl"

	"github.com/google/uuid"
)

type OrderSource interface {
	ListInvoicedOrders(ctx context.Context, startUTC, endUTC, sellerName string) []entity.OrderSummary
	FetchDetails(ctx context.Context, ids []string) map[string]*entity.OrderDetail
}

type SellerSource interface {
	LoadSellers(path string) ([]entity.Seller, error)
}

type Store interface {
	WriteRows(path string, rows []entity.ReportRow) error
	ReadRows(path string) ([]entity.ReportRow, error)
	WriteCircularized(path string, rows []entity.CircularizedRow) error
}

type Mailer interface {
	SendReport(ctx context.Context, seller entity.Seller, path, dateBR string) error
}

// Service runs the daily pipeline: fetch yesterday's invoiced orders for
// the target seller, project per-payment rows, persist the raw sheet,
// circularize installment due dates and email the result.
type Service struct {
	conf    config.ReportConfig
	orders  OrderSource
	sellers SellerSource
	store   Store
	mail    Mailer
	now     func() time.Time
	log     *slog.Logger
}

func New(conf config.ReportConfig, orders OrderSource, sellers SellerSource, store Store, mail Mailer, logger *slog.Logger) *Service {
	return &Service{
		conf:    conf,
		orders:  orders,
		sellers: sellers,
		store:   store,
		mail:    mail,
		now:     time.Now,
		log:     logger.With(sl.Module("report")),
	}
}

// Run executes one report run. Per-record failures (missing detail, order
// without the seller) never fail the run; errors from the seller
// directory, the spreadsheet store or the mail transport do.
func (s *Service) Run(ctx context.Context) error {
	log := s.log.With(slog.String("run_id", uuid.New().String()))

	window := clock.ReportWindow(s.now())
	log.With(
		slog.String("from", window.StartUTC),
		slog.String("to", window.EndUTC),
	).Info("starting daily report")

	sellers, err := s.sellers.LoadSellers(s.conf.SellersFile)
	if err != nil {
		return fmt.Errorf("load sellers: %w", err)
	}
	seller, ok := findSeller(sellers, s.conf.SellerId)
	if !ok {
		log.Warn("target seller not active in directory", slog.String("seller_id", s.conf.SellerId))
		return nil
	}

	summaries := s.orders.ListInvoicedOrders(ctx, window.StartUTC, window.EndUTC, seller.Display)
	log.With(slog.Int("orders", len(summaries))).Info("order summaries fetched")

	ids := make([]string, 0, len(summaries))
	for _, o := range summaries {
		ids = append(ids, o.OrderId)
	}
	details := s.orders.FetchDetails(ctx, ids)
	log.With(slog.Int("details", len(details))).Info("order details fetched")

	var rows []entity.ReportRow
	for _, o := range summaries {
		detail, ok := details[o.OrderId]
		if !ok {
			continue
		}
		rows = append(rows, BuildRows(detail, seller)...)
	}
	rows = Dedupe(rows)

	rawPath := filepath.Join(s.conf.RawDir, fmt.Sprintf("vendas_%s.xlsx", window.DateISO))
	if err = s.store.WriteRows(rawPath, rows); err != nil {
		return fmt.Errorf("write raw report: %w", err)
	}
	log.With(slog.Int("rows", len(rows)), slog.String("file", rawPath)).Info("raw report written")

	// The engine reads the persisted form back so it always works on
	// exactly what was written, not on the in-memory rows.
	persisted, err := s.store.ReadRows(rawPath)
	if err != nil {
		return fmt.Errorf("reload raw report: %w", err)
	}
	circularized := Circularize(persisted)

	circPath := filepath.Join(s.conf.CircDir, fmt.Sprintf("Farma-Conde_%s.xlsx", window.Suffix))
	if err = s.store.WriteCircularized(circPath, circularized); err != nil {
		return fmt.Errorf("write circularized report: %w", err)
	}
	log.With(slog.Int("rows", len(circularized)), slog.String("file", circPath)).Info("circularized report written")

	if err = s.mail.SendReport(ctx, seller, circPath, window.DateBR); err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	log.Info("daily report completed")
	return nil
}

func findSeller(sellers []entity.Seller, id string) (entity.Seller, bool) {
	for _, s := range sellers {
		if strings.EqualFold(s.Id, id) {
			return s, true
		}
	}
	return entity.Seller{}, false
}
