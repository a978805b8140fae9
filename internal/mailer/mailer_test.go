package mailer

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"vtexreport/entity"
)

func TestSendReportSkipsWithoutRecipients(t *testing.T) {
	// host/port point nowhere on purpose: the skip must happen before
	// any connection attempt
	m := New(Config{Host: "127.0.0.1", Port: 1, User: "report@conde.com", Password: "x"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	seller := entity.Seller{
		Id:      "farmaconde",
		Display: "Farma Conde",
		EmailTo: []string{"", "nan", "  "},
		EmailCc: []string{"cc@conde.com"},
	}

	err := m.SendReport(context.Background(), seller, "report.xlsx", "28/06/2024")
	if err != nil {
		t.Fatalf("empty To list must skip the send without error, got %v", err)
	}
}
