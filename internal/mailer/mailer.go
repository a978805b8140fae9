package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"vtexreport/entity"
	"vtexreport/lib/sl"

	"github.com/wneessen/go-mail"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
}

type Mailer struct {
	conf Config
	log  *slog.Logger
}

func New(conf Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		conf: conf,
		log:  logger.With(sl.Module("mailer")),
	}
}

// SendReport emails the circularized spreadsheet to the seller's recipient
// lists in a single blocking SMTPS submission, no retry. A seller without
// valid To addresses only logs a warning and the run goes on.
func (m *Mailer) SendReport(ctx context.Context, seller entity.Seller, path, dateBR string) error {
	to := entity.CleanAddresses(seller.EmailTo)
	cc := entity.CleanAddresses(seller.EmailCc)
	if len(to) == 0 {
		m.log.Warn("no valid To address, send skipped", slog.String("seller", seller.Display))
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.conf.User); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("to addresses: %w", err)
	}
	if len(cc) > 0 {
		if err := msg.Cc(cc...); err != nil {
			return fmt.Errorf("cc addresses: %w", err)
		}
	}
	msg.Subject(fmt.Sprintf("Farma Conde – Circularização – %s", dateBR))
	msg.SetBodyString(mail.TypeTextPlain, "Segue relatório de circularização.")
	msg.AttachFile(path, mail.WithFileContentType(mail.TypeAppOctetStream))

	client, err := mail.NewClient(m.conf.Host,
		mail.WithPort(m.conf.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.conf.User),
		mail.WithPassword(m.conf.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.With(
		slog.String("seller", seller.Display),
		slog.Int("recipients", len(to)+len(cc)),
		slog.String("file", path),
	).Info("report emailed")
	return nil
}
