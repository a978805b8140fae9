// Package bot pushes run alerts to a fixed list of Telegram chats.
// Unlike a full notification bot there is nothing to poll for here: the
// report is a one-shot job, so the notifier only sends.
package bot

import (
	"log/slog"
	"strings"
	"vtexreport/lib/sl"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

type Notifier struct {
	log     *slog.Logger
	api     *tgbotapi.Bot
	chatIds []int64
}

func NewNotifier(apiKey string, chatIds []int64, log *slog.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, err
	}
	return &Notifier{
		log:     log.With(sl.Module("tgbot")),
		api:     api,
		chatIds: chatIds,
	}, nil
}

// SendMessageWithLevel delivers the message to every configured chat.
// Delivery failures are logged and otherwise ignored; alerting must never
// take the run down.
func (n *Notifier) SendMessageWithLevel(msg string, level slog.Level) {
	for _, chatId := range n.chatIds {
		_, err := n.api.SendMessage(chatId, msg, &tgbotapi.SendMessageOpts{
			ParseMode: "Markdown",
		})
		if err != nil {
			n.log.With(
				slog.Int64("chat_id", chatId),
				slog.String("level", level.String()),
			).Error("sending telegram message", sl.Err(err))
		}
	}
}

var markdownReplacer = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"`", "\\`",
)

// Sanitize escapes Telegram Markdown control characters in attribute text.
func Sanitize(s string) string {
	return markdownReplacer.Replace(s)
}
