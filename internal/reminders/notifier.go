// Package reminders sends the daily study reminder built from the dashboard
// through desktop and Telegram notifiers.
package reminders

import (
	"context"
	"errors"
	"fmt"

	"github.com/gen2brain/beeep"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Message is a rendered reminder.
type Message struct {
	Title string
	Body  string
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// DesktopNotifier shows reminders as desktop notifications.
type DesktopNotifier struct {
	notify func(title, message string, icon any) error
}

// NewDesktopNotifier creates a desktop notifier.
func NewDesktopNotifier() *DesktopNotifier {
	beeep.AppName = "StudyFlow"
	return &DesktopNotifier{notify: beeep.Notify}
}

// Notify shows msg.
func (n *DesktopNotifier) Notify(_ context.Context, msg Message) error {
	if err := n.notify(msg.Title, msg.Body, ""); err != nil {
		return fmt.Errorf("desktop notification failed: %w", err)
	}
	return nil
}

// TelegramSender is the part of the bot API the notifier uses.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends reminders to one chat.
type TelegramNotifier struct {
	bot    TelegramSender
	chatID int64
}

// NewTelegramNotifier connects a bot with token.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	return NewTelegramNotifierWithSender(bot, chatID), nil
}

// NewTelegramNotifierWithSender creates a notifier over an existing sender.
func NewTelegramNotifierWithSender(bot TelegramSender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// Notify sends msg as a plain text message.
func (n *TelegramNotifier) Notify(_ context.Context, msg Message) error {
	out := tgbotapi.NewMessage(n.chatID, msg.Title+"\n\n"+msg.Body)
	out.DisableWebPagePreview = true
	if _, err := n.bot.Send(out); err != nil {
		return fmt.Errorf("telegram message failed: %w", err)
	}
	return nil
}

// MultiNotifier fans a reminder out to every notifier.
type MultiNotifier []Notifier

// Notify calls every notifier and joins their errors.
func (m MultiNotifier) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
