package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"comanda-pos/internal/config"
	"comanda-pos/internal/connections/rabbitmq"
	"comanda-pos/internal/domain"
)

// errDead marks a delivery that can never be processed; it is nacked
// without requeue so it lands in the DLQ.
var errDead = errors.New("dead_letter")

// Notifier consumes status-change events and surfaces them: structured
// log always, Telegram message to the admin chat when configured.
type Notifier struct {
	client *rabbitmq.Client
	lg     *zap.SugaredLogger

	bot    *tgbotapi.BotAPI
	chatID int64
}

func New(client *rabbitmq.Client, lg *zap.SugaredLogger, tg config.TelegramConfig) (*Notifier, error) {
	n := &Notifier{client: client, lg: lg, chatID: tg.ChatID}
	if tg.Token != "" {
		bot, err := tgbotapi.NewBotAPI(tg.Token)
		if err != nil {
			return nil, fmt.Errorf("telegram bot: %w", err)
		}
		n.bot = bot
		lg.Infow("telegram_enabled", "bot", bot.Self.UserName, "chat_id", tg.ChatID)
	}
	return n, nil
}

// Run consumes the notifications queue until ctx is canceled.
func (n *Notifier) Run(ctx context.Context) error {
	msgs, err := n.client.Consume(rabbitmq.QueueNotifications, "notificator", 1)
	if err != nil {
		return fmt.Errorf("consume %s: %w", rabbitmq.QueueNotifications, err)
	}
	n.lg.Infow("notificator_started", "queue", rabbitmq.QueueNotifications)

	for {
		select {
		case <-ctx.Done():
			n.lg.Infow("notificator_stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("notifications channel closed")
			}
			switch err := n.handle(ctx, d); {
			case err == nil:
				_ = d.Ack(false)
			case errors.Is(err, errDead):
				_ = d.Nack(false, false)
			default:
				_ = d.Nack(false, true)
			}
		}
	}
}

func (n *Notifier) handle(ctx context.Context, d amqp.Delivery) error {
	var msg domain.StatusChangedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		n.lg.Warnw("unparseable_notification", "error", err)
		return errDead
	}
	if msg.PedidoID == 0 || !msg.NewStatus.Valid() {
		return errDead
	}

	n.lg.Infow("status_notification",
		"pedido_id", msg.PedidoID,
		"from", msg.OldStatus,
		"to", msg.NewStatus,
		"by", msg.ChangedBy,
	)

	if n.bot != nil && n.chatID != 0 {
		text := fmt.Sprintf("Pedido #%d: %s -> %s (%s)", msg.PedidoID, msg.OldStatus, msg.NewStatus, msg.ChangedBy)
		if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
			// Telegram being down is no reason to redeliver.
			n.lg.Warnw("telegram_send_failed", "pedido_id", msg.PedidoID, "error", err)
		}
	}
	return nil
}
