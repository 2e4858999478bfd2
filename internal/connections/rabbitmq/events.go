package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"comanda-pos/internal/domain"
)

// Events publishes the POS domain events over the shared client.
type Events struct {
	client *Client
}

func NewEvents(client *Client) *Events { return &Events{client: client} }

func (e *Events) PublishOrderCreated(ctx context.Context, msg domain.OrderMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order message: %w", err)
	}
	key := fmt.Sprintf("kitchen.%s", msg.Tipo)
	if err := e.client.Publish(ctx, ExchangeComanda, key, body); err != nil {
		return fmt.Errorf("publish order created: %w", err)
	}
	return nil
}

func (e *Events) PublishStatusChanged(ctx context.Context, msg domain.StatusChangedMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal status message: %w", err)
	}
	if err := e.client.Publish(ctx, ExchangeNotifications, "", body); err != nil {
		return fmt.Errorf("publish status changed: %w", err)
	}
	return nil
}
