package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"comanda-pos/internal/domain"
)

func testNotifier() *Notifier {
	return &Notifier{lg: zap.NewNop().Sugar()}
}

func TestHandleValidMessage(t *testing.T) {
	body, _ := json.Marshal(domain.StatusChangedMessage{
		PedidoID:  12,
		OldStatus: domain.StatusOpen,
		NewStatus: domain.StatusInKitchen,
		ChangedBy: "comanda",
		Timestamp: time.Now().UTC(),
	})
	if err := testNotifier().handle(context.Background(), amqp.Delivery{Body: body}); err != nil {
		t.Errorf("handle = %v", err)
	}
}

func TestHandleGarbageGoesToDLQ(t *testing.T) {
	err := testNotifier().handle(context.Background(), amqp.Delivery{Body: []byte("{not json")})
	if !errors.Is(err, errDead) {
		t.Errorf("handle garbage = %v, want errDead", err)
	}
}

func TestHandleRejectsIncompleteMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  domain.StatusChangedMessage
	}{
		{"missing pedido id", domain.StatusChangedMessage{NewStatus: domain.StatusServed}},
		{"unknown status", domain.StatusChangedMessage{PedidoID: 5, NewStatus: "cooking"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.msg)
			if err := testNotifier().handle(context.Background(), amqp.Delivery{Body: body}); !errors.Is(err, errDead) {
				t.Errorf("handle = %v, want errDead", err)
			}
		})
	}
}
