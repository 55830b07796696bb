// Package messaging описывает событийный конверт заказа и интерфейс
// publisher'а. Внешний брокер для демо опционален: без него используется
// noop-реализация.
package messaging

import (
	"time"

	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
)

// Типы событий заказа.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent — конверт события заказа для внешнего брокера.
type OrderEvent struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	// Source указывает, кто инициировал изменение: simulator или manual.
	Source     string    `json:"source,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOrderCreatedEvent собирает событие создания заказа.
func NewOrderCreatedEvent(order domain.Order) OrderEvent {
	return OrderEvent{
		EventType:   EventOrderCreated,
		OrderID:     order.ID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		OccurredAt:  order.CreatedAt,
	}
}

// NewStatusChangedEvent собирает событие смены статуса.
func NewStatusChangedEvent(order domain.Order, source string) OrderEvent {
	return OrderEvent{
		EventType:   EventOrderStatusChanged,
		OrderID:     order.ID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Source:      source,
		OccurredAt:  order.UpdatedAt,
	}
}

// Publisher отправляет события заказов во внешний брокер.
type Publisher interface {
	PublishOrderEvent(event OrderEvent) error
}
