package broadcast

import (
	"time"

	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
)

// Типы событий push-канала.
const (
	EventTypeConnected         = "connected"
	EventTypeOrderStatusUpdate = "ORDER_STATUS_UPDATE"
)

// StatusEvent — событие смены статуса заказа. Рассылается всем подключённым
// подписчикам без фильтрации по заказу; фильтрует клиент.
type StatusEvent struct {
	EventType string             `json:"eventType"`
	OrderID   string             `json:"orderId"`
	Status    domain.OrderStatus `json:"status"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewStatusEvent собирает событие смены статуса из снимка заказа.
func NewStatusEvent(order domain.Order) StatusEvent {
	return StatusEvent{
		EventType: EventTypeOrderStatusUpdate,
		OrderID:   order.ID,
		Status:    order.Status,
		UpdatedAt: order.UpdatedAt,
	}
}

// helloEvent отправляется каждому подписчику сразу после подключения.
// Backlog не реплеится: события до подключения потеряны для подписчика.
type helloEvent struct {
	EventType string `json:"eventType"`
	Message   string `json:"message"`
}
