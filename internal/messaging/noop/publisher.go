package noop

import "github.com/vladislavdragonenkov/orderdemo/internal/messaging"

// Publisher — no-op реализация, используется когда Kafka не настроена.
type Publisher struct{}

func (Publisher) PublishOrderEvent(_ messaging.OrderEvent) error { return nil }

var _ messaging.Publisher = Publisher{}
