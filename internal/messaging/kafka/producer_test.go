package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
	"github.com/vladislavdragonenkov/orderdemo/internal/messaging"
)

func testOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:          "order-123",
		Status:      domain.OrderStatusPreparing,
		TotalAmount: 28.47,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestProducer_PublishOrderEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndSucceed()

	event := messaging.NewStatusChangedEvent(testOrder(), "simulator")
	if err := producer.PublishOrderEvent(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishOrderEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	event := messaging.NewOrderCreatedEvent(testOrder())
	if err := producer.PublishOrderEvent(event); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
