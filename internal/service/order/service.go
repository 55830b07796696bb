// Package order реализует создание и чтение заказов поверх доменных
// репозиториев.
package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
	"github.com/vladislavdragonenkov/orderdemo/internal/messaging"
	"github.com/vladislavdragonenkov/orderdemo/internal/metrics"
)

// StatusSimulator запускает прогрессию статусов для созданного заказа.
type StatusSimulator interface {
	Start(ctx context.Context, orderID string)
}

// Service — приклад заказов: создание с расчётом суммы, чтение, ручное
// обновление статуса.
type Service struct {
	menu    domain.MenuRepository
	orders  domain.OrderRepository
	sim     StatusSimulator
	events  messaging.Publisher
	metrics *metrics.OrderMetrics
	logger  *log.Entry
	now     func() time.Time
	newID   func() string
}

// NewService конструирует сервис с зависимостями.
func NewService(
	menu domain.MenuRepository,
	orders domain.OrderRepository,
	sim StatusSimulator,
	events messaging.Publisher,
	m *metrics.OrderMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		menu:    menu,
		orders:  orders,
		sim:     sim,
		events:  events,
		metrics: m,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Create валидирует ссылки на меню, считает сумму и сохраняет заказ.
// Любая неразрешимая позиция отменяет операцию целиком до записи в
// хранилище. После сохранения запускается fire-and-forget прогрессия
// статусов: Create возвращается до первого тика.
func (s *Service) Create(ctx context.Context, items []domain.OrderItem, customer domain.Customer) (domain.Order, error) {
	var total float64
	for _, item := range items {
		menuItem, err := s.menu.Get(item.MenuItemID)
		if err != nil {
			if s.metrics != nil {
				s.metrics.RecordOrderCreateError()
			}
			return domain.Order{}, &domain.MenuItemNotFoundError{ID: item.MenuItemID}
		}
		total += menuItem.Price * float64(item.Quantity)
	}

	now := s.now()
	order := domain.Order{
		ID:          s.newID(),
		Items:       items,
		Customer:    customer,
		Status:      domain.OrderStatusReceived,
		TotalAmount: domain.Round2(total),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.orders.Create(order); err != nil {
		if s.metrics != nil {
			s.metrics.RecordOrderCreateError()
		}
		return domain.Order{}, err
	}

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"items":    len(order.Items),
		"total":    order.TotalAmount,
	}).Info("order created")
	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}

	if s.events != nil {
		if err := s.events.PublishOrderEvent(messaging.NewOrderCreatedEvent(order)); err != nil {
			s.logger.WithError(err).Warn("failed to mirror order created event to broker")
		}
	}

	// Таймер переживает запрос: прогрессия не привязана к жизни
	// HTTP-соединения и не отменяется после старта.
	s.sim.Start(context.WithoutCancel(ctx), order.ID)

	return order, nil
}

// Get возвращает текущий снимок заказа или ErrOrderNotFound.
func (s *Service) Get(id string) (domain.Order, error) {
	return s.orders.Get(id)
}

// List возвращает все заказы, новые первыми.
func (s *Service) List() []domain.Order {
	return s.orders.List()
}

// UpdateStatus безусловно перезаписывает статус заказа. Позиция в
// прогрессии не проверяется, работающий симулятор не останавливается:
// следующий тик может перезаписать проставленный здесь статус.
func (s *Service) UpdateStatus(id string, status domain.OrderStatus) (domain.Order, error) {
	if !domain.ValidStatus(status) {
		return domain.Order{}, domain.ErrInvalidStatus
	}

	updated, err := s.orders.UpdateStatus(id, status)
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.WithFields(log.Fields{
		"order_id": id,
		"status":   string(status),
	}).Info("order status set manually")
	if s.metrics != nil {
		s.metrics.RecordStatusTransition(string(status), "manual")
	}

	if s.events != nil {
		if err := s.events.PublishOrderEvent(messaging.NewStatusChangedEvent(updated, "manual")); err != nil {
			s.logger.WithError(err).Warn("failed to mirror status event to broker")
		}
	}

	return updated, nil
}
