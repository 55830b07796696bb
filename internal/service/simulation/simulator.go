// Package simulation продвигает статус заказа по фиксированному жизненному
// циклу received → preparing → out_for_delivery → delivered. Реальной кухни
// и доставки в демо нет: переходы делает таймер с фиксированным периодом.
package simulation

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdemo/internal/broadcast"
	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
	"github.com/vladislavdragonenkov/orderdemo/internal/messaging"
	"github.com/vladislavdragonenkov/orderdemo/internal/metrics"
)

// DefaultInterval — период между переходами статусов.
const DefaultInterval = 10 * time.Second

// transitionSource помечает переходы, сделанные симулятором, в метриках
// и событиях брокера.
const transitionSource = "simulator"

// Broadcaster рассылает события статусов подписчикам push-канала.
type Broadcaster interface {
	Publish(event broadcast.StatusEvent)
}

// Simulator запускает независимый fire-and-forget таймер на каждый заказ.
// Отмены per-order нет: запущенная прогрессия идёт до delivered, даже если
// статус заказа в промежутке переписали вручную. Известная гонка: тик
// симулятора пишет статус, продиктованный счётчиком шагов, не глядя на
// текущее значение в хранилище, поэтому ручной PATCH может быть тут же
// перезаписан следующим тиком. Поведение сохранено намеренно.
type Simulator struct {
	store    domain.OrderRepository
	hub      Broadcaster
	events   messaging.Publisher
	metrics  *metrics.OrderMetrics
	logger   *log.Entry
	interval time.Duration
}

// New создаёт симулятор прогрессии статусов.
func New(
	store domain.OrderRepository,
	hub Broadcaster,
	events messaging.Publisher,
	m *metrics.OrderMetrics,
	logger *log.Entry,
	interval time.Duration,
) *Simulator {
	if logger == nil {
		logger = log.WithField("component", "status-simulator")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulator{
		store:    store,
		hub:      hub,
		events:   events,
		metrics:  m,
		logger:   logger,
		interval: interval,
	}
}

// Interval возвращает настроенный период между переходами.
func (s *Simulator) Interval() time.Duration {
	return s.interval
}

// Start запускает прогрессию для заказа и сразу возвращает управление.
// Таймер живёт до терминального статуса или до отмены контекста процесса.
func (s *Simulator) Start(ctx context.Context, orderID string) {
	go s.run(ctx, orderID)
}

func (s *Simulator) run(ctx context.Context, orderID string) {
	if s.metrics != nil {
		s.metrics.RecordSimulationStarted()
		defer s.metrics.RecordSimulationFinished()
	}

	logger := s.logger.WithField("order_id", orderID)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	step := 0
	for {
		select {
		case <-ticker.C:
			step++
			if step >= len(domain.StatusFlow) {
				logger.Debug("status progression finished")
				return
			}
			s.advance(logger, orderID, domain.StatusFlow[step])

		case <-ctx.Done():
			logger.Debug("status progression stopped: context canceled")
			return
		}
	}
}

// advance пишет очередной статус и рассылает событие. Счётчик шагов —
// единственный источник истины: текущее значение в хранилище не читается.
func (s *Simulator) advance(logger *log.Entry, orderID string, next domain.OrderStatus) {
	updated, err := s.store.UpdateStatus(orderID, next)
	if err != nil {
		// Заказ мог исчезнуть из хранилища; событие молча не публикуем.
		if !errors.Is(err, domain.ErrOrderNotFound) {
			logger.WithError(err).Warn("failed to advance order status")
		}
		return
	}

	logger.WithField("status", string(next)).Info("order status advanced")
	if s.metrics != nil {
		s.metrics.RecordStatusTransition(string(next), transitionSource)
	}

	s.hub.Publish(broadcast.NewStatusEvent(updated))

	if s.events != nil {
		if err := s.events.PublishOrderEvent(messaging.NewStatusChangedEvent(updated, transitionSource)); err != nil {
			logger.WithError(err).Warn("failed to mirror status event to broker")
		}
	}
}
