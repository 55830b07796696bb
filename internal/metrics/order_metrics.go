package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики демо-сервиса заказов.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated     prometheus.Counter
	orderCreateErrors prometheus.Counter

	// Переходы статусов с разбивкой по целевому статусу и источнику
	// (simulator или manual).
	statusTransitions *prometheus.CounterVec

	// События, разосланные подписчикам broadcast-канала.
	eventsBroadcast prometheus.Counter

	// Gauge активных подключений и работающих симуляций.
	broadcastClients  prometheus.Gauge
	activeSimulations prometheus.Gauge
}

// New создаёт метрики, зарегистрированные в DefaultRegisterer.
func New() *OrderMetrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer создаёт метрики поверх переданного registerer.
// Тесты передают сюда изолированный prometheus.NewRegistry().
func NewWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderdemo_orders_created_total",
			Help: "Total number of orders created",
		}),
		orderCreateErrors: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderdemo_order_create_errors_total",
			Help: "Total number of rejected order creation attempts",
		}),
		statusTransitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orderdemo_status_transitions_total",
			Help: "Total number of order status transitions",
		}, []string{"status", "source"}),
		eventsBroadcast: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderdemo_events_broadcast_total",
			Help: "Total number of status events fanned out to subscribers",
		}),
		broadcastClients: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "orderdemo_broadcast_clients",
			Help: "Number of currently connected broadcast subscribers",
		}),
		activeSimulations: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "orderdemo_active_simulations",
			Help: "Number of currently running status progression simulators",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderCreateError увеличивает счётчик отклонённых попыток создания.
func (m *OrderMetrics) RecordOrderCreateError() {
	m.orderCreateErrors.Inc()
}

// RecordStatusTransition увеличивает счётчик переходов статуса.
func (m *OrderMetrics) RecordStatusTransition(status, source string) {
	m.statusTransitions.WithLabelValues(status, source).Inc()
}

// RecordEventBroadcast увеличивает счётчик разосланных событий.
func (m *OrderMetrics) RecordEventBroadcast() {
	m.eventsBroadcast.Inc()
}

// RecordClientConnected увеличивает gauge подключённых подписчиков.
func (m *OrderMetrics) RecordClientConnected() {
	m.broadcastClients.Inc()
}

// RecordClientDisconnected уменьшает gauge подключённых подписчиков.
func (m *OrderMetrics) RecordClientDisconnected() {
	m.broadcastClients.Dec()
}

// RecordSimulationStarted увеличивает gauge активных симуляций.
func (m *OrderMetrics) RecordSimulationStarted() {
	m.activeSimulations.Inc()
}

// RecordSimulationFinished уменьшает gauge активных симуляций.
func (m *OrderMetrics) RecordSimulationFinished() {
	m.activeSimulations.Dec()
}
