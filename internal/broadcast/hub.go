package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdemo/internal/metrics"
)

const (
	// clientBufferSize — размер буфера исходящих сообщений на подписчика.
	clientBufferSize = 16
	// broadcastBufferSize — размер общей очереди рассылки.
	broadcastBufferSize = 256
)

// Hub — общая точка fan-out событий статусов. Каждый подключённый подписчик
// получает каждое событие; доставка best-effort: медленному подписчику
// сообщения отбрасываются, а не блокируют рассылку. Порядок событий для
// одного подписчика сохраняется, потому что рассылает один goroutine.
type Hub struct {
	logger  *log.Entry
	metrics *metrics.OrderMetrics

	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	doneOnce   sync.Once

	mu sync.RWMutex
}

// NewHub создаёт hub. Рассылка начинается после запуска Run.
func NewHub(m *metrics.OrderMetrics, logger *log.Entry) *Hub {
	if logger == nil {
		logger = log.WithField("component", "broadcast-hub")
	}
	return &Hub{
		logger:     logger,
		metrics:    m,
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastBufferSize),
		done:       make(chan struct{}),
	}
}

// Run крутит цикл hub до отмены контекста. При выходе закрывает всех
// подписчиков и помечает hub остановленным.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.doneOnce.Do(func() { close(h.done) })

		h.mu.Lock()
		for c := range h.clients {
			delete(h.clients, c)
			c.close()
			if h.metrics != nil {
				h.metrics.RecordClientDisconnected()
			}
		}
		h.mu.Unlock()
	}()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			if h.metrics != nil {
				h.metrics.RecordClientConnected()
			}
			h.logger.WithField("clients", h.ClientCount()).Debug("subscriber connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.close()
				if h.metrics != nil {
					h.metrics.RecordClientDisconnected()
				}
			}
			h.mu.Unlock()
			h.logger.WithField("clients", h.ClientCount()).Debug("subscriber disconnected")

		case message := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				// Non-blocking: переполненный буфер подписчика означает
				// потерю сообщения, не остановку рассылки.
				select {
				case c.send <- message:
				default:
				}
			}
			h.mu.RUnlock()
			if h.metrics != nil {
				h.metrics.RecordEventBroadcast()
			}

		case <-ctx.Done():
			return
		}
	}
}

// Publish сериализует событие и ставит его в очередь рассылки.
// Не блокируется: при переполненной очереди событие отбрасывается.
func (h *Hub) Publish(event StatusEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Warn("failed to marshal status event")
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.WithField("order_id", event.OrderID).Warn("broadcast queue full, dropping event")
	}
}

// addClient регистрирует подписчика. Возвращает false, если hub остановлен.
func (h *Hub) addClient(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// removeClient снимает подписчика с регистрации; безопасно после остановки hub.
func (h *Hub) removeClient(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount возвращает число подключённых подписчиков.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Running сообщает, крутится ли ещё цикл hub. Используется health-checker'ом.
func (h *Hub) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}
