package broadcast

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait — время на запись одного сообщения подписчику.
	writeWait = 10 * time.Second
	// pongWait — сколько ждём pong, прежде чем считать соединение мёртвым.
	pongWait = 60 * time.Second
	// pingPeriod должен быть меньше pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Демо-сервис: отдаём push-канал любому origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client — одно websocket-подключение подписчика.
type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
		_ = c.conn.Close()
	}
}

// Handler апгрейдит HTTP-запрос до websocket и подключает подписчика к hub.
// Сразу после подключения клиент получает приветственное событие; backlog
// прошлых событий не отправляется.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.WithError(err).Warn("websocket upgrade failed")
			return
		}

		c := &client{
			conn: conn,
			send: make(chan []byte, clientBufferSize),
			done: make(chan struct{}),
		}

		// Приветствие кладём в буфер до регистрации: оно гарантированно
		// уходит первым сообщением.
		hello, err := json.Marshal(helloEvent{
			EventType: EventTypeConnected,
			Message:   "WebSocket connected",
		})
		if err == nil {
			c.send <- hello
		}

		if !h.addClient(c) {
			_ = conn.Close()
			return
		}

		go h.writePump(c)
		go h.readPump(c)
	}
}

// readPump вычитывает входящие фреймы. Содержимое не интерпретируется:
// некорректный payload просто отбрасывается и не роняет соединение.
func (h *Hub) readPump(c *client) {
	defer h.removeClient(c)

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.WithError(err).Debug("websocket read error")
			}
			return
		}
	}
}

// writePump пишет сообщения из буфера подписчика и поддерживает соединение
// ping'ами.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.removeClient(c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
