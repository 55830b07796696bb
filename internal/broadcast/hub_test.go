package broadcast_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orderdemo/internal/broadcast"
	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
	"github.com/vladislavdragonenkov/orderdemo/internal/metrics"
)

type wireEvent struct {
	EventType string `json:"eventType"`
	Message   string `json:"message,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
	Status    string `json:"status,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func startHub(t *testing.T) (*broadcast.Hub, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := broadcast.NewHub(metrics.NewWithRegisterer(prometheus.NewRegistry()), nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev wireEvent
	require.NoError(t, json.Unmarshal(payload, &ev))
	return ev
}

func TestHub_ConnectedHello(t *testing.T) {
	_, srv := startHub(t)
	conn := dial(t, srv)

	ev := readEvent(t, conn)
	require.Equal(t, "connected", ev.EventType)
	require.Equal(t, "WebSocket connected", ev.Message)
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub, srv := startHub(t)

	first := dial(t, srv)
	second := dial(t, srv)
	require.Equal(t, "connected", readEvent(t, first).EventType)
	require.Equal(t, "connected", readEvent(t, second).EventType)

	order := domain.Order{
		ID:        "order-1",
		Status:    domain.OrderStatusPreparing,
		UpdatedAt: time.Now().UTC(),
	}
	hub.Publish(broadcast.NewStatusEvent(order))

	for _, conn := range []*websocket.Conn{first, second} {
		ev := readEvent(t, conn)
		require.Equal(t, "ORDER_STATUS_UPDATE", ev.EventType)
		require.Equal(t, "order-1", ev.OrderID)
		require.Equal(t, "preparing", ev.Status)
		require.NotEmpty(t, ev.UpdatedAt)
	}
}

func TestHub_PerSubscriberOrdering(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	require.Equal(t, "connected", readEvent(t, conn).EventType)

	statuses := []domain.OrderStatus{
		domain.OrderStatusPreparing,
		domain.OrderStatusOutForDelivery,
		domain.OrderStatusDelivered,
	}
	for _, s := range statuses {
		hub.Publish(broadcast.NewStatusEvent(domain.Order{
			ID:        "order-1",
			Status:    s,
			UpdatedAt: time.Now().UTC(),
		}))
	}

	for _, want := range statuses {
		ev := readEvent(t, conn)
		require.Equal(t, string(want), ev.Status)
	}
}

func TestHub_LateSubscriberGetsNoBacklog(t *testing.T) {
	hub, srv := startHub(t)

	hub.Publish(broadcast.NewStatusEvent(domain.Order{
		ID:        "order-before",
		Status:    domain.OrderStatusDelivered,
		UpdatedAt: time.Now().UTC(),
	}))

	// Даём hub'у время разослать событие в пустую комнату.
	time.Sleep(50 * time.Millisecond)

	conn := dial(t, srv)
	require.Equal(t, "connected", readEvent(t, conn).EventType)

	hub.Publish(broadcast.NewStatusEvent(domain.Order{
		ID:        "order-after",
		Status:    domain.OrderStatusPreparing,
		UpdatedAt: time.Now().UTC(),
	}))

	ev := readEvent(t, conn)
	require.Equal(t, "order-after", ev.OrderID, "backlog must not be replayed")
}

func TestHub_MalformedInboundFrameIgnored(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	require.Equal(t, "connected", readEvent(t, conn).EventType)

	// Клиентские сообщения не интерпретируются: мусор не рвёт соединение.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	hub.Publish(broadcast.NewStatusEvent(domain.Order{
		ID:        "order-1",
		Status:    domain.OrderStatusPreparing,
		UpdatedAt: time.Now().UTC(),
	}))

	ev := readEvent(t, conn)
	require.Equal(t, "ORDER_STATUS_UPDATE", ev.EventType)
}

func TestHub_ClientCount(t *testing.T) {
	hub, srv := startHub(t)
	require.Equal(t, 0, hub.ClientCount())

	conn := dial(t, srv)
	require.Equal(t, "connected", readEvent(t, conn).EventType)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}
