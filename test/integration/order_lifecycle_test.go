package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/orderdemo/internal/broadcast"
	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
	"github.com/vladislavdragonenkov/orderdemo/internal/metrics"
	"github.com/vladislavdragonenkov/orderdemo/internal/service/order"
	"github.com/vladislavdragonenkov/orderdemo/internal/service/simulation"
	"github.com/vladislavdragonenkov/orderdemo/internal/storage/memory"
	"github.com/vladislavdragonenkov/orderdemo/internal/transport/httpapi"
)

// statusInterval — ускоренный период прогрессии для тестов.
const statusInterval = 50 * time.Millisecond

// OrderLifecycleTestSuite проверяет полный цикл заказа через HTTP и
// push-канал: создание, прогрессию статусов и рассылку событий.
type OrderLifecycleTestSuite struct {
	suite.Suite
	store  domain.OrderRepository
	server *httptest.Server
	cancel context.CancelFunc
}

func (suite *OrderLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel) // Уменьшаем шум в тестах
	logger := baseLogger.WithField("component", "integration-test")

	m := metrics.NewWithRegisterer(prometheus.NewRegistry())

	menuRepo := memory.NewMenuRepository()
	suite.store = memory.NewOrderRepository()

	ctx, cancel := context.WithCancel(context.Background())
	suite.cancel = cancel

	hub := broadcast.NewHub(m, logger)
	go hub.Run(ctx)

	sim := simulation.New(suite.store, hub, nil, m, logger, statusInterval)
	svc := order.NewService(menuRepo, suite.store, sim, nil, m, logger)

	router := httpapi.NewRouter(
		httpapi.NewMenuHandler(menuRepo),
		httpapi.NewOrderHandler(svc, logger),
		hub.Handler(),
		logger,
	)
	suite.server = httptest.NewServer(router)
}

func (suite *OrderLifecycleTestSuite) TearDownTest() {
	suite.server.Close()
	suite.cancel()
}

func (suite *OrderLifecycleTestSuite) createOrder() domain.Order {
	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menuItemId": "pizza-1", "quantity": 2},
			{"menuItemId": "drink-1", "quantity": 1},
		},
		"customer": map[string]interface{}{
			"name":    "Alice",
			"address": "221B Baker Street",
			"phone":   "+11234567890",
		},
	}
	payload, err := json.Marshal(body)
	require.NoError(suite.T(), err)

	resp, err := http.Post(suite.server.URL+"/api/orders", "application/json", bytes.NewReader(payload))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	var created domain.Order
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func (suite *OrderLifecycleTestSuite) TestFullProgression() {
	created := suite.createOrder()
	require.Equal(suite.T(), domain.OrderStatusReceived, created.Status)
	require.Equal(suite.T(), 28.47, created.TotalAmount)

	require.Eventually(suite.T(), func() bool {
		stored, err := suite.store.Get(created.ID)
		return err == nil && stored.Status == domain.OrderStatusDelivered
	}, 3*time.Second, 10*time.Millisecond, "order must reach delivered")

	stored, err := suite.store.Get(created.ID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), stored.UpdatedAt.After(stored.CreatedAt))
}

func (suite *OrderLifecycleTestSuite) TestBroadcastEvents() {
	// Подключаемся до создания заказа, чтобы увидеть все три перехода.
	url := "ws" + strings.TrimPrefix(suite.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(suite.T(), err)
	defer conn.Close()

	var hello struct {
		EventType string `json:"eventType"`
	}
	require.NoError(suite.T(), conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), json.Unmarshal(payload, &hello))
	require.Equal(suite.T(), "connected", hello.EventType)

	created := suite.createOrder()

	want := []string{"preparing", "out_for_delivery", "delivered"}
	for _, expected := range want {
		require.NoError(suite.T(), conn.SetReadDeadline(time.Now().Add(3*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(suite.T(), err)

		var ev struct {
			EventType string `json:"eventType"`
			OrderID   string `json:"orderId"`
			Status    string `json:"status"`
			UpdatedAt string `json:"updatedAt"`
		}
		require.NoError(suite.T(), json.Unmarshal(payload, &ev))
		require.Equal(suite.T(), "ORDER_STATUS_UPDATE", ev.EventType)
		require.Equal(suite.T(), created.ID, ev.OrderID)
		require.Equal(suite.T(), expected, ev.Status)
		require.NotEmpty(suite.T(), ev.UpdatedAt)
	}
}

func (suite *OrderLifecycleTestSuite) TestManualUpdateRacesWithSimulator() {
	created := suite.createOrder()

	// Ручной PATCH сразу после создания: следующий тик симулятора имеет
	// право его перезаписать — поведение зафиксировано как есть.
	payload := bytes.NewBufferString(`{"status":"delivered"}`)
	req, err := http.NewRequest(http.MethodPatch,
		suite.server.URL+"/api/orders/"+created.ID+"/status", payload)
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var updated domain.Order
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&updated))
	require.Equal(suite.T(), domain.OrderStatusDelivered, updated.Status)

	// Независимо от ручного вмешательства прогрессия доходит до delivered.
	require.Eventually(suite.T(), func() bool {
		stored, err := suite.store.Get(created.ID)
		return err == nil && stored.Status == domain.OrderStatusDelivered
	}, 3*time.Second, 10*time.Millisecond)
}

func TestOrderLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(OrderLifecycleTestSuite))
}
