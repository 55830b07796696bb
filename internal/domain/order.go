package domain

import (
	"math"
	"time"
)

// OrderStatus описывает жизненный цикл заказа в демо-сервисе.
type OrderStatus string

const (
	// OrderStatusReceived — заказ принят, готовка ещё не началась.
	OrderStatusReceived OrderStatus = "received"
	// OrderStatusPreparing — заказ готовится на кухне.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusOutForDelivery — заказ передан курьеру.
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	// OrderStatusDelivered — заказ доставлен; терминальное состояние.
	OrderStatusDelivered OrderStatus = "delivered"
)

// StatusFlow — фиксированная последовательность статусов. Симулятор
// прогрессии проходит её строго по порядку, без пропусков и откатов.
var StatusFlow = []OrderStatus{
	OrderStatusReceived,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// ValidStatus сообщает, входит ли значение в допустимый набор статусов.
func ValidStatus(s OrderStatus) bool {
	for _, known := range StatusFlow {
		if s == known {
			return true
		}
	}
	return false
}

// OrderItem — одна позиция заказа: ссылка на позицию меню и количество.
// Это снимок запроса; после создания заказа позиции не перепроверяются
// по каталогу.
type OrderItem struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// Customer — контактные данные получателя заказа.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Order агрегирует состояние заказа.
type Order struct {
	ID       string      `json:"id"`
	Items    []OrderItem `json:"items"`
	Customer Customer    `json:"customer"`
	Status   OrderStatus `json:"status"`
	// TotalAmount вычисляется один раз при создании из цен каталога
	// на этот момент и далее не пересчитывается.
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Round2 округляет сумму до двух знаков после запятой
// (умножить на 100, округлить до ближайшего целого, поделить на 100).
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
