package httpapi

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
)

// phoneRegex: опциональный код страны из 1–3 цифр с плюсом, затем ровно
// 10 цифр.
var phoneRegex = regexp.MustCompile(`^(\+\d{1,3})?\d{10}$`)

// CreateOrderRequest — тело POST /api/orders.
type CreateOrderRequest struct {
	Items    []OrderItemRequest `json:"items"`
	Customer CustomerRequest    `json:"customer"`
}

// OrderItemRequest — одна позиция запроса. Quantity принимается как число,
// целочисленность проверяется валидацией, а не типом.
type OrderItemRequest struct {
	MenuItemID string  `json:"menuItemId"`
	Quantity   float64 `json:"quantity"`
}

// CustomerRequest — данные получателя из запроса.
type CustomerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateStatusRequest — тело PATCH /api/orders/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// validateCreateOrder проверяет структуру запроса и возвращает либо
// детализацию ошибок, либо доменные значения.
func validateCreateOrder(req CreateOrderRequest) ([]domain.OrderItem, domain.Customer, *ValidationDetails) {
	details := newValidationDetails()

	if len(req.Items) == 0 {
		details.addField("items", "At least one item is required")
	}
	for i, item := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.MenuItemID == "" {
			details.addField(field+".menuItemId", "Menu item ID is required")
		}
		if item.Quantity != math.Trunc(item.Quantity) {
			details.addField(field+".quantity", "Quantity must be an integer")
		} else if item.Quantity <= 0 {
			details.addField(field+".quantity", "Quantity must be positive")
		}
	}

	name := strings.TrimSpace(req.Customer.Name)
	if len(name) < 2 {
		details.addField("customer.name", "Name must be at least 2 characters")
	}
	address := strings.TrimSpace(req.Customer.Address)
	if len(address) < 5 {
		details.addField("customer.address", "Address must be at least 5 characters")
	}
	if !phoneRegex.MatchString(req.Customer.Phone) {
		details.addField("customer.phone", "Phone must be 10 digits, optionally with country code")
	}

	if !details.empty() {
		return nil, domain.Customer{}, details
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   int(item.Quantity),
		})
	}
	customer := domain.Customer{
		Name:    req.Customer.Name,
		Address: req.Customer.Address,
		Phone:   req.Customer.Phone,
	}
	return items, customer, nil
}

// validateUpdateStatus проверяет, что статус входит в допустимый набор.
func validateUpdateStatus(req UpdateStatusRequest) (domain.OrderStatus, *ValidationDetails) {
	status := domain.OrderStatus(req.Status)
	if !domain.ValidStatus(status) {
		details := newValidationDetails()
		details.addField("status", "Status must be one of: received, preparing, out_for_delivery, delivered")
		return "", details
	}
	return status, nil
}
