package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMenuItemNotFound возвращается, если позиции меню нет в каталоге.
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderExists сигнализирует о попытке создать заказ с занятым ID.
	ErrOrderExists = errors.New("order already exists")
	// ErrInvalidStatus возвращается при статусе вне допустимого набора.
	ErrInvalidStatus = errors.New("invalid order status")
)

// MenuItemNotFoundError оборачивает ErrMenuItemNotFound, сохраняя
// идентификатор отсутствующей позиции для текста ошибки на границе API.
type MenuItemNotFoundError struct {
	ID string
}

func (e *MenuItemNotFoundError) Error() string {
	return fmt.Sprintf("menu item not found: %s", e.ID)
}

func (e *MenuItemNotFoundError) Unwrap() error { return ErrMenuItemNotFound }

// IsNotFound проверяет, является ли ошибка одной из not-found ошибок домена.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMenuItemNotFound) || errors.Is(err, ErrOrderNotFound)
}
