package domain

// MenuRepository описывает требования к каталогу меню. Каталог read-only:
// реализации заполняются при конструировании и далее не мутируют.
type MenuRepository interface {
	// List возвращает все позиции меню в порядке исходного списка.
	List() []MenuItem
	// Get возвращает позицию по идентификатору или ErrMenuItemNotFound.
	Get(id string) (MenuItem, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ. Возвращает ErrOrderExists, если запись с таким ID уже есть.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// List возвращает все заказы, отсортированные по времени создания (новые первыми).
	List() []Order
	// UpdateStatus перезаписывает статус заказа и обновляет UpdatedAt одним
	// атомарным шагом. Текущая позиция статуса не проверяется: и симулятор,
	// и ручное обновление пишут безусловно.
	UpdateStatus(id string, status OrderStatus) (Order, error)
}
