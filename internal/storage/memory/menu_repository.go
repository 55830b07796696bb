package memory

import (
	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
)

// menuRepositoryInMemory — read-only каталог меню поверх карты и исходного
// списка. После конструирования не мутирует, поэтому блокировки не нужны.
type menuRepositoryInMemory struct {
	items []domain.MenuItem
	byID  map[string]domain.MenuItem
}

// NewMenuRepository возвращает каталог, заполненный стандартным набором позиций.
func NewMenuRepository() domain.MenuRepository {
	return NewMenuRepositoryWithItems(SeedMenu())
}

// NewMenuRepositoryWithItems возвращает каталог с заданным списком позиций.
// Используется в тестах, когда нужен маленький контролируемый каталог.
func NewMenuRepositoryWithItems(items []domain.MenuItem) domain.MenuRepository {
	byID := make(map[string]domain.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &menuRepositoryInMemory{
		items: items,
		byID:  byID,
	}
}

// List возвращает копию списка позиций в порядке исходного списка.
func (r *menuRepositoryInMemory) List() []domain.MenuItem {
	out := make([]domain.MenuItem, len(r.items))
	copy(out, r.items)
	return out
}

// Get возвращает позицию меню или ErrMenuItemNotFound.
func (r *menuRepositoryInMemory) Get(id string) (domain.MenuItem, error) {
	item, ok := r.byID[id]
	if !ok {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	return item, nil
}

var _ domain.MenuRepository = (*menuRepositoryInMemory)(nil)
