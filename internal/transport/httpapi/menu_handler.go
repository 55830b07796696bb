package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
)

// MenuHandler отдаёт каталог меню.
type MenuHandler struct {
	menu domain.MenuRepository
}

// NewMenuHandler конструирует обработчик каталога.
func NewMenuHandler(menu domain.MenuRepository) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// List обрабатывает GET /api/menu.
func (h *MenuHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.menu.List())
}

// Get обрабатывает GET /api/menu/{id}.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.menu.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}
