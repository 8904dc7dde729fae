package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sggmico/skitchen/internal/catalog"
	"github.com/sggmico/skitchen/internal/gateway"
	"github.com/sggmico/skitchen/internal/models"
)

// AdminHandler handles the authenticated catalog mutation endpoints.
type AdminHandler struct {
	store *catalog.Store
	log   *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store *catalog.Store, log *slog.Logger) *AdminHandler {
	return &AdminHandler{
		store: store,
		log:   log,
	}
}

type createCategoryRequest struct {
	Name    string `json:"name"`
	IsFront bool   `json:"isFront"`
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

// ListDishes handles GET /api/admin/dishes?search=
// The search term matches dish names by substring.
func (h *AdminHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	dishes := h.store.Dishes()
	if search != "" {
		filtered := make([]models.Dish, 0, len(dishes))
		for _, d := range dishes {
			if strings.Contains(d.Name, search) {
				filtered = append(filtered, d)
			}
		}
		dishes = filtered
	}

	WriteJSON(w, http.StatusOK, dishes, h.log)
}

// CreateDish handles POST /api/admin/dishes
func (h *AdminHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	var req models.Dish
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if msg, ok := validateDish(req); !ok {
		WriteError(w, http.StatusBadRequest, msg, h.log)
		return
	}

	created, err := h.store.AddDish(r.Context(), req)
	if err != nil {
		h.writeStoreError(w, "create dish", err)
		return
	}

	h.log.Info("dish created", "dish_id", created.ID, "name", created.Name)
	WriteJSON(w, http.StatusCreated, created, h.log)
}

// UpdateDish handles PUT /api/admin/dishes/{dishId}
func (h *AdminHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dishId")

	var upd models.DishUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if msg, ok := validateDishUpdate(upd); !ok {
		WriteError(w, http.StatusBadRequest, msg, h.log)
		return
	}

	if err := h.store.UpdateDish(r.Context(), id, upd); err != nil {
		h.writeStoreError(w, "update dish", err)
		return
	}

	h.log.Info("dish updated", "dish_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDish handles DELETE /api/admin/dishes/{dishId}
func (h *AdminHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dishId")

	if err := h.store.RemoveDish(r.Context(), id); err != nil {
		h.writeStoreError(w, "delete dish", err)
		return
	}

	h.log.Info("dish deleted", "dish_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// CreateCategory handles POST /api/admin/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		WriteError(w, http.StatusBadRequest, "Category name is required", h.log)
		return
	}

	created, err := h.store.AddCategory(r.Context(), req.Name, req.IsFront)
	if err != nil {
		h.writeStoreError(w, "create category", err)
		return
	}

	h.log.Info("category created", "category_id", created.ID, "name", created.Name)
	WriteJSON(w, http.StatusCreated, created, h.log)
}

// UpdateCategory handles PUT /api/admin/categories/{categoryId}
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")

	var upd models.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		WriteError(w, http.StatusBadRequest, "Category name cannot be empty", h.log)
		return
	}

	if err := h.store.UpdateCategory(r.Context(), id, upd); err != nil {
		h.writeStoreError(w, "update category", err)
		return
	}

	h.log.Info("category updated", "category_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCategory handles DELETE /api/admin/categories/{categoryId}
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")

	if err := h.store.RemoveCategory(r.Context(), id); err != nil {
		h.writeStoreError(w, "delete category", err)
		return
	}

	h.log.Info("category deleted", "category_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ReorderCategories handles POST /api/admin/categories/reorder.
// The body lists every category id in the desired order. The reorder is
// applied as sequential updates; on partial failure the client must retry
// the whole reorder.
func (h *AdminHandler) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if err := h.store.ReorderCategories(r.Context(), req.IDs); err != nil {
		h.writeStoreError(w, "reorder categories", err)
		return
	}

	h.log.Info("categories reordered", "count", len(req.IDs))
	w.WriteHeader(http.StatusNoContent)
}

func validateDish(d models.Dish) (string, bool) {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Category) == "" {
		return "Dish name and category are required", false
	}
	if d.Price < 0 {
		return "Price must be non-negative", false
	}
	if d.SpicyLevel < 0 || d.SpicyLevel > 3 {
		return "Spicy level must be between 0 and 3", false
	}
	return "", true
}

func validateDishUpdate(u models.DishUpdate) (string, bool) {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return "Dish name cannot be empty", false
	}
	if u.Category != nil && strings.TrimSpace(*u.Category) == "" {
		return "Dish category cannot be empty", false
	}
	if u.Price != nil && *u.Price < 0 {
		return "Price must be non-negative", false
	}
	if u.SpicyLevel != nil && (*u.SpicyLevel < 0 || *u.SpicyLevel > 3) {
		return "Spicy level must be between 0 and 3", false
	}
	return "", true
}

func (h *AdminHandler) writeStoreError(w http.ResponseWriter, op string, err error) {
	h.log.Error("catalog mutation failed", "op", op, "error", err)

	var reorderErr *gateway.ReorderError
	switch {
	case errors.Is(err, catalog.ErrCategoryInUse):
		WriteError(w, http.StatusConflict, "Category still has dishes; move or delete them first", h.log)
	case errors.Is(err, gateway.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Record not found", h.log)
	case errors.Is(err, gateway.ErrConflict):
		WriteError(w, http.StatusConflict, "Record is still referenced", h.log)
	case errors.As(err, &reorderErr):
		// Some updates landed, some did not; the order is mixed until the
		// client retries the whole reorder.
		WriteError(w, http.StatusBadGateway, "Reorder partially applied; retry the full reorder", h.log)
	default:
		WriteError(w, http.StatusBadGateway, "Backend request failed", h.log)
	}
}
