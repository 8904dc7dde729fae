package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sggmico/skitchen/internal/cart"
	"github.com/sggmico/skitchen/internal/catalog"
	"github.com/sggmico/skitchen/internal/models"
)

// CartHandler handles the per-session order carts.
type CartHandler struct {
	carts *cart.Manager
	store *catalog.Store
	log   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Manager, store *catalog.Store, log *slog.Logger) *CartHandler {
	return &CartHandler{
		carts: carts,
		store: store,
		log:   log,
	}
}

// CartState is the cart payload returned after every cart operation.
type CartState struct {
	CartID string            `json:"cartId"`
	Items  []models.CartItem `json:"items"`
	Totals models.CartTotals `json:"totals"`
}

// OrderDetail is the printable order summary: items grouped by category with
// derived totals and a timestamp.
type OrderDetail struct {
	CartID    string                 `json:"cartId"`
	CreatedAt time.Time              `json:"createdAt"`
	Groups    []models.CategoryGroup `json:"groups"`
	Totals    models.CartTotals      `json:"totals"`
}

type addItemRequest struct {
	DishID string `json:"dishId"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CreateCart handles POST /api/cart
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	id := h.carts.Create()
	h.log.Info("cart created", "cart_id", id)

	c, _ := h.carts.Get(id)
	WriteJSON(w, http.StatusCreated, h.state(id, c), h.log)
}

// GetCart handles GET /api/cart/{cartId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.lookup(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, h.state(id, c), h.log)
}

// AddItem handles POST /api/cart/{cartId}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	dish, found := h.store.DishByID(req.DishID)
	if !found {
		WriteError(w, http.StatusNotFound, "Dish not found", h.log)
		return
	}

	c.AddItem(dish)
	WriteJSON(w, http.StatusOK, h.state(id, c), h.log)
}

// SetQuantity handles PUT /api/cart/{cartId}/items/{dishId}.
// A quantity of zero or below removes the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	c.SetQuantity(chi.URLParam(r, "dishId"), req.Quantity)
	WriteJSON(w, http.StatusOK, h.state(id, c), h.log)
}

// RemoveItem handles DELETE /api/cart/{cartId}/items/{dishId}.
// Removing an absent line is a no-op, not an error.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.lookup(w, r)
	if !ok {
		return
	}

	c.RemoveItem(chi.URLParam(r, "dishId"))
	WriteJSON(w, http.StatusOK, h.state(id, c), h.log)
}

// GetOrder handles GET /api/cart/{cartId}/order
func (h *CartHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.lookup(w, r)
	if !ok {
		return
	}

	detail := OrderDetail{
		CartID:    id,
		CreatedAt: time.Now().UTC(),
		Groups:    c.GroupByCategory(),
		Totals:    c.Totals(),
	}
	WriteJSON(w, http.StatusOK, detail, h.log)
}

func (h *CartHandler) lookup(w http.ResponseWriter, r *http.Request) (*cart.Cart, string, bool) {
	id := chi.URLParam(r, "cartId")
	c, ok := h.carts.Get(id)
	if !ok {
		WriteError(w, http.StatusNotFound, "Cart not found", h.log)
		return nil, "", false
	}
	return c, id, true
}

func (h *CartHandler) state(id string, c *cart.Cart) CartState {
	return CartState{
		CartID: id,
		Items:  c.Items(),
		Totals: c.Totals(),
	}
}
