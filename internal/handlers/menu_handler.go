package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sggmico/skitchen/internal/catalog"
	"github.com/sggmico/skitchen/internal/models"
)

// MenuHandler serves the read-only menu views.
type MenuHandler struct {
	store *catalog.Store
	log   *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(store *catalog.Store, log *slog.Logger) *MenuHandler {
	return &MenuHandler{
		store: store,
		log:   log,
	}
}

// MenuDish is a dish as rendered on the menu. Price is present only when the
// display mode shows prices, so a family-mode payload never carries them.
type MenuDish struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	SpicyLevel  int      `json:"spicyLevel"`
	Popular     bool     `json:"popular"`
	Price       *float64 `json:"price,omitempty"`
}

// MenuSection is one category with its dishes, in render order.
type MenuSection struct {
	Category models.Category `json:"category"`
	Dishes   []MenuDish      `json:"dishes"`
}

// MenuPage is one printable sheet: the front page or the back page.
type MenuPage struct {
	Front    bool          `json:"front"`
	Sections []MenuSection `json:"sections"`
}

// MenuView is the assembled menu for one display mode. Business mode shows
// prices; family mode hides them.
type MenuView struct {
	Mode       string     `json:"mode"`
	ShowPrices bool       `json:"showPrices"`
	Pages      []MenuPage `json:"pages"`
}

// GetMenu handles GET /api/menu?mode=business|family
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "family"
	}
	if mode != "business" && mode != "family" {
		WriteError(w, http.StatusBadRequest, "Invalid mode: must be business or family", h.log)
		return
	}

	showPrices := mode == "business"
	view := MenuView{
		Mode:       mode,
		ShowPrices: showPrices,
		Pages: []MenuPage{
			h.buildPage(true, showPrices),
			h.buildPage(false, showPrices),
		},
	}

	WriteJSON(w, http.StatusOK, view, h.log)
}

// ListCategories handles GET /api/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Categories(), h.log)
}

// ListDishes handles GET /api/dishes
func (h *MenuHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Dishes(), h.log)
}

// buildPage assembles one sheet. Categories with no dishes are skipped, same
// as the rendered menu does.
func (h *MenuHandler) buildPage(front, withPrices bool) MenuPage {
	page := MenuPage{Front: front, Sections: []MenuSection{}}
	for _, cat := range h.store.Categories() {
		if cat.IsFront != front {
			continue
		}
		dishes := h.store.DishesByCategory(cat.Name)
		if len(dishes) == 0 {
			continue
		}
		section := MenuSection{Category: cat, Dishes: make([]MenuDish, 0, len(dishes))}
		for _, d := range dishes {
			section.Dishes = append(section.Dishes, menuDish(d, withPrices))
		}
		page.Sections = append(page.Sections, section)
	}
	return page
}

func menuDish(d models.Dish, withPrice bool) MenuDish {
	md := MenuDish{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		SpicyLevel:  d.SpicyLevel,
		Popular:     d.Popular,
	}
	if withPrice {
		price := d.Price
		md.Price = &price
	}
	return md
}
