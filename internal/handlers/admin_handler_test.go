package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sggmico/skitchen/internal/catalog"
	"github.com/sggmico/skitchen/internal/models"
)

func newAdminRouter(t *testing.T) (*chi.Mux, *catalog.Store) {
	t.Helper()
	store := newTestStore(t)
	h := NewAdminHandler(store, testLog)

	r := chi.NewRouter()
	r.Get("/api/admin/dishes", h.ListDishes)
	r.Post("/api/admin/dishes", h.CreateDish)
	r.Put("/api/admin/dishes/{dishId}", h.UpdateDish)
	r.Delete("/api/admin/dishes/{dishId}", h.DeleteDish)
	r.Post("/api/admin/categories", h.CreateCategory)
	r.Post("/api/admin/categories/reorder", h.ReorderCategories)
	r.Put("/api/admin/categories/{categoryId}", h.UpdateCategory)
	r.Delete("/api/admin/categories/{categoryId}", h.DeleteCategory)
	return r, store
}

func TestAdminListDishes_SearchFiltersByName(t *testing.T) {
	router, _ := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/dishes?search=Soup", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var dishes []models.Dish
	if err := json.Unmarshal(rr.Body.Bytes(), &dishes); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(dishes) != 1 || dishes[0].Name != "Tomato Egg Soup" {
		t.Errorf("search result = %+v, want just Tomato Egg Soup", dishes)
	}
}

func TestAdminCreateDish(t *testing.T) {
	router, store := newAdminRouter(t)

	body := `{"name":"Kung Pao Chicken","category":"Mains","price":38,"spicyLevel":2}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/dishes", strings.NewReader(body)))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var created models.Dish
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a server-assigned id")
	}
	if _, found := store.DishByID(created.ID); !found {
		t.Error("created dish not visible in the store")
	}
}

func TestAdminCreateDish_Validation(t *testing.T) {
	router, _ := newAdminRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"category":"Mains","price":10}`},
		{"missing category", `{"name":"Mystery","price":10}`},
		{"negative price", `{"name":"Freebie","category":"Mains","price":-1}`},
		{"spicy level out of range", `{"name":"Inferno","category":"Mains","price":10,"spicyLevel":4}`},
		{"malformed body", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/dishes", strings.NewReader(tt.body)))
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestAdminUpdateDish(t *testing.T) {
	router, store := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/admin/dishes/d1",
		strings.NewReader(`{"price":35}`)))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}

	dish, found := store.DishByID("d1")
	if !found {
		t.Fatal("dish d1 disappeared")
	}
	if dish.Price != 35 {
		t.Errorf("price = %v, want 35", dish.Price)
	}
	if dish.Name != "Braised Pork" {
		t.Errorf("name changed unexpectedly: %q", dish.Name)
	}
}

func TestAdminUpdateDish_UnknownID(t *testing.T) {
	router, _ := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/admin/dishes/ghost",
		strings.NewReader(`{"price":35}`)))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestAdminDeleteDish(t *testing.T) {
	router, store := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/dishes/d2", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if _, found := store.DishByID("d2"); found {
		t.Error("dish d2 still in the store after delete")
	}
}

func TestAdminCreateCategory(t *testing.T) {
	router, store := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/categories",
		strings.NewReader(`{"name":"Drinks","isFront":false}`)))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var created models.Category
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a server-assigned id")
	}
	if len(store.Categories()) != 3 {
		t.Errorf("categories = %d, want 3", len(store.Categories()))
	}
}

func TestAdminCreateCategory_EmptyName(t *testing.T) {
	router, _ := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/categories",
		strings.NewReader(`{"name":"  "}`)))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestAdminDeleteCategory_InUse(t *testing.T) {
	router, store := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/categories/c2", nil))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	if len(store.Categories()) != 2 {
		t.Error("category was removed despite the conflict")
	}
}

func TestAdminDeleteCategory_AfterDishesGone(t *testing.T) {
	router, store := newAdminRouter(t)

	// Empty the Soup category first, then the delete goes through.
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/dishes/d2", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete dish status = %d, want %d", rr.Code, http.StatusNoContent)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/categories/c2", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete category status = %d, want %d: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}
	if len(store.Categories()) != 1 {
		t.Errorf("categories = %d, want 1", len(store.Categories()))
	}
}

func TestAdminReorderCategories(t *testing.T) {
	router, store := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/categories/reorder",
		strings.NewReader(`{"ids":["c2","c1"]}`)))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}

	cats := store.Categories()
	if cats[0].ID != "c2" || cats[1].ID != "c1" {
		t.Errorf("order = %q, %q; want c2, c1", cats[0].ID, cats[1].ID)
	}
}

func TestAdminReorderCategories_UnknownID(t *testing.T) {
	router, store := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/categories/reorder",
		strings.NewReader(`{"ids":["c1","ghost"]}`)))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}

	cats := store.Categories()
	if cats[0].ID != "c1" || cats[1].ID != "c2" {
		t.Error("order changed despite the rejected reorder")
	}
}

func TestAdminReorderCategories_DuplicateID(t *testing.T) {
	router, store := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/categories/reorder",
		strings.NewReader(`{"ids":["c1","c1"]}`)))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}

	cats := store.Categories()
	if len(cats) != 2 || cats[0].ID != "c1" || cats[1].ID != "c2" {
		t.Errorf("catalog changed despite the rejected reorder: %+v", cats)
	}
}

func TestAdminReorderCategories_IncompleteList(t *testing.T) {
	router, _ := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/categories/reorder",
		strings.NewReader(`{"ids":["c1"]}`)))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
