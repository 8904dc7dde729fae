package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sggmico/skitchen/internal/models"
)

// Memory implements the gateway contract entirely in memory. Used for demo
// deployments and as the backend in tests. Edits do not survive a restart.
type Memory struct {
	mu         sync.Mutex
	categories []models.Category
	dishes     []models.Dish
}

// NewMemory creates a memory backend seeded with the given catalog. Seed
// entries without an id get one assigned, as the real backend would.
func NewMemory(categories []models.Category, dishes []models.Dish) *Memory {
	g := &Memory{
		categories: make([]models.Category, 0, len(categories)),
		dishes:     make([]models.Dish, 0, len(dishes)),
	}
	for _, c := range categories {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		g.categories = append(g.categories, c)
	}
	for _, d := range dishes {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		g.dishes = append(g.dishes, d)
	}
	return g
}

// ListCategories returns all categories in display order.
func (g *Memory) ListCategories(ctx context.Context) ([]models.Category, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.Category, len(g.categories))
	copy(out, g.categories)
	return out, nil
}

// CreateCategory inserts a category. Display order zero places it first,
// matching the hosted backend's insert default.
func (g *Memory) CreateCategory(ctx context.Context, name string, isFront bool) (*models.Category, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cat := models.Category{ID: uuid.New().String(), Name: name, IsFront: isFront}
	g.categories = append([]models.Category{cat}, g.categories...)
	return &cat, nil
}

// UpdateCategory applies the present fields of upd to the category.
func (g *Memory) UpdateCategory(ctx context.Context, id string, upd models.CategoryUpdate) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.categories {
		if g.categories[i].ID == id {
			upd.Apply(&g.categories[i])
			return nil
		}
	}
	return ErrNotFound
}

// DeleteCategory removes the category without checking dish references.
func (g *Memory) DeleteCategory(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.categories {
		if g.categories[i].ID == id {
			g.categories = append(g.categories[:i], g.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ReorderCategories applies the given order one entry at a time, mirroring the
// hosted backend's sequential updates: an unknown id fails partway and leaves
// the earlier entries already moved. A repeated id updates the same row again,
// so each category holds at most one slot.
func (g *Memory) ReorderCategories(ctx context.Context, ordered []models.Category) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	reordered := make([]models.Category, 0, len(g.categories))
	for i, want := range ordered {
		if containsCategory(reordered, want.ID) {
			continue
		}
		found := false
		for _, have := range g.categories {
			if have.ID == want.ID {
				reordered = append(reordered, have)
				found = true
				break
			}
		}
		if !found {
			// Keep what has been applied so far, append the rest untouched.
			for _, have := range g.categories {
				if !containsCategory(reordered, have.ID) {
					reordered = append(reordered, have)
				}
			}
			g.categories = reordered
			return &ReorderError{Applied: i, Err: ErrNotFound}
		}
	}
	for _, have := range g.categories {
		if !containsCategory(reordered, have.ID) {
			reordered = append(reordered, have)
		}
	}
	g.categories = reordered
	return nil
}

// ListDishes returns all dishes in creation order.
func (g *Memory) ListDishes(ctx context.Context) ([]models.Dish, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.Dish, len(g.dishes))
	copy(out, g.dishes)
	return out, nil
}

// CreateDish inserts a dish; the ID field of d is ignored.
func (g *Memory) CreateDish(ctx context.Context, d models.Dish) (*models.Dish, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	d.ID = uuid.New().String()
	g.dishes = append(g.dishes, d)
	return &d, nil
}

// UpdateDish applies the present fields of upd to the dish.
func (g *Memory) UpdateDish(ctx context.Context, id string, upd models.DishUpdate) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.dishes {
		if g.dishes[i].ID == id {
			upd.Apply(&g.dishes[i])
			return nil
		}
	}
	return ErrNotFound
}

// DeleteDish removes the dish.
func (g *Memory) DeleteDish(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.dishes {
		if g.dishes[i].ID == id {
			g.dishes = append(g.dishes[:i], g.dishes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func containsCategory(cats []models.Category, id string) bool {
	for _, c := range cats {
		if c.ID == id {
			return true
		}
	}
	return false
}
