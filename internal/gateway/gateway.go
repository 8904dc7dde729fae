package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/sggmico/skitchen/internal/models"
)

var (
	// ErrNotFound is returned when an id does not resolve to a record.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned on a referential-integrity violation,
	// e.g. deleting a category that dishes still reference.
	ErrConflict = errors.New("record in use")
)

// Error wraps a transport or auth failure of a gateway operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ReorderError reports a partial failure of ReorderCategories. The reorder is
// a sequence of independent updates, not a transaction: Applied updates have
// landed, the rest have not. The caller must retry the whole reorder.
type ReorderError struct {
	Applied int
	Err     error
}

func (e *ReorderError) Error() string {
	return fmt.Sprintf("gateway: reorder categories: %d updates applied before failure: %v", e.Applied, e.Err)
}

func (e *ReorderError) Unwrap() error {
	return e.Err
}

// Gateway is the contract against the persistence backend. Create operations
// return the record with its server-assigned id; update and delete are
// idempotent with respect to the resulting state but fail with ErrNotFound
// for unknown ids.
type Gateway interface {
	// ListCategories returns all categories ordered by display order.
	ListCategories(ctx context.Context) ([]models.Category, error)

	// CreateCategory inserts a category at display order zero.
	CreateCategory(ctx context.Context, name string, isFront bool) (*models.Category, error)

	// UpdateCategory applies the present fields of upd to the category.
	UpdateCategory(ctx context.Context, id string, upd models.CategoryUpdate) error

	// DeleteCategory removes the category. It does not check whether dishes
	// still reference the category name; callers guard that themselves.
	DeleteCategory(ctx context.Context, id string) error

	// ReorderCategories sets each category's display order to its position
	// in ordered, one update per category. On partial failure it returns a
	// *ReorderError describing how many updates were applied.
	ReorderCategories(ctx context.Context, ordered []models.Category) error

	// ListDishes returns all dishes ordered by creation time.
	ListDishes(ctx context.Context) ([]models.Dish, error)

	// CreateDish inserts a dish; the ID field of d is ignored.
	CreateDish(ctx context.Context, d models.Dish) (*models.Dish, error)

	// UpdateDish applies the present fields of upd to the dish.
	UpdateDish(ctx context.Context, id string, upd models.DishUpdate) error

	// DeleteDish removes the dish.
	DeleteDish(ctx context.Context, id string) error
}
