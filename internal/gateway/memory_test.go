package gateway

import (
	"context"
	"testing"

	"github.com/sggmico/skitchen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededMemory() *Memory {
	return NewMemory(
		[]models.Category{
			{Name: "Mains", IsFront: true},
			{Name: "Soup", IsFront: false},
		},
		[]models.Dish{
			{Name: "Braised Pork", Category: "Mains", Price: 68},
		},
	)
}

func TestMemory_SeedAssignsIDs(t *testing.T) {
	g := seededMemory()
	ctx := context.Background()

	cats, err := g.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.NotEmpty(t, cats[0].ID)
	assert.NotEmpty(t, cats[1].ID)

	dishes, err := g.ListDishes(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.NotEmpty(t, dishes[0].ID)
}

func TestMemory_CreateDishAppendsInCreationOrder(t *testing.T) {
	g := seededMemory()
	ctx := context.Background()

	created, err := g.CreateDish(ctx, models.Dish{Name: "Dumplings", Category: "Mains", Price: 26})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	dishes, err := g.ListDishes(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, "Dumplings", dishes[1].Name)
}

func TestMemory_CreateCategoryInsertsFirst(t *testing.T) {
	g := seededMemory()
	ctx := context.Background()

	created, err := g.CreateCategory(ctx, "Drinks", false)
	require.NoError(t, err)

	cats, err := g.ListCategories(ctx)
	require.NoError(t, err)
	// Display order zero puts the new category at the head of the list.
	assert.Equal(t, created.ID, cats[0].ID)
}

func TestMemory_UpdateUnknownID(t *testing.T) {
	g := seededMemory()
	ctx := context.Background()

	name := "Renamed"
	assert.ErrorIs(t, g.UpdateCategory(ctx, "ghost", models.CategoryUpdate{Name: &name}), ErrNotFound)
	assert.ErrorIs(t, g.UpdateDish(ctx, "ghost", models.DishUpdate{Name: &name}), ErrNotFound)
	assert.ErrorIs(t, g.DeleteCategory(ctx, "ghost"), ErrNotFound)
	assert.ErrorIs(t, g.DeleteDish(ctx, "ghost"), ErrNotFound)
}

func TestMemory_PartialUpdateLeavesOtherFields(t *testing.T) {
	g := seededMemory()
	ctx := context.Background()

	dishes, _ := g.ListDishes(ctx)
	id := dishes[0].ID

	price := 72.0
	require.NoError(t, g.UpdateDish(ctx, id, models.DishUpdate{Price: &price}))

	dishes, _ = g.ListDishes(ctx)
	assert.InDelta(t, 72.0, dishes[0].Price, 1e-9)
	assert.Equal(t, "Braised Pork", dishes[0].Name)
	assert.Equal(t, "Mains", dishes[0].Category)
}

func TestMemory_ReorderCategories(t *testing.T) {
	g := seededMemory()
	ctx := context.Background()

	cats, _ := g.ListCategories(ctx)
	require.NoError(t, g.ReorderCategories(ctx, []models.Category{cats[1], cats[0]}))

	got, _ := g.ListCategories(ctx)
	assert.Equal(t, cats[1].ID, got[0].ID)
	assert.Equal(t, cats[0].ID, got[1].ID)
}

func TestMemory_ReorderCategories_UnknownIDFailsPartway(t *testing.T) {
	g := seededMemory()
	ctx := context.Background()

	cats, _ := g.ListCategories(ctx)
	err := g.ReorderCategories(ctx, []models.Category{
		{ID: cats[1].ID},
		{ID: "ghost"},
	})

	var reorderErr *ReorderError
	require.ErrorAs(t, err, &reorderErr)
	assert.Equal(t, 1, reorderErr.Applied)

	// The applied prefix has moved; the rest keeps its old relative order.
	got, _ := g.ListCategories(ctx)
	assert.Equal(t, cats[1].ID, got[0].ID)
	assert.Equal(t, cats[0].ID, got[1].ID)
}

func TestMemory_ReorderCategories_RepeatedIDHoldsOneSlot(t *testing.T) {
	g := seededMemory()
	ctx := context.Background()

	cats, _ := g.ListCategories(ctx)
	require.NoError(t, g.ReorderCategories(ctx, []models.Category{cats[1], cats[1]}))

	// The repeated row is updated twice, not stored twice.
	got, _ := g.ListCategories(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, cats[1].ID, got[0].ID)
	assert.Equal(t, cats[0].ID, got[1].ID)
}

func TestMemory_DeleteDish(t *testing.T) {
	g := seededMemory()
	ctx := context.Background()

	dishes, _ := g.ListDishes(ctx)
	require.NoError(t, g.DeleteDish(ctx, dishes[0].ID))

	dishes, _ = g.ListDishes(ctx)
	assert.Empty(t, dishes)
}
