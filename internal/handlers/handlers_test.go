package handlers

import (
	"context"
	"testing"

	"github.com/sggmico/skitchen/internal/catalog"
	"github.com/sggmico/skitchen/internal/gateway"
	"github.com/sggmico/skitchen/internal/models"
	"github.com/sggmico/skitchen/pkg/logger"
)

var testLog = logger.New("error")

// newTestStore builds a store over a seeded in-memory backend. Two categories
// (Mains on the front page, Soup on the back) and three dishes with known ids.
func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()

	mem := gateway.NewMemory(
		[]models.Category{
			{ID: "c1", Name: "Mains", IsFront: true},
			{ID: "c2", Name: "Soup", IsFront: false},
		},
		[]models.Dish{
			{ID: "d1", Name: "Braised Pork", Category: "Mains", Price: 30},
			{ID: "d2", Name: "Tomato Egg Soup", Category: "Soup", Price: 15},
			{ID: "d3", Name: "Dumplings", Category: "Mains", Price: 26},
		},
	)

	store := catalog.NewStore(mem, nil, testLog)
	store.Load(context.Background())
	return store
}
