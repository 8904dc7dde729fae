package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/sggmico/skitchen/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultsFile struct {
	Categories []struct {
		Name    string `yaml:"name"`
		IsFront bool   `yaml:"isFront"`
	} `yaml:"categories"`
	Dishes []struct {
		Name        string  `yaml:"name"`
		Category    string  `yaml:"category"`
		Price       float64 `yaml:"price"`
		Description string  `yaml:"description"`
		ImageURL    string  `yaml:"imageUrl"`
		SpicyLevel  int     `yaml:"spicyLevel"`
		Popular     bool    `yaml:"popular"`
	} `yaml:"dishes"`
}

var (
	defaultsOnce      sync.Once
	defaultCategories []models.Category
	defaultDishes     []models.Dish
)

func loadDefaults() {
	var file defaultsFile
	if err := yaml.Unmarshal(defaultsYAML, &file); err != nil {
		// Embedded at build time; failing to parse is a programming error.
		panic(fmt.Sprintf("catalog: invalid defaults.yaml: %v", err))
	}

	for i, c := range file.Categories {
		defaultCategories = append(defaultCategories, models.Category{
			ID:      fmt.Sprintf("bundled-cat-%d", i+1),
			Name:    c.Name,
			IsFront: c.IsFront,
		})
	}
	for i, d := range file.Dishes {
		defaultDishes = append(defaultDishes, models.Dish{
			ID:          fmt.Sprintf("bundled-dish-%d", i+1),
			Name:        d.Name,
			Category:    d.Category,
			Price:       d.Price,
			Description: d.Description,
			ImageURL:    d.ImageURL,
			SpicyLevel:  d.SpicyLevel,
			Popular:     d.Popular,
		})
	}
}

// DefaultCategories returns the bundled category set.
func DefaultCategories() []models.Category {
	defaultsOnce.Do(loadDefaults)
	out := make([]models.Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// DefaultDishes returns the bundled dish set.
func DefaultDishes() []models.Dish {
	defaultsOnce.Do(loadDefaults)
	out := make([]models.Dish, len(defaultDishes))
	copy(out, defaultDishes)
	return out
}
