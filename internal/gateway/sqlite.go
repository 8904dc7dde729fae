package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite" // sqlite dialect
	"github.com/sggmico/skitchen/internal/models"
)

// sqliteCategory mirrors the hosted backend's categories collection.
type sqliteCategory struct {
	ID           string `gorm:"primary_key"`
	Name         string `gorm:"not null;unique_index"`
	IsFront      bool
	DisplayOrder int
}

func (sqliteCategory) TableName() string { return "categories" }

// sqliteDish mirrors the hosted backend's dishes collection.
type sqliteDish struct {
	ID          string `gorm:"primary_key"`
	Name        string `gorm:"not null"`
	Category    string
	Price       float64
	Description string
	ImageURL    string `gorm:"column:image_url"`
	SpicyLevel  int
	Popular     bool
	CreatedAt   time.Time
}

func (sqliteDish) TableName() string { return "dishes" }

// SQLite implements the gateway contract against a local database file, for
// self-hosted deployments without the hosted backend. Ids are assigned here,
// playing the server's role.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (and migrates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, &Error{Op: "open sqlite", Err: err}
	}

	if err := db.AutoMigrate(&sqliteCategory{}, &sqliteDish{}).Error; err != nil {
		db.Close()
		return nil, &Error{Op: "migrate sqlite", Err: err}
	}

	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (g *SQLite) Close() error {
	return g.db.Close()
}

// ListCategories returns all categories ordered by display order.
func (g *SQLite) ListCategories(ctx context.Context) ([]models.Category, error) {
	var recs []sqliteCategory
	if err := g.db.Order("display_order asc").Find(&recs).Error; err != nil {
		return nil, &Error{Op: "list categories", Err: err}
	}

	cats := make([]models.Category, 0, len(recs))
	for _, rec := range recs {
		cats = append(cats, models.Category{ID: rec.ID, Name: rec.Name, IsFront: rec.IsFront})
	}
	return cats, nil
}

// CreateCategory inserts a category at display order zero.
func (g *SQLite) CreateCategory(ctx context.Context, name string, isFront bool) (*models.Category, error) {
	rec := sqliteCategory{
		ID:      uuid.New().String(),
		Name:    name,
		IsFront: isFront,
	}
	if err := g.db.Create(&rec).Error; err != nil {
		return nil, &Error{Op: "create category", Err: err}
	}
	return &models.Category{ID: rec.ID, Name: rec.Name, IsFront: rec.IsFront}, nil
}

// UpdateCategory applies the present fields of upd to the category.
func (g *SQLite) UpdateCategory(ctx context.Context, id string, upd models.CategoryUpdate) error {
	if err := g.exists("update category", &sqliteCategory{}, id); err != nil {
		return err
	}
	if upd.IsEmpty() {
		return nil
	}

	updates := map[string]interface{}{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.IsFront != nil {
		updates["is_front"] = *upd.IsFront
	}

	if err := g.db.Model(&sqliteCategory{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return &Error{Op: "update category", Err: err}
	}
	return nil
}

// DeleteCategory removes the category. Dish references are not checked here.
func (g *SQLite) DeleteCategory(ctx context.Context, id string) error {
	if err := g.exists("delete category", &sqliteCategory{}, id); err != nil {
		return err
	}
	if err := g.db.Where("id = ?", id).Delete(&sqliteCategory{}).Error; err != nil {
		return &Error{Op: "delete category", Err: err}
	}
	return nil
}

// ReorderCategories issues one display-order update per category. Deliberately
// not wrapped in a transaction: this backend keeps the same partial-failure
// behavior as the hosted one, so callers handle both identically.
func (g *SQLite) ReorderCategories(ctx context.Context, ordered []models.Category) error {
	for i, cat := range ordered {
		err := g.db.Model(&sqliteCategory{}).Where("id = ?", cat.ID).Update("display_order", i).Error
		if err != nil {
			return &ReorderError{Applied: i, Err: &Error{Op: "reorder categories", Err: err}}
		}
	}
	return nil
}

// ListDishes returns all dishes ordered by creation time.
func (g *SQLite) ListDishes(ctx context.Context) ([]models.Dish, error) {
	var recs []sqliteDish
	if err := g.db.Order("created_at asc").Find(&recs).Error; err != nil {
		return nil, &Error{Op: "list dishes", Err: err}
	}

	dishes := make([]models.Dish, 0, len(recs))
	for _, rec := range recs {
		dishes = append(dishes, models.Dish{
			ID:          rec.ID,
			Name:        rec.Name,
			Category:    rec.Category,
			Price:       rec.Price,
			Description: rec.Description,
			ImageURL:    rec.ImageURL,
			SpicyLevel:  rec.SpicyLevel,
			Popular:     rec.Popular,
		})
	}
	return dishes, nil
}

// CreateDish inserts a dish; the ID field of d is ignored.
func (g *SQLite) CreateDish(ctx context.Context, d models.Dish) (*models.Dish, error) {
	rec := sqliteDish{
		ID:          uuid.New().String(),
		Name:        d.Name,
		Category:    d.Category,
		Price:       d.Price,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		SpicyLevel:  d.SpicyLevel,
		Popular:     d.Popular,
		CreatedAt:   time.Now().UTC(),
	}
	if err := g.db.Create(&rec).Error; err != nil {
		return nil, &Error{Op: "create dish", Err: err}
	}

	d.ID = rec.ID
	return &d, nil
}

// UpdateDish applies the present fields of upd to the dish.
func (g *SQLite) UpdateDish(ctx context.Context, id string, upd models.DishUpdate) error {
	if err := g.exists("update dish", &sqliteDish{}, id); err != nil {
		return err
	}
	if upd.IsEmpty() {
		return nil
	}

	updates := map[string]interface{}{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Category != nil {
		updates["category"] = *upd.Category
	}
	if upd.Price != nil {
		updates["price"] = *upd.Price
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.ImageURL != nil {
		updates["image_url"] = *upd.ImageURL
	}
	if upd.SpicyLevel != nil {
		updates["spicy_level"] = *upd.SpicyLevel
	}
	if upd.Popular != nil {
		updates["popular"] = *upd.Popular
	}

	if err := g.db.Model(&sqliteDish{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return &Error{Op: "update dish", Err: err}
	}
	return nil
}

// DeleteDish removes the dish.
func (g *SQLite) DeleteDish(ctx context.Context, id string) error {
	if err := g.exists("delete dish", &sqliteDish{}, id); err != nil {
		return err
	}
	if err := g.db.Where("id = ?", id).Delete(&sqliteDish{}).Error; err != nil {
		return &Error{Op: "delete dish", Err: err}
	}
	return nil
}

func (g *SQLite) exists(op string, model interface{}, id string) error {
	err := g.db.Select("id").Where("id = ?", id).First(model).Error
	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	return nil
}
