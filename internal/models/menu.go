package models

// Dish represents a single dish on the menu.
// The ID is assigned by the persistence backend on creation.
type Dish struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	SpicyLevel  int     `json:"spicyLevel"`
	Popular     bool    `json:"popular"`
}

// Category represents a menu category. Render order is the position in the
// category list; IsFront places the category on the front or back menu sheet.
type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsFront bool   `json:"isFront"`
}

// DishUpdate is a partial update of a Dish. Nil fields are left unchanged;
// non-nil fields carry the new value.
type DishUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	SpicyLevel  *int     `json:"spicyLevel,omitempty"`
	Popular     *bool    `json:"popular,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u DishUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Price == nil &&
		u.Description == nil && u.ImageURL == nil && u.SpicyLevel == nil &&
		u.Popular == nil
}

// Apply copies the present fields onto d.
func (u DishUpdate) Apply(d *Dish) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Category != nil {
		d.Category = *u.Category
	}
	if u.Price != nil {
		d.Price = *u.Price
	}
	if u.Description != nil {
		d.Description = *u.Description
	}
	if u.ImageURL != nil {
		d.ImageURL = *u.ImageURL
	}
	if u.SpicyLevel != nil {
		d.SpicyLevel = *u.SpicyLevel
	}
	if u.Popular != nil {
		d.Popular = *u.Popular
	}
}

// CategoryUpdate is a partial update of a Category.
type CategoryUpdate struct {
	Name    *string `json:"name,omitempty"`
	IsFront *bool   `json:"isFront,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u CategoryUpdate) IsEmpty() bool {
	return u.Name == nil && u.IsFront == nil
}

// Apply copies the present fields onto c.
func (u CategoryUpdate) Apply(c *Category) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.IsFront != nil {
		c.IsFront = *u.IsFront
	}
}
