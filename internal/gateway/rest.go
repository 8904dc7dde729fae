package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sggmico/skitchen/internal/models"
)

const defaultRequestTimeout = 15 * time.Second

// categoryRow is the wire shape of a category record.
type categoryRow struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	IsFront      bool   `json:"is_front"`
	DisplayOrder int    `json:"display_order"`
}

// dishRow is the wire shape of a dish record. Nullable text columns decode to
// their zero value.
type dishRow struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	SpicyLevel  int     `json:"spicy_level"`
	Popular     bool    `json:"popular"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// REST talks to the hosted persistence backend over its PostgREST-style API.
// Mutations request `return=representation` so that an update or delete
// matching no rows can be distinguished from a successful one.
type REST struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewREST creates a client for the backend at baseURL, authenticating every
// request with apiKey.
func NewREST(baseURL, apiKey string) *REST {
	return &REST{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

// ListCategories returns all categories ordered by display order.
func (g *REST) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []categoryRow
	q := url.Values{"select": {"*"}, "order": {"display_order.asc"}}
	if err := g.do(ctx, "list categories", http.MethodGet, "categories", q, nil, &rows); err != nil {
		return nil, err
	}

	cats := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, models.Category{ID: row.ID, Name: row.Name, IsFront: row.IsFront})
	}
	return cats, nil
}

// CreateCategory inserts a category at display order zero and returns it with
// its server-assigned id.
func (g *REST) CreateCategory(ctx context.Context, name string, isFront bool) (*models.Category, error) {
	body := categoryRow{Name: name, IsFront: isFront, DisplayOrder: 0}

	var rows []categoryRow
	if err := g.do(ctx, "create category", http.MethodPost, "categories", nil, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Op: "create category", Err: fmt.Errorf("backend returned no representation")}
	}

	row := rows[0]
	return &models.Category{ID: row.ID, Name: row.Name, IsFront: row.IsFront}, nil
}

// UpdateCategory applies the present fields of upd to the category.
func (g *REST) UpdateCategory(ctx context.Context, id string, upd models.CategoryUpdate) error {
	if upd.IsEmpty() {
		return nil
	}

	payload := map[string]interface{}{}
	if upd.Name != nil {
		payload["name"] = *upd.Name
	}
	if upd.IsFront != nil {
		payload["is_front"] = *upd.IsFront
	}

	return g.mutateByID(ctx, "update category", http.MethodPatch, "categories", id, payload)
}

// DeleteCategory removes the category.
func (g *REST) DeleteCategory(ctx context.Context, id string) error {
	return g.mutateByID(ctx, "delete category", http.MethodDelete, "categories", id, nil)
}

// ReorderCategories issues one display-order update per category, in order.
// Not atomic: a failure partway through leaves earlier updates applied.
func (g *REST) ReorderCategories(ctx context.Context, ordered []models.Category) error {
	for i, cat := range ordered {
		payload := map[string]interface{}{"display_order": i}
		if err := g.mutateByID(ctx, "reorder categories", http.MethodPatch, "categories", cat.ID, payload); err != nil {
			return &ReorderError{Applied: i, Err: err}
		}
	}
	return nil
}

// ListDishes returns all dishes ordered by creation time.
func (g *REST) ListDishes(ctx context.Context) ([]models.Dish, error) {
	var rows []dishRow
	q := url.Values{"select": {"*"}, "order": {"created_at.asc"}}
	if err := g.do(ctx, "list dishes", http.MethodGet, "dishes", q, nil, &rows); err != nil {
		return nil, err
	}

	dishes := make([]models.Dish, 0, len(rows))
	for _, row := range rows {
		dishes = append(dishes, dishFromRow(row))
	}
	return dishes, nil
}

// CreateDish inserts a dish and returns it with its server-assigned id.
func (g *REST) CreateDish(ctx context.Context, d models.Dish) (*models.Dish, error) {
	body := dishRow{
		Name:        d.Name,
		Category:    d.Category,
		Price:       d.Price,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		SpicyLevel:  d.SpicyLevel,
		Popular:     d.Popular,
	}

	var rows []dishRow
	if err := g.do(ctx, "create dish", http.MethodPost, "dishes", nil, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Op: "create dish", Err: fmt.Errorf("backend returned no representation")}
	}

	created := dishFromRow(rows[0])
	return &created, nil
}

// UpdateDish applies the present fields of upd to the dish.
func (g *REST) UpdateDish(ctx context.Context, id string, upd models.DishUpdate) error {
	if upd.IsEmpty() {
		return nil
	}

	payload := map[string]interface{}{}
	if upd.Name != nil {
		payload["name"] = *upd.Name
	}
	if upd.Category != nil {
		payload["category"] = *upd.Category
	}
	if upd.Price != nil {
		payload["price"] = *upd.Price
	}
	if upd.Description != nil {
		payload["description"] = *upd.Description
	}
	if upd.ImageURL != nil {
		payload["image_url"] = *upd.ImageURL
	}
	if upd.SpicyLevel != nil {
		payload["spicy_level"] = *upd.SpicyLevel
	}
	if upd.Popular != nil {
		payload["popular"] = *upd.Popular
	}

	return g.mutateByID(ctx, "update dish", http.MethodPatch, "dishes", id, payload)
}

// DeleteDish removes the dish.
func (g *REST) DeleteDish(ctx context.Context, id string) error {
	return g.mutateByID(ctx, "delete dish", http.MethodDelete, "dishes", id, nil)
}

func dishFromRow(row dishRow) models.Dish {
	return models.Dish{
		ID:          row.ID,
		Name:        row.Name,
		Category:    row.Category,
		Price:       row.Price,
		Description: row.Description,
		ImageURL:    row.ImageURL,
		SpicyLevel:  row.SpicyLevel,
		Popular:     row.Popular,
	}
}

// mutateByID issues a PATCH or DELETE filtered to a single id and maps an
// empty representation to ErrNotFound.
func (g *REST) mutateByID(ctx context.Context, op, method, table, id string, body interface{}) error {
	q := url.Values{"id": {"eq." + id}}

	var rows []json.RawMessage
	if err := g.do(ctx, op, method, table, q, body, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}

// do performs a single request against /rest/v1/<table> and decodes the JSON
// response into out when out is non-nil.
func (g *REST) do(ctx context.Context, op, method, table string, query url.Values, body, out interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", g.baseURL, table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("apikey", g.apiKey)
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &Error{Op: op, Err: fmt.Errorf("auth rejected: status %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return ErrConflict
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{Op: op, Err: fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
