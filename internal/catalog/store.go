// Package catalog holds the session's authoritative copy of dishes and
// categories, reconciled against the persistence gateway. Mutations follow a
// first-success-then-apply discipline: the gateway call must succeed before
// local state changes, so local state is always fully old or fully new.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/sggmico/skitchen/internal/gateway"
	"github.com/sggmico/skitchen/internal/models"
)

// ErrCategoryInUse is returned when deleting a category that dishes still
// reference by name. Checked locally; the gateway would not catch it.
var ErrCategoryInUse = errors.New("category still referenced by dishes")

// Source says where a loaded data set came from.
type Source string

const (
	SourceRemote  Source = "remote"
	SourceCache   Source = "cache"
	SourceBundled Source = "bundled"
)

// LoadResult reports the source used for each data set during Load.
type LoadResult struct {
	Dishes     Source
	Categories Source
}

// Event describes a catalog change, published to subscribers after every
// successful mutation.
type Event struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}

// Store is the in-memory source of truth for the catalog.
type Store struct {
	gw    gateway.Gateway
	cache Cache
	log   *slog.Logger

	mu         sync.RWMutex
	dishes     []models.Dish
	categories []models.Category

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// NewStore creates an empty store. Call Load before serving reads.
func NewStore(gw gateway.Gateway, cache Cache, log *slog.Logger) *Store {
	return &Store{
		gw:    gw,
		cache: cache,
		log:   log,
		subs:  make(map[int]chan Event),
	}
}

// Load fetches dishes and categories from the gateway. The two reads run
// concurrently; they populate disjoint state so completion order does not
// matter. Each data set independently falls back remote -> cached snapshot ->
// bundled defaults, so the catalog is never left empty.
func (s *Store) Load(ctx context.Context) LoadResult {
	var (
		wg         sync.WaitGroup
		remoteDish []models.Dish
		remoteCat  []models.Category
		dishErr    error
		catErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		remoteDish, dishErr = s.gw.ListDishes(ctx)
	}()
	go func() {
		defer wg.Done()
		remoteCat, catErr = s.gw.ListCategories(ctx)
	}()
	wg.Wait()

	var result LoadResult

	dishes := remoteDish
	result.Dishes = SourceRemote
	if dishErr != nil || len(remoteDish) == 0 {
		if dishErr != nil {
			s.log.Warn("remote dish load failed, falling back", "error", dishErr)
		}
		dishes, result.Dishes = s.fallbackDishes()
	}

	categories := remoteCat
	result.Categories = SourceRemote
	if catErr != nil || len(remoteCat) == 0 {
		if catErr != nil {
			s.log.Warn("remote category load failed, falling back", "error", catErr)
		}
		categories, result.Categories = s.fallbackCategories()
	}

	s.mu.Lock()
	s.dishes = dishes
	s.categories = categories
	s.mu.Unlock()

	if result.Dishes == SourceRemote {
		s.saveDishSnapshot()
	}
	if result.Categories == SourceRemote {
		s.saveCategorySnapshot()
	}

	s.notify(Event{Entity: "catalog", Action: "loaded"})
	return result
}

// Dishes returns a copy of all dishes in creation order.
func (s *Store) Dishes() []models.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Dish, len(s.dishes))
	copy(out, s.dishes)
	return out
}

// Categories returns a copy of all categories in display order.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// DishByID looks up a dish.
func (s *Store) DishByID(id string) (models.Dish, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.dishes {
		if d.ID == id {
			return d, true
		}
	}
	return models.Dish{}, false
}

// DishesByCategory returns the dishes whose category field matches name,
// preserving creation order.
func (s *Store) DishesByCategory(name string) []models.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Dish
	for _, d := range s.dishes {
		if d.Category == name {
			out = append(out, d)
		}
	}
	return out
}

// AddDish creates the dish through the gateway, then mirrors it locally.
func (s *Store) AddDish(ctx context.Context, d models.Dish) (*models.Dish, error) {
	created, err := s.gw.CreateDish(ctx, d)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.dishes = append(s.dishes, *created)
	s.mu.Unlock()

	s.saveDishSnapshot()
	s.notify(Event{Entity: "dish", Action: "created", ID: created.ID})
	return created, nil
}

// UpdateDish applies a partial update through the gateway, then locally.
func (s *Store) UpdateDish(ctx context.Context, id string, upd models.DishUpdate) error {
	if err := s.gw.UpdateDish(ctx, id, upd); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.dishes {
		if s.dishes[i].ID == id {
			upd.Apply(&s.dishes[i])
			break
		}
	}
	s.mu.Unlock()

	s.saveDishSnapshot()
	s.notify(Event{Entity: "dish", Action: "updated", ID: id})
	return nil
}

// RemoveDish deletes the dish through the gateway, then locally.
func (s *Store) RemoveDish(ctx context.Context, id string) error {
	if err := s.gw.DeleteDish(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.dishes {
		if s.dishes[i].ID == id {
			s.dishes = append(s.dishes[:i], s.dishes[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.saveDishSnapshot()
	s.notify(Event{Entity: "dish", Action: "deleted", ID: id})
	return nil
}

// AddCategory creates a category through the gateway and appends it locally.
func (s *Store) AddCategory(ctx context.Context, name string, isFront bool) (*models.Category, error) {
	created, err := s.gw.CreateCategory(ctx, name, isFront)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, *created)
	s.mu.Unlock()

	s.saveCategorySnapshot()
	s.notify(Event{Entity: "category", Action: "created", ID: created.ID})
	return created, nil
}

// UpdateCategory applies a partial update through the gateway, then locally.
func (s *Store) UpdateCategory(ctx context.Context, id string, upd models.CategoryUpdate) error {
	if err := s.gw.UpdateCategory(ctx, id, upd); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			upd.Apply(&s.categories[i])
			break
		}
	}
	s.mu.Unlock()

	s.saveCategorySnapshot()
	s.notify(Event{Entity: "category", Action: "updated", ID: id})
	return nil
}

// RemoveCategory deletes a category. Rejected with ErrCategoryInUse before
// any gateway call while a dish still references the category name.
func (s *Store) RemoveCategory(ctx context.Context, id string) error {
	s.mu.RLock()
	var name string
	var found bool
	for _, c := range s.categories {
		if c.ID == id {
			name, found = c.Name, true
			break
		}
	}
	if found {
		for _, d := range s.dishes {
			if d.Category == name {
				s.mu.RUnlock()
				return ErrCategoryInUse
			}
		}
	}
	s.mu.RUnlock()

	if err := s.gw.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.saveCategorySnapshot()
	s.notify(Event{Entity: "category", Action: "deleted", ID: id})
	return nil
}

// ReorderCategories moves the categories into the order given by ids. Every
// known category must appear exactly once; a list with a duplicate, unknown
// or missing id is rejected before any gateway call. The gateway applies the
// reorder as sequential updates; on partial failure the error is surfaced and
// local order is left unchanged — the caller retries the whole reorder.
func (s *Store) ReorderCategories(ctx context.Context, ids []string) error {
	s.mu.RLock()
	if len(ids) != len(s.categories) {
		s.mu.RUnlock()
		return gateway.ErrNotFound
	}
	ordered := make([]models.Category, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		// A duplicate inside a full-length list means some category is
		// missing from it.
		if seen[id] {
			s.mu.RUnlock()
			return gateway.ErrNotFound
		}
		seen[id] = true
		found := false
		for _, c := range s.categories {
			if c.ID == id {
				ordered = append(ordered, c)
				found = true
				break
			}
		}
		if !found {
			s.mu.RUnlock()
			return gateway.ErrNotFound
		}
	}
	s.mu.RUnlock()

	if err := s.gw.ReorderCategories(ctx, ordered); err != nil {
		return err
	}

	s.mu.Lock()
	s.categories = ordered
	s.mu.Unlock()

	s.saveCategorySnapshot()
	s.notify(Event{Entity: "category", Action: "reordered"})
	return nil
}

// Subscribe registers a change listener. The returned cancel function must be
// called when the listener goes away. Slow listeners drop events rather than
// block mutations.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 16)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Store) fallbackDishes() ([]models.Dish, Source) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(cacheKeyDishes); ok {
			var dishes []models.Dish
			if err := json.Unmarshal([]byte(raw), &dishes); err == nil && len(dishes) > 0 {
				return dishes, SourceCache
			}
			s.log.Warn("dish snapshot unusable, using bundled defaults")
		}
	}
	return DefaultDishes(), SourceBundled
}

func (s *Store) fallbackCategories() ([]models.Category, Source) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(cacheKeyCategories); ok {
			var cats []models.Category
			if err := json.Unmarshal([]byte(raw), &cats); err == nil && len(cats) > 0 {
				return cats, SourceCache
			}
			s.log.Warn("category snapshot unusable, using bundled defaults")
		}
	}
	return DefaultCategories(), SourceBundled
}

func (s *Store) saveDishSnapshot() {
	if s.cache == nil {
		return
	}
	s.mu.RLock()
	buf, err := json.Marshal(s.dishes)
	s.mu.RUnlock()
	if err == nil {
		err = s.cache.Set(cacheKeyDishes, string(buf))
	}
	if err != nil {
		s.log.Warn("failed to write dish snapshot", "error", err)
	}
}

func (s *Store) saveCategorySnapshot() {
	if s.cache == nil {
		return
	}
	s.mu.RLock()
	buf, err := json.Marshal(s.categories)
	s.mu.RUnlock()
	if err == nil {
		err = s.cache.Set(cacheKeyCategories, string(buf))
	}
	if err != nil {
		s.log.Warn("failed to write category snapshot", "error", err)
	}
}
