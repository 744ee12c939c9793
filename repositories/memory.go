package repositories

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/models"
)

// MemoryStore keeps every table in process memory. It backs the "memory"
// storage driver and the tests. All repositories it hands out share one lock.
type MemoryStore struct {
	mu          sync.RWMutex
	lastID      map[string]uint
	users       map[uint]models.User
	tags        map[uint]models.Tag
	ingredients map[uint]models.Ingredient
	recipes     map[uint]memoryRecipe
	now         func() time.Time
}

type memoryRecipe struct {
	recipe        models.Recipe // relations left empty
	tagIDs        []uint
	ingredientIDs []uint
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lastID:      make(map[string]uint),
		users:       make(map[uint]models.User),
		tags:        make(map[uint]models.Tag),
		ingredients: make(map[uint]models.Ingredient),
		recipes:     make(map[uint]memoryRecipe),
		now:         time.Now,
	}
}

// Users returns the user repository view of the store
func (s *MemoryStore) Users() UserRepository {
	return &memoryUserRepository{s: s}
}

// Tags returns the tag repository view of the store
func (s *MemoryStore) Tags() AttributeRepository[models.Tag] {
	return &memoryAttributeRepository[models.Tag, *models.Tag]{s: s, table: "tags", rows: s.tags}
}

// Ingredients returns the ingredient repository view of the store
func (s *MemoryStore) Ingredients() AttributeRepository[models.Ingredient] {
	return &memoryAttributeRepository[models.Ingredient, *models.Ingredient]{s: s, table: "ingredients", rows: s.ingredients}
}

// Recipes returns the recipe repository view of the store
func (s *MemoryStore) Recipes() RecipeRepository {
	return &memoryRecipeRepository{s: s}
}

// nextID must be called with mu held for writing
func (s *MemoryStore) nextID(table string) uint {
	s.lastID[table]++
	return s.lastID[table]
}

type memoryUserRepository struct {
	s *MemoryStore
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicateKey
		}
	}
	now := r.s.now()
	user.ID = r.s.nextID("users")
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *memoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[user.ID]
	if !ok {
		return apperrors.NotFound("user")
	}
	for id, other := range r.s.users {
		if id != user.ID && strings.EqualFold(other.Email, user.Email) {
			return ErrDuplicateKey
		}
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) List(_ context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make([]models.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type memoryAttributeRepository[T any, PT models.AttributeModel[T]] struct {
	s     *MemoryStore
	table string
	rows  map[uint]T
}

func (r *memoryAttributeRepository[T, PT]) ListByOwner(_ context.Context, ownerID uint) ([]T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]T, 0)
	for _, item := range r.rows {
		if PT(&item).Base().UserID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := PT(&items[i]).Base(), PT(&items[j]).Base()
		if a.Name != b.Name {
			return a.Name > b.Name
		}
		return a.ID > b.ID
	})
	return items, nil
}

func (r *memoryAttributeRepository[T, PT]) Create(_ context.Context, item *T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	base := PT(item).Base()
	now := r.s.now()
	base.ID = r.s.nextID(r.table)
	base.CreatedAt, base.UpdatedAt = now, now
	r.rows[base.ID] = *item
	return nil
}

func (r *memoryAttributeRepository[T, PT]) FindOwned(_ context.Context, ownerID uint, ids []uint) ([]T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]T, 0, len(ids))
	for _, id := range ids {
		item, ok := r.rows[id]
		if ok && PT(&item).Base().UserID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return PT(&items[i]).Base().ID < PT(&items[j]).Base().ID })
	return slices.CompactFunc(items, func(a, b T) bool { return PT(&a).Base().ID == PT(&b).Base().ID }), nil
}

type memoryRecipeRepository struct {
	s *MemoryStore
}

// hydrate must be called with mu held
func (r *memoryRecipeRepository) hydrate(stored memoryRecipe) models.Recipe {
	recipe := stored.recipe
	recipe.Tags = make([]models.Tag, 0, len(stored.tagIDs))
	for _, id := range stored.tagIDs {
		if tag, ok := r.s.tags[id]; ok {
			recipe.Tags = append(recipe.Tags, tag)
		}
	}
	recipe.Ingredients = make([]models.Ingredient, 0, len(stored.ingredientIDs))
	for _, id := range stored.ingredientIDs {
		if ingredient, ok := r.s.ingredients[id]; ok {
			recipe.Ingredients = append(recipe.Ingredients, ingredient)
		}
	}
	return recipe
}

func linkedAny(linked, wanted []uint) bool {
	for _, id := range wanted {
		if slices.Contains(linked, id) {
			return true
		}
	}
	return false
}

func (r *memoryRecipeRepository) List(_ context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	recipes := make([]models.Recipe, 0)
	for _, stored := range r.s.recipes {
		if stored.recipe.UserID != filter.OwnerID {
			continue
		}
		if len(filter.TagIDs) > 0 && !linkedAny(stored.tagIDs, filter.TagIDs) {
			continue
		}
		if len(filter.IngredientIDs) > 0 && !linkedAny(stored.ingredientIDs, filter.IngredientIDs) {
			continue
		}
		recipes = append(recipes, r.hydrate(stored))
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID > recipes[j].ID })
	return recipes, nil
}

func (r *memoryRecipeRepository) FindOwned(_ context.Context, ownerID, id uint) (*models.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.recipes[id]
	if !ok || stored.recipe.UserID != ownerID {
		return nil, apperrors.NotFound("recipe")
	}
	recipe := r.hydrate(stored)
	return &recipe, nil
}

func (r *memoryRecipeRepository) store(recipe *models.Recipe) {
	row := *recipe
	row.Tags, row.Ingredients = nil, nil
	tagIDs := recipe.TagIDs()
	ingredientIDs := recipe.IngredientIDs()
	slices.Sort(tagIDs)
	slices.Sort(ingredientIDs)
	r.s.recipes[recipe.ID] = memoryRecipe{
		recipe:        row,
		tagIDs:        slices.Compact(tagIDs),
		ingredientIDs: slices.Compact(ingredientIDs),
	}
}

func (r *memoryRecipeRepository) Create(_ context.Context, recipe *models.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	recipe.ID = r.s.nextID("recipes")
	recipe.CreatedAt, recipe.UpdatedAt = now, now
	r.store(recipe)
	return nil
}

func (r *memoryRecipeRepository) Update(_ context.Context, recipe *models.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.recipes[recipe.ID]
	if !ok || existing.recipe.UserID != recipe.UserID {
		return apperrors.NotFound("recipe")
	}
	recipe.CreatedAt = existing.recipe.CreatedAt
	recipe.UpdatedAt = r.s.now()
	r.store(recipe)
	return nil
}

func (r *memoryRecipeRepository) Delete(_ context.Context, ownerID, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.recipes[id]
	if !ok || stored.recipe.UserID != ownerID {
		return apperrors.NotFound("recipe")
	}
	delete(r.s.recipes, id)
	return nil
}
