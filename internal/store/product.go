package store

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	perrors "github.com/abgdnv/catalog/internal/errors"
	"github.com/google/uuid"
)

// Category is the product category.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategorySports      Category = "sports"
	CategoryToys        Category = "toys"
	CategoryOther       Category = "other"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryHome,
	CategorySports,
	CategoryToys,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a product record in the store.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    Category
	SKU         string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductCreate carries the fields required to create a product.
type ProductCreate struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    Category
	SKU         string
}

// ProductPatch carries the fields of a partial product update. Nil fields are left untouched.
//
// IsAvailable is applied as given and is not reconciled with Stock; only UpdateStock
// derives availability.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Category    *Category
	SKU         *string
	IsAvailable *bool
}

// InMemoryProductStore implements ProductStore using an in-memory arena with a SKU index.
type InMemoryProductStore struct {
	mu       sync.RWMutex
	products collection[Product]
	bySku    map[string]uuid.UUID
	cfg      settings
}

var _ ProductStore = (*InMemoryProductStore)(nil)

// NewProductStore creates an empty product store.
func NewProductStore(opts ...Option) *InMemoryProductStore {
	return &InMemoryProductStore{
		products: newCollection[Product](),
		bySku:    make(map[string]uuid.UUID),
		cfg:      newSettings(opts),
	}
}

// FindAll retrieves all products.
func (s *InMemoryProductStore) FindAll() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.filter(nil)
}

// FindByID retrieves a product by its ID.
func (s *InMemoryProductStore) FindByID(id uuid.UUID) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: product %s", perrors.ErrNotFound, id)
	}
	return &p, nil
}

// FindBySku retrieves a product by SKU.
func (s *InMemoryProductStore) FindBySku(sku string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySku[sku]
	if !ok {
		return nil, fmt.Errorf("%w: product with sku %q", perrors.ErrNotFound, sku)
	}
	p, _ := s.products.get(id)
	return &p, nil
}

// FindByCategory retrieves products by category.
func (s *InMemoryProductStore) FindByCategory(category Category) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.filter(func(p Product) bool { return p.Category == category })
}

// Search retrieves products whose name or description contains text.
func (s *InMemoryProductStore) Search(text string) []Product {
	query := strings.ToLower(text)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.filter(func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query)
	})
}

// FindAvailable retrieves products that can be sold.
func (s *InMemoryProductStore) FindAvailable() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.filter(func(p Product) bool { return p.IsAvailable && p.Stock > 0 })
}

// Create creates a new product and returns it.
func (s *InMemoryProductStore) Create(input ProductCreate) (*Product, error) {
	err := checkProductFields(&input.Name, &input.Description, &input.Price, &input.Stock, &input.Category, &input.SKU)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bySku[input.SKU]; taken {
		return nil, fmt.Errorf("%w: product with sku %q already exists", perrors.ErrDuplicateKey, input.SKU)
	}

	now := s.cfg.now()
	p := Product{
		ID:          s.products.issue(s.cfg.newID),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		SKU:         input.SKU,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products.insert(p.ID, p)
	s.bySku[p.SKU] = p.ID

	return &p, nil
}

// Update applies patch to the product with the given ID and returns the result.
func (s *InMemoryProductStore) Update(id uuid.UUID, patch ProductPatch) (*Product, error) {
	err := checkProductFields(patch.Name, patch.Description, patch.Price, patch.Stock, patch.Category, patch.SKU)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: product %s", perrors.ErrNotFound, id)
	}

	oldSku := p.SKU
	if patch.SKU != nil && *patch.SKU != oldSku {
		if _, taken := s.bySku[*patch.SKU]; taken {
			return nil, fmt.Errorf("%w: product with sku %q already exists", perrors.ErrDuplicateKey, *patch.SKU)
		}
		p.SKU = *patch.SKU
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.IsAvailable != nil {
		p.IsAvailable = *patch.IsAvailable
	}
	p.UpdatedAt = s.cfg.touch(p.UpdatedAt)

	if p.SKU != oldSku {
		delete(s.bySku, oldSku)
		s.bySku[p.SKU] = id
	}
	s.products.replace(id, p)

	return &p, nil
}

// UpdateStock adjusts the stock of the product with the given ID by delta.
func (s *InMemoryProductStore) UpdateStock(id uuid.UUID, delta int) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: product %s", perrors.ErrNotFound, id)
	}

	if delta > 0 && p.Stock > math.MaxInt-delta {
		return nil, fmt.Errorf("%w: stock of product %s would overflow", perrors.ErrInvalidState, id)
	}
	newStock := p.Stock + delta
	if newStock < 0 {
		return nil, fmt.Errorf("%w: product %s has %d, delta %d", perrors.ErrInsufficientStock, id, p.Stock, delta)
	}

	p.Stock = newStock
	p.IsAvailable = newStock > 0
	p.UpdatedAt = s.cfg.touch(p.UpdatedAt)
	s.products.replace(id, p)

	return &p, nil
}

// Delete deletes a product by its ID.
func (s *InMemoryProductStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products.remove(id)
	if !ok {
		return fmt.Errorf("%w: product %s", perrors.ErrNotFound, id)
	}
	delete(s.bySku, p.SKU)
	return nil
}

// Len returns the number of products.
func (s *InMemoryProductStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.len()
}

// checkProductFields rejects values that must never reach a committed record.
// Nil pointers are fields absent from a patch.
func checkProductFields(name, description *string, price *float64, stock *int, category *Category, sku *string) error {
	if name != nil && strings.TrimSpace(*name) == "" {
		return fmt.Errorf("%w: product name must not be empty", perrors.ErrInvalidState)
	}
	if description != nil && strings.TrimSpace(*description) == "" {
		return fmt.Errorf("%w: product description must not be empty", perrors.ErrInvalidState)
	}
	if price != nil && (!(*price > 0) || math.IsInf(*price, 0)) {
		return fmt.Errorf("%w: product price must be positive, got %v", perrors.ErrInvalidState, *price)
	}
	if stock != nil && *stock < 0 {
		return fmt.Errorf("%w: product stock must not be negative, got %d", perrors.ErrInvalidState, *stock)
	}
	if category != nil && !category.Valid() {
		return fmt.Errorf("%w: unknown product category %q", perrors.ErrInvalidState, *category)
	}
	if sku != nil && strings.TrimSpace(*sku) == "" {
		return fmt.Errorf("%w: product sku must not be empty", perrors.ErrInvalidState)
	}
	return nil
}
