package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abgdnv/catalog/internal/store"
	"github.com/abgdnv/catalog/pkg/messaging/events"
	"github.com/google/uuid"
)

const productsCollection = string(events.CollectionProducts)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindAll returns all products in creation order.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindByCategory returns the products in category.
	FindByCategory(ctx context.Context, category store.Category) ([]ProductDto, error)

	// Search returns the products whose name or description contains text, ignoring case.
	Search(ctx context.Context, text string) ([]ProductDto, error)

	// FindAvailable returns the products that are available and in stock.
	FindAvailable(ctx context.Context) ([]ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// FindBySku retrieves a single product by SKU.
	// Returns ErrNotFound if no product holds the SKU.
	FindBySku(ctx context.Context, sku string) (*ProductDto, error)

	// Create adds a new product to the system.
	// Returns ErrDuplicateKey if the SKU is already taken.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update merges the present fields into an existing product.
	// Returns ErrNotFound for an unknown ID and ErrDuplicateKey for a taken SKU.
	Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error)

	// UpdateStock adds quantity, which may be negative, to the stock of a product.
	// Returns ErrInsufficientStock if the stock would drop below zero.
	UpdateStock(ctx context.Context, id uuid.UUID, quantity int) (*ProductDto, error)

	// Delete removes a product by its ID.
	// Returns ErrNotFound if no product exists with the given ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	SKU         string    `json:"sku"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name        string   `json:"name"        validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"required,min=10,max=500"`
	Price       *float64 `json:"price"       validate:"required,gt=0"`
	Stock       *int     `json:"stock"       validate:"required,min=0"`
	Category    string   `json:"category"    validate:"required,oneof=electronics clothing books home sports toys other"`
	SKU         string   `json:"sku"         validate:"required,min=3,max=20"`
}

// ProductUpdateDto represents the data transfer object for a partial product update.
// Absent fields are left untouched.
type ProductUpdateDto struct {
	Name        *string  `json:"name,omitempty"        validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=10,max=500"`
	Price       *float64 `json:"price,omitempty"       validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock,omitempty"       validate:"omitempty,min=0"`
	Category    *string  `json:"category,omitempty"    validate:"omitempty,oneof=electronics clothing books home sports toys other"`
	SKU         *string  `json:"sku,omitempty"         validate:"omitempty,min=3,max=20"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
}

// StockUpdateDto represents the data transfer object for adjusting product stock.
// Quantity is a signed delta.
type StockUpdateDto struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// Products implements ProductService on top of a store.ProductStore.
type Products struct {
	repository store.ProductStore
	observer   *Observer
}

var _ ProductService = (*Products)(nil)

// NewProductService creates a new instance of ProductService with the provided repository.
func NewProductService(repo store.ProductStore, observer *Observer) *Products {
	if observer == nil {
		observer = NewObserver(nil, nil, nil)
	}
	return &Products{
		repository: repo,
		observer:   observer,
	}
}

// FindAll retrieves all products and returns them as ProductDTOs.
func (s *Products) FindAll(ctx context.Context) ([]ProductDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products := s.repository.FindAll()
	s.observer.observe(productsCollection, "find_all", nil)
	return toProductDtos(products), nil
}

// FindByCategory retrieves the products in the given category.
func (s *Products) FindByCategory(ctx context.Context, category store.Category) ([]ProductDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products := s.repository.FindByCategory(category)
	s.observer.observe(productsCollection, "find_by_category", nil)
	return toProductDtos(products), nil
}

// Search retrieves the products matching text.
func (s *Products) Search(ctx context.Context, text string) ([]ProductDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products := s.repository.Search(text)
	s.observer.observe(productsCollection, "search", nil)
	return toProductDtos(products), nil
}

// FindAvailable retrieves the products that can be sold.
func (s *Products) FindAvailable(ctx context.Context) ([]ProductDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products := s.repository.FindAvailable()
	s.observer.observe(productsCollection, "find_available", nil)
	return toProductDtos(products), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Products) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	product, err := s.repository.FindByID(id)
	s.observer.observe(productsCollection, "find_by_id", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return toProductDto(product), nil
}

// FindBySku retrieves a product by SKU and returns it as a ProductDto.
func (s *Products) FindBySku(ctx context.Context, sku string) (*ProductDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	product, err := s.repository.FindBySku(sku)
	s.observer.observe(productsCollection, "find_by_sku", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by SKU %s: %w", sku, err)
	}
	return toProductDto(product), nil
}

// Create creates a new product and returns it as a ProductDto.
func (s *Products) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	input := store.ProductCreate{
		Name:        product.Name,
		Description: product.Description,
		Category:    store.Category(product.Category),
		SKU:         product.SKU,
	}
	if product.Price != nil {
		input.Price = *product.Price
	}
	if product.Stock != nil {
		input.Stock = *product.Stock
	}
	created, err := s.repository.Create(input)
	s.observer.observe(productsCollection, "create", err)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.observer.recorder.SetRecords(productsCollection, s.repository.Len())

	dto := toProductDto(created)
	s.observer.publish(ctx, events.RecordEvent{
		Collection: events.CollectionProducts,
		Action:     events.ActionCreated,
		ID:         created.ID,
		Record:     dto,
		OccurredAt: created.CreatedAt,
	})
	return dto, nil
}

// Update merges the present fields of product into the stored product and returns the result.
func (s *Products) Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	patch := store.ProductPatch{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		SKU:         product.SKU,
		IsAvailable: product.IsAvailable,
	}
	if product.Category != nil {
		category := store.Category(*product.Category)
		patch.Category = &category
	}
	updated, err := s.repository.Update(id, patch)
	s.observer.observe(productsCollection, "update", err)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}

	dto := toProductDto(updated)
	s.observer.publish(ctx, events.RecordEvent{
		Collection: events.CollectionProducts,
		Action:     events.ActionUpdated,
		ID:         updated.ID,
		Record:     dto,
		OccurredAt: updated.UpdatedAt,
	})
	return dto, nil
}

// UpdateStock adjusts the stock of a product and returns the updated product as a ProductDto.
func (s *Products) UpdateStock(ctx context.Context, id uuid.UUID, quantity int) (*ProductDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	updated, err := s.repository.UpdateStock(id, quantity)
	s.observer.observe(productsCollection, "update_stock", err)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock for product with ID %s: %w", id, err)
	}

	s.observer.publish(ctx, events.StockChangedEvent{
		ProductID:   updated.ID,
		SKU:         updated.SKU,
		Delta:       quantity,
		Stock:       updated.Stock,
		IsAvailable: updated.IsAvailable,
		OccurredAt:  updated.UpdatedAt,
	})
	return toProductDto(updated), nil
}

// Delete deletes a product by its ID.
func (s *Products) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.repository.Delete(id)
	s.observer.observe(productsCollection, "delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	s.observer.recorder.SetRecords(productsCollection, s.repository.Len())

	s.observer.publish(ctx, events.RecordEvent{
		Collection: events.CollectionProducts,
		Action:     events.ActionDeleted,
		ID:         id,
		OccurredAt: time.Now(),
	})
	return nil
}

// toProductDto converts a store.Product to a ProductDto.
func toProductDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    string(product.Category),
		SKU:         product.SKU,
		IsAvailable: product.IsAvailable,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i := range products {
		dtos[i] = *toProductDto(&products[i])
	}
	return dtos
}
