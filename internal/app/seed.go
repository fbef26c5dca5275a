package app

import (
	"context"
	"fmt"

	"github.com/abgdnv/catalog/internal/service"
)

var seedUsers = []service.UserCreateDto{
	{Email: "admin@example.com", Name: "Admin User", Role: "admin"},
	{Email: "john.doe@example.com", Name: "John Doe", Role: "user"},
}

var seedProducts = []service.ProductCreateDto{
	{
		Name:        "Wireless Headphones",
		Description: "High-quality wireless headphones with noise cancellation",
		Price:       ptr(199.99),
		Stock:       ptr(50),
		Category:    "electronics",
		SKU:         "WH-001",
	},
	{
		Name:        "Running Shoes",
		Description: "Comfortable running shoes with excellent cushioning",
		Price:       ptr(89.99),
		Stock:       ptr(100),
		Category:    "sports",
		SKU:         "RS-001",
	},
	{
		Name:        "Programming Book",
		Description: "Learn TypeScript from beginner to advanced level",
		Price:       ptr(49.99),
		Stock:       ptr(30),
		Category:    "books",
		SKU:         "BK-001",
	},
}

// Seed inserts the demo users and products.
func Seed(ctx context.Context, deps *Dependencies) error {
	for _, u := range seedUsers {
		if _, err := deps.UserService.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}
	for _, p := range seedProducts {
		if _, err := deps.ProductService.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.SKU, err)
		}
	}
	deps.Logger.InfoContext(ctx, "Seed data inserted", "users", len(seedUsers), "products", len(seedProducts))
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
