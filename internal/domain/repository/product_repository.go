package repository

import (
	"context"
	"errors"

	"patisserie/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product lookup matches no record.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product from the catalog.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the whole catalog.
	List(ctx context.Context) ([]*entity.Product, error)

	// SearchByName returns products whose name contains keyword
	// (case-insensitive), paginated.
	SearchByName(ctx context.Context, keyword string, page, size int) ([]*entity.Product, error)

	// ListTopOrdered returns the most-ordered products, highest order
	// count first, limited to limit entries.
	ListTopOrdered(ctx context.Context, limit int) ([]*entity.Product, error)
}
