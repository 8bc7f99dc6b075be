package usecase

import (
	"context"
	"io"

	"patisserie/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
	OrderCount  int
}

// ImageUpload is an uploaded product image. Size must already reflect
// the full content length so oversized files are rejected before storage.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ProductUsecase manages the catalog.
type ProductUsecase interface {
	// AddProduct creates a product, storing its image under the
	// category directory. The image is optional.
	AddProduct(ctx context.Context, input *ProductInput, image *ImageUpload) (*entity.Product, error)

	// GetProduct retrieves a product by ID.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// UpdateProduct modifies a product, optionally replacing its image.
	UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput, image *ImageUpload) (*entity.Product, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// ListProducts returns the whole catalog.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// SearchProducts returns products matching keyword, paginated.
	SearchProducts(ctx context.Context, keyword string, page, size int) ([]*entity.Product, error)

	// TopProducts returns the most-ordered products.
	TopProducts(ctx context.Context, limit int) ([]*entity.Product, error)
}
