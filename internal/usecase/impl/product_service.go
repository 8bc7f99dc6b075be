package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "patisserie/internal/delivery/context"
	"patisserie/internal/domain/entity"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/repository"
	"patisserie/internal/domain/service"
	"patisserie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	imageStore  service.ImageStore
	logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(
	productRepo repository.ProductRepository,
	imageStore service.ImageStore,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		productRepo: productRepo,
		imageStore:  imageStore,
		logger:      logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddProduct creates a catalog entry, storing the image first so a
// storage failure never leaves a product without its picture.
func (srv *productService) AddProduct(ctx context.Context, input *usecase.ProductInput, image *usecase.ImageUpload) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		OrderCount:  input.OrderCount,
	}

	if image != nil {
		path, err := srv.storeImage(ctx, input.Category, image)
		if err != nil {
			return nil, err
		}
		product.ImagePath = path
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created",
		slog.Any("productID", product.ID), slog.String("name", product.Name))

	return product, nil
}

// GetProduct retrieves a product by ID.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// UpdateProduct modifies a product. A new image replaces the old one;
// the previous file is removed only after the update is persisted.
func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.ProductInput, image *usecase.ImageUpload) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	previousImage := product.ImagePath

	product.Name = input.Name
	product.Price = input.Price
	product.Description = input.Description
	product.Category = input.Category
	product.OrderCount = input.OrderCount

	if image != nil {
		path, err := srv.storeImage(ctx, input.Category, image)
		if err != nil {
			return nil, err
		}
		product.ImagePath = path
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	if image != nil && previousImage != "" && previousImage != product.ImagePath {
		if err := srv.imageStore.Remove(ctx, previousImage); err != nil {
			srv.log(ctx).Warn("Failed to remove replaced product image",
				slog.String("path", previousImage), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Product updated", slog.Any("productID", product.ID))

	return product, nil
}

// DeleteProduct removes a product and its stored image.
func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	if product.ImagePath != "" {
		if err := srv.imageStore.Remove(ctx, product.ImagePath); err != nil {
			srv.log(ctx).Warn("Failed to remove product image",
				slog.String("path", product.ImagePath), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", id))

	return nil
}

// ListProducts returns the whole catalog.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// SearchProducts returns products matching keyword, paginated.
func (srv *productService) SearchProducts(ctx context.Context, keyword string, page, size int) ([]*entity.Product, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	products, err := srv.productRepo.SearchByName(ctx, keyword, page, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return products, nil
}

// TopProducts returns the most-ordered products.
func (srv *productService) TopProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 5
	}

	products, err := srv.productRepo.ListTopOrdered(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list top products")
	}

	return products, nil
}

func (srv *productService) storeImage(ctx context.Context, category string, image *usecase.ImageUpload) (string, error) {
	if image.Size > service.MaxImageSizeBytes {
		return "", errors.Wrap(domainerrors.ErrFileTooLarge, "product image exceeds size limit")
	}

	path, err := srv.imageStore.Save(ctx, category, image.Filename, image.Content)
	if err != nil {
		return "", errors.Wrap(err, "failed to store product image")
	}

	return path, nil
}

func validateProductInput(input *usecase.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "product name is required")
	}
	if input.Price < 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "product price must not be negative")
	}
	if strings.TrimSpace(input.Category) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "product category is required")
	}

	return nil
}
