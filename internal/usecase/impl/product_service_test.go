package impl

import (
	"context"
	"strings"
	"testing"

	"patisserie/internal/domain/entity"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/repository"
	"patisserie/internal/domain/service"
	"patisserie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productServiceFixture struct {
	service     usecase.ProductUsecase
	productRepo *mockProductRepo
	imageStore  *mockImageStore
}

func newProductServiceFixture(t *testing.T) *productServiceFixture {
	t.Helper()

	productRepo := new(mockProductRepo)
	imageStore := new(mockImageStore)

	return &productServiceFixture{
		service:     NewProductService(productRepo, imageStore, newDiscardLogger()),
		productRepo: productRepo,
		imageStore:  imageStore,
	}
}

func tarteInput() *usecase.ProductInput {
	return &usecase.ProductInput{
		Name:        "Tarte aux fraises",
		Price:       6250,
		Description: "Pâte sablée, crème pâtissière et fraises fraîches",
		Category:    "tartes",
	}
}

func TestProductService_AddProduct(t *testing.T) {
	t.Parallel()

	t.Run("stores the image before creating the product", func(t *testing.T) {
		t.Parallel()

		f := newProductServiceFixture(t)
		content := strings.NewReader("fake-image-bytes")

		f.imageStore.On("Save", mock.Anything, "tartes", "tarte.jpg", content).
			Return("tartes/abc-tarte.jpg", nil)
		f.productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
			return p.ImagePath == "tartes/abc-tarte.jpg"
		})).Return(nil)

		product, err := f.service.AddProduct(context.Background(), tarteInput(), &usecase.ImageUpload{
			Filename: "tarte.jpg",
			Size:     1024,
			Content:  content,
		})

		require.NoError(t, err)
		assert.Equal(t, "tartes/abc-tarte.jpg", product.ImagePath)
		f.productRepo.AssertExpectations(t)
	})

	t.Run("works without an image", func(t *testing.T) {
		t.Parallel()

		f := newProductServiceFixture(t)
		f.productRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil)

		product, err := f.service.AddProduct(context.Background(), tarteInput(), nil)

		require.NoError(t, err)
		assert.Empty(t, product.ImagePath)
		f.imageStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("oversized image is rejected before storage", func(t *testing.T) {
		t.Parallel()

		f := newProductServiceFixture(t)

		product, err := f.service.AddProduct(context.Background(), tarteInput(), &usecase.ImageUpload{
			Filename: "huge.jpg",
			Size:     service.MaxImageSizeBytes + 1,
			Content:  strings.NewReader(""),
		})

		require.Error(t, err)
		assert.Nil(t, product)
		assert.True(t, errors.Is(err, domainerrors.ErrFileTooLarge))
		f.imageStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank name fails validation", func(t *testing.T) {
		t.Parallel()

		f := newProductServiceFixture(t)
		in := tarteInput()
		in.Name = "   "

		product, err := f.service.AddProduct(context.Background(), in, nil)

		require.Error(t, err)
		assert.Nil(t, product)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	t.Parallel()

	t.Run("replacing the image removes the previous file after persisting", func(t *testing.T) {
		t.Parallel()

		f := newProductServiceFixture(t)
		productID := uuid.New()
		existing := &entity.Product{
			ID:        productID,
			Name:      "Tarte aux fraises",
			Category:  "tartes",
			ImagePath: "tartes/old.jpg",
		}
		content := strings.NewReader("new-image")

		f.productRepo.On("FindByID", mock.Anything, productID).Return(existing, nil)
		f.imageStore.On("Save", mock.Anything, "tartes", "new.jpg", content).
			Return("tartes/new.jpg", nil)
		f.productRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
			return p.ImagePath == "tartes/new.jpg"
		})).Return(nil)
		f.imageStore.On("Remove", mock.Anything, "tartes/old.jpg").Return(nil)

		product, err := f.service.UpdateProduct(context.Background(), productID, tarteInput(), &usecase.ImageUpload{
			Filename: "new.jpg",
			Size:     2048,
			Content:  content,
		})

		require.NoError(t, err)
		assert.Equal(t, "tartes/new.jpg", product.ImagePath)
		f.imageStore.AssertCalled(t, "Remove", mock.Anything, "tartes/old.jpg")
	})

	t.Run("unknown product maps to the domain not-found error", func(t *testing.T) {
		t.Parallel()

		f := newProductServiceFixture(t)
		productID := uuid.New()
		f.productRepo.On("FindByID", mock.Anything, productID).
			Return(nil, repository.ErrProductNotFound)

		product, err := f.service.UpdateProduct(context.Background(), productID, tarteInput(), nil)

		require.Error(t, err)
		assert.Nil(t, product)
		assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	t.Parallel()

	t.Run("removes the stored image after the row", func(t *testing.T) {
		t.Parallel()

		f := newProductServiceFixture(t)
		productID := uuid.New()
		existing := &entity.Product{ID: productID, ImagePath: "tartes/old.jpg"}

		f.productRepo.On("FindByID", mock.Anything, productID).Return(existing, nil)
		f.productRepo.On("Delete", mock.Anything, productID).Return(nil)
		f.imageStore.On("Remove", mock.Anything, "tartes/old.jpg").Return(nil)

		err := f.service.DeleteProduct(context.Background(), productID)

		require.NoError(t, err)
		f.imageStore.AssertExpectations(t)
	})

	t.Run("image removal failure does not fail the delete", func(t *testing.T) {
		t.Parallel()

		f := newProductServiceFixture(t)
		productID := uuid.New()
		existing := &entity.Product{ID: productID, ImagePath: "tartes/old.jpg"}

		f.productRepo.On("FindByID", mock.Anything, productID).Return(existing, nil)
		f.productRepo.On("Delete", mock.Anything, productID).Return(nil)
		f.imageStore.On("Remove", mock.Anything, "tartes/old.jpg").
			Return(errors.New("bucket unavailable"))

		err := f.service.DeleteProduct(context.Background(), productID)

		require.NoError(t, err)
	})
}

func TestProductService_SearchProducts(t *testing.T) {
	t.Parallel()

	f := newProductServiceFixture(t)
	results := []*entity.Product{{ID: uuid.New(), Name: "Tarte aux fraises"}}

	// Negative page and size fall back to the defaults.
	f.productRepo.On("SearchByName", mock.Anything, "tarte", 0, 10).Return(results, nil)

	products, err := f.service.SearchProducts(context.Background(), "tarte", -1, 0)

	require.NoError(t, err)
	assert.Equal(t, results, products)
}

func TestProductService_TopProducts(t *testing.T) {
	t.Parallel()

	f := newProductServiceFixture(t)
	results := []*entity.Product{{ID: uuid.New(), Name: "Éclair au chocolat", OrderCount: 120}}

	f.productRepo.On("ListTopOrdered", mock.Anything, 5).Return(results, nil)

	products, err := f.service.TopProducts(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, results, products)
}
