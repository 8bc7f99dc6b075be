package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"patisserie/internal/delivery/http/response"
	"patisserie/internal/domain/service"
	"patisserie/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create adds a catalog entry from a multipart form. The image part is
// optional; oversized files are rejected before touching storage.
func (h *ProductHandler) Create(c echo.Context) error {
	input, err := bindProductForm(c)
	if err != nil {
		return err
	}

	image, err := bindProductImage(c)
	if err != nil {
		return err
	}
	if image != nil {
		defer image.close()
	}

	product, err := h.uc.AddProduct(c.Request().Context(), input, image.upload())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// Get retrieves a product by ID.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved")
}

// Update modifies a product, optionally replacing its image.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	input, err := bindProductForm(c)
	if err != nil {
		return err
	}

	image, err := bindProductImage(c)
	if err != nil {
		return err
	}
	if image != nil {
		defer image.close()
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, input, image.upload())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// Delete removes a product.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// List returns the whole catalog.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved")
}

// Search returns products matching the keyword, paginated.
func (h *ProductHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	products, err := h.uc.SearchProducts(c.Request().Context(), keyword, page, size)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved")
}

// Top returns the most-ordered products.
func (h *ProductHandler) Top(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	products, err := h.uc.TopProducts(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Top products retrieved")
}

// --- multipart helpers ---

type boundImage struct {
	img   *usecase.ImageUpload
	close func() error
}

// upload returns the usecase image, nil-safe for requests without one.
func (b *boundImage) upload() *usecase.ImageUpload {
	if b == nil {
		return nil
	}

	return b.img
}

func bindProductForm(c echo.Context) (*usecase.ProductInput, error) {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return nil, response.BadRequest(c, "INVALID_INPUT", "Invalid product price")
	}

	orderCount := 0
	if raw := c.FormValue("orderCount"); raw != "" {
		orderCount, err = strconv.Atoi(raw)
		if err != nil {
			return nil, response.BadRequest(c, "INVALID_INPUT", "Invalid order count")
		}
	}

	return &usecase.ProductInput{
		Name:        c.FormValue("name"),
		Price:       price,
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		OrderCount:  orderCount,
	}, nil
}

func bindProductImage(c echo.Context) (*boundImage, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image part in the form.
		return nil, nil
	}

	if fileHeader.Size > service.MaxImageSizeBytes {
		return nil, response.BadRequest(c, "FILE_TOO_LARGE", "Le fichier dépasse la taille maximale autorisée")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, response.BadRequest(c, "INVALID_INPUT", "Unable to read uploaded image")
	}

	return &boundImage{
		img: &usecase.ImageUpload{
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
			Content:  file,
		},
		close: file.Close,
	}, nil
}
