package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"vmarket/internal/delivery/http/response"
	"vmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminProductHandlerParams holds dependencies for AdminProductHandler, injected by Fx.
type AdminProductHandlerParams struct {
	fx.In

	AdminUC usecase.AdminCatalogUsecase
	Logger  *slog.Logger
}

// AdminProductHandler holds dependencies for the back-office product handlers.
// Product writes arrive as multipart forms because they carry the image file.
type AdminProductHandler struct {
	adminUC usecase.AdminCatalogUsecase
	logger  *slog.Logger
}

// NewAdminProductHandler is the constructor for AdminProductHandler
func NewAdminProductHandler(params AdminProductHandlerParams) *AdminProductHandler {
	return &AdminProductHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// productForm reads the scalar product fields from a multipart form.
func productForm(c echo.Context) (name string, price, stock float64, category, description string, err error) {
	name = c.FormValue("name")
	category = c.FormValue("category")
	description = c.FormValue("description")

	price, err = strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return
	}

	stock, err = strconv.ParseFloat(c.FormValue("stock"), 64)

	return
}

// imageUpload opens the "image" form file, if present.
func imageUpload(c echo.Context) (*usecase.ImageUpload, multipart.File, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &usecase.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        src,
	}, src, nil
}

// ListProducts handles the back-office listing of every product
func (h *AdminProductHandler) ListProducts(c echo.Context) error {
	products, err := h.adminUC.ListProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// SearchProducts handles the back-office product search
func (h *AdminProductHandler) SearchProducts(c echo.Context) error {
	products, err := h.adminUC.SearchProducts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// CreateProduct handles creating a product with its image
func (h *AdminProductHandler) CreateProduct(c echo.Context) error {
	name, price, stock, category, description, err := productForm(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product input")
	}

	image, src, err := imageUpload(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Product image is required")
	}
	defer src.Close()

	input := &usecase.CreateProductInput{
		Name:        name,
		Price:       price,
		Stock:       stock,
		Category:    category,
		Description: description,
		Image:       image,
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.adminUC.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product, "Produit créé avec succès")
}

// UpdateProduct handles overwriting a product, optionally replacing its image
func (h *AdminProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	name, price, stock, category, description, err := productForm(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product input")
	}

	input := &usecase.UpdateProductInput{
		Name:        name,
		Price:       price,
		Stock:       stock,
		Category:    category,
		Description: description,
	}

	// The image is optional on update; the current one is kept when absent.
	if image, src, err := imageUpload(c); err == nil {
		defer src.Close()
		input.Image = image
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.adminUC.UpdateProduct(c.Request().Context(), productID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Produit mis à jour")
}

// SetActive handles toggling a product's storefront visibility
func (h *AdminProductHandler) SetActive(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := h.adminUC.SetProductActive(c.Request().Context(), productID, req.Active); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Product visibility updated")
}

// DeleteProduct handles permanently removing a product and its image
func (h *AdminProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.adminUC.DeleteProduct(c.Request().Context(), productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Produit supprimé")
}
