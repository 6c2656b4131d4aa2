package product

import (
	"database/sql"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
	"github.com/quillstack/be-cms-platform/pkg/logger"
	"github.com/quillstack/be-cms-platform/utils"
)

var validate = validator.New()

func validateRequest(c echo.Context, req *ProductRequest) *apperrors.AppError {
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Name is required and price must be non-negative.")
	}
	if req.AffiliateURL != "" && !utils.IsValidURL(req.AffiliateURL) {
		return apperrors.NewBadRequest(apperrors.ErrCodeInvalidURL, "Affiliate URL is not a valid http(s) URL.")
	}
	return nil
}

// ListProductsHandler returns all products.
func ListProductsHandler(c echo.Context) error {
	products := []Product{}
	err := config.DB.Select(&products, `
		SELECT id, name, description, price_cents, image_url, affiliate_url, created_at, updated_at
		FROM products ORDER BY name`)
	if err != nil {
		logger.Get().WithComponent("product").Error("Failed to list products", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	return apperrors.RespondWithSuccess(c, products)
}

// GetProductHandler returns one product.
func GetProductHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid product id."))
	}

	var p Product
	err = config.DB.Get(&p, `
		SELECT id, name, description, price_cents, image_url, affiliate_url, created_at, updated_at
		FROM products WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeProductNotFound, "Product not found."))
	}
	if err != nil {
		logger.Get().WithComponent("product").Error("Failed to fetch product", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err))
	}
	return apperrors.RespondWithSuccess(c, p)
}

// CreateProductHandler adds a product.
func CreateProductHandler(c echo.Context) error {
	req := new(ProductRequest)
	if appErr := validateRequest(c, req); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	var id int64
	err := config.DB.QueryRow(`
		INSERT INTO products (name, description, price_cents, image_url, affiliate_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id
	`, req.Name, req.Description, req.PriceCents, req.ImageURL, req.AffiliateURL).Scan(&id)
	if err != nil {
		logger.Get().WithComponent("product").Error("Failed to create product", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to create product.", err))
	}
	return apperrors.RespondWithCreated(c, map[string]int64{"id": id})
}

// UpdateProductHandler updates a product.
func UpdateProductHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid product id."))
	}

	req := new(ProductRequest)
	if appErr := validateRequest(c, req); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	res, err := config.DB.Exec(`
		UPDATE products
		SET name = $1, description = $2, price_cents = $3, image_url = $4,
			affiliate_url = $5, updated_at = NOW()
		WHERE id = $6
	`, req.Name, req.Description, req.PriceCents, req.ImageURL, req.AffiliateURL, id)
	if err != nil {
		logger.Get().WithComponent("product").Error("Failed to update product", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to update product.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeProductNotFound, "Product not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "updated"})
}

// DeleteProductHandler removes a product.
func DeleteProductHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid product id."))
	}

	res, err := config.DB.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.Get().WithComponent("product").Error("Failed to delete product", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Failed to delete product.", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeProductNotFound, "Product not found."))
	}
	return apperrors.RespondWithSuccess(c, map[string]string{"status": "deleted"})
}
