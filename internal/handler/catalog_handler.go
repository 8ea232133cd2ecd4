package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "techcorp/internal/errors"
	"techcorp/internal/service"
)

// CatalogHandler handles the public catalog browse routes and the admin
// product CRUD routes.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ProductForm represents a product create/update form submission.
type ProductForm struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
	CategoryID  string `form:"category_id" json:"category_id"`
	ImageURL    string `form:"image_url" json:"image_url"`
	Status      string `form:"status" json:"status"`
}

func (f *ProductForm) toInput() (service.ProductInput, error) {
	in := service.ProductInput{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		ImageURL:    f.ImageURL,
		Status:      f.Status,
	}
	if f.CategoryID != "" {
		id, err := strconv.ParseUint(f.CategoryID, 10, 32)
		if err != nil {
			return in, fmt.Errorf("%w: invalid category", apperrors.ErrValidation)
		}
		categoryID := uint(id)
		in.CategoryID = &categoryID
	}
	return in, nil
}

// BrowseDatabase returns the combined public view: products, categories,
// and the most recent projects.
func (h *CatalogHandler) BrowseDatabase(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.ListProducts(ctx)
	if err != nil {
		return dbError(c, err)
	}
	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return dbError(c, err)
	}
	projects, err := h.catalogService.ListRecentProjects(ctx)
	if err != nil {
		return dbError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"title":      "Database - TechCorp Solutions",
		"products":   products,
		"categories": categories,
		"projects":   projects,
	})
}

// BrowseProducts returns the public product list ordered by name.
func (h *CatalogHandler) BrowseProducts(c echo.Context) error {
	products, err := h.catalogService.ListProductsByName(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":    "Products & Services - TechCorp Solutions",
		"products": products,
	})
}

// BrowseCategories returns categories with their product counts.
func (h *CatalogHandler) BrowseCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategoriesWithCounts(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":      "Service Categories - TechCorp Solutions",
		"categories": categories,
	})
}

// BrowseProjects returns all projects, newest first.
func (h *CatalogHandler) BrowseProjects(c echo.Context) error {
	projects, err := h.catalogService.ListProjects(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":    "Our Projects - TechCorp Solutions",
		"projects": projects,
	})
}

// AdminListProducts returns the admin product management view, echoing any
// flash codes from a completed mutation.
func (h *CatalogHandler) AdminListProducts(c echo.Context) error {
	products, err := h.catalogService.ListProducts(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":    "Product Management - TechCorp Solutions",
		"products": products,
		"success":  c.QueryParam("success"),
		"error":    c.QueryParam("error"),
	})
}

// AdminNewProductForm returns the data backing the add-product form.
func (h *CatalogHandler) AdminNewProductForm(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":      "Add Product - TechCorp Solutions",
		"categories": categories,
		"error":      c.QueryParam("error"),
	})
}

// AdminEditProductForm returns the data backing the edit-product form.
func (h *CatalogHandler) AdminEditProductForm(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return dbError(c, err)
	}

	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"title":      "Edit Product - TechCorp Solutions",
		"product":    product,
		"categories": categories,
		"error":      c.QueryParam("error"),
	})
}

// AdminCreateProduct creates a product from the add form.
func (h *CatalogHandler) AdminCreateProduct(c echo.Context) error {
	var form ProductForm
	if err := c.Bind(&form); err != nil {
		return crudRedirect(c, "/crud/add", "error", "Invalid form data")
	}

	in, err := form.toInput()
	if err != nil {
		return crudRedirect(c, "/crud/add", "error", "Name and description are required")
	}

	if _, err := h.catalogService.CreateProduct(c.Request().Context(), in); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return crudRedirect(c, "/crud/add", "error", "Name and description are required")
		}
		c.Logger().Errorf("create product: %v", err)
		return crudRedirect(c, "/crud/add", "error", "Failed to create product")
	}

	return crudRedirect(c, "/crud", "success", "Product created successfully")
}

// AdminUpdateProduct updates a product from the edit form.
func (h *CatalogHandler) AdminUpdateProduct(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	editPath := fmt.Sprintf("/crud/edit/%d", id)

	var form ProductForm
	if err := c.Bind(&form); err != nil {
		return crudRedirect(c, editPath, "error", "Invalid form data")
	}

	in, err := form.toInput()
	if err != nil {
		return crudRedirect(c, editPath, "error", "Name and description are required")
	}

	if _, err := h.catalogService.UpdateProduct(c.Request().Context(), id, in); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			return crudRedirect(c, editPath, "error", "Name and description are required")
		case errors.Is(err, apperrors.ErrProductNotFound):
			return crudRedirect(c, editPath, "error", "Product not found")
		}
		c.Logger().Errorf("update product: %v", err)
		return crudRedirect(c, editPath, "error", "Failed to update product")
	}

	return crudRedirect(c, "/crud", "success", "Product updated successfully")
}

// AdminDeleteProduct deletes a product.
func (h *CatalogHandler) AdminDeleteProduct(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrProductNotFound) {
			return crudRedirect(c, "/crud", "error", "Product not found")
		}
		c.Logger().Errorf("delete product: %v", err)
		return crudRedirect(c, "/crud", "error", "Failed to delete product")
	}

	return crudRedirect(c, "/crud", "success", "Product deleted successfully")
}

// AdminViewProduct returns a single product with its category.
func (h *CatalogHandler) AdminViewProduct(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return dbError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"title":   "Product Details - TechCorp Solutions",
		"product": product,
	})
}

func productID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func crudRedirect(c echo.Context, path, key, message string) error {
	return c.Redirect(http.StatusFound, path+"?"+key+"="+url.QueryEscape(message))
}

func dbError(c echo.Context, err error) error {
	c.Logger().Errorf("database: %v", err)
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
