package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"techcorp/internal/cache"
	apperrors "techcorp/internal/errors"
	"techcorp/internal/model"
	"techcorp/internal/repository"
)

const (
	productListCacheKey = "products:newest"
	productListCacheTTL = 5 * time.Minute
	recentProjectsLimit = 10
)

// ProductInput carries the fields of a product create or update.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	CategoryID  *uint
	ImageURL    string
	Status      string
}

// CatalogService exposes the product catalog: admin CRUD plus the public
// browse views over products, categories, and projects.
type CatalogService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, in ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByName(ctx context.Context) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListCategoriesWithCounts(ctx context.Context) ([]model.CategoryWithCount, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListRecentProjects(ctx context.Context) ([]model.Project, error)
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	projects   repository.ProjectRepository
	cache      *cache.Client
}

// NewCatalogService builds a CatalogService with repositories and cache.
func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	projects repository.ProjectRepository,
	cache *cache.Client,
) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		projects:   projects,
		cache:      cache,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	product, err := productFromInput(in)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	_ = s.cache.Delete(ctx, productListCacheKey)
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	updated, err := productFromInput(in)
	if err != nil {
		return nil, err
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.Price = updated.Price
	existing.CategoryID = updated.CategoryID
	existing.ImageURL = updated.ImageURL
	existing.Status = updated.Status
	existing.Category = nil // re-resolved on the next read

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	_ = s.cache.Delete(ctx, productListCacheKey)
	return existing, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uint) error {
	affected, err := s.products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProductNotFound
	}
	_ = s.cache.Delete(ctx, productListCacheKey)
	return nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	if data, _ := s.cache.Get(ctx, productListCacheKey); data != nil {
		var cached []model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.products.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(products); err == nil {
		_ = s.cache.Set(ctx, productListCacheKey, payload, productListCacheTTL)
	}
	return products, nil
}

func (s *catalogService) ListProductsByName(ctx context.Context) ([]model.Product, error) {
	return s.products.ListByName(ctx)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *catalogService) ListCategoriesWithCounts(ctx context.Context) ([]model.CategoryWithCount, error) {
	return s.categories.ListWithCounts(ctx)
}

func (s *catalogService) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

func (s *catalogService) ListRecentProjects(ctx context.Context) ([]model.Project, error) {
	return s.projects.ListRecent(ctx, recentProjectsLimit)
}

func productFromInput(in ProductInput) (*model.Product, error) {
	if in.Name == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: name and description are required", apperrors.ErrValidation)
	}

	price := decimal.Zero
	if in.Price != "" {
		parsed, err := decimal.NewFromString(in.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid price", apperrors.ErrValidation)
		}
		price = parsed
	}

	status := in.Status
	if status == "" {
		status = model.ProductStatusActive
	}

	return &model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		Status:      status,
	}, nil
}
