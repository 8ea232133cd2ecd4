package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "techcorp/internal/errors"
	"techcorp/internal/model"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) ListNewestFirst(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListByName(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func newTestCatalogService(products *MockProductRepository) CatalogService {
	// nil cache behaves like a permanent miss
	return NewCatalogService(products, nil, nil, nil)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	tests := []struct {
		name      string
		input     ProductInput
		setupMock func(*MockProductRepository)
		wantErr   error
		wantPrice string
	}{
		{
			name: "successful creation",
			input: ProductInput{
				Name:        "Cloud Backup",
				Description: "Managed offsite backups",
				Price:       "49.99",
			},
			setupMock: func(m *MockProductRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
			},
			wantPrice: "49.99",
		},
		{
			name: "empty price defaults to zero",
			input: ProductInput{
				Name:        "Consultation",
				Description: "Initial consultation call",
			},
			setupMock: func(m *MockProductRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
			},
			wantPrice: "0",
		},
		{
			name: "missing description fails before any store access",
			input: ProductInput{
				Name: "Cloud Backup",
			},
			setupMock: func(m *MockProductRepository) {},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name: "unparseable price",
			input: ProductInput{
				Name:        "Cloud Backup",
				Description: "Managed offsite backups",
				Price:       "lots",
			},
			setupMock: func(m *MockProductRepository) {},
			wantErr:   apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			tt.setupMock(mockRepo)

			svc := newTestCatalogService(mockRepo)
			product, err := svc.CreateProduct(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, product)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, product)
				assert.Equal(t, model.ProductStatusActive, product.Status)
				assert.True(t, product.Price.Equal(decimal.RequireFromString(tt.wantPrice)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestCatalogService(mockRepo)
	product, err := svc.UpdateProduct(context.Background(), 42, ProductInput{
		Name:        "Cloud Backup",
		Description: "Managed offsite backups",
	})

	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("Delete", mock.Anything, uint(1)).Return(int64(1), nil)
	mockRepo.On("Delete", mock.Anything, uint(2)).Return(int64(0), nil)

	svc := newTestCatalogService(mockRepo)

	assert.NoError(t, svc.DeleteProduct(context.Background(), 1))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), 2), apperrors.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestCatalogService(mockRepo)
	product, err := svc.GetProduct(context.Background(), 9)

	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	assert.Nil(t, product)
}
