package repository

import (
	"context"

	"gorm.io/gorm"

	"techcorp/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	List(ctx context.Context) ([]model.Project, error)
	ListRecent(ctx context.Context, limit int) ([]model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) ListRecent(ctx context.Context, limit int) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Order("created_at DESC").
		Limit(limit).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
