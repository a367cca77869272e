package db

import (
	"context"
	"strings"

	"rewear/models"

	"github.com/google/uuid"
)

func (r *Repo) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidItem
	}
	c := &models.Category{ID: uuid.NewString(), Name: name, Description: description}
	return c, r.DB.WithContext(ctx).Create(c).Error
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cs []models.Category
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&cs).Error
	return cs, err
}
