package db

import (
	"context"
	"strings"
	"time"

	"rewear/models"

	"github.com/google/uuid"
)

type CreateItemInput struct {
	OwnerID     string
	Title       string
	Description string
	Condition   string
	CategoryID  *string
	Size        string
	Brand       string
}

// CreateItem validates the required attributes and stores the item as
// available. Availability is mutated afterwards only by the exchange
// lifecycle (or an explicit SetItemAvailability by the owner/admin).
func (r *Repo) CreateItem(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Condition) == "" {
		return nil, ErrInvalidItem
	}
	if _, err := r.FindUserByID(ctx, in.OwnerID); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		var n int64
		if err := r.DB.WithContext(ctx).Model(&models.Category{}).
			Where("id = ?", *in.CategoryID).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrNotFound
		}
	}

	it := &models.Item{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		OwnerID:     in.OwnerID,
		Size:        in.Size,
		Brand:       in.Brand,
		Condition:   in.Condition,
		IsAvailable: true,
	}
	if err := r.DB.WithContext(ctx).Create(it).Error; err != nil {
		return nil, err
	}
	return it, nil
}

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

type ListItemsQuery struct {
	OwnerID       string
	CategoryID    string
	AvailableOnly bool
}

func (r *Repo) ListItems(ctx context.Context, q ListItemsQuery) ([]models.Item, error) {
	tx := r.DB.WithContext(ctx).Order("created_at DESC")
	if q.OwnerID != "" {
		tx = tx.Where("owner_id = ?", q.OwnerID)
	}
	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.AvailableOnly {
		tx = tx.Where("is_available = ?", true)
	}
	var items []models.Item
	err := tx.Find(&items).Error
	return items, err
}

// SetItemAvailability is idempotent: setting the current value is a no-op.
func (r *Repo) SetItemAvailability(ctx context.Context, itemID string, available bool) (*models.Item, error) {
	it, err := r.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.IsAvailable == available {
		return it, nil
	}
	if err := r.DB.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", itemID).
		Updates(map[string]any{
			"is_available": available,
			"updated_at":   time.Now().UTC(),
		}).Error; err != nil {
		return nil, err
	}
	it.IsAvailable = available
	return it, nil
}
