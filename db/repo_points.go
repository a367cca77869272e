package db

import (
	"context"

	"rewear/models"

	"gorm.io/gorm"
)

// Points are a one-way reward currency: there is no debit operation, so the
// balance never goes below zero. The exchange lifecycle calls the tx variant
// so the credit commits atomically with the completed status flip.

func (r *Repo) CreditPoints(ctx context.Context, userID string, amount int) (int, error) {
	var balance int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := creditPointsTx(tx, userID, amount); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Select("points").
			Where("id = ?", userID).
			Scan(&balance).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *Repo) GetPoints(ctx context.Context, userID string) (int, error) {
	u, err := r.FindUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return u.Points, nil
}

func creditPointsTx(tx *gorm.DB, userID string, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
