package db

import (
	"context"
	"time"

	"rewear/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposeExchangeInput struct {
	OffererID       string
	ReceiverID      string
	OfferedItemID   string
	RequestedItemID string
	PointsAwarded   *int // nil = models.DefaultPointsAwarded
}

// ProposeExchange creates a pending proposal. It only validates: no item is
// reserved here, so an unreviewed proposal never blocks anyone else. Accept
// re-checks availability, which is what makes stale proposals fail there
// with ErrConflict instead.
func (r *Repo) ProposeExchange(ctx context.Context, in ProposeExchangeInput) (*models.Exchange, error) {
	if in.OffererID == in.ReceiverID {
		return nil, ErrInvalidProposal
	}
	points := models.DefaultPointsAwarded
	if in.PointsAwarded != nil {
		if *in.PointsAwarded < 0 {
			return nil, ErrInvalidAmount
		}
		points = *in.PointsAwarded
	}

	var ex *models.Exchange
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		offered, err := findItemTx(tx, in.OfferedItemID)
		if err != nil {
			return err
		}
		requested, err := findItemTx(tx, in.RequestedItemID)
		if err != nil {
			return err
		}

		// 交叉持有：offerer 出自己的物品，receiver 持有被请求的物品
		if offered.OwnerID != in.OffererID || requested.OwnerID != in.ReceiverID {
			return ErrInvalidProposal
		}
		if !offered.IsAvailable || !requested.IsAvailable {
			return ErrInvalidProposal
		}

		e := &models.Exchange{
			ID:              uuid.NewString(),
			OffererID:       in.OffererID,
			ReceiverID:      in.ReceiverID,
			OfferedItemID:   in.OfferedItemID,
			RequestedItemID: in.RequestedItemID,
			Status:          models.ExchangePending,
			PointsAwarded:   points,
		}
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		ex = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ex, nil
}

func (r *Repo) FindExchangeByID(ctx context.Context, id string) (*models.Exchange, error) {
	var e models.Exchange
	if err := r.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

type ListExchangesQuery struct {
	UserID string // either side; empty = all (admin)
	Status string
}

func (r *Repo) ListExchanges(ctx context.Context, q ListExchangesQuery) ([]models.Exchange, error) {
	tx := r.DB.WithContext(ctx).Order("created_at DESC")
	if q.UserID != "" {
		tx = tx.Where("offerer_id = ? OR receiver_id = ?", q.UserID, q.UserID)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	var es []models.Exchange
	err := tx.Find(&es).Error
	return es, err
}

type StatusChangeInput struct {
	ExchangeID string
	Status     string // target status
	ActorID    string
	Admin      bool
}

// SetExchangeStatus drives every lifecycle transition as one transaction:
// the status flip, the availability mutations and the points credit commit
// together or not at all.
//
// Authorization (non-admin): receiver may accept or reject a pending
// exchange; offerer may cancel (reject) a pending exchange. Everything
// else, including completion and accepted -> rejected, is admin-only.
func (r *Repo) SetExchangeStatus(ctx context.Context, in StatusChangeInput) (*models.Exchange, error) {
	if !models.ValidExchangeStatus(in.Status) || in.Status == models.ExchangePending {
		return nil, ErrInvalidTransition
	}

	var out *models.Exchange
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e models.Exchange
		if err := tx.First(&e, "id = ?", in.ExchangeID).Error; err != nil {
			return notFound(err)
		}

		// 幂等完成：重复 complete 软失败，不重复加分
		if e.Status == models.ExchangeCompleted && in.Status == models.ExchangeCompleted {
			return ErrAlreadyCompleted
		}
		if !models.CanTransition(e.Status, in.Status) {
			return ErrInvalidTransition
		}
		if !in.Admin {
			if err := authorizeTransition(&e, in); err != nil {
				return err
			}
		}

		switch in.Status {
		case models.ExchangeAccepted:
			if err := reserveItemsTx(tx, &e); err != nil {
				return err
			}
		case models.ExchangeRejected:
			// 只有 accepted 状态下物品才被本交换占用
			if e.Status == models.ExchangeAccepted {
				if err := releaseItemsTx(tx, &e); err != nil {
					return err
				}
			}
		case models.ExchangeCompleted:
			// pending -> completed 是复合转换：先占用，再支付
			if e.Status == models.ExchangePending {
				if err := reserveItemsTx(tx, &e); err != nil {
					return err
				}
			}
			if err := creditPointsTx(tx, e.OffererID, e.PointsAwarded); err != nil {
				return err
			}
		}

		// 乐观提交：status 没变才算我们赢
		res := tx.Model(&models.Exchange{}).
			Where("id = ? AND status = ?", e.ID, e.Status).
			Updates(map[string]any{
				"status":     in.Status,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		e.Status = in.Status
		out = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func authorizeTransition(e *models.Exchange, in StatusChangeInput) error {
	if e.Status != models.ExchangePending {
		return ErrForbidden
	}
	switch {
	case in.ActorID == e.ReceiverID && (in.Status == models.ExchangeAccepted || in.Status == models.ExchangeRejected):
		return nil
	case in.ActorID == e.OffererID && in.Status == models.ExchangeRejected:
		// offerer-initiated cancel
		return nil
	}
	return ErrForbidden
}

func findItemTx(tx *gorm.DB, id string) (*models.Item, error) {
	var it models.Item
	if err := tx.First(&it, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

// reserveItemsTx flips both items to unavailable with compare-and-swap
// updates keyed on the current availability. First committer wins; the
// loser sees zero rows affected and the whole transaction rolls back.
func reserveItemsTx(tx *gorm.DB, e *models.Exchange) error {
	now := time.Now().UTC()
	for _, id := range []string{e.OfferedItemID, e.RequestedItemID} {
		res := tx.Model(&models.Item{}).
			Where("id = ? AND is_available = ?", id, true).
			Updates(map[string]any{
				"is_available": false,
				"updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
	}
	return nil
}

func releaseItemsTx(tx *gorm.DB, e *models.Exchange) error {
	return tx.Model(&models.Item{}).
		Where("id IN ?", []string{e.OfferedItemID, e.RequestedItemID}).
		Updates(map[string]any{
			"is_available": true,
			"updated_at":   time.Now().UTC(),
		}).Error
}
