package payment

import (
	"errors"
	"time"

	"forum-service/internal/membership"
	"forum-service/internal/shared/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettleResult reports what one settlement attempt did.
type SettleResult struct {
	MembershipUpdated bool
	Duplicate         bool
}

type Repository interface {
	// Settle inserts the payment record and, for a succeeded status,
	// upserts the membership in the same transaction. Both commit or
	// neither does; replays of the same intent id are no-ops.
	Settle(p *Payment) (SettleResult, error)
	ListByEmail(email string, limit, offset int) ([]Payment, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepository(s *db.Store) Repository {
	return &repo{db: s.DB}
}

func (r *repo) Settle(p *Payment) (SettleResult, error) {
	var res SettleResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing Payment
		switch err := tx.Where("payment_intent_id = ?", p.PaymentIntentID).
			First(&existing).Error; {
		case err == nil:
			res.Duplicate = true
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		if err := tx.Create(p).Error; err != nil {
			// Lost a race with an identical replay: the unique index
			// on payment_intent_id is the durable backstop.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				res.Duplicate = true
				return nil
			}
			return err
		}

		if p.Status != StatusSucceeded {
			return nil
		}

		now := time.Now().UTC()
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]any{
				"tier":        p.MembershipType,
				"upgraded_at": now,
				"updated_at":  now,
			}),
		}).Create(&membership.Membership{
			Email:      p.Email,
			Tier:       p.MembershipType,
			UpgradedAt: &now,
		}).Error; err != nil {
			return err
		}
		res.MembershipUpdated = true
		return nil
	})
	if err != nil {
		return SettleResult{}, err
	}
	return res, nil
}

func (r *repo) ListByEmail(email string, limit, offset int) ([]Payment, error) {
	var items []Payment
	if err := r.db.Where("email = ?", email).
		Order("id desc").Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
