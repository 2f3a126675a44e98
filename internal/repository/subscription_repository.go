package repository

import (
	"time"

	"faceyoga_backend/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.DB.Create(sub).Error
}

// FindActive returns the user's current unexpired subscription, if any.
func (r *SubscriptionRepository) FindActive(userID uint, now time.Time) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.DB.
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, model.SubscriptionActive, now).
		Order("expires_at DESC").
		First(&sub).Error
	return &sub, err
}

// ExpireOverdue flips active subscriptions whose expiry has passed.
func (r *SubscriptionRepository) ExpireOverdue(now time.Time) (int64, error) {
	res := r.DB.Model(&model.Subscription{}).
		Where("status = ? AND expires_at <= ?", model.SubscriptionActive, now).
		Update("status", model.SubscriptionExpired)
	return res.RowsAffected, res.Error
}

func (r *SubscriptionRepository) Cancel(userID uint, subID uint) error {
	return r.DB.Model(&model.Subscription{}).
		Where("id = ? AND user_id = ?", subID, userID).
		Update("status", model.SubscriptionCanceled).Error
}
