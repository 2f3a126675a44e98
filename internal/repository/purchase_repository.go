package repository

import (
	"faceyoga_backend/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

func (r *PurchaseRepository) Create(purchase *model.Purchase) error {
	return r.DB.Create(purchase).Error
}

func (r *PurchaseRepository) FindByID(id uint) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.DB.First(&purchase, id).Error
	return &purchase, err
}

func (r *PurchaseRepository) FindByPaymentIntentID(paymentIntentID string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.DB.Where("payment_intent_id = ?", paymentIntentID).First(&purchase).Error
	return &purchase, err
}

func (r *PurchaseRepository) FindByUserID(userID uint) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

// MarkRefunded is the only permitted transition out of completed.
func (r *PurchaseRepository) MarkRefunded(id uint) error {
	return r.DB.Model(&model.Purchase{}).
		Where("id = ? AND status = ?", id, model.PurchaseCompleted).
		Update("status", model.PurchaseRefunded).Error
}
