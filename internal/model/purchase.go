package model

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseFailed    PurchaseStatus = "failed"
	PurchaseRefunded  PurchaseStatus = "refunded"
)

// Purchase records a completed payment for a course. Immutable once
// completed, except for a transition to refunded.
// swagger:model Purchase
type Purchase struct {
	BaseModel
	UserID          uint           `gorm:"index;not null" json:"userId"`
	CourseID        uint           `gorm:"index;not null" json:"courseId"`
	AmountCents     int64          `gorm:"not null" json:"amountCents"`
	Currency        string         `gorm:"size:10;default:'usd'" json:"currency"`
	Status          PurchaseStatus `gorm:"size:20;default:'pending';index" json:"status"`
	PaymentIntentID string         `gorm:"size:255;uniqueIndex" json:"paymentIntentId"`
}

func (Purchase) TableName() string {
	return "purchases"
}
