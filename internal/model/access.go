package model

import "time"

// AccessGrant asserts a user may view a course's content, optionally
// time-limited. One grant per (user, course); concurrent completion paths
// are resolved by an upsert on that pair, and a lapsed grant is refreshed
// in place when the course is bought again.
// swagger:model AccessGrant
type AccessGrant struct {
	BaseModel
	UserID     uint             `gorm:"not null;uniqueIndex:idx_user_course_grant" json:"userId"`
	CourseID   uint             `gorm:"not null;uniqueIndex:idx_user_course_grant" json:"courseId"`
	PurchaseID *uint            `gorm:"index" json:"purchaseId,omitempty"`
	AccessType CourseAccessType `gorm:"size:20;not null" json:"accessType"`
	StartsAt   time.Time        `gorm:"not null" json:"startsAt"`
	ExpiresAt  *time.Time       `gorm:"index" json:"expiresAt,omitempty"`
}

func (AccessGrant) TableName() string {
	return "access_grants"
}

// Active reports whether the grant is usable at the given instant.
// A nil ExpiresAt means lifetime access.
func (g *AccessGrant) Active(now time.Time) bool {
	return g.ExpiresAt == nil || g.ExpiresAt.After(now)
}

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionExpired  SubscriptionStatus = "expired"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription is a site-wide premium membership, independent of
// per-course grants.
// swagger:model Subscription
type Subscription struct {
	BaseModel
	UserID    uint               `gorm:"index;not null" json:"userId"`
	Status    SubscriptionStatus `gorm:"size:20;default:'active';index" json:"status"`
	StartsAt  time.Time          `gorm:"not null" json:"startsAt"`
	ExpiresAt time.Time          `gorm:"not null;index" json:"expiresAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
