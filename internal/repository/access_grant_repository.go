package repository

import (
	"errors"
	"time"

	"faceyoga_backend/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccessGrantRepository persists the one-grant-per-(user, course) rows that
// gate premium content.

type AccessGrantRepository struct {
	DB *gorm.DB
}

func NewAccessGrantRepository(db *gorm.DB) *AccessGrantRepository {
	return &AccessGrantRepository{DB: db}
}

func (r *AccessGrantRepository) FindByUserAndCourse(userID, courseID uint) (*model.AccessGrant, error) {
	var grant model.AccessGrant
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&grant).Error
	return &grant, err
}

// FindActive returns a usable grant for the pair, where a NULL expiry
// means lifetime access.
func (r *AccessGrantRepository) FindActive(userID, courseID uint, now time.Time) (*model.AccessGrant, error) {
	var grant model.AccessGrant
	err := r.DB.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Where("expires_at IS NULL OR expires_at > ?", now).
		First(&grant).Error
	return &grant, err
}

func (r *AccessGrantRepository) FindByUserID(userID uint) ([]model.AccessGrant, error) {
	var grants []model.AccessGrant
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&grants).Error
	return grants, err
}

// Upsert inserts the grant. A conflict on (user_id, course_id) keeps the
// surviving row when it is still active, so concurrent completion paths
// collapse to one grant; when the surviving row has lapsed (expired trial
// or refunded purchase) its window and purchase link are refreshed from
// the new grant instead. created reports whether this call wrote access,
// as a fresh insert or a renewal. A unique violation surfacing past the
// conflict clause is a lost race, not a failure.
func (r *AccessGrantRepository) Upsert(grant *model.AccessGrant) (*model.AccessGrant, bool, error) {
	now := time.Now()
	res := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"purchase_id": grant.PurchaseID,
			"access_type": grant.AccessType,
			"starts_at":   grant.StartsAt,
			"expires_at":  grant.ExpiresAt,
			"updated_at":  now,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "access_grants.expires_at IS NOT NULL AND access_grants.expires_at <= ?", Vars: []interface{}{now}},
		}},
	}).Create(grant)

	if res.Error != nil && !isUniqueViolation(res.Error) {
		return nil, false, res.Error
	}

	existing, err := r.FindByUserAndCourse(grant.UserID, grant.CourseID)
	if err != nil {
		return nil, false, err
	}
	return existing, res.Error == nil && res.RowsAffected > 0, nil
}

// Expire cuts a grant short, used when a purchase is refunded.
func (r *AccessGrantRepository) Expire(userID, courseID uint, at time.Time) error {
	return r.DB.Model(&model.AccessGrant{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("expires_at", at).Error
}

// isUniqueViolation matches Postgres error class 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// The sqlite driver used in tests reports constraint failures as a
	// plain gorm error.
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
