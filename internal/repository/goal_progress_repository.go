package repository

import (
	"faceyoga_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalProgressRepository struct {
	DB *gorm.DB
}

func NewGoalProgressRepository(db *gorm.DB) *GoalProgressRepository {
	return &GoalProgressRepository{DB: db}
}

func (r *GoalProgressRepository) FindByUserAndGoal(userID, goalID uint) (*model.GoalProgress, error) {
	var progress model.GoalProgress
	err := r.DB.Where("user_id = ? AND goal_id = ?", userID, goalID).First(&progress).Error
	return &progress, err
}

func (r *GoalProgressRepository) FindByUserID(userID uint) ([]model.GoalProgress, error) {
	var progress []model.GoalProgress
	err := r.DB.Where("user_id = ?", userID).Find(&progress).Error
	return progress, err
}

// Upsert writes the row keyed on (user_id, goal_id), updating the derived
// fields when the pair already exists.
func (r *GoalProgressRepository) Upsert(progress *model.GoalProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "goal_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress_value", "milestone_reached", "status", "updated_at"}),
	}).Create(progress).Error
}

func (r *GoalProgressRepository) UpdateStatus(userID, goalID uint, status model.GoalProgressStatus) error {
	return r.DB.Model(&model.GoalProgress{}).
		Where("user_id = ? AND goal_id = ?", userID, goalID).
		Update("status", status).Error
}
