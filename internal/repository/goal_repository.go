package repository

import (
	"faceyoga_backend/internal/model"

	"gorm.io/gorm"
)

// GoalRepository handles goals, their milestones and the exercise-to-goal
// contribution weights.

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.DB.Save(goal).Error
}

func (r *GoalRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Goal{}, id).Error
}

func (r *GoalRepository) FindByID(id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("milestones.target_value")
		}).
		First(&goal, id).Error
	return &goal, err
}

func (r *GoalRepository) FindAll() ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("milestones.target_value")
		}).
		Order("label").
		Find(&goals).Error
	return goals, err
}

// FindMilestones returns a goal's milestones ordered by target value, the
// order milestone counting relies on.
func (r *GoalRepository) FindMilestones(goalID uint) ([]model.Milestone, error) {
	var milestones []model.Milestone
	err := r.DB.
		Where("goal_id = ?", goalID).
		Order("target_value").
		Find(&milestones).Error
	return milestones, err
}

func (r *GoalRepository) CreateMilestone(m *model.Milestone) error {
	return r.DB.Create(m).Error
}

func (r *GoalRepository) DeleteMilestone(id uint) error {
	return r.DB.Delete(&model.Milestone{}, id).Error
}

// FindWeightsByExercise lists every goal contribution mapped to an
// exercise.
func (r *GoalRepository) FindWeightsByExercise(exerciseID uint) ([]model.ExerciseGoalWeight, error) {
	var weights []model.ExerciseGoalWeight
	err := r.DB.Where("exercise_id = ?", exerciseID).Find(&weights).Error
	return weights, err
}

func (r *GoalRepository) SetWeight(weight *model.ExerciseGoalWeight) error {
	return r.DB.
		Where("exercise_id = ? AND goal_id = ?", weight.ExerciseID, weight.GoalID).
		Assign(map[string]interface{}{"weight": weight.Weight}).
		FirstOrCreate(weight).Error
}

func (r *GoalRepository) DeleteWeight(exerciseID, goalID uint) error {
	return r.DB.
		Where("exercise_id = ? AND goal_id = ?", exerciseID, goalID).
		Delete(&model.ExerciseGoalWeight{}).Error
}
