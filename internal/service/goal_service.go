package service

import (
	"errors"

	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/repository"
	"faceyoga_backend/internal/util"

	"gorm.io/gorm"
)

// GoalService manages the goal catalog and reports each user's progress
// against it.
type GoalService struct {
	GoalRepo     *repository.GoalRepository
	ProgressRepo *repository.GoalProgressRepository
	ExerciseRepo *repository.ExerciseRepository
}

func NewGoalService(
	goalRepo *repository.GoalRepository,
	progressRepo *repository.GoalProgressRepository,
	exerciseRepo *repository.ExerciseRepository,
) *GoalService {
	return &GoalService{
		GoalRepo:     goalRepo,
		ProgressRepo: progressRepo,
		ExerciseRepo: exerciseRepo,
	}
}

type GoalRequest struct {
	Label       string `json:"label" binding:"required,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

type MilestoneRequest struct {
	TargetValue  int `json:"targetValue" binding:"required,min=1"`
	RewardPoints int `json:"rewardPoints" binding:"min=0"`
	OrderIndex   int `json:"orderIndex" binding:"min=0"`
}

type WeightRequest struct {
	ExerciseID uint `json:"exerciseId" binding:"required"`
	GoalID     uint `json:"goalId" binding:"required"`
	Weight     int  `json:"weight"`
}

// GoalProgressView joins a goal with the user's progress row, or a zero
// row when the user has not started.
type GoalProgressView struct {
	Goal            model.Goal         `json:"goal"`
	Progress        model.GoalProgress `json:"progress"`
	PercentComplete float64            `json:"percentComplete"`
}

func (s *GoalService) ListGoals() ([]model.Goal, error) {
	return s.GoalRepo.FindAll()
}

func (s *GoalService) GetGoal(goalID uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(goalID)
	if err != nil {
		return nil, util.ErrGoalNotFound
	}
	return goal, nil
}

// ListUserProgress pairs every goal with the user's progress. Percent
// complete is progress against the highest milestone target, capped at
// 100.
func (s *GoalService) ListUserProgress(userID uint) ([]GoalProgressView, error) {
	goals, err := s.GoalRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rows, err := s.ProgressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	byGoal := make(map[uint]model.GoalProgress, len(rows))
	for _, row := range rows {
		byGoal[row.GoalID] = row
	}

	views := make([]GoalProgressView, len(goals))
	for i, goal := range goals {
		progress, ok := byGoal[goal.ID]
		if !ok {
			progress = model.GoalProgress{
				UserID: userID,
				GoalID: goal.ID,
				Status: model.GoalNotStarted,
			}
		}

		views[i] = GoalProgressView{
			Goal:            goal,
			Progress:        progress,
			PercentComplete: percentComplete(goal.Milestones, progress.ProgressValue),
		}
	}

	return views, nil
}

func percentComplete(milestones []model.Milestone, value int) float64 {
	maxTarget := 0
	for _, m := range milestones {
		if m.TargetValue > maxTarget {
			maxTarget = m.TargetValue
		}
	}
	if maxTarget == 0 {
		return 0
	}
	percent := float64(value) / float64(maxTarget) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

func (s *GoalService) CreateGoal(req GoalRequest) (*model.Goal, error) {
	goal := &model.Goal{
		Label:       req.Label,
		Description: req.Description,
	}
	return goal, s.GoalRepo.Create(goal)
}

func (s *GoalService) UpdateGoal(goalID uint, req GoalRequest) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(goalID)
	if err != nil {
		return nil, util.ErrGoalNotFound
	}

	goal.Label = req.Label
	goal.Description = req.Description
	return goal, s.GoalRepo.Update(goal)
}

func (s *GoalService) DeleteGoal(goalID uint) error {
	return s.GoalRepo.Delete(goalID)
}

func (s *GoalService) AddMilestone(goalID uint, req MilestoneRequest) (*model.Milestone, error) {
	if _, err := s.GoalRepo.FindByID(goalID); err != nil {
		return nil, util.ErrGoalNotFound
	}

	milestone := &model.Milestone{
		GoalID:       goalID,
		TargetValue:  req.TargetValue,
		RewardPoints: req.RewardPoints,
		OrderIndex:   req.OrderIndex,
	}
	return milestone, s.GoalRepo.CreateMilestone(milestone)
}

func (s *GoalService) DeleteMilestone(milestoneID uint) error {
	return s.GoalRepo.DeleteMilestone(milestoneID)
}

// SetWeight maps an exercise's completion contribution to a goal. A zero
// weight is allowed and contributes nothing.
func (s *GoalService) SetWeight(req WeightRequest) (*model.ExerciseGoalWeight, error) {
	if req.Weight < 0 {
		return nil, util.ErrNegativeWeight
	}
	if _, err := s.ExerciseRepo.FindByID(req.ExerciseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}
	if _, err := s.GoalRepo.FindByID(req.GoalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}

	weight := &model.ExerciseGoalWeight{
		ExerciseID: req.ExerciseID,
		GoalID:     req.GoalID,
		Weight:     req.Weight,
	}
	return weight, s.GoalRepo.SetWeight(weight)
}

func (s *GoalService) DeleteWeight(exerciseID, goalID uint) error {
	return s.GoalRepo.DeleteWeight(exerciseID, goalID)
}
