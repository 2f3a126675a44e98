package service

import (
	"errors"
	"time"

	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/repository"
	"faceyoga_backend/internal/util"
	"faceyoga_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressService accumulates goal contributions and derives milestone
// counts. ProgressValue only ever increases; MilestoneReached is always
// recomputed from the milestone table, never trusted from the row.
type ProgressService struct {
	GoalRepo     *repository.GoalRepository
	ProgressRepo *repository.GoalProgressRepository
	ExerciseRepo *repository.ExerciseRepository
	PracticeRepo *repository.PracticeRepository
}

func NewProgressService(
	goalRepo *repository.GoalRepository,
	progressRepo *repository.GoalProgressRepository,
	exerciseRepo *repository.ExerciseRepository,
	practiceRepo *repository.PracticeRepository,
) *ProgressService {
	return &ProgressService{
		GoalRepo:     goalRepo,
		ProgressRepo: progressRepo,
		ExerciseRepo: exerciseRepo,
		PracticeRepo: practiceRepo,
	}
}

// ApplyContribution adds weight to the user's progress on a goal and
// recomputes the derived fields. The caller is responsible for applying
// each triggering event exactly once.
func (s *ProgressService) ApplyContribution(userID, goalID uint, weight int) (*model.GoalProgress, error) {
	if weight < 0 {
		return nil, util.ErrNegativeWeight
	}

	if _, err := s.GoalRepo.FindByID(goalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}

	progress, err := s.ProgressRepo.FindByUserAndGoal(userID, goalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = &model.GoalProgress{
			UserID: userID,
			GoalID: goalID,
			Status: model.GoalNotStarted,
		}
	} else if err != nil {
		return nil, err
	}

	progress.ProgressValue += weight

	milestones, err := s.GoalRepo.FindMilestones(goalID)
	if err != nil {
		return nil, err
	}

	reached := 0
	for _, m := range milestones {
		if m.TargetValue <= progress.ProgressValue {
			reached++
		}
	}
	progress.MilestoneReached = reached
	progress.Status = nextStatus(progress.Status, progress.ProgressValue, reached, len(milestones))

	if err := s.ProgressRepo.Upsert(progress); err != nil {
		return nil, err
	}

	return progress, nil
}

// nextStatus applies the transition rules: completed is terminal, a
// caller-set pause survives further contributions, and any positive
// progress otherwise means in_progress.
func nextStatus(current model.GoalProgressStatus, value, reached, total int) model.GoalProgressStatus {
	if current == model.GoalCompleted {
		return model.GoalCompleted
	}
	if total > 0 && reached == total {
		return model.GoalCompleted
	}
	if current == model.GoalPaused {
		return model.GoalPaused
	}
	if value > 0 {
		return model.GoalInProgress
	}
	return model.GoalNotStarted
}

type ExerciseCompletionResult struct {
	Session *model.PracticeSession `json:"session"`
	Updated []model.GoalProgress   `json:"updatedGoals"`
}

// CompleteExercise records a practice session and applies every goal
// weight mapped to the exercise, once per completion.
func (s *ProgressService) CompleteExercise(userID, exerciseID uint, durationSeconds int) (*ExerciseCompletionResult, error) {
	if _, err := s.ExerciseRepo.FindByID(exerciseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}

	session := &model.PracticeSession{
		UserID:          userID,
		ExerciseID:      exerciseID,
		PracticedAt:     time.Now(),
		DurationSeconds: durationSeconds,
	}
	if err := s.PracticeRepo.CreateSession(session); err != nil {
		return nil, err
	}

	weights, err := s.GoalRepo.FindWeightsByExercise(exerciseID)
	if err != nil {
		return nil, err
	}

	result := &ExerciseCompletionResult{Session: session}
	for _, w := range weights {
		progress, err := s.ApplyContribution(userID, w.GoalID, w.Weight)
		if err != nil {
			logger.Log.Error("failed to apply goal contribution",
				zap.Uint("goalID", w.GoalID),
				zap.Error(err))
			continue
		}
		result.Updated = append(result.Updated, *progress)
	}

	return result, nil
}

// PauseGoal lets the user park a goal; further contributions keep the
// paused status until completion. Pausing a goal the user never touched
// writes a zero-progress paused row.
func (s *ProgressService) PauseGoal(userID, goalID uint) error {
	if _, err := s.GoalRepo.FindByID(goalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrGoalNotFound
		}
		return err
	}

	progress, err := s.ProgressRepo.FindByUserAndGoal(userID, goalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.ProgressRepo.Upsert(&model.GoalProgress{
			UserID: userID,
			GoalID: goalID,
			Status: model.GoalPaused,
		})
	} else if err != nil {
		return err
	}
	if progress.Status == model.GoalCompleted {
		return nil
	}
	return s.ProgressRepo.UpdateStatus(userID, goalID, model.GoalPaused)
}

// ResumeGoal reverses a pause based on current progress. Nothing to
// resume is a no-op.
func (s *ProgressService) ResumeGoal(userID, goalID uint) error {
	progress, err := s.ProgressRepo.FindByUserAndGoal(userID, goalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	if progress.Status != model.GoalPaused {
		return nil
	}
	status := model.GoalNotStarted
	if progress.ProgressValue > 0 {
		status = model.GoalInProgress
	}
	return s.ProgressRepo.UpdateStatus(userID, goalID, status)
}
