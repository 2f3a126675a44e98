package service

import (
	"testing"

	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressFixture(t *testing.T) (*ProgressService, *testRepos) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	svc := NewProgressService(repos.goal, repos.goalProgress, repos.exercise, repos.practice)
	return svc, repos
}

func createGoalWithMilestones(t *testing.T, repos *testRepos, targets ...int) *model.Goal {
	t.Helper()
	goal := &model.Goal{Label: "Sculpted jawline", Description: "test goal"}
	require.NoError(t, repos.goal.Create(goal))
	for i, target := range targets {
		require.NoError(t, repos.goal.CreateMilestone(&model.Milestone{
			GoalID:      goal.ID,
			TargetValue: target,
			OrderIndex:  i,
		}))
	}
	return goal
}

func TestApplyContributionAccumulates(t *testing.T) {
	svc, repos := newProgressFixture(t)
	goal := createGoalWithMilestones(t, repos, 10, 25, 50)

	progress, err := svc.ApplyContribution(1, goal.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, progress.ProgressValue)
	assert.Equal(t, 1, progress.MilestoneReached)
	assert.Equal(t, model.GoalInProgress, progress.Status)

	progress, err = svc.ApplyContribution(1, goal.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 30, progress.ProgressValue)
	assert.Equal(t, 2, progress.MilestoneReached)
	assert.Equal(t, model.GoalInProgress, progress.Status)

	progress, err = svc.ApplyContribution(1, goal.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 55, progress.ProgressValue)
	assert.Equal(t, 3, progress.MilestoneReached)
	assert.Equal(t, model.GoalCompleted, progress.Status)
}

func TestApplyContributionZeroWeight(t *testing.T) {
	svc, repos := newProgressFixture(t)
	goal := createGoalWithMilestones(t, repos, 10)

	// Zero weight still creates the row but moves nothing.
	progress, err := svc.ApplyContribution(1, goal.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.ProgressValue)
	assert.Equal(t, model.GoalNotStarted, progress.Status)
}

func TestApplyContributionNegativeWeight(t *testing.T) {
	svc, repos := newProgressFixture(t)
	goal := createGoalWithMilestones(t, repos, 10)

	_, err := svc.ApplyContribution(1, goal.ID, -5)
	assert.ErrorIs(t, err, util.ErrNegativeWeight)
}

func TestApplyContributionUnknownGoal(t *testing.T) {
	svc, _ := newProgressFixture(t)

	_, err := svc.ApplyContribution(1, 9999, 10)
	assert.ErrorIs(t, err, util.ErrGoalNotFound)
}

func TestCompletedIsTerminal(t *testing.T) {
	svc, repos := newProgressFixture(t)
	goal := createGoalWithMilestones(t, repos, 10)

	progress, err := svc.ApplyContribution(1, goal.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, model.GoalCompleted, progress.Status)

	// Value keeps growing after completion, status stays completed.
	progress, err = svc.ApplyContribution(1, goal.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, progress.ProgressValue)
	assert.Equal(t, model.GoalCompleted, progress.Status)
}

func TestPausedSurvivesContributions(t *testing.T) {
	svc, repos := newProgressFixture(t)
	goal := createGoalWithMilestones(t, repos, 100)

	_, err := svc.ApplyContribution(1, goal.ID, 10)
	require.NoError(t, err)

	require.NoError(t, svc.PauseGoal(1, goal.ID))

	progress, err := svc.ApplyContribution(1, goal.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, progress.ProgressValue)
	assert.Equal(t, model.GoalPaused, progress.Status, "pause holds until completion")

	// Enough progress to finish overrides the pause.
	progress, err = svc.ApplyContribution(1, goal.ID, 80)
	require.NoError(t, err)
	assert.Equal(t, model.GoalCompleted, progress.Status)
}

func TestResumeGoal(t *testing.T) {
	svc, repos := newProgressFixture(t)
	goal := createGoalWithMilestones(t, repos, 100)

	_, err := svc.ApplyContribution(1, goal.ID, 10)
	require.NoError(t, err)
	require.NoError(t, svc.PauseGoal(1, goal.ID))
	require.NoError(t, svc.ResumeGoal(1, goal.ID))

	progress, err := repos.goalProgress.FindByUserAndGoal(1, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalInProgress, progress.Status)
}

func TestPauseGoalWithoutProgressRow(t *testing.T) {
	svc, repos := newProgressFixture(t)
	goal := createGoalWithMilestones(t, repos, 100)

	// Pausing an untouched goal writes a zero-progress paused row.
	require.NoError(t, svc.PauseGoal(1, goal.ID))

	progress, err := repos.goalProgress.FindByUserAndGoal(1, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalPaused, progress.Status)
	assert.Zero(t, progress.ProgressValue)

	updated, err := svc.ApplyContribution(1, goal.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, model.GoalPaused, updated.Status, "pause set before any progress still holds")
}

func TestPauseGoalUnknownGoal(t *testing.T) {
	svc, _ := newProgressFixture(t)

	assert.ErrorIs(t, svc.PauseGoal(1, 9999), util.ErrGoalNotFound)
}

func TestResumeGoalWithoutProgressRow(t *testing.T) {
	svc, repos := newProgressFixture(t)
	goal := createGoalWithMilestones(t, repos, 100)

	require.NoError(t, svc.ResumeGoal(1, goal.ID))

	_, err := repos.goalProgress.FindByUserAndGoal(1, goal.ID)
	assert.Error(t, err, "nothing to resume writes no row")
}

func TestCompleteExerciseAppliesAllWeights(t *testing.T) {
	svc, repos := newProgressFixture(t)

	exercise := &model.Exercise{Title: "Cheek lift", Category: "cheeks", Published: true}
	require.NoError(t, repos.exercise.Create(exercise))

	jaw := createGoalWithMilestones(t, repos, 10, 25)
	cheeks := createGoalWithMilestones(t, repos, 20)

	require.NoError(t, repos.goal.SetWeight(&model.ExerciseGoalWeight{
		ExerciseID: exercise.ID, GoalID: jaw.ID, Weight: 5,
	}))
	require.NoError(t, repos.goal.SetWeight(&model.ExerciseGoalWeight{
		ExerciseID: exercise.ID, GoalID: cheeks.ID, Weight: 10,
	}))

	result, err := svc.CompleteExercise(1, exercise.ID, 120)
	require.NoError(t, err)
	require.NotNil(t, result.Session)
	assert.Equal(t, 120, result.Session.DurationSeconds)
	require.Len(t, result.Updated, 2)

	jawProgress, err := repos.goalProgress.FindByUserAndGoal(1, jaw.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, jawProgress.ProgressValue)

	cheekProgress, err := repos.goalProgress.FindByUserAndGoal(1, cheeks.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, cheekProgress.ProgressValue)

	// Second completion contributes again.
	_, err = svc.CompleteExercise(1, exercise.ID, 60)
	require.NoError(t, err)

	jawProgress, err = repos.goalProgress.FindByUserAndGoal(1, jaw.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, jawProgress.ProgressValue)
	assert.Equal(t, 1, jawProgress.MilestoneReached)

	count, err := repos.practice.CountSessionsByUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCompleteExerciseWithoutWeights(t *testing.T) {
	svc, repos := newProgressFixture(t)

	exercise := &model.Exercise{Title: "Neck stretch", Category: "neck", Published: true}
	require.NoError(t, repos.exercise.Create(exercise))

	result, err := svc.CompleteExercise(1, exercise.ID, 90)
	require.NoError(t, err)
	assert.Empty(t, result.Updated, "no mapped goals means session only")

	count, err := repos.practice.CountSessionsByUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCompleteExerciseUnknownExercise(t *testing.T) {
	svc, _ := newProgressFixture(t)

	_, err := svc.CompleteExercise(1, 9999, 60)
	assert.ErrorIs(t, err, util.ErrExerciseNotFound)
}
