package service

import (
	"testing"

	"faceyoga_backend/internal/config"
	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExerciseFixture(t *testing.T) (*ExerciseService, *testRepos) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	access := NewAccessService(repos.exercise, repos.course, repos.grant, repos.subscription, nil)
	storage := NewStorageService(&config.Config{})
	svc := NewExerciseService(repos.exercise, access, storage)
	return svc, repos
}

func updateRequestFor(ex *model.Exercise) ExerciseRequest {
	return ExerciseRequest{
		Title:     ex.Title,
		Category:  ex.Category,
		IsPremium: ex.IsPremium,
	}
}

func TestUpdateKeepsUploadedVideo(t *testing.T) {
	svc, repos := newExerciseFixture(t)

	exercise := &model.Exercise{
		Title:    "Forehead smoother",
		Category: "forehead",
		VideoURL: "/uploads/exercise_videos/1/abc.mp4",
	}
	require.NoError(t, repos.exercise.Create(exercise))

	// Edit form submitted without touching the video field.
	updated, err := svc.Update(exercise.ID, updateRequestFor(exercise))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/exercise_videos/1/abc.mp4", updated.VideoURL)

	// Round-tripping the stored relative URL must not trip validation.
	req := updateRequestFor(exercise)
	req.VideoURL = exercise.VideoURL
	updated, err = svc.Update(exercise.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/exercise_videos/1/abc.mp4", updated.VideoURL)
}

func TestUpdateReplacesVideoURL(t *testing.T) {
	svc, repos := newExerciseFixture(t)

	exercise := &model.Exercise{
		Title:    "Forehead smoother",
		Category: "forehead",
		VideoURL: "/uploads/exercise_videos/1/abc.mp4",
	}
	require.NoError(t, repos.exercise.Create(exercise))

	req := updateRequestFor(exercise)
	req.VideoURL = "https://cdn.example.com/videos/new.mp4"
	updated, err := svc.Update(exercise.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/videos/new.mp4", updated.VideoURL)
}

func TestUpdateRejectsMalformedVideoURL(t *testing.T) {
	svc, repos := newExerciseFixture(t)

	exercise := &model.Exercise{Title: "Forehead smoother", Category: "forehead"}
	require.NoError(t, repos.exercise.Create(exercise))

	req := updateRequestFor(exercise)
	req.VideoURL = "not a url"
	_, err := svc.Update(exercise.ID, req)
	assert.ErrorIs(t, err, util.ErrInvalidVideoURL)
}
