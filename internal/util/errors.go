package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrCourseNotFree       = errors.New("course requires purchase")
	ErrCourseFree          = errors.New("course is free, no payment required")
	ErrAlreadyEnrolled     = errors.New("access already granted")
	ErrNegativeWeight      = errors.New("contribution weight must be non-negative")
	ErrInvalidAmount       = errors.New("payment amount does not match course price")
	ErrInvalidVideoURL     = errors.New("video URL is malformed")
	ErrPhotoNotFound       = errors.New("progress photo not found")
)
