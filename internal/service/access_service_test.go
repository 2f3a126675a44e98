package service

import (
	"testing"
	"time"

	"faceyoga_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAccessFixture(t *testing.T) (*AccessService, *testRepos, *gorm.DB) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	svc := NewAccessService(repos.exercise, repos.course, repos.grant, repos.subscription, nil)
	return svc, repos, db
}

func createCourseWithExercise(t *testing.T, repos *testRepos, priceCents int64, premium bool) (*model.Course, *model.Exercise) {
	t.Helper()

	exercise := &model.Exercise{Title: "Cheek lift", Category: "cheeks", IsPremium: premium, Published: true}
	require.NoError(t, repos.exercise.Create(exercise))

	course := &model.Course{
		Title:      "28 day cheek program",
		PriceCents: priceCents,
		AccessType: model.AccessLifetime,
		Published:  true,
	}
	require.NoError(t, repos.course.Create(course))

	section := &model.CourseSection{CourseID: course.ID, Title: "Week 1"}
	require.NoError(t, repos.course.CreateSection(section))
	require.NoError(t, repos.course.AddExerciseToSection(&model.SectionExercise{
		SectionID:  section.ID,
		ExerciseID: exercise.ID,
	}))

	return course, exercise
}

func TestHasExerciseAccessFreeContent(t *testing.T) {
	svc, repos, _ := newAccessFixture(t)

	exercise := &model.Exercise{Title: "Neck stretch", Category: "neck", Published: true}
	require.NoError(t, repos.exercise.Create(exercise))

	ok, err := svc.HasExerciseAccess(1, exercise.ID)
	require.NoError(t, err)
	assert.True(t, ok, "non-premium exercise should always be open")
}

func TestHasExerciseAccessPremiumWithoutGrant(t *testing.T) {
	svc, repos, _ := newAccessFixture(t)
	_, exercise := createCourseWithExercise(t, repos, 1999, true)

	ok, err := svc.HasExerciseAccess(1, exercise.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasExerciseAccessViaGrant(t *testing.T) {
	svc, repos, _ := newAccessFixture(t)
	course, exercise := createCourseWithExercise(t, repos, 1999, true)

	_, _, err := repos.grant.Upsert(&model.AccessGrant{
		UserID:     1,
		CourseID:   course.ID,
		AccessType: model.AccessLifetime,
		StartsAt:   time.Now(),
	})
	require.NoError(t, err)

	ok, err := svc.HasExerciseAccess(1, exercise.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// The grant covers only its own user.
	ok, err = svc.HasExerciseAccess(2, exercise.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasExerciseAccessExpiredGrant(t *testing.T) {
	svc, repos, _ := newAccessFixture(t)
	course, exercise := createCourseWithExercise(t, repos, 1999, true)

	expired := time.Now().Add(-time.Hour)
	_, _, err := repos.grant.Upsert(&model.AccessGrant{
		UserID:     1,
		CourseID:   course.ID,
		AccessType: model.AccessTrial,
		StartsAt:   time.Now().AddDate(0, 0, -8),
		ExpiresAt:  &expired,
	})
	require.NoError(t, err)

	ok, err := svc.HasExerciseAccess(1, exercise.ID)
	require.NoError(t, err)
	assert.False(t, ok, "expired grant must not unlock content")
}

func TestHasExerciseAccessViaSubscription(t *testing.T) {
	svc, repos, _ := newAccessFixture(t)
	_, exercise := createCourseWithExercise(t, repos, 1999, true)

	require.NoError(t, repos.subscription.Create(&model.Subscription{
		UserID:    1,
		Status:    model.SubscriptionActive,
		StartsAt:  time.Now().AddDate(0, -1, 0),
		ExpiresAt: time.Now().AddDate(0, 1, 0),
	}))

	ok, err := svc.HasExerciseAccess(1, exercise.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasExerciseAccessLapsedSubscription(t *testing.T) {
	svc, repos, _ := newAccessFixture(t)
	_, exercise := createCourseWithExercise(t, repos, 1999, true)

	require.NoError(t, repos.subscription.Create(&model.Subscription{
		UserID:    1,
		Status:    model.SubscriptionActive,
		StartsAt:  time.Now().AddDate(0, -2, 0),
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	ok, err := svc.HasExerciseAccess(1, exercise.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasExerciseAccessOrphanedPremium(t *testing.T) {
	svc, repos, _ := newAccessFixture(t)

	// Premium exercise never attached to any course section.
	exercise := &model.Exercise{Title: "Jaw release", Category: "jaw", IsPremium: true, Published: true}
	require.NoError(t, repos.exercise.Create(exercise))

	ok, err := svc.HasExerciseAccess(1, exercise.ID)
	require.NoError(t, err)
	assert.False(t, ok, "orphaned premium exercise stays locked")
}

func TestHasExerciseAccessAnyOwningCourseSuffices(t *testing.T) {
	svc, repos, _ := newAccessFixture(t)
	_, exercise := createCourseWithExercise(t, repos, 1999, true)

	// Same exercise reachable through a second course; a grant there is
	// enough.
	other := &model.Course{Title: "Full face program", PriceCents: 4999, AccessType: model.AccessLifetime, Published: true}
	require.NoError(t, repos.course.Create(other))
	section := &model.CourseSection{CourseID: other.ID, Title: "Intro"}
	require.NoError(t, repos.course.CreateSection(section))
	require.NoError(t, repos.course.AddExerciseToSection(&model.SectionExercise{
		SectionID:  section.ID,
		ExerciseID: exercise.ID,
	}))

	_, _, err := repos.grant.Upsert(&model.AccessGrant{
		UserID:     1,
		CourseID:   other.ID,
		AccessType: model.AccessLifetime,
		StartsAt:   time.Now(),
	})
	require.NoError(t, err)

	ok, err := svc.HasExerciseAccess(1, exercise.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasExerciseAccessMissingExercise(t *testing.T) {
	svc, _, _ := newAccessFixture(t)

	ok, err := svc.HasExerciseAccess(1, 9999)
	assert.Error(t, err)
	assert.False(t, ok, "lookup failure must deny")
}

func TestHasCourseAccess(t *testing.T) {
	svc, repos, _ := newAccessFixture(t)

	free := &model.Course{Title: "Starter routine", PriceCents: 0, AccessType: model.AccessLifetime, Published: true}
	require.NoError(t, repos.course.Create(free))
	paid := &model.Course{Title: "Advanced program", PriceCents: 2999, AccessType: model.AccessLifetime, Published: true}
	require.NoError(t, repos.course.Create(paid))

	ok, err := svc.HasCourseAccess(1, free.ID)
	require.NoError(t, err)
	assert.True(t, ok, "free course is open to everyone")

	ok, err = svc.HasCourseAccess(1, paid.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = repos.grant.Upsert(&model.AccessGrant{
		UserID:     1,
		CourseID:   paid.ID,
		AccessType: model.AccessLifetime,
		StartsAt:   time.Now(),
	})
	require.NoError(t, err)

	ok, err = svc.HasCourseAccess(1, paid.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
