package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"faceyoga_backend/internal/repository"
	"faceyoga_backend/pkg/logger"
	"faceyoga_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	owningCoursesKeyPrefix = "exercise_courses:"
	owningCoursesTTL       = 10 * time.Minute
)

// AccessService decides whether a user may view an exercise or course.
// Every failure path denies: a remote error is never an implicit grant.
type AccessService struct {
	ExerciseRepo     *repository.ExerciseRepository
	CourseRepo       *repository.CourseRepository
	GrantRepo        *repository.AccessGrantRepository
	SubscriptionRepo *repository.SubscriptionRepository
	Redis            *redis.Client
}

func NewAccessService(
	exerciseRepo *repository.ExerciseRepository,
	courseRepo *repository.CourseRepository,
	grantRepo *repository.AccessGrantRepository,
	subscriptionRepo *repository.SubscriptionRepository,
	rdb *redis.Client,
) *AccessService {
	return &AccessService{
		ExerciseRepo:     exerciseRepo,
		CourseRepo:       courseRepo,
		GrantRepo:        grantRepo,
		SubscriptionRepo: subscriptionRepo,
		Redis:            rdb,
	}
}

// HasExerciseAccess grants non-premium exercises unconditionally. Premium
// exercises require an active subscription or an unexpired grant on one of
// the courses containing the exercise.
func (s *AccessService) HasExerciseAccess(userID, exerciseID uint) (bool, error) {
	exercise, err := s.ExerciseRepo.FindByID(exerciseID)
	if err != nil {
		return s.deny(err)
	}

	if !exercise.IsPremium {
		monitoring.AccessDecisions.WithLabelValues("grant").Inc()
		return true, nil
	}

	now := time.Now()

	if ok, err := s.hasActiveSubscription(userID, now); err != nil {
		return s.deny(err)
	} else if ok {
		monitoring.AccessDecisions.WithLabelValues("grant").Inc()
		return true, nil
	}

	courseIDs, err := s.owningCourseIDs(exerciseID)
	if err != nil {
		return s.deny(err)
	}

	// A premium exercise not reachable through any course stays locked.
	if len(courseIDs) == 0 {
		return s.lockedWhenOrphaned(exerciseID)
	}

	for _, courseID := range courseIDs {
		_, err := s.GrantRepo.FindActive(userID, courseID, now)
		if err == nil {
			monitoring.AccessDecisions.WithLabelValues("grant").Inc()
			return true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return s.deny(err)
		}
	}

	monitoring.AccessDecisions.WithLabelValues("deny").Inc()
	return false, nil
}

// HasCourseAccess grants free courses to everyone; paid courses need an
// unexpired grant or an active subscription.
func (s *AccessService) HasCourseAccess(userID, courseID uint) (bool, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return s.deny(err)
	}

	if course.IsFree() {
		return true, nil
	}

	now := time.Now()

	if _, err := s.GrantRepo.FindActive(userID, courseID, now); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return s.deny(err)
	}

	if ok, err := s.hasActiveSubscription(userID, now); err != nil {
		return s.deny(err)
	} else if ok {
		return true, nil
	}

	return false, nil
}

// lockedWhenOrphaned is the single policy for premium exercises that no
// course owns: they are treated as locked rather than silently downgraded
// to free content. Every call site shares this decision.
func (s *AccessService) lockedWhenOrphaned(exerciseID uint) (bool, error) {
	logger.Log.Warn("premium exercise has no owning course, locking",
		zap.Uint("exerciseID", exerciseID))
	monitoring.AccessDecisions.WithLabelValues("deny").Inc()
	return false, nil
}

func (s *AccessService) deny(err error) (bool, error) {
	logger.Log.Error("access check failed, denying", zap.Error(err))
	monitoring.AccessDecisions.WithLabelValues("deny").Inc()
	return false, err
}

func (s *AccessService) hasActiveSubscription(userID uint, now time.Time) (bool, error) {
	_, err := s.SubscriptionRepo.FindActive(userID, now)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// owningCourseIDs resolves the courses containing an exercise, through an
// advisory redis cache. Cache misses and cache errors both fall back to
// the database.
func (s *AccessService) owningCourseIDs(exerciseID uint) ([]uint, error) {
	ctx := context.Background()
	key := owningCoursesKeyPrefix + strconv.FormatUint(uint64(exerciseID), 10)

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var ids []uint
			if json.Unmarshal([]byte(val), &ids) == nil {
				return ids, nil
			}
		}
	}

	ids, err := s.CourseRepo.FindOwningCourseIDs(exerciseID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(ids); err == nil {
			s.Redis.Set(ctx, key, data, owningCoursesTTL)
		}
	}

	return ids, nil
}

// InvalidateOwnership drops the cached course list for an exercise after
// an admin edits section links.
func (s *AccessService) InvalidateOwnership(exerciseID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), owningCoursesKeyPrefix+strconv.FormatUint(uint64(exerciseID), 10))
}
