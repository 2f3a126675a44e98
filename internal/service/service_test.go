package service

import (
	"os"
	"testing"

	"faceyoga_backend/internal/repository"
	"faceyoga_backend/pkg/database"
	"faceyoga_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

type testRepos struct {
	user         *repository.UserRepository
	exercise     *repository.ExerciseRepository
	course       *repository.CourseRepository
	purchase     *repository.PurchaseRepository
	grant        *repository.AccessGrantRepository
	subscription *repository.SubscriptionRepository
	goal         *repository.GoalRepository
	goalProgress *repository.GoalProgressRepository
	practice     *repository.PracticeRepository
}

func newTestRepos(db *gorm.DB) *testRepos {
	return &testRepos{
		user:         repository.NewUserRepository(db),
		exercise:     repository.NewExerciseRepository(db),
		course:       repository.NewCourseRepository(db),
		purchase:     repository.NewPurchaseRepository(db),
		grant:        repository.NewAccessGrantRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		goal:         repository.NewGoalRepository(db),
		goalProgress: repository.NewGoalProgressRepository(db),
		practice:     repository.NewPracticeRepository(db),
	}
}
