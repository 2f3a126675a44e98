package database

import (
	"fmt"
	"log"

	"faceyoga_backend/internal/config"
	"faceyoga_backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
		cfg.SSLMode,
		cfg.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate brings the schema up to date and seeds starter rows when the
// goal table is empty.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		return err
	}
	seedDefaults(db)
	return nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Exercise{},
		&model.Course{},
		&model.CourseSection{},
		&model.SectionExercise{},
		&model.Purchase{},
		&model.AccessGrant{},
		&model.Subscription{},
		&model.Goal{},
		&model.Milestone{},
		&model.GoalProgress{},
		&model.ExerciseGoalWeight{},
		&model.PracticeSession{},
		&model.ProgressPhoto{},
	)
}

// seedDefaults inserts a starter set of goals with milestones the first
// time the schema comes up empty.
func seedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&model.Goal{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []struct {
		label       string
		description string
		targets     []int
	}{
		{"Sculpted jawline", "Define the jaw and chin through daily resistance work", []int{10, 25, 50}},
		{"Lifted cheeks", "Build cheek muscle tone for a natural lift", []int{10, 25, 50}},
		{"Smooth forehead", "Relax and retrain the frontalis muscle", []int{15, 40, 80}},
		{"Reduced eye strain", "Release tension around the orbital muscles", []int{10, 30, 60}},
	}

	for _, d := range defaults {
		goal := &model.Goal{Label: d.label, Description: d.description}
		if err := db.Create(goal).Error; err != nil {
			continue
		}
		for i, target := range d.targets {
			db.Create(&model.Milestone{
				GoalID:       goal.ID,
				TargetValue:  target,
				RewardPoints: (i + 1) * 10,
				OrderIndex:   i,
			})
		}
	}
}
