package repository

import (
	"faceyoga_backend/internal/model"

	"gorm.io/gorm"
)

// ExerciseRepository handles exercise catalog data access.

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) Create(exercise *model.Exercise) error {
	return r.DB.Create(exercise).Error
}

func (r *ExerciseRepository) Update(exercise *model.Exercise) error {
	return r.DB.Save(exercise).Error
}

func (r *ExerciseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Exercise{}, id).Error
}

func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.First(&exercise, id).Error
	return &exercise, err
}

// FindAll lists published exercises with optional category and difficulty
// filters, paginated.
func (r *ExerciseRepository) FindAll(page, limit int, category string, difficulty string) ([]model.Exercise, int64, error) {
	query := r.DB.Model(&model.Exercise{}).Where("published = ?", true)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var exercises []model.Exercise
	err := query.Order("title").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&exercises).Error
	return exercises, total, err
}

func (r *ExerciseRepository) FindCategories() ([]string, error) {
	var categories []string
	err := r.DB.Model(&model.Exercise{}).
		Where("published = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
