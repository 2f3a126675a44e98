package repository

import (
	"faceyoga_backend/internal/model"

	"gorm.io/gorm"
)

// CourseRepository handles courses, sections and the section-exercise
// links that decide which courses "own" an exercise.

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_sections.order_index")
		}).
		Preload("Sections.Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_exercises.order_index")
		}).
		Preload("Sections.Exercises.Exercise").
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindPublished(page, limit int) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Where("published = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	err := query.Order("title").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

// FindOwningCourseIDs resolves the courses that contain an exercise
// through the section join table. An empty result means the exercise is
// unreachable through any purchase path.
func (r *CourseRepository) FindOwningCourseIDs(exerciseID uint) ([]uint, error) {
	var courseIDs []uint
	err := r.DB.Model(&model.SectionExercise{}).
		Joins("JOIN course_sections ON course_sections.id = section_exercises.section_id").
		Where("section_exercises.exercise_id = ?", exerciseID).
		Distinct("course_sections.course_id").
		Pluck("course_sections.course_id", &courseIDs).Error
	return courseIDs, err
}

func (r *CourseRepository) CreateSection(section *model.CourseSection) error {
	return r.DB.Create(section).Error
}

func (r *CourseRepository) UpdateSection(section *model.CourseSection) error {
	return r.DB.Save(section).Error
}

func (r *CourseRepository) DeleteSection(id uint) error {
	return r.DB.Delete(&model.CourseSection{}, id).Error
}

func (r *CourseRepository) FindSectionByID(id uint) (*model.CourseSection, error) {
	var section model.CourseSection
	err := r.DB.First(&section, id).Error
	return &section, err
}

func (r *CourseRepository) AddExerciseToSection(link *model.SectionExercise) error {
	return r.DB.Create(link).Error
}

func (r *CourseRepository) RemoveExerciseFromSection(sectionID, exerciseID uint) error {
	return r.DB.
		Where("section_id = ? AND exercise_id = ?", sectionID, exerciseID).
		Delete(&model.SectionExercise{}).Error
}
