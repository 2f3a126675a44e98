package repository

import (
	"time"

	"faceyoga_backend/internal/model"

	"gorm.io/gorm"
)

// PracticeRepository handles practice history and progress photos.

type PracticeRepository struct {
	DB *gorm.DB
}

func NewPracticeRepository(db *gorm.DB) *PracticeRepository {
	return &PracticeRepository{DB: db}
}

func (r *PracticeRepository) CreateSession(session *model.PracticeSession) error {
	return r.DB.Create(session).Error
}

func (r *PracticeRepository) FindSessionsByUser(userID uint, page, limit int) ([]model.PracticeSession, int64, error) {
	query := r.DB.Model(&model.PracticeSession{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.PracticeSession
	err := query.
		Preload("Exercise").
		Order("practiced_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

// FindSessionTimes returns practice timestamps since the given instant,
// newest first. Streak math collapses them into calendar days.
func (r *PracticeRepository) FindSessionTimes(userID uint, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.DB.Model(&model.PracticeSession{}).
		Where("user_id = ? AND practiced_at >= ?", userID, since).
		Order("practiced_at DESC").
		Pluck("practiced_at", &times).Error
	return times, err
}

func (r *PracticeRepository) CountSessionsByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PracticeSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PracticeRepository) CreatePhoto(photo *model.ProgressPhoto) error {
	return r.DB.Create(photo).Error
}

func (r *PracticeRepository) FindPhotosByUser(userID uint) ([]model.ProgressPhoto, error) {
	var photos []model.ProgressPhoto
	err := r.DB.Where("user_id = ?", userID).Order("taken_at DESC").Find(&photos).Error
	return photos, err
}

func (r *PracticeRepository) FindPhotoByIDAndUser(id, userID uint) (*model.ProgressPhoto, error) {
	var photo model.ProgressPhoto
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&photo).Error
	return &photo, err
}

func (r *PracticeRepository) DeletePhoto(id uint) error {
	return r.DB.Delete(&model.ProgressPhoto{}, id).Error
}
