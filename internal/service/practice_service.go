package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/repository"
	"faceyoga_backend/internal/util"
	"faceyoga_backend/pkg/logger"

	"go.uber.org/zap"
)

// How far back the streak query looks. A streak longer than this is
// reported as its cap.
const streakWindowDays = 365

// PracticeService serves practice history, daily streaks and progress
// photos.
type PracticeService struct {
	PracticeRepo *repository.PracticeRepository
	Storage      *StorageService
}

func NewPracticeService(practiceRepo *repository.PracticeRepository, storage *StorageService) *PracticeService {
	return &PracticeService{
		PracticeRepo: practiceRepo,
		Storage:      storage,
	}
}

type PracticeSummary struct {
	TotalSessions int64 `json:"totalSessions"`
	StreakDays    int   `json:"streakDays"`
}

func (s *PracticeService) History(userID uint, page, limit int) ([]model.PracticeSession, int64, error) {
	return s.PracticeRepo.FindSessionsByUser(userID, page, limit)
}

// Summary computes the total session count and the current daily streak.
// A streak survives until a full calendar day passes with no practice.
func (s *PracticeService) Summary(userID uint) (*PracticeSummary, error) {
	total, err := s.PracticeRepo.CountSessionsByUser(userID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -streakWindowDays)
	times, err := s.PracticeRepo.FindSessionTimes(userID, since)
	if err != nil {
		return nil, err
	}

	return &PracticeSummary{
		TotalSessions: total,
		StreakDays:    streakFrom(times, time.Now()),
	}, nil
}

// streakFrom counts consecutive practice days ending today or yesterday.
// Times must be sorted newest first.
func streakFrom(times []time.Time, now time.Time) int {
	if len(times) == 0 {
		return 0
	}

	days := make(map[string]bool, len(times))
	for _, t := range times {
		days[t.Format(util.DateFormat)] = true
	}

	cursor := now
	if !days[cursor.Format(util.DateFormat)] {
		// No practice yet today; a streak ending yesterday still counts.
		cursor = cursor.AddDate(0, 0, -1)
		if !days[cursor.Format(util.DateFormat)] {
			return 0
		}
	}

	streak := 0
	for days[cursor.Format(util.DateFormat)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

type PhotoRequest struct {
	TakenAt time.Time `form:"takenAt" time_format:"2006-01-02"`
	Notes   string    `form:"notes"`
}

// UploadPhoto stores a progress photo and its row.
func (s *PracticeService) UploadPhoto(ctx context.Context, userID uint, file *multipart.FileHeader, req PhotoRequest) (*model.ProgressPhoto, error) {
	if !util.HasAllowedExtension(file.Filename, util.AllowedImageExtensions) {
		return nil, fmt.Errorf("unsupported image type")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("progress_photos/%d/%s%s", userID, model.GenerateUUID(), ext)

	url, err := s.Storage.Upload(ctx, objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	takenAt := req.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now()
	}

	photo := &model.ProgressPhoto{
		UserID:     userID,
		ObjectName: objectName,
		PhotoURL:   url,
		TakenAt:    takenAt,
		Notes:      req.Notes,
	}
	return photo, s.PracticeRepo.CreatePhoto(photo)
}

func (s *PracticeService) ListPhotos(userID uint) ([]model.ProgressPhoto, error) {
	return s.PracticeRepo.FindPhotosByUser(userID)
}

// DeletePhoto removes the row, then the stored object best-effort: a
// failed object delete leaves an orphan in storage, never a dangling row.
func (s *PracticeService) DeletePhoto(ctx context.Context, userID, photoID uint) error {
	photo, err := s.PracticeRepo.FindPhotoByIDAndUser(photoID, userID)
	if err != nil {
		return util.ErrPhotoNotFound
	}

	if err := s.PracticeRepo.DeletePhoto(photo.ID); err != nil {
		return err
	}

	if err := s.Storage.Delete(ctx, photo.ObjectName); err != nil {
		logger.Log.Warn("failed to delete progress photo object",
			zap.String("object", photo.ObjectName), zap.Error(err))
	}

	return nil
}
