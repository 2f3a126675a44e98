package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/repository"
	"faceyoga_backend/internal/util"
)

// ExerciseService serves the exercise catalog with per-user lock state
// and backs the admin content screens.
type ExerciseService struct {
	ExerciseRepo *repository.ExerciseRepository
	Access       *AccessService
	Storage      *StorageService
}

func NewExerciseService(
	exerciseRepo *repository.ExerciseRepository,
	access *AccessService,
	storage *StorageService,
) *ExerciseService {
	return &ExerciseService{
		ExerciseRepo: exerciseRepo,
		Access:       access,
		Storage:      storage,
	}
}

// ExerciseView is an exercise plus whether it is locked for the viewer.
// Locked premium exercises omit the video URL.
type ExerciseView struct {
	model.Exercise
	Locked bool `json:"locked"`
}

type ExerciseRequest struct {
	Title           string `json:"title" binding:"required,max=255"`
	Description     string `json:"description" binding:"max=2000"`
	Category        string `json:"category" binding:"required,max=100"`
	TargetArea      string `json:"targetArea" binding:"max=100"`
	Difficulty      string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	DurationSeconds int    `json:"durationSeconds" binding:"omitempty,min=1"`
	VideoURL        string `json:"videoUrl" binding:"max=500"`
	ImageURL        string `json:"imageUrl" binding:"max=500"`
	IsPremium       bool   `json:"isPremium"`
	Published       *bool  `json:"published"`
}

// List returns the catalog page with each exercise's lock state resolved
// for the requesting user. An access-check failure locks the item rather
// than failing the listing.
func (s *ExerciseService) List(userID uint, page, limit int, category, difficulty string) ([]ExerciseView, int64, error) {
	exercises, total, err := s.ExerciseRepo.FindAll(page, limit, category, difficulty)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ExerciseView, len(exercises))
	for i, ex := range exercises {
		locked := false
		if ex.IsPremium {
			ok, _ := s.Access.HasExerciseAccess(userID, ex.ID)
			locked = !ok
		}
		views[i] = newExerciseView(ex, locked)
	}

	return views, total, nil
}

// Get returns one exercise with lock state; locked exercises come back
// without their video URL.
func (s *ExerciseService) Get(userID, exerciseID uint) (*ExerciseView, error) {
	exercise, err := s.ExerciseRepo.FindByID(exerciseID)
	if err != nil {
		return nil, util.ErrExerciseNotFound
	}

	locked := false
	if exercise.IsPremium {
		ok, _ := s.Access.HasExerciseAccess(userID, exerciseID)
		locked = !ok
	}

	view := newExerciseView(*exercise, locked)
	return &view, nil
}

func newExerciseView(ex model.Exercise, locked bool) ExerciseView {
	if locked {
		ex.VideoURL = ""
	}
	return ExerciseView{Exercise: ex, Locked: locked}
}

func (s *ExerciseService) Categories() ([]string, error) {
	return s.ExerciseRepo.FindCategories()
}

func (s *ExerciseService) Create(req ExerciseRequest) (*model.Exercise, error) {
	if err := util.ValidateVideoURL(req.VideoURL); err != nil {
		return nil, err
	}

	exercise := &model.Exercise{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		TargetArea:      req.TargetArea,
		Difficulty:      model.Difficulty(defaultIfEmpty(req.Difficulty, string(model.DifficultyBeginner))),
		DurationSeconds: req.DurationSeconds,
		VideoURL:        req.VideoURL,
		ImageURL:        req.ImageURL,
		IsPremium:       req.IsPremium,
		Published:       req.Published == nil || *req.Published,
	}

	return exercise, s.ExerciseRepo.Create(exercise)
}

func (s *ExerciseService) Update(exerciseID uint, req ExerciseRequest) (*model.Exercise, error) {
	exercise, err := s.ExerciseRepo.FindByID(exerciseID)
	if err != nil {
		return nil, util.ErrExerciseNotFound
	}

	// An empty or round-tripped videoUrl keeps the stored upload, whose
	// relative URL would not pass validation.
	if req.VideoURL != "" && req.VideoURL != exercise.VideoURL {
		if err := util.ValidateVideoURL(req.VideoURL); err != nil {
			return nil, err
		}
		exercise.VideoURL = req.VideoURL
	}

	exercise.Title = req.Title
	exercise.Description = req.Description
	exercise.Category = req.Category
	exercise.TargetArea = req.TargetArea
	if req.Difficulty != "" {
		exercise.Difficulty = model.Difficulty(req.Difficulty)
	}
	if req.DurationSeconds > 0 {
		exercise.DurationSeconds = req.DurationSeconds
	}
	exercise.ImageURL = req.ImageURL
	exercise.IsPremium = req.IsPremium
	if req.Published != nil {
		exercise.Published = *req.Published
	}

	s.Access.InvalidateOwnership(exerciseID)

	return exercise, s.ExerciseRepo.Update(exercise)
}

func (s *ExerciseService) Delete(exerciseID uint) error {
	s.Access.InvalidateOwnership(exerciseID)
	return s.ExerciseRepo.Delete(exerciseID)
}

// UploadVideo stages the uploaded file locally, probes its metadata, then
// moves it into object storage and stamps the exercise with the probed
// duration.
func (s *ExerciseService) UploadVideo(ctx context.Context, exerciseID uint, file *multipart.FileHeader) (*model.Exercise, error) {
	exercise, err := s.ExerciseRepo.FindByID(exerciseID)
	if err != nil {
		return nil, util.ErrExerciseNotFound
	}

	if !util.HasAllowedExtension(file.Filename, util.AllowedVideoExtensions) {
		return nil, util.ErrInvalidVideoURL
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "exercise-video-*"+strings.ToLower(filepath.Ext(file.Filename)))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.ReadFrom(src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("exercise_videos/%d/%s%s", exerciseID, model.GenerateUUID(), strings.ToLower(filepath.Ext(file.Filename)))
	url, err := s.Storage.UploadFile(ctx, objectName, tmp.Name(), file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	exercise.VideoURL = url
	if info.Duration > 0 {
		exercise.DurationSeconds = int(info.Duration)
	}

	return exercise, s.ExerciseRepo.Update(exercise)
}

func defaultIfEmpty(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
