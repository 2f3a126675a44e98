package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/repository"
	"faceyoga_backend/pkg/logger"

	"go.uber.org/zap"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"max=100"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	return user, s.UserRepo.Update(user)
}

// UploadAvatar stores the new avatar and deletes the superseded object
// best-effort; the profile update is not rolled back if cleanup fails.
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("avatars/%d/%s%s", userID, model.GenerateUUID(), ext)

	url, err := s.Storage.Upload(ctx, objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	oldAvatar := user.Avatar
	if err := s.UserRepo.UpdateAvatar(userID, url); err != nil {
		return "", err
	}

	if old := objectNameFromURL(oldAvatar); old != "" {
		if err := s.Storage.Delete(ctx, old); err != nil {
			logger.Log.Warn("failed to delete superseded avatar",
				zap.String("object", old), zap.Error(err))
		}
	}

	return url, nil
}

// objectNameFromURL strips known URL prefixes back to a storage object
// name. Unknown shapes return empty and skip cleanup.
func objectNameFromURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "/uploads/") {
		return strings.TrimPrefix(url, "/uploads/")
	}
	parts := strings.SplitN(strings.TrimPrefix(url, "/"), "/", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return ""
}
