package service

import (
	"errors"
	"fmt"

	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/repository"
	"faceyoga_backend/internal/util"
)

// CourseService serves the course catalog and backs the admin course
// builder (sections and ordered exercise links).
type CourseService struct {
	CourseRepo   *repository.CourseRepository
	ExerciseRepo *repository.ExerciseRepository
	Access       *AccessService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	exerciseRepo *repository.ExerciseRepository,
	access *AccessService,
) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		ExerciseRepo: exerciseRepo,
		Access:       access,
	}
}

// CourseView is a course plus the viewer's access state.
type CourseView struct {
	model.Course
	IsFree    bool `json:"isFree"`
	HasAccess bool `json:"hasAccess"`
}

type CourseRequest struct {
	Title                      string `json:"title" binding:"required,max=255"`
	Description                string `json:"description" binding:"max=5000"`
	ImageURL                   string `json:"imageUrl" binding:"max=500"`
	PriceCents                 int64  `json:"priceCents" binding:"min=0"`
	AccessType                 string `json:"accessType" binding:"omitempty,oneof=lifetime subscription trial"`
	TrialDurationDays          int    `json:"trialDurationDays" binding:"min=0"`
	SubscriptionDurationMonths int    `json:"subscriptionDurationMonths" binding:"min=0"`
	Published                  *bool  `json:"published"`
}

type SectionRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	OrderIndex int    `json:"orderIndex" binding:"min=0"`
}

type SectionExerciseRequest struct {
	ExerciseID uint `json:"exerciseId" binding:"required"`
	OrderIndex int  `json:"orderIndex" binding:"min=0"`
}

func (s *CourseService) List(userID uint, page, limit int) ([]CourseView, int64, error) {
	courses, total, err := s.CourseRepo.FindPublished(page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]CourseView, len(courses))
	for i, course := range courses {
		hasAccess, _ := s.Access.HasCourseAccess(userID, course.ID)
		views[i] = CourseView{
			Course:    course,
			IsFree:    course.IsFree(),
			HasAccess: hasAccess,
		}
	}

	return views, total, nil
}

func (s *CourseService) Get(userID, courseID uint) (*CourseView, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	hasAccess, _ := s.Access.HasCourseAccess(userID, courseID)

	return &CourseView{
		Course:    *course,
		IsFree:    course.IsFree(),
		HasAccess: hasAccess,
	}, nil
}

func (s *CourseService) Create(req CourseRequest) (*model.Course, error) {
	if err := validateCourseRequest(req); err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:                      req.Title,
		Description:                req.Description,
		ImageURL:                   req.ImageURL,
		PriceCents:                 req.PriceCents,
		AccessType:                 model.CourseAccessType(defaultIfEmpty(req.AccessType, string(model.AccessLifetime))),
		TrialDurationDays:          req.TrialDurationDays,
		SubscriptionDurationMonths: req.SubscriptionDurationMonths,
		Published:                  req.Published != nil && *req.Published,
	}

	return course, s.CourseRepo.Create(course)
}

func (s *CourseService) Update(courseID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	if err := validateCourseRequest(req); err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.ImageURL = req.ImageURL
	course.PriceCents = req.PriceCents
	if req.AccessType != "" {
		course.AccessType = model.CourseAccessType(req.AccessType)
	}
	course.TrialDurationDays = req.TrialDurationDays
	course.SubscriptionDurationMonths = req.SubscriptionDurationMonths
	if req.Published != nil {
		course.Published = *req.Published
	}

	return course, s.CourseRepo.Update(course)
}

func (s *CourseService) Delete(courseID uint) error {
	return s.CourseRepo.Delete(courseID)
}

func (s *CourseService) AddSection(courseID uint, req SectionRequest) (*model.CourseSection, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	section := &model.CourseSection{
		CourseID:   courseID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	}
	return section, s.CourseRepo.CreateSection(section)
}

func (s *CourseService) DeleteSection(sectionID uint) error {
	return s.CourseRepo.DeleteSection(sectionID)
}

// AddExerciseToSection links an exercise into a section and invalidates
// the cached ownership used by access checks.
func (s *CourseService) AddExerciseToSection(sectionID uint, req SectionExerciseRequest) (*model.SectionExercise, error) {
	if _, err := s.CourseRepo.FindSectionByID(sectionID); err != nil {
		return nil, errors.New("section not found")
	}
	if _, err := s.ExerciseRepo.FindByID(req.ExerciseID); err != nil {
		return nil, util.ErrExerciseNotFound
	}

	link := &model.SectionExercise{
		SectionID:  sectionID,
		ExerciseID: req.ExerciseID,
		OrderIndex: req.OrderIndex,
	}
	if err := s.CourseRepo.AddExerciseToSection(link); err != nil {
		return nil, err
	}

	s.Access.InvalidateOwnership(req.ExerciseID)
	return link, nil
}

func (s *CourseService) RemoveExerciseFromSection(sectionID, exerciseID uint) error {
	if err := s.CourseRepo.RemoveExerciseFromSection(sectionID, exerciseID); err != nil {
		return err
	}
	s.Access.InvalidateOwnership(exerciseID)
	return nil
}

func validateCourseRequest(req CourseRequest) error {
	if req.PriceCents < 0 {
		return fmt.Errorf("course price must not be negative")
	}
	switch model.CourseAccessType(req.AccessType) {
	case model.AccessTrial:
		if req.TrialDurationDays <= 0 {
			return fmt.Errorf("trial courses need a positive trial duration")
		}
	case model.AccessSubscription:
		if req.SubscriptionDurationMonths <= 0 {
			return fmt.Errorf("subscription courses need a positive duration in months")
		}
	}
	return nil
}
