package controller

import (
	"errors"
	"strconv"

	"faceyoga_backend/internal/service"
	"faceyoga_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	ProgressService *service.ProgressService
	PracticeService *service.PracticeService
	AccessService   *service.AccessService
}

func NewPracticeController(
	progressService *service.ProgressService,
	practiceService *service.PracticeService,
	accessService *service.AccessService,
) *PracticeController {
	return &PracticeController{
		ProgressService: progressService,
		PracticeService: practiceService,
		AccessService:   accessService,
	}
}

// CompleteRequest defines model for exercise completion
// swagger:model CompleteRequest
type CompleteRequest struct {
	DurationSeconds int `json:"durationSeconds" binding:"gte=0"`
}

// Complete godoc
// @Summary Complete an exercise
// @Description Records a practice session and advances every goal the exercise contributes to
// @Tags practice
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Exercise ID"
// @Param   body body CompleteRequest true "Session details"
// @Success 200 {object} util.Response{data=service.ExerciseCompletionResult} "OK"
// @Failure 403 {object} util.Response "Exercise is locked"
// @Failure 404 {object} util.Response "Exercise not found"
// @Router /api/exercises/{id}/complete [post]
func (c *PracticeController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exerciseID := util.MustParseUint(ctx.Param("id"))

	allowed, err := c.AccessService.HasExerciseAccess(claims.UserID, exerciseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !allowed {
		util.Forbidden(ctx)
		return
	}

	result, err := c.ProgressService.CompleteExercise(claims.UserID, exerciseID, req.DurationSeconds)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// History godoc
// @Summary Practice history
// @Tags practice
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "OK"
// @Router /api/practice/history [get]
func (c *PracticeController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	sessions, total, err := c.PracticeService.History(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: sessions, Total: total, Page: page, Limit: limit})
}

// Summary godoc
// @Summary Practice summary
// @Description Total sessions and current daily streak
// @Tags practice
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PracticeSummary} "OK"
// @Router /api/practice/summary [get]
func (c *PracticeController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.PracticeService.Summary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// UploadPhoto godoc
// @Summary Upload a progress photo
// @Tags practice
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   photo formData file true "Photo file"
// @Param   takenAt formData string false "Date taken (YYYY-MM-DD)"
// @Param   notes formData string false "Notes"
// @Success 201 {object} util.Response{data=model.ProgressPhoto} "Created"
// @Failure 400 {object} util.Response "Invalid file"
// @Router /api/practice/photos [post]
func (c *PracticeController) UploadPhoto(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("photo")
	if err != nil {
		util.BadRequest(ctx, "photo file is required")
		return
	}

	var req service.PhotoRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	photo, err := c.PracticeService.UploadPhoto(ctx.Request.Context(), claims.UserID, file, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, photo)
}

// ListPhotos godoc
// @Summary List my progress photos
// @Tags practice
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ProgressPhoto} "OK"
// @Router /api/practice/photos [get]
func (c *PracticeController) ListPhotos(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	photos, err := c.PracticeService.ListPhotos(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, photos)
}

// DeletePhoto godoc
// @Summary Delete a progress photo
// @Tags practice
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Photo ID"
// @Success 200 {object} util.Response "OK"
// @Failure 404 {object} util.Response "Photo not found"
// @Router /api/practice/photos/{id} [delete]
func (c *PracticeController) DeletePhoto(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.PracticeService.DeletePhoto(ctx.Request.Context(), claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrPhotoNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
