package controller

import (
	"errors"
	"strconv"

	"faceyoga_backend/internal/service"
	"faceyoga_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

func currentUserID(ctx *gin.Context) uint {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

// List godoc
// @Summary List exercises
// @Description Published exercises with per-user lock state. Premium items stay listed but locked until the caller gains access.
// @Tags exercises
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Param   category query string false "Filter by category"
// @Param   difficulty query string false "Filter by difficulty"
// @Success 200 {object} util.Response{data=util.PageResponse} "OK"
// @Router /api/exercises [get]
func (c *ExerciseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	views, total, err := c.ExerciseService.List(currentUserID(ctx), page, limit,
		ctx.Query("category"), ctx.Query("difficulty"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: views, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get an exercise
// @Tags exercises
// @Produce  json
// @Param   id path int true "Exercise ID"
// @Success 200 {object} util.Response{data=service.ExerciseView} "OK"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/exercises/{id} [get]
func (c *ExerciseController) Get(ctx *gin.Context) {
	view, err := c.ExerciseService.Get(currentUserID(ctx), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}

// Categories godoc
// @Summary List exercise categories
// @Tags exercises
// @Produce  json
// @Success 200 {object} util.Response{data=[]string} "OK"
// @Router /api/exercises/categories [get]
func (c *ExerciseController) Categories(ctx *gin.Context) {
	categories, err := c.ExerciseService.Categories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// Create godoc
// @Summary Create an exercise
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ExerciseRequest true "Exercise payload"
// @Success 201 {object} util.Response{data=model.Exercise} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/admin/exercises [post]
func (c *ExerciseController) Create(ctx *gin.Context) {
	var req service.ExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.ExerciseService.Create(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidVideoURL) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, exercise)
}

// Update godoc
// @Summary Update an exercise
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Exercise ID"
// @Param   body body service.ExerciseRequest true "Exercise payload"
// @Success 200 {object} util.Response{data=model.Exercise} "OK"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/exercises/{id} [put]
func (c *ExerciseController) Update(ctx *gin.Context) {
	var req service.ExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.ExerciseService.Update(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExerciseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidVideoURL):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, exercise)
}

// Delete godoc
// @Summary Delete an exercise
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Exercise ID"
// @Success 200 {object} util.Response "OK"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/exercises/{id} [delete]
func (c *ExerciseController) Delete(ctx *gin.Context) {
	if err := c.ExerciseService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadVideo godoc
// @Summary Upload an exercise video
// @Description Stores the video and stamps the probed duration on the exercise
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Exercise ID"
// @Param   video formData file true "Video file"
// @Success 200 {object} util.Response{data=model.Exercise} "OK"
// @Failure 400 {object} util.Response "Invalid file"
// @Router /api/admin/exercises/{id}/video [post]
func (c *ExerciseController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	exercise, err := c.ExerciseService.UploadVideo(ctx.Request.Context(),
		util.MustParseUint(ctx.Param("id")), file)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, exercise)
}
