package controller

import (
	"errors"
	"strconv"

	"faceyoga_backend/internal/service"
	"faceyoga_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// List godoc
// @Summary List courses
// @Description Published courses with per-user access state
// @Tags courses
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "OK"
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	views, total, err := c.CourseService.List(currentUserID(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: views, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get a course
// @Description Course detail with ordered sections and exercises
// @Tags courses
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseView} "OK"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	view, err := c.CourseService.Get(currentUserID(ctx), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}

// Create godoc
// @Summary Create a course
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseRequest true "Course payload"
// @Success 201 {object} util.Response{data=model.Course} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/admin/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, course)
}

// Update godoc
// @Summary Update a course
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Param   body body service.CourseRequest true "Course payload"
// @Success 200 {object} util.Response{data=model.Course} "OK"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, course)
}

// Delete godoc
// @Summary Delete a course
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response "OK"
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.CourseService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddSection godoc
// @Summary Add a section to a course
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Param   body body service.SectionRequest true "Section payload"
// @Success 201 {object} util.Response{data=model.CourseSection} "Created"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/admin/courses/{id}/sections [post]
func (c *CourseController) AddSection(ctx *gin.Context) {
	var req service.SectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.CourseService.AddSection(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, section)
}

// DeleteSection godoc
// @Summary Delete a section
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   sectionId path int true "Section ID"
// @Success 200 {object} util.Response "OK"
// @Router /api/admin/sections/{sectionId} [delete]
func (c *CourseController) DeleteSection(ctx *gin.Context) {
	if err := c.CourseService.DeleteSection(util.MustParseUint(ctx.Param("sectionId"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddExercise godoc
// @Summary Attach an exercise to a section
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   sectionId path int true "Section ID"
// @Param   body body service.SectionExerciseRequest true "Link payload"
// @Success 201 {object} util.Response{data=model.SectionExercise} "Created"
// @Failure 404 {object} util.Response "Section or exercise not found"
// @Router /api/admin/sections/{sectionId}/exercises [post]
func (c *CourseController) AddExercise(ctx *gin.Context) {
	var req service.SectionExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	link, err := c.CourseService.AddExerciseToSection(util.MustParseUint(ctx.Param("sectionId")), req)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, link)
}

// RemoveExercise godoc
// @Summary Detach an exercise from a section
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   sectionId path int true "Section ID"
// @Param   exerciseId path int true "Exercise ID"
// @Success 200 {object} util.Response "OK"
// @Router /api/admin/sections/{sectionId}/exercises/{exerciseId} [delete]
func (c *CourseController) RemoveExercise(ctx *gin.Context) {
	err := c.CourseService.RemoveExerciseFromSection(
		util.MustParseUint(ctx.Param("sectionId")),
		util.MustParseUint(ctx.Param("exerciseId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
