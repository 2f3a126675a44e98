package controller

import (
	"errors"

	"faceyoga_backend/internal/service"
	"faceyoga_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService     *service.GoalService
	ProgressService *service.ProgressService
}

func NewGoalController(goalService *service.GoalService, progressService *service.ProgressService) *GoalController {
	return &GoalController{
		GoalService:     goalService,
		ProgressService: progressService,
	}
}

// List godoc
// @Summary List goals
// @Description All goals with their milestones ordered by target value
// @Tags goals
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Goal} "OK"
// @Router /api/goals [get]
func (c *GoalController) List(ctx *gin.Context) {
	goals, err := c.GoalService.ListGoals()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// Get godoc
// @Summary Get a goal
// @Tags goals
// @Produce  json
// @Param   id path int true "Goal ID"
// @Success 200 {object} util.Response{data=model.Goal} "OK"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/goals/{id} [get]
func (c *GoalController) Get(ctx *gin.Context) {
	goal, err := c.GoalService.GetGoal(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, goal)
}

// MyProgress godoc
// @Summary My goal progress
// @Description Progress rows across all goals with percent complete
// @Tags goals
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.GoalProgressView} "OK"
// @Router /api/goals/progress [get]
func (c *GoalController) MyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.GoalService.ListUserProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// Pause godoc
// @Summary Pause a goal
// @Tags goals
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Goal ID"
// @Success 200 {object} util.Response "OK"
// @Failure 404 {object} util.Response "Goal not found"
// @Router /api/goals/{id}/pause [post]
func (c *GoalController) Pause(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ProgressService.PauseGoal(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Resume godoc
// @Summary Resume a paused goal
// @Tags goals
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Goal ID"
// @Success 200 {object} util.Response "OK"
// @Router /api/goals/{id}/resume [post]
func (c *GoalController) Resume(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ProgressService.ResumeGoal(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateGoal godoc
// @Summary Create a goal
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GoalRequest true "Goal payload"
// @Success 201 {object} util.Response{data=model.Goal} "Created"
// @Router /api/admin/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	var req service.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, goal)
}

// UpdateGoal godoc
// @Summary Update a goal
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Goal ID"
// @Param   body body service.GoalRequest true "Goal payload"
// @Success 200 {object} util.Response{data=model.Goal} "OK"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/goals/{id} [put]
func (c *GoalController) UpdateGoal(ctx *gin.Context) {
	var req service.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateGoal(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, goal)
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Goal ID"
// @Success 200 {object} util.Response "OK"
// @Router /api/admin/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	if err := c.GoalService.DeleteGoal(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddMilestone godoc
// @Summary Add a milestone to a goal
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Goal ID"
// @Param   body body service.MilestoneRequest true "Milestone payload"
// @Success 201 {object} util.Response{data=model.Milestone} "Created"
// @Failure 404 {object} util.Response "Goal not found"
// @Router /api/admin/goals/{id}/milestones [post]
func (c *GoalController) AddMilestone(ctx *gin.Context) {
	var req service.MilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	milestone, err := c.GoalService.AddMilestone(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, milestone)
}

// DeleteMilestone godoc
// @Summary Delete a milestone
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   milestoneId path int true "Milestone ID"
// @Success 200 {object} util.Response "OK"
// @Router /api/admin/milestones/{milestoneId} [delete]
func (c *GoalController) DeleteMilestone(ctx *gin.Context) {
	if err := c.GoalService.DeleteMilestone(util.MustParseUint(ctx.Param("milestoneId"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SetWeight godoc
// @Summary Set an exercise contribution weight
// @Description How many progress points an exercise completion contributes to a goal
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.WeightRequest true "Weight payload"
// @Success 200 {object} util.Response{data=model.ExerciseGoalWeight} "OK"
// @Failure 400 {object} util.Response "Negative weight"
// @Router /api/admin/goal-weights [put]
func (c *GoalController) SetWeight(ctx *gin.Context) {
	var req service.WeightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	weight, err := c.GoalService.SetWeight(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNegativeWeight):
			util.BadRequest(ctx, "weight must not be negative")
		case errors.Is(err, util.ErrGoalNotFound), errors.Is(err, util.ErrExerciseNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, weight)
}

// DeleteWeight godoc
// @Summary Remove an exercise contribution weight
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   exerciseId path int true "Exercise ID"
// @Param   goalId path int true "Goal ID"
// @Success 200 {object} util.Response "OK"
// @Router /api/admin/goal-weights/{exerciseId}/{goalId} [delete]
func (c *GoalController) DeleteWeight(ctx *gin.Context) {
	err := c.GoalService.DeleteWeight(
		util.MustParseUint(ctx.Param("exerciseId")),
		util.MustParseUint(ctx.Param("goalId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
