package controller

import (
	"errors"

	"faceyoga_backend/internal/service"
	"faceyoga_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Get profile
// @Tags users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User} "OK"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary Update profile
// @Tags users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} util.Response{data=model.User} "OK"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// UploadAvatar godoc
// @Summary Upload avatar
// @Tags users
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   avatar formData file true "Avatar image"
// @Success 200 {object} util.Response{data=object} "OK"
// @Failure 400 {object} util.Response "Invalid file"
// @Router /api/users/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	url, err := c.UserService.UploadAvatar(ctx.Request.Context(), claims.UserID, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, gin.H{"avatarUrl": url})
}
