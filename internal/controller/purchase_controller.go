package controller

import (
	"errors"

	"faceyoga_backend/internal/service"
	"faceyoga_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PurchaseController struct {
	PaymentService *service.PaymentService
}

func NewPurchaseController(paymentService *service.PaymentService) *PurchaseController {
	return &PurchaseController{PaymentService: paymentService}
}

// CreateIntent godoc
// @Summary Start a course purchase
// @Description Creates a Stripe payment intent for a paid course
// @Tags purchases
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.PaymentIntentResponse} "OK"
// @Failure 400 {object} util.Response "Course is free"
// @Failure 404 {object} util.Response "Course not found"
// @Failure 409 {object} util.Response "Already enrolled"
// @Router /api/courses/{id}/purchase [post]
func (c *PurchaseController) CreateIntent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.PaymentService.CreatePaymentIntent(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrCourseFree):
			util.BadRequest(ctx, "course is free, use the enroll endpoint")
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 409, "already enrolled in this course")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

// ConfirmRequest defines model for purchase confirmation
// swagger:model ConfirmRequest
type ConfirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	AmountCents     int64  `json:"amountCents" binding:"required"`
}

// Confirm godoc
// @Summary Confirm a completed payment
// @Description Records the purchase and grants course access. Idempotent with the Stripe webhook.
// @Tags purchases
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Param   body body ConfirmRequest true "Payment confirmation"
// @Success 200 {object} util.Response{data=model.AccessGrant} "OK"
// @Failure 400 {object} util.Response "Invalid amount"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id}/purchase/confirm [post]
func (c *PurchaseController) Confirm(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grant, err := c.PaymentService.RecordPurchase(claims.UserID,
		util.MustParseUint(ctx.Param("id")), req.AmountCents, req.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidAmount):
			util.BadRequest(ctx, "amount must be positive")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, grant)
}

// EnrollFree godoc
// @Summary Enroll in a free course
// @Tags purchases
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=model.AccessGrant} "OK"
// @Failure 400 {object} util.Response "Course is not free"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id}/enroll [post]
func (c *PurchaseController) EnrollFree(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	grant, err := c.PaymentService.EnrollFree(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrCourseNotFree):
			util.BadRequest(ctx, "course requires purchase")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, grant)
}

// MyPurchases godoc
// @Summary List my purchases
// @Tags purchases
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Purchase} "OK"
// @Router /api/purchases [get]
func (c *PurchaseController) MyPurchases(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	purchases, err := c.PaymentService.ListPurchases(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, purchases)
}

// MyGrants godoc
// @Summary List my access grants
// @Tags purchases
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.AccessGrant} "OK"
// @Router /api/grants [get]
func (c *PurchaseController) MyGrants(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	grants, err := c.PaymentService.ListGrants(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, grants)
}

// Refund godoc
// @Summary Refund a purchase
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Purchase ID"
// @Success 200 {object} util.Response "OK"
// @Failure 404 {object} util.Response "Purchase not found"
// @Router /api/admin/purchases/{id}/refund [post]
func (c *PurchaseController) Refund(ctx *gin.Context) {
	if err := c.PaymentService.RefundPurchase(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
