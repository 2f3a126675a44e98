package controller

import (
	"io"

	"faceyoga_backend/internal/service"
	"faceyoga_backend/internal/util"
	"faceyoga_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WebhookController struct {
	PaymentService *service.PaymentService
}

func NewWebhookController(paymentService *service.PaymentService) *WebhookController {
	return &WebhookController{PaymentService: paymentService}
}

// Limit webhook bodies to 64KB. Stripe events are far smaller.
const maxWebhookBody = 65536

// HandleStripe godoc
// @Summary Stripe event webhook
// @Description Verifies the event signature and records successful payments
// @Tags webhooks
// @Accept  json
// @Produce  json
// @Success 200 {object} util.Response "OK"
// @Failure 400 {object} util.Response "Bad signature or payload"
// @Router /api/webhooks/stripe [post]
func (c *WebhookController) HandleStripe(ctx *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBody))
	if err != nil {
		util.BadRequest(ctx, "unable to read payload")
		return
	}

	if err := c.PaymentService.HandleStripeWebhook(payload, ctx.GetHeader("Stripe-Signature")); err != nil {
		logger.Log.Warn("stripe webhook rejected", zap.Error(err))
		util.BadRequest(ctx, "webhook rejected")
		return
	}

	util.Success(ctx, nil)
}
