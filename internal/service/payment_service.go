package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"faceyoga_backend/internal/config"
	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/repository"
	"faceyoga_backend/internal/util"
	"faceyoga_backend/pkg/logger"
	"faceyoga_backend/pkg/monitoring"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService creates Stripe payment intents and records completed
// purchases. Recording is idempotent: the client confirmation screen and
// the webhook may both report the same payment and exactly one purchase
// row and one access grant survive.
type PaymentService struct {
	CourseRepo   *repository.CourseRepository
	PurchaseRepo *repository.PurchaseRepository
	GrantRepo    *repository.AccessGrantRepository
	Cfg          *config.Config
}

func NewPaymentService(
	courseRepo *repository.CourseRepository,
	purchaseRepo *repository.PurchaseRepository,
	grantRepo *repository.AccessGrantRepository,
	cfg *config.Config,
) *PaymentService {
	stripe.Key = cfg.Stripe.SecretKey
	return &PaymentService{
		CourseRepo:   courseRepo,
		PurchaseRepo: purchaseRepo,
		GrantRepo:    grantRepo,
		Cfg:          cfg,
	}
}

type PaymentIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	AmountCents     int64  `json:"amountCents"`
	Currency        string `json:"currency"`
}

// CreatePaymentIntent starts a Stripe payment for a paid course. Free
// courses never reach the gateway; they enroll through EnrollFree.
func (s *PaymentService) CreatePaymentIntent(userID, courseID uint) (*PaymentIntentResponse, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	if course.IsFree() {
		return nil, util.ErrCourseFree
	}

	if _, err := s.GrantRepo.FindActive(userID, courseID, time.Now()); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	currency := s.Cfg.Stripe.Currency
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(course.PriceCents),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("user_id", strconv.FormatUint(uint64(userID), 10))
	params.AddMetadata("course_id", strconv.FormatUint(uint64(courseID), 10))

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}

	return &PaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		AmountCents:     course.PriceCents,
		Currency:        currency,
	}, nil
}

// RecordPurchase persists a completed payment as a purchase row plus an
// access grant. Safe to call from both completion paths concurrently:
//  1. an existing active grant short-circuits; an expired or refunded
//     one does not, so a fresh payment restores access,
//  2. the purchase row is deduplicated on the payment intent id,
//  3. the grant upsert resolves a (user, course) conflict in favor of
//     the surviving row unless it has lapsed, and a unique violation
//     that surfaces anyway means another path won the race, which is
//     success, not failure.
func (s *PaymentService) RecordPurchase(userID, courseID uint, amountCents int64, paymentIntentID string) (*model.AccessGrant, error) {
	if existing, err := s.GrantRepo.FindActive(userID, courseID, time.Now()); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	if amountCents <= 0 || amountCents != course.PriceCents {
		return nil, util.ErrInvalidAmount
	}

	purchase, err := s.PurchaseRepo.FindByPaymentIntentID(paymentIntentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		purchase = &model.Purchase{
			UserID:          userID,
			CourseID:        courseID,
			AmountCents:     amountCents,
			Currency:        s.currency(),
			Status:          model.PurchaseCompleted,
			PaymentIntentID: paymentIntentID,
		}
		if err := s.PurchaseRepo.Create(purchase); err != nil {
			// A concurrent path may have inserted the same intent id.
			refetched, ferr := s.PurchaseRepo.FindByPaymentIntentID(paymentIntentID)
			if ferr != nil {
				return nil, err
			}
			purchase = refetched
		}
	} else if err != nil {
		return nil, err
	}

	now := time.Now()
	grant := &model.AccessGrant{
		UserID:     userID,
		CourseID:   courseID,
		PurchaseID: &purchase.ID,
		AccessType: course.AccessType,
		StartsAt:   now,
		ExpiresAt:  grantExpiry(course, now),
	}

	grant, created, err := s.GrantRepo.Upsert(grant)
	if err != nil {
		return nil, err
	}

	if created {
		monitoring.PurchasesRecorded.Inc()
		logger.Log.Info("purchase recorded",
			zap.Uint("userID", userID),
			zap.Uint("courseID", courseID),
			zap.String("paymentIntentID", paymentIntentID))
	} else {
		logger.Log.Info("duplicate purchase completion, keeping existing grant",
			zap.Uint("userID", userID),
			zap.Uint("courseID", courseID))
	}

	return grant, nil
}

// EnrollFree grants access to a price-zero course without any purchase
// row. Paid courses must go through the payment path.
func (s *PaymentService) EnrollFree(userID, courseID uint) (*model.AccessGrant, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	if !course.IsFree() {
		return nil, util.ErrCourseNotFree
	}

	now := time.Now()
	grant := &model.AccessGrant{
		UserID:     userID,
		CourseID:   courseID,
		AccessType: course.AccessType,
		StartsAt:   now,
		ExpiresAt:  grantExpiry(course, now),
	}

	grant, _, err = s.GrantRepo.Upsert(grant)
	return grant, err
}

func (s *PaymentService) ListPurchases(userID uint) ([]model.Purchase, error) {
	return s.PurchaseRepo.FindByUserID(userID)
}

func (s *PaymentService) ListGrants(userID uint) ([]model.AccessGrant, error) {
	return s.GrantRepo.FindByUserID(userID)
}

// RefundPurchase flips a completed purchase to refunded and cuts the
// grant short.
func (s *PaymentService) RefundPurchase(purchaseID uint) error {
	purchase, err := s.PurchaseRepo.FindByID(purchaseID)
	if err != nil {
		return err
	}

	if err := s.PurchaseRepo.MarkRefunded(purchase.ID); err != nil {
		return err
	}

	return s.GrantRepo.Expire(purchase.UserID, purchase.CourseID, time.Now())
}

// HandleStripeWebhook verifies and routes gateway events. Only
// payment_intent.succeeded is acted on; everything else is acknowledged.
func (s *PaymentService) HandleStripeWebhook(payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.Cfg.Stripe.WebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if event.Type != "payment_intent.succeeded" {
		logger.Log.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to parse payment intent: %w", err)
	}

	userID, uerr := strconv.ParseUint(intent.Metadata["user_id"], 10, 32)
	courseID, cerr := strconv.ParseUint(intent.Metadata["course_id"], 10, 32)
	if uerr != nil || cerr != nil {
		return fmt.Errorf("payment intent %s is missing grant metadata", intent.ID)
	}

	_, err = s.RecordPurchase(uint(userID), uint(courseID), intent.Amount, intent.ID)
	return err
}

func (s *PaymentService) currency() string {
	if s.Cfg.Stripe.Currency != "" {
		return s.Cfg.Stripe.Currency
	}
	return "usd"
}

// grantExpiry derives the grant window from the course access type. A nil
// expiry is lifetime access.
func grantExpiry(course *model.Course, from time.Time) *time.Time {
	switch course.AccessType {
	case model.AccessTrial:
		if course.TrialDurationDays > 0 {
			t := from.AddDate(0, 0, course.TrialDurationDays)
			return &t
		}
	case model.AccessSubscription:
		if course.SubscriptionDurationMonths > 0 {
			t := from.AddDate(0, course.SubscriptionDurationMonths, 0)
			return &t
		}
	}
	return nil
}
