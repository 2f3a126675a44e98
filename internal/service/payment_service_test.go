package service

import (
	"testing"
	"time"

	"faceyoga_backend/internal/config"
	"faceyoga_backend/internal/model"
	"faceyoga_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *testRepos) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	cfg := &config.Config{}
	cfg.Stripe.Currency = "usd"
	svc := NewPaymentService(repos.course, repos.purchase, repos.grant, cfg)
	return svc, repos
}

func createPaidCourse(t *testing.T, repos *testRepos, accessType model.CourseAccessType) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:             "Jawline intensive",
		PriceCents:        2999,
		AccessType:        accessType,
		TrialDurationDays: 7,
		Published:         true,
	}
	require.NoError(t, repos.course.Create(course))
	return course
}

func TestRecordPurchaseCreatesRowAndGrant(t *testing.T) {
	svc, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessLifetime)

	grant, err := svc.RecordPurchase(1, course.ID, 2999, "pi_test_1")
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Equal(t, uint(1), grant.UserID)
	assert.Equal(t, course.ID, grant.CourseID)
	assert.Nil(t, grant.ExpiresAt, "lifetime access has no expiry")

	purchases, err := repos.purchase.FindByUserID(1)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, model.PurchaseCompleted, purchases[0].Status)
	assert.Equal(t, "pi_test_1", purchases[0].PaymentIntentID)
}

func TestRecordPurchaseIdempotent(t *testing.T) {
	svc, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessLifetime)

	first, err := svc.RecordPurchase(1, course.ID, 2999, "pi_test_1")
	require.NoError(t, err)

	// Client confirmation and webhook both land; second call must not error
	// and must not duplicate anything.
	second, err := svc.RecordPurchase(1, course.ID, 2999, "pi_test_1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	purchases, err := repos.purchase.FindByUserID(1)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)

	grants, err := repos.grant.FindByUserID(1)
	require.NoError(t, err)
	assert.Len(t, grants, 1)
}

func TestRecordPurchaseRejectsNonPositiveAmount(t *testing.T) {
	svc, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessLifetime)

	_, err := svc.RecordPurchase(1, course.ID, 0, "pi_test_1")
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	_, err = svc.RecordPurchase(1, course.ID, -500, "pi_test_2")
	assert.ErrorIs(t, err, util.ErrInvalidAmount)
}

func TestRecordPurchaseRejectsAmountMismatch(t *testing.T) {
	svc, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessLifetime)

	_, err := svc.RecordPurchase(1, course.ID, 1999, "pi_test_1")
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	purchases, err := repos.purchase.FindByUserID(1)
	require.NoError(t, err)
	assert.Empty(t, purchases, "rejected payment must not leave a purchase row")
}

func TestRecordPurchaseAgainAfterTrialExpiry(t *testing.T) {
	svc, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessTrial)

	first, err := svc.RecordPurchase(1, course.ID, 2999, "pi_test_1")
	require.NoError(t, err)
	require.NotNil(t, first.ExpiresAt)

	// The trial lapses, then the user pays again through a new intent.
	require.NoError(t, repos.grant.Expire(1, course.ID, time.Now().Add(-time.Hour)))

	renewed, err := svc.RecordPurchase(1, course.ID, 2999, "pi_test_2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, renewed.ID, "renewal refreshes the grant in place")
	assert.True(t, renewed.Active(time.Now()), "new payment must restore access")

	purchases, err := repos.purchase.FindByUserID(1)
	require.NoError(t, err)
	assert.Len(t, purchases, 2, "each payment intent gets its own purchase row")
}

func TestRecordPurchaseAgainAfterRefund(t *testing.T) {
	svc, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessLifetime)

	_, err := svc.RecordPurchase(1, course.ID, 2999, "pi_test_1")
	require.NoError(t, err)

	purchases, err := repos.purchase.FindByUserID(1)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	require.NoError(t, svc.RefundPurchase(purchases[0].ID))

	renewed, err := svc.RecordPurchase(1, course.ID, 2999, "pi_test_2")
	require.NoError(t, err)
	assert.True(t, renewed.Active(time.Now()))
	assert.Nil(t, renewed.ExpiresAt, "bought-again lifetime access has no expiry")

	purchases, err = repos.purchase.FindByUserID(1)
	require.NoError(t, err)
	assert.Len(t, purchases, 2)
}

func TestRecordPurchaseUnknownCourse(t *testing.T) {
	svc, _ := newPaymentFixture(t)

	_, err := svc.RecordPurchase(1, 9999, 2999, "pi_test_1")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestRecordPurchaseTrialExpiry(t *testing.T) {
	svc, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessTrial)

	grant, err := svc.RecordPurchase(1, course.ID, 2999, "pi_test_1")
	require.NoError(t, err)
	require.NotNil(t, grant.ExpiresAt)

	want := time.Now().AddDate(0, 0, course.TrialDurationDays)
	assert.WithinDuration(t, want, *grant.ExpiresAt, time.Minute)
}

func TestEnrollFree(t *testing.T) {
	svc, repos := newPaymentFixture(t)

	free := &model.Course{Title: "Starter routine", PriceCents: 0, AccessType: model.AccessLifetime, Published: true}
	require.NoError(t, repos.course.Create(free))

	grant, err := svc.EnrollFree(1, free.ID)
	require.NoError(t, err)
	assert.Nil(t, grant.PurchaseID, "free enrollment records no purchase")

	// Re-enrolling is a no-op, not an error.
	again, err := svc.EnrollFree(1, free.ID)
	require.NoError(t, err)
	assert.Equal(t, grant.ID, again.ID)

	purchases, err := repos.purchase.FindByUserID(1)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestEnrollFreeRejectsPaidCourse(t *testing.T) {
	svc, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessLifetime)

	_, err := svc.EnrollFree(1, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFree)
}

func TestRefundPurchaseExpiresGrant(t *testing.T) {
	svc, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessLifetime)

	_, err := svc.RecordPurchase(1, course.ID, 2999, "pi_test_1")
	require.NoError(t, err)

	purchases, err := repos.purchase.FindByUserID(1)
	require.NoError(t, err)
	require.Len(t, purchases, 1)

	require.NoError(t, svc.RefundPurchase(purchases[0].ID))

	refreshed, err := repos.purchase.FindByID(purchases[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseRefunded, refreshed.Status)

	_, err = repos.grant.FindActive(1, course.ID, time.Now().Add(time.Second))
	assert.Error(t, err, "refunded purchase must not leave an active grant")
}

func TestGrantUpsertRace(t *testing.T) {
	_, repos := newPaymentFixture(t)
	course := createPaidCourse(t, repos, model.AccessLifetime)

	first, created, err := repos.grant.Upsert(&model.AccessGrant{
		UserID:     1,
		CourseID:   course.ID,
		AccessType: model.AccessLifetime,
		StartsAt:   time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, created)

	// Losing side of a concurrent upsert keeps the surviving row.
	second, created, err := repos.grant.Upsert(&model.AccessGrant{
		UserID:     1,
		CourseID:   course.ID,
		AccessType: model.AccessLifetime,
		StartsAt:   time.Now(),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}
