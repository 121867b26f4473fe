package subscription

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/billing"
	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

const (
	testUserID = "11111111-1111-1111-1111-111111111111"
	testPlanID = "22222222-2222-2222-2222-222222222222"
	testSubID  = "33333333-3333-3333-3333-333333333333"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

type stubGateway struct {
	customerExists     bool
	intentStatus       string
	paymentIntents     int
	providerSubs       int
	canceledSubs       []string
	ensuredMethods     []string
	failCreateIntent   bool
	failCreateCustomer bool
}

func (s *stubGateway) CustomerExists(customerID string) bool {
	return s.customerExists
}

func (s *stubGateway) CreateCustomer(name, email string) (string, error) {
	if s.failCreateCustomer {
		return "", errors.New("provider unavailable")
	}
	return "cus_test", nil
}

func (s *stubGateway) CreatePaymentIntent(customerID string, amount float64, currency string, metadata map[string]string) (*billing.PaymentIntent, error) {
	if s.failCreateIntent {
		return nil, errors.New("provider unavailable")
	}
	s.paymentIntents++
	return &billing.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Status:       "requires_payment_method",
		Amount:       amount,
	}, nil
}

func (s *stubGateway) GetPaymentIntent(paymentIntentID string) (*billing.PaymentIntent, error) {
	return &billing.PaymentIntent{
		ID:              paymentIntentID,
		Status:          s.intentStatus,
		PaymentMethodID: "pm_test",
	}, nil
}

func (s *stubGateway) EnsureDefaultPaymentMethod(customerID, paymentMethodID string) error {
	s.ensuredMethods = append(s.ensuredMethods, paymentMethodID)
	return nil
}

func (s *stubGateway) CreateSubscription(customerID, priceID string, metadata map[string]string) (string, error) {
	s.providerSubs++
	return "sub_provider_test", nil
}

func (s *stubGateway) CancelSubscription(subscriptionID string) error {
	s.canceledSubs = append(s.canceledSubs, subscriptionID)
	return nil
}

func planColumns() []string {
	return []string{"id", "name", "price", "currency", "interval", "interval_count", "stripe_price_id", "status", "skip_billing"}
}

func subscriptionColumns() []string {
	return []string{"id", "user_id", "plan_id", "stripe_customer_id", "stripe_subscription_id", "stripe_payment_intent_id", "status", "start_date"}
}

func TestCreate_PlanNotFound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()))

	svc := NewService(gormDB, &stubGateway{})

	_, err := svc.Create(testUserID, testPlanID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_DuplicateActiveConflict(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()).
			AddRow(testPlanID, "Pro", 29.99, "usd", "month", 1, "price_test", "active", false))
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()).
			AddRow(testSubID, testUserID, testPlanID, "cus_test", "sub_provider_test", "", "active", time.Now()))

	gateway := &stubGateway{}
	svc := NewService(gormDB, gateway)

	_, err := svc.Create(testUserID, testPlanID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 0, gateway.paymentIntents)
}

func TestCreate_FreePlanSkipsProvider(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()).
			AddRow(testPlanID, "Free", 0.0, "usd", "month", 1, "", "active", true))
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "first_name", "last_name", "stripe_customer_id"}).
			AddRow(testUserID, "jane@example.com", "Jane", "Doe", ""))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions" (.+) RETURNING "id"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(testSubID))
	mock.ExpectCommit()

	gateway := &stubGateway{}
	svc := NewService(gormDB, gateway)

	result, err := svc.Create(testUserID, testPlanID)

	assert.NoError(t, err)
	assert.Equal(t, 0, gateway.paymentIntents)
	assert.Empty(t, result.ClientSecret)
	assert.Equal(t, models.SubscriptionIncomplete, result.Subscription.Status)
}

func TestCreate_PaidPlanCreatesPaymentIntent(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()).
			AddRow(testPlanID, "Pro", 29.99, "usd", "month", 1, "price_test", "active", false))
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "first_name", "last_name", "stripe_customer_id"}).
			AddRow(testUserID, "jane@example.com", "Jane", "Doe", "cus_existing"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions" (.+) RETURNING "id"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(testSubID))
	mock.ExpectCommit()

	gateway := &stubGateway{customerExists: true}
	svc := NewService(gormDB, gateway)

	result, err := svc.Create(testUserID, testPlanID)

	assert.NoError(t, err)
	assert.Equal(t, 1, gateway.paymentIntents)
	assert.Equal(t, "pi_test_secret", result.ClientSecret)
	assert.Equal(t, "pi_test", result.Subscription.StripePaymentIntentId)
	assert.Equal(t, "cus_existing", result.Subscription.StripeCustomerId)
}

func TestConfirm_PaymentNotSucceededLeavesIncomplete(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()).
			AddRow(testSubID, testUserID, testPlanID, "cus_test", "", "pi_test", "incomplete", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()).
			AddRow(testPlanID, "Pro", 29.99, "usd", "month", 1, "price_test", "active", false))

	gateway := &stubGateway{intentStatus: "processing"}
	svc := NewService(gormDB, gateway)

	_, err := svc.Confirm(testUserID, testSubID, "")

	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	assert.Equal(t, 0, gateway.providerSubs)
	// No UPDATE was expected: a state change would fail the expectations.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_CanceledPaymentExpiresRow(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()).
			AddRow(testSubID, testUserID, testPlanID, "cus_test", "", "pi_test", "incomplete", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()).
			AddRow(testPlanID, "Pro", 29.99, "usd", "month", 1, "price_test", "active", false))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gateway := &stubGateway{intentStatus: billing.PaymentStatusCanceled}
	svc := NewService(gormDB, gateway)

	_, err := svc.Confirm(testUserID, testSubID, "")

	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	assert.Equal(t, 0, gateway.providerSubs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_SucceededPaymentActivates(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()).
			AddRow(testSubID, testUserID, testPlanID, "cus_test", "", "pi_test", "incomplete", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()).
			AddRow(testPlanID, "Pro", 29.99, "usd", "month", 1, "price_test", "active", false))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gateway := &stubGateway{intentStatus: billing.PaymentStatusSucceeded}
	svc := NewService(gormDB, gateway)

	sub, err := svc.Confirm(testUserID, testSubID, "pi_test")

	assert.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Equal(t, "sub_provider_test", sub.StripeSubscriptionId)
	assert.Equal(t, []string{"pm_test"}, gateway.ensuredMethods)
	if assert.NotNil(t, sub.EndDate) {
		assert.True(t, sub.EndDate.After(sub.StartDate))
	}
}

func TestConfirm_AlreadyActiveIsIdempotent(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()).
			AddRow(testSubID, testUserID, testPlanID, "cus_test", "sub_provider_test", "pi_test", "active", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()).
			AddRow(testPlanID, "Pro", 29.99, "usd", "month", 1, "price_test", "active", false))

	gateway := &stubGateway{}
	svc := NewService(gormDB, gateway)

	sub, err := svc.Confirm(testUserID, testSubID, "pi_test")

	assert.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Equal(t, 0, gateway.providerSubs)
}

func TestConfirmFree_PaidPlanConflicts(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()).
			AddRow(testSubID, testUserID, testPlanID, "cus_test", "", "pi_test", "incomplete", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()).
			AddRow(testPlanID, "Pro", 29.99, "usd", "month", 1, "price_test", "active", false))

	svc := NewService(gormDB, &stubGateway{})

	_, err := svc.ConfirmFree(testUserID, testSubID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestConfirmFree_ActivatesWithoutProvider(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()).
			AddRow(testSubID, testUserID, testPlanID, "", "", "", "incomplete", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(mock.NewRows(planColumns()).
			AddRow(testPlanID, "Free", 0.0, "usd", "month", 1, "", "active", true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gateway := &stubGateway{}
	svc := NewService(gormDB, gateway)

	sub, err := svc.ConfirmFree(testUserID, testSubID)

	assert.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Equal(t, 0, gateway.providerSubs)
	assert.Empty(t, sub.StripeSubscriptionId)
}

func TestCancel_NotFound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()))

	svc := NewService(gormDB, &stubGateway{})

	err := svc.Cancel(testUserID, testSubID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel_NonActiveConflicts(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()).
			AddRow(testSubID, testUserID, testPlanID, "cus_test", "sub_provider_test", "pi_test", "canceled", time.Now()))

	gateway := &stubGateway{}
	svc := NewService(gormDB, gateway)

	err := svc.Cancel(testUserID, testSubID)

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, gateway.canceledSubs)
}

func TestCancel_ActiveCancelsProviderAndRow(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(mock.NewRows(subscriptionColumns()).
			AddRow(testSubID, testUserID, testPlanID, "cus_test", "sub_provider_test", "pi_test", "active", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gateway := &stubGateway{}
	svc := NewService(gormDB, gateway)

	err := svc.Cancel(testUserID, testSubID)

	assert.NoError(t, err)
	assert.Equal(t, []string{"sub_provider_test"}, gateway.canceledSubs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
