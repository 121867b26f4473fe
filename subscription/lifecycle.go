// Package subscription implements the subscription lifecycle state machine:
//
//	[none] --create--> incomplete --confirm--> active --cancel--> canceled
//
// with webhook-driven transitions to past_due, unpaid, canceled and
// incomplete_expired. Terminal states never go back to active on the same
// row; a new purchase creates a new row.
package subscription

import (
	"errors"
	"strings"
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/billing"
	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers missing plans, missing subscriptions and rows the
	// caller does not own.
	ErrNotFound = errors.New("subscription not found")
	// ErrConflict marks a duplicate active subscription or an operation on a
	// subscription whose state does not allow it.
	ErrConflict = errors.New("subscription conflict")
	// ErrPaymentIncomplete means the provider payment has not succeeded yet.
	ErrPaymentIncomplete = errors.New("payment not completed")
)

// Gateway is the slice of the billing adapter the lifecycle needs.
type Gateway interface {
	CustomerExists(customerID string) bool
	CreateCustomer(name, email string) (string, error)
	CreatePaymentIntent(customerID string, amount float64, currency string, metadata map[string]string) (*billing.PaymentIntent, error)
	GetPaymentIntent(paymentIntentID string) (*billing.PaymentIntent, error)
	EnsureDefaultPaymentMethod(customerID, paymentMethodID string) error
	CreateSubscription(customerID, priceID string, metadata map[string]string) (string, error)
	CancelSubscription(subscriptionID string) error
}

type Service struct {
	db      *gorm.DB
	gateway Gateway
}

func NewService(db *gorm.DB, gateway Gateway) *Service {
	return &Service{db: db, gateway: gateway}
}

// CreateResult is what the client needs to drive the provider's payment UI.
type CreateResult struct {
	Subscription models.Subscription     `json:"subscription"`
	ClientSecret string                  `json:"paymentHandleSecret,omitempty"`
	Plan         models.SubscriptionPlan `json:"planDetails"`
}

// Create starts a subscription: an incomplete local row plus, for paid plans,
// a provider payment intent the client completes. The row is written inside
// one transaction; when that transaction fails after the payment intent was
// created, a compensation is enqueued to cancel the abandoned intent.
func (s *Service) Create(userID, planID string) (*CreateResult, error) {
	var plan models.SubscriptionPlan
	err := s.db.First(&plan, "id = ? AND status = ?", planID, models.PlanActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.Subscription
	err = s.db.Where("user_id = ? AND plan_id = ? AND status = ?",
		userID, planID, models.SubscriptionActive).First(&existing).Error
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	free := plan.Price == 0 || plan.SkipBilling

	customerID := user.StripeCustomerId
	if !free {
		customerID, err = s.ensureCustomer(&user)
		if err != nil {
			return nil, err
		}
	}

	sub := models.Subscription{
		UserID:           userID,
		PlanID:           plan.ID,
		StripeCustomerId: customerID,
		Status:           models.SubscriptionIncomplete,
		StartDate:        time.Now(),
	}

	var intent *billing.PaymentIntent
	if !free {
		intent, err = s.gateway.CreatePaymentIntent(customerID, plan.Price, plan.Currency, map[string]string{
			"plan_id": plan.ID,
			"user_id": userID,
		})
		if err != nil {
			return nil, err
		}
		sub.StripePaymentIntentId = intent.ID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&sub).Error
	})
	if err != nil {
		// The provider-side intent survives the rollback, leave a
		// compensation for the outbox worker.
		if intent != nil {
			enqueueCompensation(s.db, models.OutboxCancelPaymentIntent, intent.ID)
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	result := &CreateResult{Subscription: sub, Plan: plan}
	if intent != nil {
		result.ClientSecret = intent.ClientSecret
	}
	return result, nil
}

// ConfirmFree activates a zero-cost or billing-exempt subscription without
// any provider interaction.
func (s *Service) ConfirmFree(userID, subscriptionID string) (*models.Subscription, error) {
	sub, plan, err := s.ownedSubscriptionWithPlan(userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !(plan.Price == 0 || plan.SkipBilling) {
		return nil, ErrConflict
	}
	if sub.Status == models.SubscriptionActive {
		return sub, nil
	}
	if sub.Status != models.SubscriptionIncomplete {
		return nil, ErrConflict
	}

	return s.activate(sub, plan, "")
}

// Confirm verifies the payment with the provider, sets up the recurring
// provider subscription and activates the local row. The provider calls run
// before the final commit; a commit failure after the provider subscription
// exists leaves a cancel compensation in the outbox.
func (s *Service) Confirm(userID, subscriptionID, paymentIntentID string) (*models.Subscription, error) {
	sub, plan, err := s.ownedSubscriptionWithPlan(userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status == models.SubscriptionActive {
		// Webhook reconciliation won the race, nothing to do.
		return sub, nil
	}
	if sub.Status != models.SubscriptionIncomplete {
		return nil, ErrConflict
	}

	if plan.Price == 0 || plan.SkipBilling {
		return s.activate(sub, plan, "")
	}

	if paymentIntentID == "" {
		paymentIntentID = sub.StripePaymentIntentId
	}
	intent, err := s.gateway.GetPaymentIntent(paymentIntentID)
	if err != nil {
		return nil, err
	}
	if intent.Status == billing.PaymentStatusCanceled {
		// Definitive failure, the row can never activate.
		if err := s.db.Model(sub).Update("status", models.SubscriptionIncompleteExpired).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Failed to expire subscription after canceled payment")
		}
		return nil, ErrPaymentIncomplete
	}
	if intent.Status != billing.PaymentStatusSucceeded {
		return nil, ErrPaymentIncomplete
	}

	if err := s.gateway.EnsureDefaultPaymentMethod(sub.StripeCustomerId, intent.PaymentMethodID); err != nil {
		return nil, err
	}

	providerSubID, err := s.gateway.CreateSubscription(sub.StripeCustomerId, plan.StripePriceId, map[string]string{
		"subscription_id": sub.ID,
	})
	if err != nil {
		return nil, err
	}

	activated, err := s.activate(sub, plan, providerSubID)
	if err != nil {
		// The provider subscription is live but the local row is not, the
		// outbox worker cancels it.
		enqueueCompensation(s.db, models.OutboxCancelSubscription, providerSubID)
		return nil, err
	}
	return activated, nil
}

// Cancel ends an active subscription at the provider and locally. Canceling
// a subscription that is not currently active is a conflict, not a silent
// second success.
func (s *Service) Cancel(userID, subscriptionID string) error {
	var sub models.Subscription
	err := s.db.First(&sub, "id = ? AND user_id = ?", subscriptionID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if sub.Status != models.SubscriptionActive {
		return ErrConflict
	}

	if sub.StripeSubscriptionId != "" {
		if err := s.gateway.CancelSubscription(sub.StripeSubscriptionId); err != nil {
			return err
		}
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&sub).Updates(map[string]interface{}{
			"status":               models.SubscriptionCanceled,
			"cancel_at_period_end": true,
			"canceled_at":          &now,
		}).Error
	})
}

// ListForUser returns the caller's subscriptions, newest first, plan
// preloaded.
func (s *Service) ListForUser(userID string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Service) ownedSubscriptionWithPlan(userID, subscriptionID string) (*models.Subscription, *models.SubscriptionPlan, error) {
	var sub models.Subscription
	err := s.db.First(&sub, "id = ? AND user_id = ?", subscriptionID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var plan models.SubscriptionPlan
	if err := s.db.First(&plan, "id = ?", sub.PlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return &sub, &plan, nil
}

func (s *Service) activate(sub *models.Subscription, plan *models.SubscriptionPlan, providerSubID string) (*models.Subscription, error) {
	now := time.Now()
	end := PeriodEnd(now, plan.Interval, plan.IntervalCount)

	updates := map[string]interface{}{
		"status":     models.SubscriptionActive,
		"start_date": now,
		"end_date":   &end,
	}
	if providerSubID != "" {
		updates["stripe_subscription_id"] = providerSubID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(sub).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	sub.Status = models.SubscriptionActive
	sub.StartDate = now
	sub.EndDate = &end
	if providerSubID != "" {
		sub.StripeSubscriptionId = providerSubID
	}
	return sub, nil
}

// ensureCustomer guarantees a usable provider customer record for the user,
// creating one on first use. A failure to persist the new id is tolerated and
// logged, the next call simply creates another customer.
func (s *Service) ensureCustomer(user *models.User) (string, error) {
	if user.StripeCustomerId != "" && s.gateway.CustomerExists(user.StripeCustomerId) {
		return user.StripeCustomerId, nil
	}

	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if user.CompanyName != "" {
		name = user.CompanyName
	}
	customerID, err := s.gateway.CreateCustomer(name, user.Email)
	if err != nil {
		return "", err
	}

	if err := s.db.Model(user).Update("stripe_customer_id", customerID).Error; err != nil {
		utils.LogErrorWithUser(user.ID, err, "Failed to persist the provider customer id")
	}
	user.StripeCustomerId = customerID
	return customerID, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
