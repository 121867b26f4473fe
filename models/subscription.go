package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionActive            SubscriptionStatus = "active"
	SubscriptionPastDue           SubscriptionStatus = "past_due"
	SubscriptionUnpaid            SubscriptionStatus = "unpaid"
	SubscriptionCanceled          SubscriptionStatus = "canceled"
	SubscriptionIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionTrialing          SubscriptionStatus = "trialing"
)

// IsTerminal reports whether the status never transitions back to active on
// the same row. A new purchase always creates a new Subscription.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == SubscriptionCanceled || s == SubscriptionIncompleteExpired
}

// Subscription is a user's instance of having purchased a plan for a bounded
// period. EndDate is always derived from StartDate and the plan interval at
// confirmation time, never user supplied.
type Subscription struct {
	ID                    string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID                string             `json:"userId" gorm:"type:uuid;not null;index"`
	PlanID                string             `json:"planId" gorm:"type:uuid;not null;index"`
	StripeCustomerId      string             `json:"stripeCustomerId"`
	StripeSubscriptionId  string             `json:"stripeSubscriptionId" gorm:"index"`
	StripePaymentIntentId string             `json:"stripePaymentIntentId"`
	Status                SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'incomplete'"`
	StartDate             time.Time          `json:"startDate"`
	EndDate               *time.Time         `json:"endDate"`
	CancelAtPeriodEnd     bool               `json:"cancelAtPeriodEnd" gorm:"default:false"`
	CanceledAt            *time.Time         `json:"canceledAt"`
	CreatedAt             time.Time          `json:"createdAt"`
	UpdatedAt             time.Time          `json:"updatedAt"`

	User User             `json:"-" gorm:"foreignKey:UserID"`
	Plan SubscriptionPlan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
}

// SubscriptionCreate model for starting a subscription
type SubscriptionCreate struct {
	PlanID string `json:"planId" binding:"required"`
}

// SubscriptionConfirm model for confirming a subscription payment. The
// payment intent id is omitted for free plans.
type SubscriptionConfirm struct {
	PaymentIntentId string `json:"paymentIntentId"`
}
