package models

import (
	"time"
)

type OutboxAction string

const (
	OutboxCancelPaymentIntent OutboxAction = "cancel_payment_intent"
	OutboxCancelSubscription  OutboxAction = "cancel_provider_subscription"
)

type OutboxStatus string

const (
	OutboxPending OutboxStatus = "pending"
	OutboxDone    OutboxStatus = "done"
	OutboxDead    OutboxStatus = "dead"
)

// BillingOutbox records a compensating provider call that could not happen
// atomically with a local transaction. A local rollback after a provider-side
// effect (payment intent created, subscription created) leaves one of these
// rows behind; the outbox worker retries the compensation with backoff.
type BillingOutbox struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Action        OutboxAction `json:"action" gorm:"type:varchar(40);not null"`
	TargetID      string       `json:"targetId" gorm:"not null"`
	Status        OutboxStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Attempts      int          `json:"attempts" gorm:"default:0"`
	NextAttemptAt time.Time    `json:"nextAttemptAt" gorm:"index"`
	LastError     string       `json:"lastError" gorm:"type:text"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (BillingOutbox) TableName() string {
	return "billing_outbox"
}
