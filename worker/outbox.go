package worker

import (
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"gorm.io/gorm"
)

const (
	outboxBatchSize    = 50
	outboxPollInterval = 30 * time.Second
	outboxMaxAttempts  = 10
)

// CompensationGateway is the slice of the billing gateway the outbox worker
// needs to undo provider-side effects.
type CompensationGateway interface {
	CancelPaymentIntent(paymentIntentID string) error
	CancelSubscription(subscriptionID string) error
}

// OutboxDispatcher drains billing_outbox rows: compensating provider calls
// that could not happen atomically with a local transaction.
type OutboxDispatcher struct {
	DB      *gorm.DB
	Gateway CompensationGateway
}

func NewOutboxDispatcher(db *gorm.DB, gateway CompensationGateway) *OutboxDispatcher {
	return &OutboxDispatcher{
		DB:      db,
		Gateway: gateway,
	}
}

func (d *OutboxDispatcher) Start() {
	ticker := time.NewTicker(outboxPollInterval)
	utils.LogInfo("Billing outbox dispatcher started")

	for range ticker.C {
		if err := d.FlushOnce(); err != nil {
			utils.LogError(err, "Outbox flush error")
		}
	}
}

// FlushOnce processes one batch of due pending entries.
func (d *OutboxDispatcher) FlushOnce() error {
	now := time.Now()

	var entries []models.BillingOutbox
	if err := d.DB.
		Where("status = ? AND next_attempt_at <= ?", models.OutboxPending, now).
		Order("next_attempt_at ASC").
		Limit(outboxBatchSize).
		Find(&entries).Error; err != nil {
		return err
	}

	for _, entry := range entries {
		if err := d.dispatch(entry); err != nil {
			d.markFailed(entry, err)
			continue
		}
		if err := d.DB.Model(&models.BillingOutbox{}).
			Where("id = ?", entry.ID).
			Update("status", models.OutboxDone).Error; err != nil {
			utils.LogError(err, "Failed to mark outbox entry as done")
		}
	}
	return nil
}

func (d *OutboxDispatcher) dispatch(entry models.BillingOutbox) error {
	switch entry.Action {
	case models.OutboxCancelPaymentIntent:
		return d.Gateway.CancelPaymentIntent(entry.TargetID)
	case models.OutboxCancelSubscription:
		return d.Gateway.CancelSubscription(entry.TargetID)
	default:
		utils.LogInfo("Skipping outbox entry with unknown action: " + string(entry.Action))
		return nil
	}
}

func (d *OutboxDispatcher) markFailed(entry models.BillingOutbox, cause error) {
	attempts := entry.Attempts + 1
	updates := map[string]interface{}{
		"attempts":        attempts,
		"last_error":      cause.Error(),
		"next_attempt_at": time.Now().Add(retryDelay(attempts)),
	}
	// Give up after too many attempts; the last_error column keeps the trail
	// for manual cleanup.
	if attempts >= outboxMaxAttempts {
		updates["status"] = models.OutboxDead
		utils.LogError(cause, "Outbox entry exhausted retries, giving up")
	}

	if err := d.DB.Model(&models.BillingOutbox{}).
		Where("id = ?", entry.ID).
		Updates(updates).Error; err != nil {
		utils.LogError(err, "Failed to record outbox failure")
	}
}

func retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		return time.Second
	}
	if attempt > 8 {
		attempt = 8
	}
	delay := time.Duration(1<<attempt) * time.Second
	if delay > 5*time.Minute {
		return 5 * time.Minute
	}
	return delay
}
