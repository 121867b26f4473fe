package subscription

import (
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"gorm.io/gorm"
)

// enqueueCompensation records a provider-side effect that the local
// transaction abandoned. Best effort: the outbox insert itself failing is
// logged, the worker cannot recover what was never recorded.
func enqueueCompensation(db *gorm.DB, action models.OutboxAction, targetID string) {
	if targetID == "" {
		return
	}
	entry := models.BillingOutbox{
		Action:        action,
		TargetID:      targetID,
		Status:        models.OutboxPending,
		NextAttemptAt: time.Now(),
	}
	if err := db.Create(&entry).Error; err != nil {
		utils.LogError(err, "Failed to enqueue billing compensation "+string(action)+" for "+targetID)
	}
}
