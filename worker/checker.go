package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"
	mailsmodels "github.com/LauraM111/jobtowners-backend-sub001/utils/mails-models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// incompleteTTL is how long an incomplete subscription may sit without a
// confirmed payment before it is expired.
const incompleteTTL = 24 * time.Hour

type Checker struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewChecker(db *gorm.DB, rdb *redis.Client) *Checker {
	return &Checker{
		DB:    db,
		Redis: rdb,
	}
}

func (c *Checker) Start() {
	ticker := time.NewTicker(1 * time.Hour)
	utils.LogInfo("Background subscription worker started")

	// Run once at start
	c.checkSubscriptions()

	for range ticker.C {
		c.checkSubscriptions()
	}
}

func (c *Checker) checkSubscriptions() {
	ctx := context.Background()
	now := time.Now()

	// 1. Remind subscribers 24h before their period ends.
	// Ending in [23, 25] hours; the window overlaps the hourly tick so
	// nothing slips through, Redis dedups the overlap.
	start := now.Add(23 * time.Hour)
	end := now.Add(25 * time.Hour)

	var expiringSoon []models.Subscription
	if err := c.DB.Preload("User").Preload("Plan").
		Where("status = ? AND end_date BETWEEN ? AND ?", models.SubscriptionActive, start, end).
		Find(&expiringSoon).Error; err != nil {
		utils.LogError(err, "Error querying expiring subscriptions in checkSubscriptions")
	}

	for _, sub := range expiringSoon {
		if sub.EndDate == nil {
			continue
		}
		key := fmt.Sprintf("reminder:24h:%s", sub.ID)
		if c.Redis != nil {
			exists, _ := c.Redis.Exists(ctx, key).Result()
			if exists > 0 {
				continue
			}
		}

		mailsmodels.SubscriptionReminder(mailsmodels.SubscriptionReminderData{
			FirstName: sub.User.FirstName,
			Email:     sub.User.Email,
			PlanName:  sub.Plan.Name,
			EndDate:   *sub.EndDate,
		})

		if c.Redis != nil {
			c.Redis.Set(ctx, key, "true", 48*time.Hour)
		}
		utils.LogInfo("Sent 24h expiry reminder for subscription " + sub.ID)
	}

	// 2. Expire abandoned incomplete subscriptions.
	cutoff := now.Add(-incompleteTTL)

	var stale []models.Subscription
	if err := c.DB.
		Where("status = ? AND created_at < ?", models.SubscriptionIncomplete, cutoff).
		Find(&stale).Error; err != nil {
		utils.LogError(err, "Error querying stale incomplete subscriptions in checkSubscriptions")
	}

	for _, sub := range stale {
		if err := c.DB.Model(&models.Subscription{}).
			Where("id = ? AND status = ?", sub.ID, models.SubscriptionIncomplete).
			Update("status", models.SubscriptionIncompleteExpired).Error; err != nil {
			utils.LogError(err, "Error expiring incomplete subscription "+sub.ID)
			continue
		}

		if sub.StripePaymentIntentId != "" {
			outbox := models.BillingOutbox{
				Action:        models.OutboxCancelPaymentIntent,
				TargetID:      sub.StripePaymentIntentId,
				Status:        models.OutboxPending,
				NextAttemptAt: now,
			}
			if err := c.DB.Create(&outbox).Error; err != nil {
				utils.LogError(err, "Error enqueueing payment intent cancellation for subscription "+sub.ID)
			}
		}

		utils.LogInfo("Expired abandoned incomplete subscription " + sub.ID)
	}
}
