package webhooks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/billing"
	"github.com/LauraM111/jobtowners-backend-sub001/db"
	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/subscription"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

// ProviderWebhookHandler ingests asynchronous billing provider events and
// reconciles local subscription state. The endpoint always answers
// 200 {received: true}: handlers are idempotent and a non-200 would only buy
// a provider retry storm. Failures are logged, never surfaced.
//
// @Summary Billing provider webhook
// @Description Signature-verified event ingest from the billing provider
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool "received: true"
// @Router /webhooks/provider [post]
func ProviderWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.LogError(err, "Could not read the webhook request body")
		respondReceived(c)
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		utils.LogError(nil, "STRIPE_WEBHOOK_SECRET not configured, dropping webhook")
		respondReceived(c)
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		utils.LogError(err, "Webhook signature verification failed")
		respondReceived(c)
		return
	}

	if alreadyProcessed(event.ID) {
		respondReceived(c)
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		handlePaymentSucceeded(event)
	case "payment_intent.payment_failed":
		handlePaymentFailed(event)
	case "customer.subscription.deleted":
		handleSubscriptionDeleted(event)
	case "customer.subscription.updated":
		handleSubscriptionUpdated(event)
	default:
		utils.Logger.WithField("source", "webhook").Debug("Ignored event type " + string(event.Type))
	}

	respondReceived(c)
}

func respondReceived(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// alreadyProcessed dedups event redelivery through Redis. Without Redis every
// event is handled; the handlers are idempotent either way.
func alreadyProcessed(eventID string) bool {
	if db.Redis == nil || eventID == "" {
		return false
	}
	set, err := db.Redis.SetNX(context.Background(), "webhook:event:"+eventID, "1", 24*time.Hour).Result()
	if err != nil {
		utils.LogError(err, "Redis dedup check failed for webhook event "+eventID)
		return false
	}
	return !set
}

func handlePaymentSucceeded(event stripe.Event) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		utils.LogError(err, "Error parsing succeeded PaymentIntent")
		return
	}

	subID := pi.Metadata["subscription_id"]
	if subID == "" {
		// Payment unrelated to a subscription, nothing to reconcile.
		return
	}

	var sub models.Subscription
	if err := db.DB.First(&sub, "id = ?", subID).Error; err != nil {
		logLookupError(err, "subscription "+subID+" for succeeded payment")
		return
	}
	if sub.Status == models.SubscriptionActive {
		return
	}
	if sub.Status.IsTerminal() {
		utils.LogError(nil, "Succeeded payment for terminal subscription "+subID+", ignored")
		return
	}

	updates := map[string]interface{}{
		"status": models.SubscriptionActive,
	}
	if sub.EndDate == nil {
		var plan models.SubscriptionPlan
		if err := db.DB.First(&plan, "id = ?", sub.PlanID).Error; err == nil {
			end := subscription.PeriodEnd(sub.StartDate, plan.Interval, plan.IntervalCount)
			updates["end_date"] = &end
		}
	}

	if err := db.DB.Model(&sub).Updates(updates).Error; err != nil {
		utils.LogError(err, "Error activating subscription "+subID+" from webhook")
		return
	}
	utils.LogSuccess("Subscription " + subID + " activated via payment_intent.succeeded")
}

func handlePaymentFailed(event stripe.Event) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		utils.LogError(err, "Error parsing failed PaymentIntent")
		return
	}

	subID := pi.Metadata["subscription_id"]
	if subID == "" {
		return
	}

	var sub models.Subscription
	if err := db.DB.First(&sub, "id = ?", subID).Error; err != nil {
		logLookupError(err, "subscription "+subID+" for failed payment")
		return
	}
	if sub.Status == models.SubscriptionIncompleteExpired {
		return
	}
	if sub.Status != models.SubscriptionIncomplete {
		// Only a pending payment can expire the row.
		return
	}

	if err := db.DB.Model(&sub).Update("status", models.SubscriptionIncompleteExpired).Error; err != nil {
		utils.LogError(err, "Error expiring subscription "+subID+" from webhook")
		return
	}
	utils.LogSuccess("Subscription " + subID + " expired via payment_intent.payment_failed")
}

func handleSubscriptionDeleted(event stripe.Event) {
	var providerSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &providerSub); err != nil {
		utils.LogError(err, "Error parsing deleted provider subscription")
		return
	}

	var sub models.Subscription
	if err := db.DB.First(&sub, "stripe_subscription_id = ?", providerSub.ID).Error; err != nil {
		logLookupError(err, "local subscription for provider id "+providerSub.ID)
		return
	}
	if sub.Status == models.SubscriptionCanceled {
		return
	}

	now := time.Now()
	err := db.DB.Model(&sub).Updates(map[string]interface{}{
		"status":      models.SubscriptionCanceled,
		"canceled_at": &now,
	}).Error
	if err != nil {
		utils.LogError(err, "Error canceling subscription from provider deletion")
		return
	}
	utils.LogSuccess("Subscription " + sub.ID + " canceled via customer.subscription.deleted")
}

func handleSubscriptionUpdated(event stripe.Event) {
	var providerSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &providerSub); err != nil {
		utils.LogError(err, "Error parsing updated provider subscription")
		return
	}

	status, ok := billing.MapProviderStatus(string(providerSub.Status))
	if !ok {
		utils.LogError(nil, "Unmapped provider subscription status "+string(providerSub.Status)+", ignored")
		return
	}

	var sub models.Subscription
	if err := db.DB.First(&sub, "stripe_subscription_id = ?", providerSub.ID).Error; err != nil {
		logLookupError(err, "local subscription for provider id "+providerSub.ID)
		return
	}
	if sub.Status == status {
		return
	}
	if sub.Status.IsTerminal() && status == models.SubscriptionActive {
		// Terminal rows never reactivate; a new purchase creates a new row.
		utils.LogError(nil, "Provider reactivation of terminal subscription "+sub.ID+", ignored")
		return
	}

	updates := map[string]interface{}{"status": status}
	if status == models.SubscriptionCanceled && sub.CanceledAt == nil {
		now := time.Now()
		updates["canceled_at"] = &now
	}

	if err := db.DB.Model(&sub).Updates(updates).Error; err != nil {
		utils.LogError(err, "Error relaying provider status to subscription "+sub.ID)
		return
	}
	utils.LogSuccess("Subscription " + sub.ID + " moved to " + string(status) + " via customer.subscription.updated")
}

func logLookupError(err error, what string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError(nil, "Webhook could not find "+what)
		return
	}
	utils.LogError(err, "Webhook lookup failed for "+what)
}
