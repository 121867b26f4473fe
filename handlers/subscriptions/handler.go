package subscriptions

import (
	"errors"
	"net/http"

	"github.com/LauraM111/jobtowners-backend-sub001/billing"
	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/subscription"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *subscription.Service
}

func NewHandler(service *subscription.Service) *Handler {
	return &Handler{service: service}
}

// @Summary Start a subscription
// @Description Create an incomplete subscription and a provider payment handle for the plan
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body models.SubscriptionCreate true "Plan to subscribe to"
// @Security BearerAuth
// @Success 201 {object} subscription.CreateResult
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Plan not found"
// @Failure 409 {object} map[string]string "error: Already subscribed"
// @Failure 502 {object} map[string]string "error: Billing provider error"
// @Router /subscriptions [post]
func (h *Handler) CreateSubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.SubscriptionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if _, err := uuid.Parse(input.PlanID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	result, err := h.service.Create(userID.(string), input.PlanID)
	if err != nil {
		respondLifecycleError(c, userID, err, "CreateSubscription")
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription created, awaiting payment")
	c.JSON(http.StatusCreated, gin.H{
		"subscriptionId":      result.Subscription.ID,
		"paymentHandleSecret": result.ClientSecret,
		"planDetails":         result.Plan,
	})
}

// @Summary Confirm a subscription
// @Description Verify the payment with the provider and activate the subscription. The payment handle id is omitted for free plans.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param confirmation body models.SubscriptionConfirm false "Payment handle"
// @Security BearerAuth
// @Success 200 {object} models.Subscription
// @Failure 400 {object} map[string]string "error: Payment not completed"
// @Failure 404 {object} map[string]string "error: Subscription not found"
// @Failure 409 {object} map[string]string "error: Subscription not confirmable"
// @Failure 502 {object} map[string]string "error: Billing provider error"
// @Router /subscriptions/{id}/confirm [post]
func (h *Handler) ConfirmSubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	var input models.SubscriptionConfirm
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var (
		sub *models.Subscription
		err error
	)
	if input.PaymentIntentId == "" {
		// Try the free path first; paid subscriptions fall through to a full
		// confirm against the intent stored at creation.
		sub, err = h.service.ConfirmFree(userID.(string), id)
		if errors.Is(err, subscription.ErrConflict) {
			sub, err = h.service.Confirm(userID.(string), id, "")
		}
	} else {
		sub, err = h.service.Confirm(userID.(string), id, input.PaymentIntentId)
	}
	if err != nil {
		respondLifecycleError(c, userID, err, "ConfirmSubscription")
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription confirmed and activated")
	c.JSON(http.StatusOK, sub)
}

// @Summary Cancel a subscription
// @Description Cancel an active subscription at the provider and locally
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Subscription canceled successfully"
// @Failure 404 {object} map[string]string "error: Subscription not found"
// @Failure 409 {object} map[string]string "error: Subscription not active"
// @Failure 502 {object} map[string]string "error: Billing provider error"
// @Router /subscriptions/{id} [delete]
func (h *Handler) CancelSubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	if err := h.service.Cancel(userID.(string), id); err != nil {
		respondLifecycleError(c, userID, err, "CancelSubscription")
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription canceled successfully")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled successfully"})
}

// @Summary List the caller's subscriptions
// @Description Return all subscriptions of the connected user, newest first
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subscription
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /subscriptions [get]
func (h *Handler) MySubscriptions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	subs, err := h.service.ListForUser(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching subscriptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

func respondLifecycleError(c *gin.Context, userID interface{}, err error, op string) {
	switch {
	case errors.Is(err, subscription.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription or plan not found"})
	case errors.Is(err, subscription.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Operation conflicts with the subscription state"})
	case errors.Is(err, subscription.ErrPaymentIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment has not completed"})
	case billing.IsGatewayError(err):
		utils.LogErrorWithUser(userID, err, "Billing provider error in "+op)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		utils.LogErrorWithUser(userID, err, "Unexpected error in "+op)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
