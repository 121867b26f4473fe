package routes

import (
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/subscriptions"
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/webhooks"
	"github.com/LauraM111/jobtowners-backend-sub001/middleware"

	"github.com/gin-gonic/gin"
)

func SubscriptionsRoutes(r *gin.Engine, h *subscriptions.Handler) {
	subscriptionsGroup := r.Group("/subscriptions")
	subscriptionsGroup.Use(middleware.JWTAuth())
	{
		subscriptionsGroup.POST("", h.CreateSubscription)
		subscriptionsGroup.POST("/:id/confirm", h.ConfirmSubscription)
		subscriptionsGroup.DELETE("/:id", h.CancelSubscription)
		subscriptionsGroup.GET("", h.MySubscriptions)
	}
	r.POST("/webhooks/provider", webhooks.ProviderWebhookHandler)
}
