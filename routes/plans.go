package routes

import (
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/plans"
	"github.com/LauraM111/jobtowners-backend-sub001/middleware"

	"github.com/gin-gonic/gin"
)

func PlansRoutes(r *gin.Engine, h *plans.Handler) {
	plansGroup := r.Group("/subscription-plans")
	{
		plansGroup.GET("", h.ListPlans)
		plansGroup.GET("/:id", h.GetPlan)
		plansGroup.POST("", middleware.AdminAuth(), h.CreatePlan)
		plansGroup.PATCH("/:id", middleware.AdminAuth(), h.UpdatePlan)
		plansGroup.DELETE("/:id", middleware.AdminAuth(), h.ArchivePlan)
	}
}
