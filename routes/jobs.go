package routes

import (
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/applications"
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/jobs"
	"github.com/LauraM111/jobtowners-backend-sub001/middleware"
	"github.com/LauraM111/jobtowners-backend-sub001/models"

	"github.com/gin-gonic/gin"
)

func JobsRoutes(r *gin.Engine) {
	r.GET("/jobs", jobs.GetPublishedJobOffers)
	r.GET("/jobs/:id", jobs.GetJobOfferByID)

	employerGroup := r.Group("/jobs")
	employerGroup.Use(middleware.RoleAuth(models.EmployerRole, models.AdminRole))
	{
		employerGroup.POST("", jobs.CreateJobOffer)
		employerGroup.GET("/mine", jobs.GetMyJobOffers)
		employerGroup.PUT("/:id", jobs.UpdateJobOffer)
		employerGroup.DELETE("/:id", jobs.DeleteJobOffer)
		employerGroup.GET("/:id/applications", applications.GetApplicationsForOffer)
	}

	r.POST("/jobs/:id/applications", middleware.RoleAuth(models.CandidateRole), applications.CreateApplication)
}
