package routes

import (
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/users"
	"github.com/LauraM111/jobtowners-backend-sub001/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	usersGroup := r.Group("/users")
	usersGroup.Use(middleware.JWTAuth())
	{
		usersGroup.GET("/me", users.GetMe)
		usersGroup.PUT("/me", users.UpdateMe)
	}
	r.GET("/users", middleware.AdminAuth(), users.ListUsers)
}
