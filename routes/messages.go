package routes

import (
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/applications"
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/messages"
	"github.com/LauraM111/jobtowners-backend-sub001/middleware"

	"github.com/gin-gonic/gin"
)

func MessagesRoutes(r *gin.Engine) {
	messagesGroup := r.Group("/messages")
	messagesGroup.Use(middleware.JWTAuth())
	{
		messagesGroup.POST("", messages.SendMessage)
		messagesGroup.GET("/unread", messages.GetUnreadCount)
	}

	applicationsGroup := r.Group("/applications")
	applicationsGroup.Use(middleware.JWTAuth())
	{
		applicationsGroup.GET("", applications.GetMyApplications)
		applicationsGroup.PATCH("/:id", applications.UpdateApplicationStatus)
		applicationsGroup.GET("/:id/messages", messages.GetConversation)
	}
}
