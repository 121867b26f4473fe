package routes

import (
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/contacts"
	"github.com/LauraM111/jobtowners-backend-sub001/middleware"

	"github.com/gin-gonic/gin"
)

func ContactsRoutes(r *gin.Engine) {
	r.POST("/contact", contacts.CreateContact)
	r.GET("/contact", middleware.AdminAuth(), contacts.GetAllContacts)
	r.GET("/contact/:id", middleware.AdminAuth(), contacts.GetContactByID)
}
