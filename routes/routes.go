package routes

import (
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/handlers/ping"
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/plans"
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/subscriptions"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter(plansHandler *plans.Handler, subscriptionsHandler *subscriptions.Handler) *gin.Engine {

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pingHandler := ping.New()
	r.GET("/ping", pingHandler.HandlePing)

	AuthRoutes(r)
	UsersRoutes(r)
	ContactsRoutes(r)
	PlansRoutes(r, plansHandler)
	SubscriptionsRoutes(r, subscriptionsHandler)
	JobsRoutes(r)
	MessagesRoutes(r)

	return r
}
