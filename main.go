package main

import (
	"log"
	"os"

	"github.com/LauraM111/jobtowners-backend-sub001/billing"
	"github.com/LauraM111/jobtowners-backend-sub001/catalog"
	"github.com/LauraM111/jobtowners-backend-sub001/db"
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/plans"
	"github.com/LauraM111/jobtowners-backend-sub001/handlers/subscriptions"
	"github.com/LauraM111/jobtowners-backend-sub001/routes"
	"github.com/LauraM111/jobtowners-backend-sub001/subscription"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"
	"github.com/LauraM111/jobtowners-backend-sub001/worker"

	"github.com/gin-gonic/gin"
)

// @title JobTowners API
// @version 1.0
// @description Job board API with subscription billing
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()
	db.InitRedis()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Warning: Cloudinary initialization failed: %v", err)
		log.Println("Resume uploads will not work correctly.")
	}

	gateway := billing.New(os.Getenv("STRIPE_SECRET_KEY"))
	planCatalog := catalog.New(db.DB, gateway)
	lifecycle := subscription.NewService(db.DB, gateway)

	checker := worker.NewChecker(db.DB, db.Redis)
	go checker.Start()

	dispatcher := worker.NewOutboxDispatcher(db.DB, gateway)
	go dispatcher.Start()

	r := routes.SetupRouter(
		plans.NewHandler(planCatalog),
		subscriptions.NewHandler(lifecycle),
	)

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
