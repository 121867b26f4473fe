package db

import (
	"os"

	"github.com/LauraM111/jobtowners-backend-sub001/models"
	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.LogError(err, "Warning: impossible to load the .env file")
		utils.LogInfo("The environment variable DB_URL must be defined in the system environment")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		utils.LogError(nil, "Variable DB_URL not defined")
		panic("Database URL not configured")
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: utils.GetGormLogger(),
	})
	if err != nil {
		utils.LogError(err, "Error connecting to the database")
		panic("Could not connect to the database")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.SubscriptionPlan{},
		&models.Subscription{},
		&models.BillingOutbox{},
		&models.JobOffer{},
		&models.JobApplication{},
		&models.Message{},
	)
	if err != nil {
		utils.LogError(err, "Error migrating database")
		panic("Could not migrate database")
	}

	// The duplicate-active check in the lifecycle service is not atomic on its
	// own; this partial index makes concurrent duplicate subscribes lose at
	// the database instead.
	err = DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_one_active
		 ON subscriptions (user_id, plan_id) WHERE status = 'active'`,
	).Error
	if err != nil {
		utils.LogError(err, "Error creating unique active subscription index")
		panic("Could not create unique active subscription index")
	}

	utils.LogSuccess("Database connection successful")
}
