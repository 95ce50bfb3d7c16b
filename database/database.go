package database

import (
	"fmt"
	"log"

	config "github.com/kamande0/meeting_desk/configs"
	"github.com/kamande0/meeting_desk/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Meeting{},
		&models.HostCalendarDay{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedDemoUsers creates one host and one requester from the environment so
// a fresh deployment is usable immediately. Skipped when they exist.
func SeedDemoUsers() {
	seedUser(config.Config("SEED_HOST_EMAIL"), config.Config("SEED_HOST_PASSWORD"), config.Config("SEED_HOST_NAME"), "host")
	seedUser(config.Config("SEED_REQUESTER_EMAIL"), config.Config("SEED_REQUESTER_PASSWORD"), config.Config("SEED_REQUESTER_NAME"), "requester")
}

func seedUser(email, password, fullName, role string) {
	if email == "" || password == "" {
		log.Printf("Seed %s not configured, skipping.", role)
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for seed user: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Seed %s already exists.", role)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash seed password: %v", err)
		return
	}

	user := models.User{
		FullName: fullName,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := DB.Create(&user).Error; err != nil {
		log.Fatalf("🔥 Failed to seed %s user: %v", role, err)
		return
	}

	log.Printf("✅ Seed %s user created successfully", role)
}
