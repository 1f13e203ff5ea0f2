package Models

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	dbPath := os.Getenv("VIGIL_DB")
	if dbPath == "" {
		dbPath = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(dbPath))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = connection

	// 1. Base entities with no dependencies
	DB.AutoMigrate(
		&User{},
		&FCMToken{},
		&Template{},
	)

	// 2. Entities keyed on a tenant account
	DB.AutoMigrate(
		&StaffMember{},
		&Zone{},
		&TemplateTask{},
	)

	// 3. Entities depending on zones and staff
	DB.AutoMigrate(
		&Task{},
		&Evidence{},
	)
}
