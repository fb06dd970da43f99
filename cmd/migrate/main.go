package main

import (
	"errors"
	"log"
	"os"

	"report-service-be/internal/model"
	"report-service-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// gen_random_uuid() needs pgcrypto
	color.Cyan("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create extension: %v. Continuing...", err)
	}

	color.Cyan("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.ChartType{},
		&model.ChartConfiguration{},
		&model.SessionWorkflow{},
		&model.MeasuredValue{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	color.Cyan("Step 3: Seeding chart types...")
	seedChartTypes(db)

	color.Green("Migration completed successfully.")
}

type chartTypeSeed struct {
	Code        string
	Name        string
	Description string
}

var chartTypeSeeds = []chartTypeSeed{
	{"bar", "Bar Chart", "Compare values across categories"},
	{"line", "Line Chart", "Show trends over time"},
	{"pie", "Pie Chart", "Show proportions of a whole"},
	{"scatter", "Scatter Plot", "Show correlation between two measures"},
	{"area", "Area Chart", "Show cumulative totals over time"},
	{"table", "Table", "Show raw rows and columns"},
}

// seedChartTypes inserts the built-in chart types, skipping codes that
// already exist so re-running the migration is safe.
func seedChartTypes(db *gorm.DB) {
	for _, seed := range chartTypeSeeds {
		var existing model.ChartType
		err := db.Where("code = ?", seed.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Warn: Failed to check chart type %s: %v", seed.Code, err)
			continue
		}

		chartType := model.ChartType{
			Code:        seed.Code,
			Name:        seed.Name,
			Description: seed.Description,
			IsActive:    true,
		}
		if err := db.Create(&chartType).Error; err != nil {
			log.Printf("Warn: Failed to seed chart type %s: %v", seed.Code, err)
			continue
		}
		color.Green("  seeded chart type: %s", seed.Code)
	}
}
