package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fractionalquest/repo-agent/internal/models"
)

// Connect opens the Postgres connection and runs migrations. The uniqueness
// constraints the reconciler's upserts target are created here.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	log.Println("[db] Connection established, running migrations...")
	if err := db.AutoMigrate(
		&models.User{},
		&models.RepoPreference{},
		&models.Job{},
		&models.RawJob{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	return db, nil
}
