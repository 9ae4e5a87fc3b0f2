package infra

import (
	"fmt"
	"log"

	"github.com/KacperKuznik/image-hosting-api/config"
	"github.com/KacperKuznik/image-hosting-api/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type PostgresClient struct {
	DB *gorm.DB
}

func InitPostgresClient(cfg *config.EnvConfig) *PostgresClient {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Postgres.Host,
		cfg.Postgres.Username,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Postgres: %v", err))
	}

	if err := db.AutoMigrate(
		&entity.UserTier{},
		&entity.User{},
		&entity.Image{},
		&entity.Thumbnail{},
	); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}

	if err := seedDefaultTier(db); err != nil {
		panic(fmt.Sprintf("Failed to seed default tier: %v", err))
	}

	log.Println("Connected to Postgres:", cfg.Postgres.Host+":"+cfg.Postgres.Port)

	return &PostgresClient{DB: db}
}

// seedDefaultTier guarantees the fallback tier row exists so the users FK
// (ON DELETE SET DEFAULT) always has somewhere to land.
func seedDefaultTier(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.UserTier{}).Where("id = ?", entity.DefaultTierID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	def := entity.DefaultTier()
	return db.Create(&def).Error
}
