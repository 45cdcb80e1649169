package postgres

import (
	"log"

	"github.com/leadrun/fulfillment-service/internal/config"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.FulfillmentConfig) *gorm.DB {
	dsn := cfg.FulfillmentDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	err = db.AutoMigrate(
		&models.LeadModel{},
		&models.NetworkLogModel{},
		&models.BrokerLogModel{},
		&models.ProxyReservationModel{},
		&models.OrderModel{},
		&models.BrokerModel{},
		&models.ProxyModel{},
		&models.FingerprintModel{},
	)
	if err != nil {
		log.Fatalf("failed to run migrations: %v\n", err.Error())
	}

	return db
}
