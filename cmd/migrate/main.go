package main

import (
	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/database"
	"github.com/narith-dev/RentSign/internal/env"
	"github.com/narith-dev/RentSign/internal/model"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: %+v", cfg.DB)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	migrateErr := db.AutoMigrate(
		&model.Organization{},
		&model.Customer{},
		&model.ContractType{},
		&model.ContractTemplate{},
		&model.Addon{},
		&model.Package{},
		&model.Dress{},
		&model.Contract{},
		&model.ContractAddon{},
		&model.ContractDress{},
		&model.SignLink{},
	)
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}
}
