package main

import (
	"github.com/skillvento/skillvento/internal/config"
	"github.com/skillvento/skillvento/internal/database"
	"github.com/skillvento/skillvento/internal/env"
	"github.com/skillvento/skillvento/internal/model"
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

	migrateErr := db.AutoMigrate(&model.User{}, &model.Certificate{})
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}
}
