package main

import (
	"github.com/joho/godotenv"

	"github.com/gaddisale/gaddisale/config"
	"github.com/gaddisale/gaddisale/models"
	"github.com/gaddisale/gaddisale/routes"
	"github.com/gaddisale/gaddisale/utils"
)

func main() {
	// Best-effort .env loading; environment always wins over the file.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.AppUser{},
		&models.Seller{},
		&models.Car{},
		&models.CarImage{},
		&models.Visit{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
