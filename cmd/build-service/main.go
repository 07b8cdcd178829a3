package main

import (
	"fmt"
	"os"

	"github.com/Konaisya/build-service/internal/auth"
	"github.com/Konaisya/build-service/internal/config"
	"github.com/Konaisya/build-service/internal/db"
	"github.com/Konaisya/build-service/internal/excel"
	httphandler "github.com/Konaisya/build-service/internal/http"
	"github.com/Konaisya/build-service/internal/logger"
	"github.com/Konaisya/build-service/internal/pdf"
	"github.com/Konaisya/build-service/internal/service"
	"github.com/Konaisya/build-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	files := storage.NewStore(cfg.Storage.ImagesDir)

	apartmentService := service.NewApartmentService(database, files)
	houseService := service.NewHouseService(database, apartmentService, files)
	orderService := service.NewOrderService(database, houseService, pdf.NewGenerator(), excel.NewGenerator())

	tokens := auth.NewManager(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	authService := service.NewAuthService(database, tokens)
	userService := service.NewUserService(database)

	handler := httphandler.NewHandler(houseService, apartmentService, orderService, authService, userService, log)
	router := httphandler.NewRouter(handler, authService, cfg.HTTP.AllowedOrigins, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting build service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
