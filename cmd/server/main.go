package main

import (
	"log"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/handlers"
	"github.com/arnavshah/roster-api-go/pkg/logging"
	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	h, err := newHandler(cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}

	r := gin.New()
	r.Use(logging.Middleware(logger), gin.Recovery())
	h.Routes(r)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}

func newHandler(cfg *config.Config, logger *zap.Logger) (*handlers.Handler, error) {
	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, err
	}

	created, err := auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info("default admin user created", zap.String("username", cfg.AdminUsername))
	}

	rules, err := roster.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	logger.Info("roster rules loaded",
		zap.Int("pairings", len(rules.Pairings)),
		zap.Int("identities", len(rules.Identities)),
		zap.Int("max_shifts", cfg.MaxShifts))

	return &handlers.Handler{
		DB:        db,
		Auth:      auth.NewService(cfg.JWTSecret, cfg.MasterSecret),
		Logger:    logger,
		Rules:     rules,
		MaxShifts: cfg.MaxShifts,
	}, nil
}
