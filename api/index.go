package handler

import (
	"log"
	"net/http"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/handlers"
	"github.com/arnavshah/roster-api-go/pkg/logging"
	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var r *gin.Engine

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	if _, err := auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Error("ensure admin", zap.Error(err))
	}
	rules, err := roster.LoadRules(cfg.RulesFile)
	if err != nil {
		logger.Fatal("rules", zap.Error(err))
	}

	h := &handlers.Handler{
		DB:        db,
		Auth:      auth.NewService(cfg.JWTSecret, cfg.MasterSecret),
		Logger:    logger,
		Rules:     rules,
		MaxShifts: cfg.MaxShifts,
	}

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(logging.Middleware(logger), gin.Recovery())
	h.Routes(r)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
