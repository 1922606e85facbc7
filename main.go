package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/config"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/database"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/logger"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/monitoring"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/routes"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/services"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	migrate := flag.Bool("migrate", false, "启动时执行数据库迁移")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	gin.SetMode(cfg.Server.Mode)
	utils.InitJWT(cfg.JWT.Secret)
	services.ChallengeListTTL = cfg.Cache.ChallengeListTTL

	if err := database.Connect(&cfg.Database); err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Log.Info("Database connection established")

	if *migrate {
		if err := database.MigrateTables(); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
	}

	// Redis 只服务于缓存，连不上降级为直查数据库
	if err := database.InitRedis(&cfg.Redis); err != nil {
		logger.Log.Warn("Redis unavailable, challenge list cache disabled", zap.Error(err))
	}

	monitoring.Init()

	r := routes.SetupRouter()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
