package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Malek-bh/agrical-api/internal/cache"
	"github.com/Malek-bh/agrical-api/internal/config"
	dbpkg "github.com/Malek-bh/agrical-api/internal/db"
	"github.com/Malek-bh/agrical-api/internal/imagestore"
	"github.com/Malek-bh/agrical-api/internal/integrations/classifier"
	"github.com/Malek-bh/agrical-api/internal/integrations/commodity"
	"github.com/Malek-bh/agrical-api/internal/integrations/weather"
	"github.com/Malek-bh/agrical-api/internal/middleware"
	"github.com/Malek-bh/agrical-api/internal/routes"
)

func main() {

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if cfg.SecretKey == "your_secret_key" {
		log.Warn("SECRET_KEY not set, using the development default")
	}

	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,

		Cache:      cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL, log),
		Weather:    weather.NewClient(cfg.WeatherAPIURL, log),
		Commodity:  commodity.NewClient(cfg.CommodityAPIURL, cfg.CommodityAPIKey, log),
		Classifier: classifier.NewClient(cfg.ClassifierURL, log),
		Images:     imagestore.New(context.Background(), cfg.S3Region, cfg.S3Bucket, log),
	})

	log.WithField("addr", cfg.Addr()).Info("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
