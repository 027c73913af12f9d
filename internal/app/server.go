package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newOpsServer(cfg *config.Config, log logger.Logger) *http.Server {
	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           newOpsEngine(log),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newOpsEngine(log logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		log.Debug("Health check request received", "method", c.Request.Method, "url", c.Request.URL.String())
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return engine
}

func serve(server *http.Server, log logger.Logger) {
	log.Info("Starting ops server", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Ops server failed", "error", err)
	}
}
