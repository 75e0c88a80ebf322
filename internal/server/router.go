// Package server assembles the gin engine for the back-office API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"adops/internal/middleware"
	"adops/internal/modules/ads"
	"adops/internal/modules/advertiser"
	"adops/internal/modules/catalog"
	"adops/internal/modules/invoice"
	"adops/internal/modules/reconciliation"
	"adops/internal/modules/settings"
	"adops/internal/pkg/jwt"
	"adops/internal/pkg/response"
)

type RouterConfig struct {
	Release     bool
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig, db *gorm.DB, svc *Services, tokens *jwt.Service, log logrus.FieldLogger) *gin.Engine {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(log),
		middleware.AccessLog(log),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.GET("/health", health(db))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(tokens), middleware.StaffOrAdmin())
	admin := v1.Group("")
	admin.Use(middleware.AdminOnly())

	ads.NewHandler(svc.Ads).RegisterRoutes(v1)
	advertiser.NewHandler(svc.Advertisers).RegisterRoutes(v1)
	invoice.NewHandler(svc.Invoices).RegisterRoutes(v1)
	reconciliation.NewHandler(svc.Reconciliation).RegisterRoutes(v1)
	catalog.NewHandler(svc.Catalog).RegisterRoutes(v1, admin)
	settings.NewHandler(svc.Settings).RegisterRoutes(v1, admin)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})
	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
