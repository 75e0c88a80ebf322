// Command recalc rebuilds every advertiser's cached spend and next ad date.
// Run it after failed refreshes or manual data fixes.
package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"adops/internal/config"
	"adops/internal/database"
	"adops/internal/logger"
	"adops/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Logger())

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	services := server.NewServices(db, log, cfg.Location())
	n, err := services.Advertisers.RecalculateAll(ctx)
	if err != nil {
		log.WithError(err).WithField("recalculated", n).Error("recalculation finished with failures")
		os.Exit(1)
	}
	log.WithField("recalculated", n).Info("recalculation completed")
}
