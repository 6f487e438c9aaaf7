package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crowdcube/internal/db"
	"crowdcube/internal/server"
	"crowdcube/internal/storage"
	"crowdcube/internal/store"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	campaignRepo := store.NewCampaignRepository(pool)
	donationRepo := store.NewDonationRepository(pool)

	var photos server.PhotoStorage
	if config.StorageBucketName != "" {
		awsConfig, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return err
		}
		photos = storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.StorageBucketName, config.StorageBaseURL)
	} else {
		logger.Warn("no storage bucket configured, photo uploads disabled")
	}

	srv, err := server.New(config, logger, campaignRepo, donationRepo, photos)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Info("http server listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("http server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
