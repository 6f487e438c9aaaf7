package main

import (
	"context"
	"fmt"

	"crowdcube/internal/db"
	"crowdcube/internal/seed"
	"crowdcube/internal/store"

	"github.com/k0kubun/pp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with sample campaigns",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		campaignRepo := store.NewCampaignRepository(pool)

		logrus.Info("Seeding campaigns...")
		if err := seed.SeedCampaigns(ctx, campaignRepo); err != nil {
			return fmt.Errorf("failed to seed campaigns: %w", err)
		}

		campaigns, err := campaignRepo.Campaigns(ctx)
		if err != nil {
			return fmt.Errorf("failed to list seeded campaigns: %w", err)
		}
		pp.Println(campaigns)

		logrus.Info("Campaigns seeded successfully")

		return nil
	},
}
