package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sentinel/vlrstats/internal/config"
	"github.com/sentinel/vlrstats/internal/store"
)

func newInitDBCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Create the database schema",
		Long:  "Creates all tables and indexes. With --overwrite, existing tables are dropped first and ALL DATA IS LOST.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := store.NewDatabase(cfg.DatabaseDSN)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer db.Close()

			if err := db.Init(overwrite); err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}

			log.Printf("✓ Database schema ready (overwrite=%v)", overwrite)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "drop existing tables first")

	return cmd
}
