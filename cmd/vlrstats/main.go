package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

const serviceVersion = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:     "vlrstats",
		Short:   "Incremental vlr.gg match statistics collector",
		Version: serviceVersion,
		Long: `vlrstats walks vlr.gg season pages down to per-game stat tabs and
reconciles everything into Postgres. Runs are incremental: matches and
games already collected are skipped, so an interrupted run can simply
be restarted.`,
	}

	root.AddCommand(newScrapeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newInitDBCmd())

	if err := root.Execute(); err != nil {
		log.Printf("⚠️  %v", err)
		os.Exit(1)
	}
}
