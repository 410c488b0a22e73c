package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sentinel/vlrstats/internal/cache"
	"github.com/sentinel/vlrstats/internal/config"
	"github.com/sentinel/vlrstats/internal/fetch"
	"github.com/sentinel/vlrstats/internal/pipeline"
	"github.com/sentinel/vlrstats/internal/publisher"
	"github.com/sentinel/vlrstats/internal/reconcile"
	"github.com/sentinel/vlrstats/internal/scrape"
	"github.com/sentinel/vlrstats/internal/store"
	"github.com/sentinel/vlrstats/internal/store/repository"
)

func newScrapeCmd() *cobra.Command {
	var (
		seasons    string
		oldestDate string
		delayMS    int
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run one full scrape pass over the configured seasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override the environment.
			if seasons != "" {
				cfg.Seasons = nil
				for _, s := range strings.Split(seasons, ",") {
					if s = strings.TrimSpace(s); s != "" {
						cfg.Seasons = append(cfg.Seasons, s)
					}
				}
			}
			if oldestDate != "" {
				t, err := time.Parse("2006-01-02", oldestDate)
				if err != nil {
					return fmt.Errorf("invalid --oldest date %q: %w", oldestDate, err)
				}
				cfg.OldestDate = t
			}
			if cmd.Flags().Changed("delay-ms") {
				cfg.RequestDelay = time.Duration(delayMS) * time.Millisecond
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputDir = outputDir
			}

			return runScrape(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&seasons, "seasons", "", "comma-separated season IDs, e.g. vct-2023,vct-2024")
	cmd.Flags().StringVar(&oldestDate, "oldest", "", "skip events ending before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&delayMS, "delay-ms", 500, "base delay between requests in milliseconds")
	cmd.Flags().StringVar(&outputDir, "output", "output", "directory for per-entity JSON snapshots")

	return cmd
}

func runScrape(parent context.Context, cfg *config.Config) error {
	log.Printf("→ Starting vlrstats scraper v%s", serviceVersion)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()
	log.Printf("✓ Connected to database")

	if err := db.Init(cfg.OverwriteDB); err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	log.Printf("✓ Database schema ready")

	// Redis is optional for a scrape run: without it pages are not
	// cached and progress is not published, but the run still works.
	var notifier pipeline.Notifier
	fetchOpts := []fetch.Option{}
	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️  Redis unavailable, running without page cache: %v", err)
	} else {
		defer redisCache.Close()
		log.Printf("✓ Connected to Redis")
		fetchOpts = append(fetchOpts, fetch.WithCache(redisCache, cfg.CacheTTL))
		notifier = publisher.NewRedisPublisher(redisCache.Client())
	}

	teamsData, err := scrape.LoadTeamsData()
	if err != nil {
		return err
	}

	client := fetch.NewClient(cfg.RequestDelay, fetchOpts...)

	seasonEx := scrape.NewSeasonExtractor(client, cfg.BaseURL)
	seasonEx.OldestDate = cfg.OldestDate

	eventRepo := repository.NewEventRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	gameRepo := repository.NewGameRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	orch := pipeline.NewOrchestrator(pipeline.Config{
		Seasons:    cfg.Seasons,
		OldestDate: cfg.OldestDate,
		OutputDir:  cfg.OutputDir,
	}, pipeline.Deps{
		Seasons: seasonEx,
		Events:  scrape.NewEventExtractor(client, cfg.BaseURL),
		Matches: scrape.NewMatchExtractor(client, cfg.BaseURL, teamsData),
		Games:   scrape.NewGameExtractor(client, cfg.BaseURL),

		EventSink: reconcile.NewEventReconciler(db, eventRepo),
		MatchSink: reconcile.NewMatchReconciler(db, matchRepo, teamRepo),
		GameSink:  reconcile.NewGameReconciler(db, gameRepo, playerRepo, statsRepo),

		MatchIndex: matchRepo,
		GameIndex:  gameRepo,

		Notifier: notifier,
	})

	return orch.Run(ctx)
}
