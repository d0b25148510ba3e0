package commands

import (
	"fmt"

	"github.com/linyc/twmonitor/internal/market"
	"github.com/linyc/twmonitor/internal/market/yahoo"
	"github.com/linyc/twmonitor/internal/monitor"
	"github.com/linyc/twmonitor/internal/notify"
	"github.com/linyc/twmonitor/internal/store"
	"github.com/linyc/twmonitor/pkg/config"
	"github.com/linyc/twmonitor/pkg/httputil"
	"github.com/linyc/twmonitor/pkg/logger"
	"github.com/linyc/twmonitor/pkg/redis"
)

// app bundles the wired collaborators shared by the commands.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	redis     *redis.Client
	store     *store.Store
	watchlist *config.Watchlist
	assembler *market.Assembler
	runner    *monitor.Runner
	notifier  *notify.LineClient
}

// buildApp loads config and wires the full invocation pipeline.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	watchlist, err := config.LoadWatchlist(cfg.Monitor.WatchlistPath)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	stateStore := store.New(redisClient, log)

	// Separate HTTP clients per upstream: the LINE client carries an
	// Authorization header that must not leak to Yahoo.
	yahooHTTP := httputil.New(log).WithRateLimiter(
		redis.NewRateLimiter(redisClient, "twmonitor"),
		redis.YahooRateLimit,
	)
	lineHTTP := httputil.New(log)

	yahooClient := yahoo.NewClient(cfg, yahooHTTP, log)
	assembler := market.NewAssembler(yahooClient, log)

	notifier := notify.NewLineClient(cfg, lineHTTP, log)

	gate := monitor.NewGate(stateStore, log)
	evaluator := monitor.NewEvaluator(stateStore, watchlist.Thresholds, log)
	runner := monitor.NewRunner(cfg, watchlist, gate, assembler, evaluator, notifier, log)

	return &app{
		cfg:       cfg,
		log:       log,
		redis:     redisClient,
		store:     stateStore,
		watchlist: watchlist,
		assembler: assembler,
		runner:    runner,
		notifier:  notifier,
	}, nil
}

// Close releases held connections.
func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
