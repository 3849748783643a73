package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/atvouzx/dapur/internal/api"
	"github.com/atvouzx/dapur/internal/config"
	"github.com/atvouzx/dapur/internal/logging"
	"github.com/atvouzx/dapur/internal/prefs"
	"github.com/atvouzx/dapur/internal/recipes"
	"github.com/atvouzx/dapur/internal/state"
	"github.com/atvouzx/dapur/internal/ui"
)

// Options configure the dapur application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/dapur/prefs.toml
	PollEvery  int    // seconds; zero uses default
	User       string // overrides the configured and stored user identifier
}

// Run boots the dapur TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	logger, closer, err := logging.Setup(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	user, generated := resolveUser(opts.User, cfg.UserIdentifier, &userPrefs)
	if generated {
		if err := prefs.Save(opts.PrefsPath, userPrefs); err != nil {
			logger.WithError(err).Warn("could not persist generated user identifier")
		}
		logger.WithField("user_identifier", user).Info("generated user identifier")
	}

	client, err := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger.WithField("component", "api")),
	)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	recipeSvc := recipes.NewRecipeService(client)
	favoriteSvc := recipes.NewFavoriteService(client)
	reviewSvc := recipes.NewReviewService(client)

	store := &state.Store{}
	store.SetQuery(recipes.ListParams{Page: 1, Limit: cfg.PageSize})

	src := Sources{
		Recipes:   recipeSvc,
		Favorites: favoriteSvc,
		User:      user,
		Log:       logger.WithField("component", "poller"),
	}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	logger.WithFields(logrus.Fields{
		"api_url":  client.BaseURL(),
		"interval": interval.String(),
	}).Info("dapur starting")

	// Start background poller
	StartPoller(ctx, store, src, interval)

	// Do initial refresh to populate store before UI starts
	_ = refresh(ctx, store, src)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		Recipes:   recipeSvc,
		Favorites: favoriteSvc,
		Reviews:   reviewSvc,
		Refresh: func(ctx context.Context) error {
			return refresh(ctx, store, src)
		},
		Config:    &cfg,
		User:      user,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Log:       logger.WithField("component", "ui"),
	}
	err = ui.Run(uiOpts)
	logger.Info("dapur stopped")
	return err
}

// resolveUser picks the identifier used for favorites and reviews: the
// command line wins, then config and environment, then prefs. When none is
// set a new one is generated into p and generated is true.
func resolveUser(flagValue, configured string, p *prefs.Prefs) (user string, generated bool) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, false
	}
	if v := strings.TrimSpace(configured); v != "" {
		return v, false
	}
	generated = p.EnsureUserIdentifier()
	return p.UserIdentifier, generated
}
