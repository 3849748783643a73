package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/atvouzx/dapur/internal/recipes"
	"github.com/atvouzx/dapur/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// RecipeLister fetches one page of recipes.
type RecipeLister interface {
	ListRecipes(ctx context.Context, params recipes.ListParams) (recipes.RecipeList, error)
}

// FavoriteLister fetches a user's favorites.
type FavoriteLister interface {
	ListFavorites(ctx context.Context, userIdentifier string) ([]recipes.Favorite, error)
}

// Sources are the services the poller reads from.
type Sources struct {
	Recipes   RecipeLister
	Favorites FavoriteLister
	User      string
	Log       logrus.FieldLogger
}

// StartPoller launches a background goroutine that refreshes the store. The
// wait between polls doubles with each consecutive failure, up to maxBackoff.
// It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, src Sources, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			_ = refresh(ctx, store, src)

			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff returns base doubled once per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// refresh fetches the current recipe page and the user's favorites into the
// store. The list query is read from the store so UI changes take effect on
// the next poll.
func refresh(ctx context.Context, store *state.Store, src Sources) error {
	log := src.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	query := store.Query()
	list, err := src.Recipes.ListRecipes(ctx, query)
	if err != nil {
		err = fmt.Errorf("list recipes: %w", err)
		store.Update(nil, nil, err)
		log.WithError(err).WithField("page", query.Page).Warn("recipe poll failed")
		return err
	}

	var favorites []recipes.Favorite
	if src.Favorites != nil && src.User != "" {
		favorites, err = src.Favorites.ListFavorites(ctx, src.User)
		if err != nil {
			err = fmt.Errorf("list favorites: %w", err)
			store.Update(nil, nil, err)
			log.WithError(err).Warn("favorites poll failed")
			return err
		}
	}

	store.Update(&list, favorites, nil)
	log.WithFields(logrus.Fields{
		"recipes":   len(list.Recipes),
		"favorites": len(favorites),
		"page":      list.Pagination.Page,
	}).Debug("poll complete")
	return nil
}
