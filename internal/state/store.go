package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/atvouzx/dapur/internal/recipes"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Query               recipes.ListParams
	Recipes             []recipes.Recipe
	Pagination          recipes.Pagination
	Favorites           []recipes.Favorite
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// FavoriteIDs returns the set of favorited recipe ids.
func (s Snapshot) FavoriteIDs() map[string]bool {
	ids := make(map[string]bool, len(s.Favorites))
	for _, f := range s.Favorites {
		ids[f.RecipeID] = true
	}
	return ids
}

// IsFavorite reports whether recipeID is among the favorites.
func (s Snapshot) IsFavorite(recipeID string) bool {
	for _, f := range s.Favorites {
		if f.RecipeID == recipeID {
			return true
		}
	}
	return false
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored recipe page and favorites. When err is non-nil
// the previous data is kept but the error is recorded for visibility.
func (s *Store) Update(list *recipes.RecipeList, favorites []recipes.Favorite, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if list != nil {
		s.snapshot.Recipes = cloneRecipes(list.Recipes)
		s.snapshot.Pagination = list.Pagination
		s.snapshot.HasData = true
	}
	s.snapshot.Favorites = cloneFavorites(favorites)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Query returns the list parameters the poller should fetch with.
func (s *Store) Query() recipes.ListParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Query
}

// SetQuery records new list parameters. The recipe page is left in place
// until the next successful Update.
func (s *Store) SetQuery(q recipes.ListParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Query = q
}

// MarkFavorite applies the result of a favorite toggle without waiting for
// the next poll.
func (s *Store) MarkFavorite(recipeID string, favorited bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.snapshot.Favorites[:0:0]
	for _, f := range s.snapshot.Favorites {
		if f.RecipeID != recipeID {
			kept = append(kept, f)
		}
	}
	if favorited {
		fav := recipes.Favorite{RecipeID: recipeID}
		for _, r := range s.snapshot.Recipes {
			if r.ID == recipeID {
				fav.Recipe = r
				break
			}
		}
		if fav.Recipe.ID == "" {
			fav.Recipe.ID = recipeID
		}
		kept = append(kept, fav)
	}
	s.snapshot.Favorites = kept
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Recipes = cloneRecipes(s.snapshot.Recipes)
	snap.Favorites = cloneFavorites(s.snapshot.Favorites)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneRecipes(items []recipes.Recipe) []recipes.Recipe {
	if len(items) == 0 {
		return nil
	}
	dup := make([]recipes.Recipe, len(items))
	copy(dup, items)
	return dup
}

func cloneFavorites(items []recipes.Favorite) []recipes.Favorite {
	if len(items) == 0 {
		return nil
	}
	dup := make([]recipes.Favorite, len(items))
	copy(dup, items)
	return dup
}
