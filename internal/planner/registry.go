package planner

import (
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/generics"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers/astar"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers/bfs"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/state"
	"github.com/pkg/errors"
)

// SearcherBuilder creates a searcher for the given space and configuration.
type SearcherBuilder func(space *state.Space, cfg config.Config) searchers.Searcher[state.TravelState]

var (
	// Registered searchers, by name.
	keywordToSearchers = make(map[string]SearcherBuilder)
)

// RegisterSearcher so it can be selected by name with Config.Searcher.
// Registering a name twice replaces the previous builder.
func RegisterSearcher(name string, builder SearcherBuilder) {
	keywordToSearchers[name] = builder
}

// RegisteredSearchers returns the sorted names of the registered searchers.
func RegisteredSearchers() []string {
	return generics.KeysSlice(keywordToSearchers)
}

func newSearcher(space *state.Space, cfg config.Config) (searchers.Searcher[state.TravelState], error) {
	builder, found := keywordToSearchers[cfg.Searcher]
	if !found {
		return nil, errors.Errorf("unknown searcher %q, registered searchers are %q", cfg.Searcher, RegisteredSearchers())
	}
	return builder(space, cfg), nil
}

func init() {
	RegisterSearcher(config.SearcherAStar, func(space *state.Space, cfg config.Config) searchers.Searcher[state.TravelState] {
		return astar.New[state.TravelState](space).WithMaxExpansions(cfg.MaxExpansions)
	})
	RegisterSearcher(config.SearcherBFS, func(space *state.Space, cfg config.Config) searchers.Searcher[state.TravelState] {
		return bfs.New[state.TravelState](space).WithMaxExpansions(cfg.MaxExpansions)
	})
}
