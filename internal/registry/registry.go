// Package registry provides a global registry of training game metadata.
// Games register themselves in init() functions, allowing the CLI, the menu
// and the history screens to discover games without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	// ID is the settings key and storage identifier (e.g., "tetris", "nback").
	ID string

	// Title is a human-readable name for display.
	Title string

	// Description explains the task in one sentence.
	Description string

	// Controls lists the default keys, for help screens.
	Controls string

	// Scored is true for games whose answers count toward Score/Total.
	Scored bool

	// Order controls display order; lower comes first.
	Order int
}

var (
	games = make(map[string]GameInfo)
	mu    sync.RWMutex
)

// Register adds a game to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info GameInfo) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: game registered without an ID")
	}
	if _, exists := games[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}

	games[info.ID] = info
}

// List returns all registered games, sorted by Order then ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(games))
	for _, g := range games {
		result = append(result, g)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the metadata for a game ID.
// Returns an error if the game ID is not registered.
func Get(id string) (GameInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	g, ok := games[id]
	if !ok {
		return GameInfo{}, fmt.Errorf("registry: unknown game %q", id)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := games[id]
	return ok
}
