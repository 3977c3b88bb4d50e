// Package coin maintains the set of coins known to the wallet and the rules
// a coin symbol must follow.
package coin

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"
)

// Base coin symbols of the two public networks. The base coin always has id 0.
const (
	MainnetBaseCoin = "BIP"
	TestnetBaseCoin = "MNT"

	BaseCoinID uint64 = 0
)

var symbolRE = regexp.MustCompile(`^[a-zA-Z0-9-]{3,100}$`)

// IsValidSymbol reports whether the symbol is 3 to 100 characters of
// letters, digits and hyphens.
func IsValidSymbol(symbol string) bool {
	return symbolRE.MatchString(symbol)
}

// Coin represents a coin registered on the network.
type Coin struct {
	ID        uint64 `json:"id" yaml:"id"`
	Symbol    string `json:"symbol" yaml:"symbol"`
	Name      string `json:"name,omitempty" yaml:"name"`
	Crr       uint   `json:"crr,omitempty" yaml:"crr"`
	MaxSupply string `json:"max_supply,omitempty" yaml:"max_supply"`
}

// Store is an in-memory coin table safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	byID     map[uint64]Coin
	bySymbol map[string]uint64
}

// NewStore constructs a store holding the specified coins.
func NewStore(coins ...Coin) *Store {
	s := Store{
		byID:     make(map[uint64]Coin),
		bySymbol: make(map[string]uint64),
	}
	s.Replace(coins)

	return &s
}

// Replace swaps the full content of the table.
func (s *Store) Replace(coins []Coin) {
	byID := make(map[uint64]Coin, len(coins))
	bySymbol := make(map[string]uint64, len(coins))
	for _, c := range coins {
		byID[c.ID] = c
		bySymbol[strings.ToUpper(c.Symbol)] = c.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = byID
	s.bySymbol = bySymbol
}

// CoinByID looks up a coin by its numeric identifier.
func (s *Store) CoinByID(id uint64) (Coin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.byID[id]
	return c, exists
}

// CoinBySymbol looks up a coin by its symbol, ignoring case.
func (s *Store) CoinBySymbol(symbol string) (Coin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.bySymbol[strings.ToUpper(symbol)]
	if !exists {
		return Coin{}, false
	}

	return s.byID[id], true
}

// Count returns the number of coins in the table.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID)
}

// Copy returns all the coins ordered by id.
func (s *Store) Copy() []Coin {
	s.mu.RLock()
	coins := make([]Coin, 0, len(s.byID))
	for _, c := range s.byID {
		coins = append(coins, c)
	}
	s.mu.RUnlock()

	sort.Slice(coins, func(i, j int) bool {
		return coins[i].ID < coins[j].ID
	})

	return coins
}

// =============================================================================

// file is the on disk layout of a coin table.
type file struct {
	Coins []Coin `yaml:"coins"`
}

// LoadFile reads a yaml coin table from disk.
func LoadFile(path string) ([]Coin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing coin table %q: %w", path, err)
	}

	for _, c := range f.Coins {
		if !IsValidSymbol(c.Symbol) {
			return nil, fmt.Errorf("coin table %q: coin %d has invalid symbol %q", path, c.ID, c.Symbol)
		}
	}

	return f.Coins, nil
}
