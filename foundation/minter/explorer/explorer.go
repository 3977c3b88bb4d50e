// Package explorer provides a client for the Minter explorer API and a
// worker that keeps the wallet coin table in sync with it.
package explorer

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bipwallet/deeplink/foundation/minter/coin"
)

// EventHandler defines a function that is called when events
// occur while syncing.
type EventHandler func(v string, args ...any)

// Client talks to an explorer instance.
type Client struct {
	rc *resty.Client
}

// New constructs a client for the explorer at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{rc: rc}
}

type coinsResponse struct {
	Data []struct {
		ID        uint64 `json:"id"`
		Symbol    string `json:"symbol"`
		Name      string `json:"name"`
		Crr       uint   `json:"crr"`
		MaxSupply string `json:"max_supply"`
	} `json:"data"`
}

// Coins retrieves every coin registered on the network. Coins whose symbol
// does not pass validation are skipped.
func (c *Client) Coins(ctx context.Context) ([]coin.Coin, error) {
	var resp coinsResponse
	r, err := c.rc.R().
		SetContext(ctx).
		SetResult(&resp).
		Get("/api/v2/coins")
	if err != nil {
		return nil, fmt.Errorf("requesting coins: %w", err)
	}

	if r.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("requesting coins: unexpected status %d", r.StatusCode())
	}

	coins := make([]coin.Coin, 0, len(resp.Data))
	for _, d := range resp.Data {
		if !coin.IsValidSymbol(d.Symbol) {
			continue
		}
		coins = append(coins, coin.Coin{
			ID:        d.ID,
			Symbol:    d.Symbol,
			Name:      d.Name,
			Crr:       d.Crr,
			MaxSupply: d.MaxSupply,
		})
	}

	return coins, nil
}

// =============================================================================

// Syncer periodically replaces the content of a coin store with the coins
// reported by the explorer.
type Syncer struct {
	client    *Client
	store     *coin.Store
	interval  time.Duration
	evHandler EventHandler
	onChange  func()

	wg   sync.WaitGroup
	shut chan struct{}
}

// NewSyncer constructs a syncer. Nothing runs until Start is called.
func NewSyncer(client *Client, store *coin.Store, interval time.Duration, ev EventHandler) *Syncer {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	return &Syncer{
		client:    client,
		store:     store,
		interval:  interval,
		evHandler: ev,
		shut:      make(chan struct{}),
	}
}

// OnChange registers a function called after every sync that replaced the
// content of the store. It must be called before Start.
func (s *Syncer) OnChange(fn func()) {
	s.onChange = fn
}

// Start performs an initial sync and launches the periodic refresh.
func (s *Syncer) Start() {
	s.Sync()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
}

// Shutdown stops the refresh and waits for it to finish.
func (s *Syncer) Shutdown() {
	s.evHandler("explorer: shutdown: started")
	defer s.evHandler("explorer: shutdown: completed")

	close(s.shut)
	s.wg.Wait()
}

// Sync performs a single refresh of the store.
func (s *Syncer) Sync() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	coins, err := s.client.Coins(ctx)
	if err != nil {
		s.evHandler("explorer: sync: ERROR: %s", err)
		return
	}

	if len(coins) == 0 {
		s.evHandler("explorer: sync: explorer returned no coins, keeping %d", s.store.Count())
		return
	}

	s.store.Replace(coins)
	s.evHandler("explorer: sync: loaded %d coins", len(coins))

	if s.onChange != nil {
		s.onChange()
	}
}

func (s *Syncer) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sync()
		case <-s.shut:
			return
		}
	}
}
