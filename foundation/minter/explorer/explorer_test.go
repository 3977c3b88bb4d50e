package explorer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/minter/explorer"
)

const coinsBody = `{"data":[
	{"id":0,"symbol":"MNT","crr":0},
	{"id":1,"symbol":"HUB","name":"Hub","crr":80,"max_supply":"1000"},
	{"id":2,"symbol":"B!"}
]}`

func server(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/coins" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestCoins(t *testing.T) {
	srv := server(t, http.StatusOK, coinsBody)

	coins, err := explorer.New(srv.URL, time.Second).Coins(context.Background())
	require.NoError(t, err)

	require.Len(t, coins, 2)
	assert.Equal(t, coin.Coin{ID: 1, Symbol: "HUB", Name: "Hub", Crr: 80, MaxSupply: "1000"}, coins[1])
}

func TestCoinsBadStatus(t *testing.T) {
	srv := server(t, http.StatusBadGateway, `{}`)

	_, err := explorer.New(srv.URL, time.Second).Coins(context.Background())
	assert.Error(t, err)
}

func TestSyncer(t *testing.T) {
	srv := server(t, http.StatusOK, coinsBody)

	store := coin.NewStore(coin.Coin{ID: 9, Symbol: "OLD"})

	var events []string
	ev := func(v string, args ...any) {
		events = append(events, v)
	}

	var changed int

	s := explorer.NewSyncer(explorer.New(srv.URL, time.Second), store, time.Hour, ev)
	s.OnChange(func() { changed++ })
	s.Start()
	s.Shutdown()

	assert.Equal(t, 1, changed)
	assert.Equal(t, 2, store.Count())
	_, ok := store.CoinBySymbol("OLD")
	assert.False(t, ok)
	assert.Contains(t, events, "explorer: sync: loaded %d coins")
}

func TestSyncerKeepsTableOnError(t *testing.T) {
	srv := server(t, http.StatusInternalServerError, `oops`)

	store := coin.NewStore(coin.Coin{ID: 0, Symbol: "MNT"})

	s := explorer.NewSyncer(explorer.New(srv.URL, time.Second), store, time.Hour, nil)
	s.OnChange(func() { t.Error("store must not change on a failed sync") })
	s.Sync()

	assert.Equal(t, 1, store.Count())
}
