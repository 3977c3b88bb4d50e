package coin_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bipwallet/deeplink/foundation/minter/coin"
)

func TestIsValidSymbol(t *testing.T) {
	tt := []struct {
		symbol string
		valid  bool
	}{
		{"BIP", true},
		{"MNT", true},
		{"LP-12", true},
		{"bip", true},
		{"AB", false},
		{"", false},
		{"BIP COIN", false},
		{"BIP_1", false},
		{"ÄÖÜ", false},
		{string(make([]byte, 101)), false},
	}

	for i, tc := range tt {
		if got := coin.IsValidSymbol(tc.symbol); got != tc.valid {
			t.Errorf("[case:%d] %q: expected %v, got %v", i, tc.symbol, tc.valid, got)
		}
	}
}

func TestStore(t *testing.T) {
	s := coin.NewStore(
		coin.Coin{ID: 1, Symbol: "HUB"},
		coin.Coin{ID: 0, Symbol: "BIP"},
	)

	c, ok := s.CoinByID(1)
	require.True(t, ok)
	assert.Equal(t, "HUB", c.Symbol)

	c, ok = s.CoinBySymbol("hub")
	require.True(t, ok)
	assert.Equal(t, uint64(1), c.ID)

	_, ok = s.CoinByID(42)
	assert.False(t, ok)

	coins := s.Copy()
	require.Len(t, coins, 2)
	assert.Equal(t, "BIP", coins[0].Symbol)

	s.Replace([]coin.Coin{{ID: 7, Symbol: "USDX"}})
	assert.Equal(t, 1, s.Count())
	_, ok = s.CoinBySymbol("HUB")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "coins.yaml")
	require.NoError(t, os.WriteFile(good, []byte("coins:\n  - id: 0\n    symbol: MNT\n  - id: 3\n    symbol: TESTCOIN\n    crr: 80\n"), 0600))

	coins, err := coin.LoadFile(good)
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, uint(80), coins[1].Crr)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("coins:\n  - id: 9\n    symbol: X\n"), 0600))

	_, err = coin.LoadFile(bad)
	assert.Error(t, err)
}
