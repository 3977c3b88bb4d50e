package wallet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bipwallet/deeplink/foundation/minter/wallet"
)

const abandon = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestPrivateKeyFromMnemonic(t *testing.T) {
	key, err := wallet.PrivateKeyFromMnemonic(abandon)
	require.NoError(t, err)

	assert.Equal(t, "Mx9858effd232b4033e47d90003d41ec34ecaeda94", wallet.Address(key.PublicKey))

	// Extra whitespace does not change the account.
	again, err := wallet.PrivateKeyFromMnemonic("  " + strings.ReplaceAll(abandon, " ", "   ") + "\n")
	require.NoError(t, err)
	assert.Equal(t, key.D, again.D)
}

func TestInvalidMnemonic(t *testing.T) {
	_, err := wallet.PrivateKeyFromMnemonic("abandon abandon abandon")
	assert.ErrorIs(t, err, wallet.ErrInvalidMnemonic)

	assert.False(t, wallet.IsValidMnemonic(strings.Replace(abandon, "about", "abandon", 1)))
}

func TestNewMnemonic(t *testing.T) {
	mnemonic, err := wallet.NewMnemonic()
	require.NoError(t, err)

	assert.Len(t, strings.Fields(mnemonic), 12)
	assert.True(t, wallet.IsValidMnemonic(mnemonic))

	_, err = wallet.PrivateKeyFromMnemonic(mnemonic)
	assert.NoError(t, err)
}

func TestParseAddress(t *testing.T) {
	tt := []struct {
		in  string
		out string
		ok  bool
	}{
		{"Mx9858effd232b4033e47d90003d41ec34ecaeda94", "Mx9858effd232b4033e47d90003d41ec34ecaeda94", true},
		{"0x9858EfFD232B4033E47d90003D41EC34EcaEda94", "Mx9858effd232b4033e47d90003d41ec34ecaeda94", true},
		{"9858effd232b4033e47d90003d41ec34ecaeda94", "", false},
		{"Mx9858", "", false},
		{"Mxzz58effd232b4033e47d90003d41ec34ecaeda94", "", false},
	}

	for i, tc := range tt {
		addr, err := wallet.ParseAddress(tc.in)
		if !tc.ok {
			if err == nil {
				t.Errorf("[case:%d] %q: expected an error", i, tc.in)
			}
			continue
		}

		if err != nil {
			t.Errorf("[case:%d] %q: unexpected error: %v", i, tc.in, err)
			continue
		}
		if got := wallet.FormatAddress(addr); got != tc.out {
			t.Errorf("[case:%d] expected %s, got %s", i, tc.out, got)
		}
	}
}
