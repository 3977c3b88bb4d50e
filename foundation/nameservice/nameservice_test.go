package nameservice_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bipwallet/deeplink/foundation/minter/wallet"
	"github.com/bipwallet/deeplink/foundation/nameservice"
)

func TestNameService(t *testing.T) {
	dir := t.TempDir()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, crypto.SaveECDSA(filepath.Join(dir, "alice"+nameservice.KeyExt), key))

	ns, err := nameservice.New(dir)
	require.NoError(t, err)

	addr := wallet.Address(key.PublicKey)

	name, ok := ns.Lookup(addr)
	require.True(t, ok)
	assert.Equal(t, "alice", name)

	name, ok = ns.Lookup("0x" + strings.ToUpper(strings.TrimPrefix(addr, "Mx")))
	require.True(t, ok)
	assert.Equal(t, "alice", name)

	_, ok = ns.Lookup("not an address")
	assert.False(t, ok)

	require.NoError(t, ns.Add("Mx9858effd232b4033e47d90003d41ec34ecaeda94", "bob"))
	assert.Error(t, ns.Add("bogus", "carol"))
	assert.Len(t, ns.Copy(), 2)
}

func TestNameServiceMissingFolder(t *testing.T) {
	ns, err := nameservice.New(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, ns.Copy())
}
