package confirm_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bipwallet/deeplink/business/confirm"
	"github.com/bipwallet/deeplink/business/deeplink"
	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/minter/rawtx"
)

type names map[string]string

func (n names) Lookup(address string) (string, bool) {
	name, ok := n[address]
	return name, ok
}

var (
	alice = common.HexToAddress("0x9858effd232b4033e47d90003d41ec34ecaeda94")
	bob   = common.HexToAddress("0x7633980c000139dd3bd24a3f54e06474fa941e16")
)

func builder() confirm.Builder {
	return confirm.Builder{
		Coins:    coin.NewStore(coin.Coin{ID: 1, Symbol: "HUB"}),
		Names:    names{"Mx9858effd232b4033e47d90003d41ec34ecaeda94": "alice"},
		BaseCoin: coin.MainnetBaseCoin,
	}
}

func transaction(t *testing.T, d rawtx.Data, hasPassword bool) deeplink.Transaction {
	t.Helper()

	data, err := rawtx.EncodeData(d)
	require.NoError(t, err)

	nonce := uint64(3)

	return deeplink.Transaction{
		ID: "0x01",
		Tx: rawtx.Tx{
			Type:    d.TxType(),
			Data:    data,
			Payload: "thanks",
			Nonce:   &nonce,
			GasCoin: coin.MainnetBaseCoin,
		},
		HasPassword: hasPassword,
	}
}

func pips(whole int64, frac string) *big.Int {
	v, _ := new(big.Int).SetString(frac, 10)
	return v.Add(v, new(big.Int).Mul(big.NewInt(whole), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)))
}

// =============================================================================

func TestBuildSend(t *testing.T) {
	m, err := builder().Build(transaction(t, rawtx.SendData{Coin: 0, To: alice, Value: pips(1, "500000000000000000")}, false))
	require.NoError(t, err)

	assert.Equal(t, "send", m.Type)
	assert.Equal(t, "Send", m.Title)
	assert.Equal(t, "thanks", m.Payload)
	assert.Equal(t, uint64(3), *m.Nonce)
	assert.Nil(t, m.GasPrice)
	assert.Equal(t, coin.MainnetBaseCoin, m.GasCoin)

	assert.Equal(t, []confirm.Field{
		{Title: "Coin", Value: "BIP"},
		{Title: "Amount", Value: "1.5"},
		{Title: "To", Value: "Mx9858effd232b4033e47d90003d41ec34ecaeda94 (alice)"},
	}, m.Fields)
}

func TestBuildMultisend(t *testing.T) {
	d := rawtx.MultisendData{List: []rawtx.SendData{
		{Coin: 1, To: alice, Value: pips(2, "0")},
		{Coin: 42, To: bob, Value: pips(0, "1")},
	}}

	m, err := builder().Build(transaction(t, d, false))
	require.NoError(t, err)

	assert.Equal(t, []confirm.Field{
		{Title: "To #1", Value: "Mx9858effd232b4033e47d90003d41ec34ecaeda94 (alice)"},
		{Title: "Amount #1", Value: "2 HUB"},
		{Title: "To #2", Value: "Mx7633980c000139dd3bd24a3f54e06474fa941e16"},
		{Title: "Amount #2", Value: "0.000000000000000001 #42"},
	}, m.Fields)
}

func TestBuildRedeemCheck(t *testing.T) {
	m, err := builder().Build(transaction(t, rawtx.RedeemCheckData{RawCheck: []byte{0xab}, Proof: []byte{}}, true))
	require.NoError(t, err)

	assert.True(t, m.HasPassword)
	assert.Equal(t, []confirm.Field{
		{Title: "Check", Value: "Mcab"},
		{Title: "Password", Value: "attached"},
	}, m.Fields)
}

func TestBuildDelegate(t *testing.T) {
	var pk rawtx.PublicKey
	pk[31] = 0x0f

	m, err := builder().Build(transaction(t, rawtx.DelegateData{PubKey: pk, Coin: 1, Value: pips(10, "0")}, false))
	require.NoError(t, err)

	assert.Equal(t, "Delegate", m.Title)
	require.Len(t, m.Fields, 3)
	assert.Equal(t, pk.String(), m.Fields[0].Value)
	assert.Equal(t, "HUB", m.Fields[1].Value)
	assert.Equal(t, "10", m.Fields[2].Value)
}

func TestBuildMalformedData(t *testing.T) {
	trx := transaction(t, rawtx.SendData{Coin: 0, To: alice, Value: big.NewInt(1)}, false)
	trx.Tx.Type = rawtx.TypeDelegate

	_, err := builder().Build(trx)
	assert.ErrorIs(t, err, rawtx.ErrMalformedField)
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "0", confirm.Amount(nil))
	assert.Equal(t, "0", confirm.Amount(big.NewInt(0)))
	assert.Equal(t, "1000000", confirm.Amount(pips(1_000_000, "0")))
}
