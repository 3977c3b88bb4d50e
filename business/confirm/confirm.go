// Package confirm builds the model behind the transaction confirmation
// screen from a resolved deep link.
package confirm

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/bipwallet/deeplink/business/deeplink"
	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/minter/rawtx"
	"github.com/bipwallet/deeplink/foundation/minter/wallet"
)

// pipDecimals is the number of fractional digits of every coin.
const pipDecimals = 18

// CoinLookup resolves coin ids into coins.
type CoinLookup interface {
	CoinByID(id uint64) (coin.Coin, bool)
}

// NameLookup resolves addresses into account names.
type NameLookup interface {
	Lookup(address string) (string, bool)
}

// Field is a single titled row of the confirmation screen.
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Model is everything the confirmation screen shows.
type Model struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Fields      []Field `json:"fields"`
	Payload     string  `json:"payload,omitempty"`
	Nonce       *uint64 `json:"nonce,omitempty"`
	GasPrice    *uint64 `json:"gas_price,omitempty"`
	GasCoin     string  `json:"gas_coin"`
	HasPassword bool    `json:"has_password"`
}

// Builder constructs confirmation models.
type Builder struct {
	Coins    CoinLookup
	Names    NameLookup
	BaseCoin string
}

// Build decodes the type specific data of the transaction and lays it out
// as screen rows. Data that doesn't decode aborts the build.
func (b Builder) Build(trx deeplink.Transaction) (Model, error) {
	data, err := rawtx.DecodeData(trx.Tx.Type, trx.Tx.Data)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ID:          trx.ID,
		Type:        trx.Tx.Type.String(),
		Title:       titles[trx.Tx.Type],
		Fields:      b.fields(data, trx.HasPassword),
		Payload:     trx.Tx.Payload,
		Nonce:       trx.Tx.Nonce,
		GasPrice:    trx.Tx.GasPrice,
		GasCoin:     trx.Tx.GasCoin,
		HasPassword: trx.HasPassword,
	}

	return m, nil
}

var titles = map[rawtx.Type]string{
	rawtx.TypeSend:                "Send",
	rawtx.TypeSell:                "Sell",
	rawtx.TypeSellAll:             "Sell All",
	rawtx.TypeBuy:                 "Buy",
	rawtx.TypeCreateCoin:          "Create Coin",
	rawtx.TypeDeclareCandidacy:    "Declare Candidacy",
	rawtx.TypeDelegate:            "Delegate",
	rawtx.TypeUnbond:              "Unbond",
	rawtx.TypeRedeemCheck:         "Redeem Check",
	rawtx.TypeSetCandidateOnline:  "Set Candidate On",
	rawtx.TypeSetCandidateOffline: "Set Candidate Off",
	rawtx.TypeCreateMultisig:      "Create Multisig",
	rawtx.TypeMultisend:           "Multisend",
	rawtx.TypeEditCandidate:       "Edit Candidate",
}

func (b Builder) fields(data rawtx.Data, hasPassword bool) []Field {
	switch d := data.(type) {
	case rawtx.SendData:
		return []Field{
			{"Coin", b.symbol(d.Coin)},
			{"Amount", Amount(d.Value)},
			{"To", b.address(d.To)},
		}

	case rawtx.MultisendData:
		fields := make([]Field, 0, 2*len(d.List))
		for i, item := range d.List {
			fields = append(fields,
				Field{fmt.Sprintf("To #%d", i+1), b.address(item.To)},
				Field{fmt.Sprintf("Amount #%d", i+1), Amount(item.Value) + " " + b.symbol(item.Coin)},
			)
		}
		return fields

	case rawtx.SellData:
		return []Field{
			{"Coin To Sell", b.symbol(d.CoinToSell)},
			{"Amount", Amount(d.ValueToSell)},
			{"Coin To Buy", b.symbol(d.CoinToBuy)},
			{"Minimum To Receive", Amount(d.MinimumValueToBuy)},
		}

	case rawtx.SellAllData:
		return []Field{
			{"Coin To Sell", b.symbol(d.CoinToSell)},
			{"Coin To Buy", b.symbol(d.CoinToBuy)},
			{"Minimum To Receive", Amount(d.MinimumValueToBuy)},
		}

	case rawtx.BuyData:
		return []Field{
			{"Coin To Buy", b.symbol(d.CoinToBuy)},
			{"Amount", Amount(d.ValueToBuy)},
			{"Coin To Sell", b.symbol(d.CoinToSell)},
			{"Maximum To Spend", Amount(d.MaximumValueToSell)},
		}

	case rawtx.CreateCoinData:
		return []Field{
			{"Name", d.Name},
			{"Symbol", d.Symbol.String()},
			{"Initial Amount", Amount(d.InitialAmount)},
			{"Initial Reserve", Amount(d.InitialReserve)},
			{"Reserve Ratio", fmt.Sprintf("%d%%", d.ConstantReserveRatio)},
			{"Max Supply", Amount(d.MaxSupply)},
		}

	case rawtx.DeclareCandidacyData:
		return []Field{
			{"Address", b.address(d.Address)},
			{"Public Key", d.PubKey.String()},
			{"Commission", fmt.Sprintf("%d%%", d.Commission)},
			{"Coin", b.symbol(d.Coin)},
			{"Stake", Amount(d.Stake)},
		}

	case rawtx.DelegateData:
		return []Field{
			{"Public Key", d.PubKey.String()},
			{"Coin", b.symbol(d.Coin)},
			{"Amount", Amount(d.Value)},
		}

	case rawtx.UnbondData:
		return []Field{
			{"Public Key", d.PubKey.String()},
			{"Coin", b.symbol(d.Coin)},
			{"Amount", Amount(d.Value)},
		}

	case rawtx.RedeemCheckData:
		fields := []Field{
			{"Check", "Mc" + hex.EncodeToString(d.RawCheck)},
		}
		if hasPassword {
			fields = append(fields, Field{"Password", "attached"})
		}
		return fields

	case rawtx.SetCandidateData:
		return []Field{
			{"Public Key", d.PubKey.String()},
		}

	case rawtx.CreateMultisigData:
		fields := []Field{
			{"Threshold", fmt.Sprintf("%d", d.Threshold)},
		}
		for i, addr := range d.Addresses {
			weight := "0"
			if i < len(d.Weights) {
				weight = fmt.Sprintf("%d", d.Weights[i])
			}
			fields = append(fields,
				Field{fmt.Sprintf("Address #%d", i+1), b.address(addr)},
				Field{fmt.Sprintf("Weight #%d", i+1), weight},
			)
		}
		return fields

	case rawtx.EditCandidateData:
		return []Field{
			{"Public Key", d.PubKey.String()},
			{"Reward Address", b.address(d.RewardAddress)},
			{"Owner Address", b.address(d.OwnerAddress)},
			{"Control Address", b.address(d.ControlAddress)},
		}
	}

	return nil
}

func (b Builder) symbol(id uint64) string {
	if b.Coins != nil {
		if c, exists := b.Coins.CoinByID(id); exists && c.Symbol != "" {
			return c.Symbol
		}
	}

	if id == coin.BaseCoinID && b.BaseCoin != "" {
		return b.BaseCoin
	}

	return fmt.Sprintf("#%d", id)
}

func (b Builder) address(addr common.Address) string {
	s := wallet.FormatAddress(addr)

	if b.Names != nil {
		if name, exists := b.Names.Lookup(s); exists {
			return fmt.Sprintf("%s (%s)", s, name)
		}
	}

	return s
}

// Amount converts a value in pips into a whole coin amount.
func Amount(pips *big.Int) string {
	if pips == nil {
		return "0"
	}

	return decimal.NewFromBigInt(pips, -pipDecimals).String()
}
