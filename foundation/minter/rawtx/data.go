package rawtx

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Data is implemented by every type specific transaction payload.
type Data interface {
	TxType() Type
}

// PublicKey identifies a validator.
type PublicKey [32]byte

// String returns the Mp prefixed hex form of the key.
func (pk PublicKey) String() string {
	return "Mp" + hex.EncodeToString(pk[:])
}

// Symbol is the fixed width on-chain form of a coin symbol.
type Symbol [10]byte

// String trims the zero padding.
func (s Symbol) String() string {
	return string(bytes.TrimRight(s[:], "\x00"))
}

// NewSymbol pads the symbol to its on-chain width.
func NewSymbol(s string) Symbol {
	var sym Symbol
	copy(sym[:], s)
	return sym
}

// SendData moves coins to another address.
type SendData struct {
	Coin  uint64
	To    common.Address
	Value *big.Int
}

// SellData sells an exact amount of one coin for another.
type SellData struct {
	CoinToSell        uint64
	ValueToSell       *big.Int
	CoinToBuy         uint64
	MinimumValueToBuy *big.Int
}

// SellAllData sells the whole balance of a coin.
type SellAllData struct {
	CoinToSell        uint64
	CoinToBuy         uint64
	MinimumValueToBuy *big.Int
}

// BuyData buys an exact amount of one coin.
type BuyData struct {
	CoinToBuy          uint64
	ValueToBuy         *big.Int
	CoinToSell         uint64
	MaximumValueToSell *big.Int
}

// CreateCoinData registers a new coin.
type CreateCoinData struct {
	Name                 string
	Symbol               Symbol
	InitialAmount        *big.Int
	InitialReserve       *big.Int
	ConstantReserveRatio uint32
	MaxSupply            *big.Int
}

// DeclareCandidacyData registers a new validator candidate.
type DeclareCandidacyData struct {
	Address    common.Address
	PubKey     PublicKey
	Commission uint32
	Coin       uint64
	Stake      *big.Int
}

// DelegateData stakes coins to a validator.
type DelegateData struct {
	PubKey PublicKey
	Coin   uint64
	Value  *big.Int
}

// UnbondData withdraws a stake from a validator.
type UnbondData struct {
	PubKey PublicKey
	Coin   uint64
	Value  *big.Int
}

// RedeemCheckData cashes a check. Proof may be empty when the check is
// redeemed with a password supplied alongside the link.
type RedeemCheckData struct {
	RawCheck []byte
	Proof    []byte
}

// SetCandidateData switches a candidate on or off, depending on the type.
type SetCandidateData struct {
	PubKey PublicKey
	Online bool `rlp:"-"`
}

// CreateMultisigData creates a multisignature address.
type CreateMultisigData struct {
	Threshold uint32
	Weights   []uint32
	Addresses []common.Address
}

// MultisendData moves coins to several addresses at once.
type MultisendData struct {
	List []SendData
}

// EditCandidateData changes the addresses attached to a candidate.
type EditCandidateData struct {
	PubKey         PublicKey
	RewardAddress  common.Address
	OwnerAddress   common.Address
	ControlAddress common.Address
}

// TxType implements the Data interface.
func (SendData) TxType() Type             { return TypeSend }
func (SellData) TxType() Type             { return TypeSell }
func (SellAllData) TxType() Type          { return TypeSellAll }
func (BuyData) TxType() Type              { return TypeBuy }
func (CreateCoinData) TxType() Type       { return TypeCreateCoin }
func (DeclareCandidacyData) TxType() Type { return TypeDeclareCandidacy }
func (DelegateData) TxType() Type         { return TypeDelegate }
func (UnbondData) TxType() Type           { return TypeUnbond }
func (RedeemCheckData) TxType() Type      { return TypeRedeemCheck }
func (CreateMultisigData) TxType() Type   { return TypeCreateMultisig }
func (MultisendData) TxType() Type        { return TypeMultisend }
func (EditCandidateData) TxType() Type    { return TypeEditCandidate }

// TxType implements the Data interface.
func (d SetCandidateData) TxType() Type {
	if d.Online {
		return TypeSetCandidateOnline
	}
	return TypeSetCandidateOffline
}

// DecodeData decodes the type specific payload of a transaction.
func DecodeData(t Type, data []byte) (Data, error) {
	var err error
	switch t {
	case TypeSend:
		var d SendData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeSell:
		var d SellData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeSellAll:
		var d SellAllData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeBuy:
		var d BuyData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeCreateCoin:
		var d CreateCoinData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeDeclareCandidacy:
		var d DeclareCandidacyData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeDelegate:
		var d DelegateData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeUnbond:
		var d UnbondData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeRedeemCheck:
		var d RedeemCheckData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeSetCandidateOnline, TypeSetCandidateOffline:
		var d SetCandidateData
		err = rlp.DecodeBytes(data, &d)
		d.Online = t == TypeSetCandidateOnline
		return d, wrapData(t, err)

	case TypeCreateMultisig:
		var d CreateMultisigData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeMultisend:
		var d MultisendData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)

	case TypeEditCandidate:
		var d EditCandidateData
		err = rlp.DecodeBytes(data, &d)
		return d, wrapData(t, err)
	}

	return nil, fmt.Errorf("type %d: %w", byte(t), ErrUnknownType)
}

// EncodeData produces the RLP encoding of a type specific payload.
func EncodeData(d Data) ([]byte, error) {
	return rlp.EncodeToBytes(d)
}

func wrapData(t Type, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s data: %v: %w", t, err, ErrMalformedField)
}
