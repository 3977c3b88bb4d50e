// Package rawtx decodes and encodes the shortened transaction format carried
// by wallet deep links.
//
// A shortened transaction is an RLP list:
//
//	[type, data, payload, nonce?, gasPrice?, gasCoin?]
//
// where data is itself the RLP encoding of the type specific fields. Nonce
// and gas price encoded as zero mean "not set" and are resolved at signing
// time. A missing or zero gas coin means the base coin of the network.
package rawtx

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/bipwallet/deeplink/foundation/minter/coin"
)

// Set of errors a decode can fail with.
var (
	ErrMalformedBlob  = errors.New("malformed transaction blob")
	ErrShortList      = errors.New("transaction list is too short")
	ErrUnknownType    = errors.New("unknown transaction type")
	ErrInvalidGasCoin = errors.New("invalid gas coin")
	ErrMalformedField = errors.New("malformed transaction field")
)

// Positions of the fields inside the outer list.
const (
	idxType = iota
	idxData
	idxPayload
	idxNonce
	idxGasPrice
	idxGasCoin

	minItems = idxPayload + 1
)

// CoinLookup resolves a coin identifier into a coin.
type CoinLookup interface {
	CoinByID(id uint64) (coin.Coin, bool)
}

// Tx represents a decoded shortened transaction.
type Tx struct {
	Type      Type    `json:"type"`
	Data      []byte  `json:"data"`
	Payload   string  `json:"payload"`
	Nonce     *uint64 `json:"nonce,omitempty"`
	GasPrice  *uint64 `json:"gas_price,omitempty"`
	GasCoinID *uint64 `json:"gas_coin_id,omitempty"`
	GasCoin   string  `json:"gas_coin"`
}

// Decode extracts a transaction from the RLP encoded blob.
func Decode(blob []byte, coins CoinLookup, baseCoin string) (Tx, error) {
	var items []rlp.RawValue
	if err := rlp.DecodeBytes(blob, &items); err != nil {
		return Tx{}, fmt.Errorf("%w: %v", ErrMalformedBlob, err)
	}

	if len(items) < minItems {
		return Tx{}, fmt.Errorf("%d items: %w", len(items), ErrShortList)
	}

	tag, err := uintAt(items, idxType)
	if err != nil {
		return Tx{}, err
	}

	txType, err := ParseType(tag)
	if err != nil {
		return Tx{}, err
	}

	data, err := bytesAt(items, idxData)
	if err != nil {
		return Tx{}, err
	}

	// The data field carries its own RLP encoding.
	if _, _, rest, err := rlp.Split(data); err != nil || len(rest) > 0 {
		return Tx{}, fmt.Errorf("data: %w", ErrMalformedField)
	}

	payload, err := bytesAt(items, idxPayload)
	if err != nil {
		return Tx{}, err
	}
	if !utf8.Valid(payload) {
		return Tx{}, fmt.Errorf("payload is not utf-8: %w", ErrMalformedField)
	}

	tx := Tx{
		Type:    txType,
		Data:    data,
		Payload: string(payload),
		GasCoin: baseCoin,
	}

	if len(items) > idxNonce {
		if tx.Nonce, err = optionalUintAt(items, idxNonce); err != nil {
			return Tx{}, err
		}
	}

	if len(items) > idxGasPrice {
		if tx.GasPrice, err = optionalUintAt(items, idxGasPrice); err != nil {
			return Tx{}, err
		}
	}

	if len(items) > idxGasCoin {
		raw, err := bytesAt(items, idxGasCoin)
		if err != nil {
			return Tx{}, err
		}
		id := coinID(raw)
		tx.GasCoinID = &id

		if c, exists := lookup(coins, id); exists && c.Symbol != "" {
			tx.GasCoin = c.Symbol
		}
	}

	if !coin.IsValidSymbol(tx.GasCoin) {
		return Tx{}, fmt.Errorf("symbol %q: %w", tx.GasCoin, ErrInvalidGasCoin)
	}

	return tx, nil
}

// DecodeText decodes the textual form of a blob as found in a deep link. The
// text is tried as hex encoded RLP first and as base64url second.
func DecodeText(text string, coins CoinLookup, baseCoin string) (Tx, error) {
	var hexErr error
	if blob, err := hexutil.Decode(with0x(text)); err == nil {
		tx, err := Decode(blob, coins, baseCoin)
		if err == nil {
			return tx, nil
		}
		hexErr = err
	}

	blob, err := DecodeBase64URL(text)
	if err != nil {
		if hexErr != nil {
			return Tx{}, hexErr
		}
		return Tx{}, fmt.Errorf("%w: not hex or base64url", ErrMalformedBlob)
	}

	tx, err := Decode(blob, coins, baseCoin)
	if err != nil {
		// Report the hex attempt when it got further than the blob stage.
		if hexErr != nil && errors.Is(err, ErrMalformedBlob) {
			return Tx{}, hexErr
		}
		return Tx{}, err
	}

	return tx, nil
}

// Encode produces the RLP encoding of the transaction in the shortened
// format. Unset optional fields are written as zero.
func Encode(tx Tx) ([]byte, error) {
	if _, _, rest, err := rlp.Split(tx.Data); err != nil || len(rest) > 0 {
		return nil, fmt.Errorf("data: %w", ErrMalformedField)
	}

	items := []any{
		uint64(tx.Type),
		tx.Data,
		tx.Payload,
		deref(tx.Nonce),
		deref(tx.GasPrice),
		deref(tx.GasCoinID),
	}

	return rlp.EncodeToBytes(items)
}

// EncodeText produces the base64url form of the encoded transaction.
func EncodeText(tx Tx) (string, error) {
	blob, err := Encode(tx)
	if err != nil {
		return "", err
	}

	return base64URL(blob), nil
}

// DecodeBase64URL accepts both padded and unpadded base64url.
func DecodeBase64URL(s string) ([]byte, error) {
	if strings.HasSuffix(s, "=") {
		return base64.URLEncoding.DecodeString(s)
	}

	return base64.RawURLEncoding.DecodeString(s)
}

// =============================================================================

func base64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func lookup(coins CoinLookup, id uint64) (coin.Coin, bool) {
	if coins == nil {
		return coin.Coin{}, false
	}

	return coins.CoinByID(id)
}

func bytesAt(items []rlp.RawValue, idx int) ([]byte, error) {
	kind, content, _, err := rlp.Split(items[idx])
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", idx, ErrMalformedField)
	}

	if kind == rlp.List {
		return nil, fmt.Errorf("item %d is a list: %w", idx, ErrMalformedField)
	}

	return content, nil
}

func uintAt(items []rlp.RawValue, idx int) (uint64, error) {
	content, err := bytesAt(items, idx)
	if err != nil {
		return 0, err
	}

	if len(content) > 8 {
		return 0, fmt.Errorf("item %d overflows uint64: %w", idx, ErrMalformedField)
	}

	return beUint(content), nil
}

func optionalUintAt(items []rlp.RawValue, idx int) (*uint64, error) {
	v, err := uintAt(items, idx)
	if err != nil {
		return nil, err
	}

	if v == 0 {
		return nil, nil
	}

	return &v, nil
}

// coinID interprets at most the first 8 bytes as a big endian integer.
func coinID(raw []byte) uint64 {
	if len(raw) > 8 {
		raw = raw[:8]
	}

	return beUint(raw)
}

func beUint(b []byte) uint64 {
	var buf [8]byte
	copy(buf[8-len(b):], b)

	return binary.BigEndian.Uint64(buf[:])
}

func deref(v *uint64) uint64 {
	if v == nil {
		return 0
	}

	return *v
}

func with0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}

	return "0x" + s
}
