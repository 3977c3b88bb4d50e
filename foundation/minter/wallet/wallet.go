// Package wallet derives Minter accounts from mnemonic phrases and formats
// their addresses.
package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// DerivationPath is the BIP-44 path Minter wallets derive their single
// account from.
const DerivationPath = "m/44'/60'/0'/0/0"

// AddressPrefix marks an address as a Minter address.
const AddressPrefix = "Mx"

// Set of error variables for account derivation.
var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrInvalidPath     = errors.New("invalid derivation path")
	ErrInvalidAddress  = errors.New("invalid address")
)

// NewMnemonic generates a fresh 12 word phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("generating entropy: %w", err)
	}

	return bip39.NewMnemonic(entropy)
}

// IsValidMnemonic reports whether the phrase has valid words and checksum.
func IsValidMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalize(mnemonic))
}

// PrivateKeyFromMnemonic derives the account key of the phrase.
func PrivateKeyFromMnemonic(mnemonic string) (*ecdsa.PrivateKey, error) {
	mnemonic = normalize(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, "")

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("master key: %w", err)
	}

	key, err := derivePath(master, DerivationPath)
	if err != nil {
		return nil, err
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}

	return priv.ToECDSA(), nil
}

// Address returns the Minter address of the public key.
func Address(pub ecdsa.PublicKey) string {
	return FormatAddress(crypto.PubkeyToAddress(pub))
}

// FormatAddress returns the Mx prefixed form of the address.
func FormatAddress(addr common.Address) string {
	return AddressPrefix + hex.EncodeToString(addr.Bytes())
}

// ParseAddress accepts an address with either the Mx or 0x prefix.
func ParseAddress(s string) (common.Address, error) {
	switch {
	case strings.HasPrefix(s, AddressPrefix):
		s = "0x" + s[len(AddressPrefix):]
	case strings.HasPrefix(s, "0x"):
	default:
		return common.Address{}, fmt.Errorf("%q: %w", s, ErrInvalidAddress)
	}

	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%q: %w", s, ErrInvalidAddress)
	}

	return common.HexToAddress(s), nil
}

// =============================================================================

func derivePath(key *hdkeychain.ExtendedKey, path string) (*hdkeychain.ExtendedKey, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "m/")

	for _, segment := range strings.Split(path, "/") {
		hardened := strings.HasSuffix(segment, "'")
		segment = strings.TrimSuffix(segment, "'")

		idx, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", segment, ErrInvalidPath)
		}

		index := uint32(idx)
		if hardened {
			index += hdkeychain.HardenedKeyStart
		}

		if key, err = key.Derive(index); err != nil {
			return nil, fmt.Errorf("deriving %d: %w", index, err)
		}
	}

	return key, nil
}

func normalize(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}
