// Package nameservice reads the wallet key folder and provides a name
// service lookup from Mx address to the account name.
package nameservice

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bipwallet/deeplink/foundation/minter/wallet"
)

// KeyExt is the extension of the key files the service reads.
const KeyExt = ".ecdsa"

// NameService maintains a map of addresses to account names.
type NameService struct {
	mu       sync.RWMutex
	accounts map[string]string
}

// New constructs a name service with accounts from the given folder. A
// missing folder yields an empty service.
func New(root string) (*NameService, error) {
	ns := NameService{
		accounts: make(map[string]string),
	}

	fn := func(fileName string, info fs.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && fileName == root {
				return filepath.SkipDir
			}
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if info.IsDir() || path.Ext(fileName) != KeyExt {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading key %q: %w", fileName, err)
		}

		addr := wallet.Address(privateKey.PublicKey)
		ns.accounts[addr] = strings.TrimSuffix(path.Base(fileName), KeyExt)

		return nil
	}

	if err := filepath.Walk(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified address. Both Mx and 0x forms
// are accepted.
func (ns *NameService) Lookup(address string) (string, bool) {
	addr, err := wallet.ParseAddress(address)
	if err != nil {
		return "", false
	}

	ns.mu.RLock()
	defer ns.mu.RUnlock()

	name, exists := ns.accounts[wallet.FormatAddress(addr)]
	return name, exists
}

// Add registers a name for an address.
func (ns *NameService) Add(address string, name string) error {
	addr, err := wallet.ParseAddress(address)
	if err != nil {
		return err
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	ns.accounts[wallet.FormatAddress(addr)] = name

	return nil
}

// Copy returns a copy of the map of names and accounts.
func (ns *NameService) Copy() map[string]string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	cpy := make(map[string]string, len(ns.accounts))
	for address, name := range ns.accounts {
		cpy[address] = name
	}

	return cpy
}
