// Package credential stores the generated mailbox credentials in the system
// keyring so the address can be reopened later, e.g. in the web client.
package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/99designs/keyring"
)

const (
	serviceName = "tempmail"
	keyPrefix   = "account:"
)

// ErrNotFound is returned when no credentials exist for an address.
var ErrNotFound = errors.New("credentials not found")

// Account is one stashed mailbox login.
type Account struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

// Stash reads and writes accounts in a keyring.
type Stash struct {
	ring keyring.Keyring
}

// New wraps an already opened keyring.
func New(ring keyring.Keyring) *Stash {
	return &Stash{ring: ring}
}

// Open opens the system keyring, falling back to an encrypted file under
// configDir when no OS backend is available.
func Open(configDir string) (*Stash, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(configDir, "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("tempmail-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return New(ring), nil
}

// Save stores the account, replacing any previous entry for the address.
func (s *Stash) Save(acc Account) error {
	if acc.Address == "" {
		return errors.New("saving credentials: empty address")
	}
	data, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	err = s.ring.Set(keyring.Item{
		Key:         keyPrefix + acc.Address,
		Data:        data,
		Label:       "tempmail " + acc.Address,
		Description: "Mail.tm mailbox password",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", acc.Address, err)
	}
	return nil
}

// Load returns the stored account for address.
func (s *Stash) Load(address string) (Account, error) {
	item, err := s.ring.Get(keyPrefix + address)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("getting credential %q: %w", address, err)
	}

	var acc Account
	if err := json.Unmarshal(item.Data, &acc); err != nil {
		return Account{}, fmt.Errorf("decoding credential %q: %w", address, err)
	}
	return acc, nil
}

// Delete removes the stored account for address.
func (s *Stash) Delete(address string) error {
	err := s.ring.Remove(keyPrefix + address)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", address, err)
	}
	return nil
}

// Addresses lists every stashed address in sorted order.
func (s *Stash) Addresses() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}

	var addrs []string
	for _, k := range keys {
		if addr, ok := strings.CutPrefix(k, keyPrefix); ok {
			addrs = append(addrs, addr)
		}
	}
	sort.Strings(addrs)
	return addrs, nil
}
