// Package keystore stores box basic-auth passwords encrypted at rest.
package keystore

import (
	"crypto/sha256"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// MasterKeyEnv names the environment variable holding the keystore master key.
const MasterKeyEnv = "MACHINEBOX_KEYSTORE_KEY"

// Keystore stores secrets by name. Names are box IDs.
type Keystore interface {
	// Set stores a value under name.
	Set(name, value string) error
	// Get retrieves a value by name. Returns *ErrKeyNotFound if missing.
	Get(name string) (string, error)
	// Delete removes a value by name.
	Delete(name string) error
	// List returns all stored names, sorted.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// DefaultKeystorePath returns $XDG_DATA_HOME/machinebox/keys.enc.
func DefaultKeystorePath() string {
	return filepath.Join(xdg.DataHome, "machinebox", "keys.enc")
}

// MasterKey returns the key the keystore is encrypted with: MACHINEBOX_KEYSTORE_KEY
// when set, otherwise a key derived from the host and user names.
func MasterKey() []byte {
	if k := os.Getenv(MasterKeyEnv); k != "" {
		return []byte(k)
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	sum := sha256.Sum256([]byte(hostname + ":" + username + ":machinebox-keystore"))
	return sum[:]
}

// NewKeystore opens the default keystore.
func NewKeystore() (Keystore, error) {
	return NewFileKeystore(DefaultKeystorePath(), MasterKey())
}
