package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/argon2"
)

// File format: [magic (4)] [version (1)] [salt (16)] [nonce (12)] [ciphertext].
// The header is authenticated as additional data.
const (
	magicHeader = "MBKS"
	version     = byte(0x01)
	saltLength  = 16
	nonceLength = 12
	headerLen   = len(magicHeader) + 1 + saltLength + nonceLength
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

// ErrBadFormat is returned when the keystore file is not a keystore.
var ErrBadFormat = errors.New("keystore: unrecognised file format")

// FileKeystore implements Keystore with a JSON map encrypted with
// AES-256-GCM under a key derived from the master key with Argon2id.
type FileKeystore struct {
	path      string
	masterKey []byte
	mu        sync.RWMutex
}

// NewFileKeystore opens the keystore at path. The file is created on first Set.
func NewFileKeystore(path string, masterKey []byte) (*FileKeystore, error) {
	if len(masterKey) == 0 {
		return nil, errors.New("keystore: empty master key")
	}
	return &FileKeystore{
		path:      path,
		masterKey: append([]byte(nil), masterKey...),
	}, nil
}

// Set stores a value under name.
func (f *FileKeystore) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	data[name] = value
	return f.save(data)
}

// Get retrieves a value by name.
func (f *FileKeystore) Get(name string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.load()
	if err != nil {
		return "", err
	}
	value, ok := data[name]
	if !ok {
		return "", &ErrKeyNotFound{Name: name}
	}
	return value, nil
}

// Delete removes a value by name.
func (f *FileKeystore) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := data[name]; !ok {
		return &ErrKeyNotFound{Name: name}
	}
	delete(data, name)
	return f.save(data)
}

// List returns all stored names.
func (f *FileKeystore) List() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *FileKeystore) load() (map[string]string, error) {
	data := make(map[string]string)

	ciphertext, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	if len(ciphertext) == 0 {
		return data, nil
	}

	plaintext, err := f.decrypt(ciphertext)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileKeystore) save(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}
	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ciphertext, err := f.encrypt(plaintext)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, ciphertext, 0600)
}

func (f *FileKeystore) gcm(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(f.masterKey, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (f *FileKeystore) encrypt(plaintext []byte) ([]byte, error) {
	header := make([]byte, headerLen)
	copy(header, magicHeader)
	header[len(magicHeader)] = version
	salt := header[len(magicHeader)+1 : len(magicHeader)+1+saltLength]
	nonce := header[len(magicHeader)+1+saltLength:]
	if _, err := io.ReadFull(rand.Reader, header[len(magicHeader)+1:]); err != nil {
		return nil, err
	}

	aead, err := f.gcm(salt)
	if err != nil {
		return nil, err
	}
	return aead.Seal(header, nonce, plaintext, header), nil
}

func (f *FileKeystore) decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < headerLen ||
		string(ciphertext[:len(magicHeader)]) != magicHeader ||
		ciphertext[len(magicHeader)] != version {
		return nil, ErrBadFormat
	}
	header := ciphertext[:headerLen]
	salt := header[len(magicHeader)+1 : len(magicHeader)+1+saltLength]
	nonce := header[len(magicHeader)+1+saltLength:]

	aead, err := f.gcm(salt)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, ciphertext[headerLen:], header)
}

// Compile-time check that FileKeystore implements Keystore.
var _ Keystore = (*FileKeystore)(nil)
