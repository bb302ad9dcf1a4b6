// Package secrets keeps the console's API key out of the plain-text config.
// Values are sealed with AES-GCM under a per-user key derived from the
// environment; this obfuscates rather than protects against a local reader.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

const fileName = "secrets.yaml"

// APIKey is the name the settings page stores the key under.
const APIKey = "api_key"

var ErrNotFound = errors.New("secret not found")

type secretFile struct {
	Values map[string]string `yaml:"values"` // name -> base64(nonce|ciphertext)
}

// Store is a single 0600 file of sealed values. Writers also take a file
// lock so the TUI and a concurrent CLI run do not lose each other's updates.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store that keeps its file in dir. The directory is
// created on first write.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, fileName)}
}

// DefaultDir is the per-user config directory for zams.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "zams")
}

func (s *Store) Path() string { return s.path }

func (s *Store) Put(name, value string) error {
	if name = norm(name); name == "" {
		return fmt.Errorf("put secret: name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock, err := s.lock()
	if err != nil {
		return fmt.Errorf("put secret: %w", err)
	}
	defer unlock()

	sf, err := load(s.path)
	if err != nil {
		return fmt.Errorf("put secret: %w", err)
	}
	if sf.Values == nil {
		sf.Values = map[string]string{}
	}
	ct, err := encrypt([]byte(value))
	if err != nil {
		return fmt.Errorf("put secret: %w", err)
	}
	sf.Values[name] = base64.StdEncoding.EncodeToString(ct)
	return save(s.path, sf)
}

func (s *Store) Get(name string) (string, error) {
	name = norm(name)
	s.mu.Lock()
	defer s.mu.Unlock()

	sf, err := load(s.path)
	if err != nil {
		return "", fmt.Errorf("get secret: %w", err)
	}
	enc, ok := sf.Values[name]
	if !ok {
		return "", fmt.Errorf("get secret %q: %w", name, ErrNotFound)
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("get secret %q: %w", name, err)
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", fmt.Errorf("get secret %q: %w", name, err)
	}
	return string(pt), nil
}

func (s *Store) Delete(name string) error {
	name = norm(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock, err := s.lock()
	if err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	defer unlock()

	sf, err := load(s.path)
	if err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	if _, ok := sf.Values[name]; !ok {
		return nil
	}
	delete(sf.Values, name)
	return save(s.path, sf)
}

// lock takes the cross-process lock next to the secrets file.
func (s *Store) lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, err
	}
	fl := flock.New(s.path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	return func() { _ = fl.Unlock() }, nil
}

func load(path string) (secretFile, error) {
	var sf secretFile
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return secretFile{}, nil
		}
		return sf, err
	}
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("decode %s: %w", path, err)
	}
	return sf, nil
}

func save(path string, sf secretFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(sf)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func masterKey() []byte {
	base := fmt.Sprintf("zams-%s-%s", runtime.GOOS, os.Getenv("USER"))
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plain []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
