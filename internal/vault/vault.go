// Package vault implements the encrypted credential store. Three artifacts
// live under <dir>: master.hash (bcrypt hash of the master password),
// vault.key (fernet key, random and never derived from the password) and
// credentials.enc (fernet token over the JSON credential map).
package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fernet/fernet-go"
	"github.com/natefinch/atomic"
	"golang.org/x/crypto/bcrypt"
)

const (
	hashFileName = "master.hash"
	keyFileName  = "vault.key"
	blobFileName = "credentials.enc"

	fileMode = 0600
	dirMode  = 0700

	// MinMasterLength is the floor for a new master password.
	MinMasterLength = 8
)

var (
	ErrNotInitialized        = errors.New("vault: not initialized")
	ErrAlreadyInitialized    = errors.New("vault: already initialized")
	ErrMasterTooShort        = errors.New("vault: master password must be at least 8 characters")
	ErrInvalidMasterPassword = errors.New("vault: invalid master password")
	ErrCorruptBlob           = errors.New("vault: credential store is corrupted or was encrypted with a different key")
	ErrNotFound              = errors.New("vault: service not found")
)

// Credential is one stored record. Service keeps the casing the user typed;
// lookups normalize it.
type Credential struct {
	Service  string `json:"service"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Vault is the unlocked in-memory state. Every mutation re-encrypts the
// whole map and atomically replaces the on-disk blob.
type Vault struct {
	dir   string
	key   *fernet.Key
	creds map[string]Credential
}

// Exists reports whether a vault was initialized under dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, hashFileName))
	return err == nil
}

// Init creates a fresh vault: hashes the master password, generates a new
// random key and writes an empty encrypted credential map.
func Init(dir, masterPassword string) (*Vault, error) {
	if Exists(dir) {
		return nil, ErrAlreadyInitialized
	}
	if len(masterPassword) < MinMasterLength {
		return nil, ErrMasterTooShort
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(masterPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash master password: %w", err)
	}
	if err := writeSecret(filepath.Join(dir, hashFileName), hash); err != nil {
		return nil, err
	}

	var key fernet.Key
	if err := key.Generate(); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	if err := writeSecret(filepath.Join(dir, keyFileName), []byte(key.Encode())); err != nil {
		return nil, err
	}

	v := &Vault{dir: dir, key: &key, creds: map[string]Credential{}}
	if err := v.save(); err != nil {
		return nil, err
	}
	return v, nil
}

// Open authenticates the master password against the stored hash and, on
// match, loads the key and decrypts the credential map. A wrong password is
// ErrInvalidMasterPassword; an undecryptable blob is ErrCorruptBlob and is
// never silently reset.
func Open(dir, masterPassword string) (*Vault, error) {
	hash, err := os.ReadFile(filepath.Join(dir, hashFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("read master hash: %w", err)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(masterPassword)) != nil {
		return nil, ErrInvalidMasterPassword
	}

	keyData, err := os.ReadFile(filepath.Join(dir, keyFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("read key file: %w", err)
	}
	key, err := fernet.DecodeKey(strings.TrimSpace(string(keyData)))
	if err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}

	v := &Vault{dir: dir, key: key, creds: map[string]Credential{}}

	blob, err := os.ReadFile(v.blobPath())
	if err != nil {
		if os.IsNotExist(err) {
			// First unlock after a partial init: start empty.
			return v, nil
		}
		return nil, fmt.Errorf("read credential blob: %w", err)
	}

	plain := fernet.VerifyAndDecrypt(blob, 0, []*fernet.Key{key})
	if plain == nil {
		return nil, ErrCorruptBlob
	}
	if err := json.Unmarshal(plain, &v.creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	return v, nil
}

// Set adds or overwrites the credential for a service.
func (v *Vault) Set(service, username, password string) error {
	key := normalize(service)
	if key == "" {
		return fmt.Errorf("vault: service name cannot be empty")
	}
	v.creds[key] = Credential{Service: strings.TrimSpace(service), Username: username, Password: password}
	return v.save()
}

// Get looks a service up case-insensitively.
func (v *Vault) Get(service string) (Credential, bool) {
	c, ok := v.creds[normalize(service)]
	return c, ok
}

// Update changes fields of an existing record; empty arguments keep the
// stored value.
func (v *Vault) Update(service, username, password string) error {
	key := normalize(service)
	c, ok := v.creds[key]
	if !ok {
		return ErrNotFound
	}
	if username != "" {
		c.Username = username
	}
	if password != "" {
		c.Password = password
	}
	v.creds[key] = c
	return v.save()
}

func (v *Vault) Delete(service string) error {
	key := normalize(service)
	if _, ok := v.creds[key]; !ok {
		return ErrNotFound
	}
	delete(v.creds, key)
	return v.save()
}

// List returns all records sorted by service name.
func (v *Vault) List() []Credential {
	out := make([]Credential, 0, len(v.creds))
	for _, c := range v.creds {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return normalize(out[i].Service) < normalize(out[j].Service)
	})
	return out
}

// Search matches the query as a case-insensitive substring of the service
// name or username.
func (v *Vault) Search(query string) []Credential {
	q := normalize(query)
	var out []Credential
	for _, c := range v.List() {
		if strings.Contains(normalize(c.Service), q) ||
			strings.Contains(strings.ToLower(c.Username), q) {
			out = append(out, c)
		}
	}
	return out
}

// Export writes a copy of the encrypted blob to path. The copy stays
// encrypted; it is a backup, not a plaintext dump.
func (v *Vault) Export(path string) error {
	blob, err := os.ReadFile(v.blobPath())
	if err != nil {
		return fmt.Errorf("read credential blob: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(blob)); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func (v *Vault) Len() int {
	return len(v.creds)
}

// save re-serializes the whole map, re-encrypts it and replaces the blob
// all-or-nothing (write-temp-then-rename).
func (v *Vault) save() error {
	plain, err := json.Marshal(v.creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	blob, err := fernet.EncryptAndSign(plain, v.key)
	if err != nil {
		return fmt.Errorf("encrypt credentials: %w", err)
	}
	if err := atomic.WriteFile(v.blobPath(), bytes.NewReader(blob)); err != nil {
		return fmt.Errorf("replace credential blob: %w", err)
	}
	return os.Chmod(v.blobPath(), fileMode)
}

func (v *Vault) blobPath() string {
	return filepath.Join(v.dir, blobFileName)
}

func writeSecret(path string, data []byte) error {
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func normalize(service string) string {
	return strings.ToLower(strings.TrimSpace(service))
}
