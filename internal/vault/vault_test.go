package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const master = "correct horse battery"

func newTestVault(t *testing.T) (*Vault, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "vault")
	v, err := Init(dir, master)
	require.NoError(t, err)
	return v, dir
}

func TestInit_CreatesArtifacts(t *testing.T) {
	_, dir := newTestVault(t)

	for _, name := range []string{"master.hash", "vault.key", "credentials.enc"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), name)
	}
	assert.True(t, Exists(dir))
}

func TestInit_RejectsShortMaster(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "vault"), "short")
	assert.ErrorIs(t, err, ErrMasterTooShort)
}

func TestInit_RejectsExisting(t *testing.T) {
	_, dir := newTestVault(t)

	_, err := Init(dir, master)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestOpen_RoundTripsCredentials(t *testing.T) {
	v, dir := newTestVault(t)

	require.NoError(t, v.Set("Gmail", "alice@example.com", "hunter22"))
	require.NoError(t, v.Set("bank", "alice", "p4ssw0rd!"))

	reopened, err := Open(dir, master)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Len())

	c, ok := reopened.Get("Gmail")
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", c.Username)
	assert.Equal(t, "hunter22", c.Password)
}

func TestOpen_WrongMasterNeverUnlocks(t *testing.T) {
	_, dir := newTestVault(t)

	for _, pw := range []string{"", "wrong", master + " ", "CORRECT HORSE BATTERY"} {
		_, err := Open(dir, pw)
		assert.ErrorIs(t, err, ErrInvalidMasterPassword, "password %q", pw)
	}
}

func TestOpen_Uninitialized(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nothing"), master)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestOpen_CorruptBlob(t *testing.T) {
	v, dir := newTestVault(t)
	require.NoError(t, v.Set("gmail", "alice", "x"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.enc"), []byte("garbage"), 0600))

	_, err := Open(dir, master)
	assert.ErrorIs(t, err, ErrCorruptBlob)
}

func TestGet_CaseInsensitive(t *testing.T) {
	v, _ := newTestVault(t)
	require.NoError(t, v.Set("Gmail", "alice", "x"))

	upper, ok1 := v.Get("Gmail")
	lower, ok2 := v.Get("gmail")

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, upper, lower)
}

func TestUpdate(t *testing.T) {
	v, dir := newTestVault(t)
	require.NoError(t, v.Set("gmail", "alice", "old"))

	require.NoError(t, v.Update("GMAIL", "", "new"))

	reopened, err := Open(dir, master)
	require.NoError(t, err)
	c, ok := reopened.Get("gmail")
	require.True(t, ok)
	assert.Equal(t, "alice", c.Username) // kept
	assert.Equal(t, "new", c.Password)

	assert.ErrorIs(t, v.Update("missing", "a", "b"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	v, dir := newTestVault(t)
	require.NoError(t, v.Set("gmail", "alice", "x"))

	require.NoError(t, v.Delete("Gmail"))
	assert.ErrorIs(t, v.Delete("gmail"), ErrNotFound)

	reopened, err := Open(dir, master)
	require.NoError(t, err)
	_, ok := reopened.Get("gmail")
	assert.False(t, ok)
}

func TestListAndSearch(t *testing.T) {
	v, _ := newTestVault(t)
	require.NoError(t, v.Set("Gmail", "alice@example.com", "x"))
	require.NoError(t, v.Set("Bank", "alice", "y"))
	require.NoError(t, v.Set("Forum", "bob", "z"))

	list := v.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Bank", list[0].Service) // sorted by service

	assert.Len(t, v.Search("alice"), 2)
	assert.Len(t, v.Search("GMAIL"), 1)
	assert.Empty(t, v.Search("nothing"))
}

func TestExport_IsEncryptedCopy(t *testing.T) {
	v, dir := newTestVault(t)
	require.NoError(t, v.Set("gmail", "alice", "topsecret"))

	out := filepath.Join(t.TempDir(), "backup.enc")
	require.NoError(t, v.Export(out))

	exported, err := os.ReadFile(out)
	require.NoError(t, err)
	original, err := os.ReadFile(filepath.Join(dir, "credentials.enc"))
	require.NoError(t, err)
	assert.Equal(t, original, exported)
	assert.NotContains(t, string(exported), "topsecret")
}
