package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-auth-client/store"
	"github.com/jrsteele09/go-auth-client/store/filestore"
	"github.com/jrsteele09/go-auth-client/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	s, err := filestore.Open(filepath.Join(t.TempDir(), "nested", "dir"))
	require.NoError(t, err)
	storetest.RunContract(t, s)
}

// TestFileStore_Permissions keeps session files owner readable only
func TestFileStore_Permissions(t *testing.T) {
	dir := t.TempDir()
	s, err := filestore.Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), store.SessionKey, []byte("{}")))

	info, err := os.Stat(filepath.Join(dir, store.SessionKey+".json"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// TestFileStore_InvalidKey rejects keys that would escape the directory
func TestFileStore_InvalidKey(t *testing.T) {
	s, err := filestore.Open(t.TempDir())
	require.NoError(t, err)

	require.Error(t, s.Set(context.Background(), "../escape", []byte("x")))
	_, err = s.Get(context.Background(), "")
	require.Error(t, err)
}

func TestOpen_RequiresDirectory(t *testing.T) {
	_, err := filestore.Open(" ")
	require.Error(t, err)
}
