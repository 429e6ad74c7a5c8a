package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-auth-client/store"
	"github.com/jrsteele09/go-auth-client/store/sqlitestore"
	"github.com/jrsteele09/go-auth-client/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Memory(t *testing.T) {
	s, err := sqlitestore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	storetest.RunContract(t, s)
}

// TestSQLiteStore_SurvivesReopen checks values persist across handles
func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.db")
	ctx := context.Background()

	s, err := sqlitestore.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, store.SessionKey, []byte(`{"access_token":"t1"}`)))
	require.NoError(t, s.Close())

	s, err = sqlitestore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get(ctx, store.SessionKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"access_token":"t1"}`, string(got))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := sqlitestore.Open("")
	require.Error(t, err)
}
