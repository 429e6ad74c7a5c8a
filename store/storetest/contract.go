// Package storetest checks a store.Repo implementation against the behaviour
// the session manager relies on.
package storetest

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/store"
	"github.com/stretchr/testify/require"
)

// RunContract exercises repo. It expects an empty store.
func RunContract(t *testing.T, repo store.Repo) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.Get(ctx, store.SessionKey)
		require.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, store.SessionKey, []byte(`{"access_token":"t1"}`)))
		got, err := repo.Get(ctx, store.SessionKey)
		require.NoError(t, err)
		require.JSONEq(t, `{"access_token":"t1"}`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, store.SessionKey, []byte(`{"access_token":"t2"}`)))
		got, err := repo.Get(ctx, store.SessionKey)
		require.NoError(t, err)
		require.JSONEq(t, `{"access_token":"t2"}`, string(got))
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, store.SessionKey))
		_, err := repo.Get(ctx, store.SessionKey)
		require.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("remove absent key", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, "never-set"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "a", []byte("1")))
		require.NoError(t, repo.Set(ctx, "b", []byte("2")))
		require.NoError(t, repo.Remove(ctx, "a"))

		got, err := repo.Get(ctx, "b")
		require.NoError(t, err)
		require.Equal(t, []byte("2"), got)
	})
}
