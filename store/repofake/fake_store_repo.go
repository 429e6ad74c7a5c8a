package repofake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/store"
)

var _ store.Repo = (*FakeStoreRepo)(nil)

type FakeStoreRepo struct {
	values map[string][]byte
	lock   sync.RWMutex
}

func NewFakeStoreRepo() *FakeStoreRepo {
	return &FakeStoreRepo{
		values: make(map[string][]byte),
	}
}

func (r *FakeStoreRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *FakeStoreRepo) Set(_ context.Context, key string, value []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.values[key] = append([]byte(nil), value...)
	return nil
}

func (r *FakeStoreRepo) Remove(_ context.Context, key string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.values, key)
	return nil
}

// Has reports whether key is present
func (r *FakeStoreRepo) Has(key string) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	_, ok := r.values[key]
	return ok
}
