package repofake_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-client/store/repofake"
	"github.com/jrsteele09/go-auth-client/store/storetest"
)

func TestFakeStoreRepo(t *testing.T) {
	storetest.RunContract(t, repofake.NewFakeStoreRepo())
}
