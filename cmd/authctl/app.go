package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jrsteele09/go-auth-client/authconf"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/jrsteele09/go-auth-client/store"
	"github.com/jrsteele09/go-auth-client/store/filestore"
	"github.com/jrsteele09/go-auth-client/store/repofake"
	"github.com/jrsteele09/go-auth-client/store/sqlitestore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// app is built once per invocation and shared by the subcommands.
type app struct {
	conf    *authconf.Config
	manager *session.Manager
	closer  io.Closer
}

func newApp(ctx context.Context, c config.Config) (*app, error) {
	setupLogging(c.GetLogLevel())

	conf, err := authconf.New(config.AuthOptions(c)...)
	if err != nil {
		return nil, err
	}

	repo, closer, err := openStore(c.GetStoreDriver(), c.GetStorePath())
	if err != nil {
		return nil, err
	}

	manager, err := session.New(conf, repo)
	if err != nil {
		closeQuietly(closer)
		return nil, err
	}
	if err := manager.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("could not restore session")
	}
	return &app{conf: conf, manager: manager, closer: closer}, nil
}

func (a *app) Close() {
	closeQuietly(a.closer)
}

func openStore(driver, path string) (store.Repo, io.Closer, error) {
	switch driver {
	case config.StoreDriverFile:
		s, err := filestore.Open(path)
		return s, nil, err
	case config.StoreDriverSQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.StoreDriverMemory:
		return repofake.NewFakeStoreRepo(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func closeQuietly(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msg("close store")
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}
