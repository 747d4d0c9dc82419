package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/dialogue"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/engine"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/hint"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/store"
	anthropicpkg "github.com/Waseem-Khan-Dawar/University-ChatBot/pkg/anthropic"
)

// botEnv holds the initialized store, catalog and engine shared by the
// serve and ask commands.
type botEnv struct {
	Store    store.RecordStore
	Catalog  *catalog.Catalog
	Sessions *dialogue.MemoryStore
	Engine   *engine.Engine
}

// Close releases resources held by the environment.
func (e *botEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens the configured dataset backend.
func initStore(ctx context.Context) (store.RecordStore, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, eris.Wrap(err, "open sqlite store")
		}
		return st, nil
	case "postgres":
		st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "open postgres store")
		}
		return st, nil
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initEnv loads the dataset into a catalog and builds the chat engine.
// Callers should defer env.Close().
func initEnv(ctx context.Context) (*botEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	records, err := st.ListRecords(ctx)
	if err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "load records")
	}
	cat := catalog.New(records)
	if len(cat.Records()) == 0 {
		zap.L().Warn("dataset is empty, run `meritbot import` first")
	}

	var hints hint.Provider
	if cfg.Hint.Enabled {
		if cfg.Anthropic.Key == "" {
			_ = st.Close()
			return nil, eris.New("anthropic key is required when hints are enabled (MERITBOT_ANTHROPIC_KEY)")
		}
		client := anthropicpkg.NewClient(cfg.Anthropic.Key)
		hints = hint.NewAnthropicProvider(
			client,
			cat,
			cfg.Anthropic.Model,
			time.Duration(cfg.Hint.TimeoutSecs)*time.Second,
			cfg.Hint.RequestsPerMinute,
		)
		zap.L().Info("model hints enabled", zap.String("model", cfg.Anthropic.Model))
	}

	sessions := dialogue.NewMemoryStore()
	eng, err := engine.New(cat, sessions, hints)
	if err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "build engine")
	}

	return &botEnv{
		Store:    st,
		Catalog:  cat,
		Sessions: sessions,
		Engine:   eng,
	}, nil
}
