package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/config"
	"github.com/abhisek/studyy/internal/llm"
	"github.com/abhisek/studyy/internal/preferences"
	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/questions"
	"github.com/abhisek/studyy/internal/store"
)

// env bundles the dependencies shared by the subcommands.
type env struct {
	store   *store.Store
	redis   *redis.Client
	slots   store.SlotRepo
	catalog *catalog.Catalog
	repo    *progress.Repository
	tracker *progress.Tracker
	prefs   *preferences.Store
	source  *questions.Source
}

// openEnv opens the event log, the configured slot backend and the
// question source. The LLM provider is optional: without one the source
// reports ConfigurationError from Generate and Hint.
func openEnv(ctx context.Context, logger *slog.Logger) (*env, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e := &env{store: st, slots: st.SlotRepo()}

	if cfg.Store.Backend == config.BackendRedis {
		rc := cfg.Store.Redis
		client, err := store.DialRedis(ctx, rc.Addr, rc.Password, rc.DB)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		e.redis = client
		e.slots = store.NewRedisSlotRepo(client, rc.Prefix)
	}

	cat, err := catalog.Builtin()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	e.catalog = cat

	e.repo = progress.NewRepository(e.slots, logger)
	e.tracker = progress.Open(ctx, e.repo, progress.WithLogger(logger))
	e.prefs = preferences.NewStore(e.slots, logger)

	provider, perr := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if perr != nil {
		logger.Debug("LLM provider not configured", "err", perr)
		provider = nil
	}
	e.source = questions.NewSource(cat, provider,
		questions.WithProviderError(perr),
		questions.WithLogger(logger),
	)
	return e, nil
}

// Close releases the store and the redis connection.
func (e *env) Close() error {
	var errs []error
	if e.redis != nil {
		errs = append(errs, e.redis.Close())
	}
	errs = append(errs, e.store.Close())
	return errors.Join(errs...)
}
