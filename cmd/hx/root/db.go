package root

import (
	"context"
	"fmt"
	"io"

	"habitex/internal/config"
	"habitex/internal/engine"
	"habitex/internal/storage"
	"habitex/internal/ui"
)

func openStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	logger := cfg.Logger()
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		logger.Printf("warning: %v; running without persistence", err)
		return storage.Unavailable(), func() {}, nil
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		logger.Printf("warning: %v: %v; running without persistence", storage.ErrUnavailable, err)
		return storage.Unavailable(), func() {}, nil
	}
	logger.Printf("using %s", path)
	cleanup := func() {
		_ = db.Close()
	}
	return storage.NewRecordStore(db, logger), cleanup, nil
}

// openService wires the service from config and flags. Unlocked achievements
// are announced on out.
func openService(ctx context.Context, out io.Writer) (*engine.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := engine.NewService(store,
		engine.WithRand(cfg.Rand()),
		engine.WithLogger(cfg.Logger()),
	)
	cancel := svc.Events().Subscribe(func(ev engine.Event) {
		if ev.Kind == engine.EventAchievements {
			fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Achievement unlocked: "+ev.Detail))
		}
	})
	return svc, func() {
		cancel()
		cleanup()
	}, nil
}
