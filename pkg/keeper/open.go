package keeper

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/entrhq/kindred/pkg/config"
	"github.com/entrhq/kindred/pkg/logging"
	"github.com/entrhq/kindred/pkg/state"
	"github.com/entrhq/kindred/pkg/storage"
)

const (
	fileMediumName   = "storage.json"
	sqliteMediumName = "kindred.db"
)

// Open builds a Keeper from cfg. A medium that cannot be opened is
// replaced by an in-memory one so the journal keeps working; the failure
// is logged. Close must be called to flush and release the medium.
func Open(cfg *config.Config, log *logging.Logger) (*Keeper, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if log == nil {
		log = logging.NewNop()
	}

	medium := openMedium(cfg, log)
	adapter := storage.New(medium, log.With("storage"))

	opts := []Option{WithNamespace(cfg.Namespace)}
	var deferred *state.Deferred
	if cfg.Persistence == config.PersistDeferred {
		deferred = state.NewDeferred()
		opts = append(opts, WithScheduler(deferred))
	}

	k := New(adapter, log.With("keeper"), opts...)
	k.deferred = deferred
	if c, ok := medium.(io.Closer); ok {
		k.closeFn = c.Close
	}

	if deferred != nil {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			deferred.Run(ctx, cfg.FlushInterval)
		}()
		k.stopFlush = func() {
			cancel()
			<-done
		}
	}

	log.Infof("opened %s store in %s (namespace %s, persistence %s)",
		cfg.Medium, cfg.DataDir, cfg.Namespace, cfg.Persistence)
	return k, nil
}

func openMedium(cfg *config.Config, log *logging.Logger) storage.Medium {
	switch cfg.Medium {
	case config.MediumFile:
		m, err := storage.OpenFileMedium(filepath.Join(cfg.DataDir, fileMediumName))
		if err != nil {
			log.Warnf("falling back to memory storage: %v", err)
			return storage.NewMemoryMedium()
		}
		if err := m.LoadError(); err != nil {
			log.Warnf("ignoring unreadable storage file %s: %v", m.Path(), err)
		}
		return m
	case config.MediumSQLite:
		m, err := storage.OpenSQLiteMedium(filepath.Join(cfg.DataDir, sqliteMediumName))
		if err != nil {
			log.Warnf("falling back to memory storage: %v", err)
			return storage.NewMemoryMedium()
		}
		return m
	default:
		return storage.NewMemoryMedium()
	}
}

// Flush writes any deferred updates to storage now.
func (k *Keeper) Flush() {
	if k.deferred != nil {
		k.deferred.Flush()
	}
}

// Close stops background flushing, writes pending updates and closes the
// medium. It is safe to call more than once.
func (k *Keeper) Close() error {
	var err error
	k.closeOnce.Do(func() {
		if k.stopFlush != nil {
			k.stopFlush()
		}
		k.Flush()
		if k.closeFn != nil {
			err = k.closeFn()
		}
	})
	return err
}
