package app

import (
	"fmt"
	"io"
	"log/slog"

	"tasklist/internal/config"
	"tasklist/internal/logging"
	"tasklist/internal/storage"
	"tasklist/internal/task"
)

// App holds the opened slot and the task store built on it.
type App struct {
	Config config.Config
	Store  *task.Store
	Log    *slog.Logger

	slot   io.Closer
	logOut io.Closer
}

type Options struct {
	// Debug forces debug level regardless of the configured level.
	Debug bool
	// LogFallback receives logs when no log_file is configured.
	LogFallback io.Writer
}

// New opens the configured slot backend and loads the task store from it.
func New(cfg config.Config, opts Options) (*App, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	fallback := opts.LogFallback
	if fallback == nil {
		fallback = io.Discard
	}
	logger, logOut, err := logging.New(level, cfg.LogFile, fallback)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	a := &App{Config: cfg, Log: logger, logOut: logOut}

	slot, closer, err := openSlot(cfg)
	if err != nil {
		logOut.Close()
		return nil, err
	}
	a.slot = closer
	logger.Debug("slot opened", "backend", cfg.SlotBackend, "path", cfg.SlotPath, "key", cfg.SlotKey)

	store, err := task.Open(task.NewSlotPersister(slot, cfg.SlotKey), task.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store
	return a, nil
}

type slotCloser interface {
	task.Slot
	io.Closer
}

func openSlot(cfg config.Config) (task.Slot, io.Closer, error) {
	var (
		s   slotCloser
		err error
	)
	switch cfg.SlotBackend {
	case config.BackendFile:
		s, err = storage.OpenFile(cfg.SlotPath)
	case config.BackendSQLite, "":
		s, err = storage.Open(cfg.SlotPath)
	default:
		return nil, nil, fmt.Errorf("unknown slot backend %q", cfg.SlotBackend)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s slot: %w", cfg.SlotBackend, err)
	}
	return s, s, nil
}

// Close releases the slot and the log file.
func (a *App) Close() error {
	var errs []error
	if a.slot != nil {
		if err := a.slot.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close slot: %w", err))
		}
	}
	if a.logOut != nil {
		if err := a.logOut.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
