package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/killallgit/parley/pkg/config"
	"github.com/killallgit/parley/pkg/logger"
	"github.com/killallgit/parley/pkg/session"
	"github.com/killallgit/parley/pkg/store"
	"github.com/killallgit/parley/pkg/tui"
)

// RunApplication opens the store and runs the TUI until the user quits.
func RunApplication(ctx context.Context, cfg *config.Config) error {
	log := logger.WithComponent("app")
	log.Info("Application starting", "store", cfg.Store.Path, "debug", cfg.Debug)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctrl := session.New(st, session.Options{Debug: cfg.Debug})
	// Anything newer than the open-time mark is reported by the watcher.
	if err := ctrl.LoadChatsThrough(st.HighWater()); err != nil {
		return fmt.Errorf("load chats: %w", err)
	}
	ctrl.AppendStatus(fmt.Sprintf("parley: %d pages, store %s", len(ctrl.Pages()), cfg.Store.Path))
	ctrl.AppendStatus("Tab/Shift-Tab switch pages, PgUp/PgDn scroll, Ctrl-C quits")

	stopWatch := startWatcher(ctx, st, cfg.Store.PollInterval)
	// Runs before the deferred st.Close.
	defer stopWatch()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// stderr belongs to the screen while it is up
	logger.SetConsoleEcho(false)
	defer logger.SetConsoleEcho(true)

	app := tui.NewApp(screen, ctrl, tui.Options{Events: st.Events()})
	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	log.Info("Application stopped")
	return nil
}

// startWatcher runs st.Watch in the background. The returned function
// cancels it and waits for it to return.
func startWatcher(ctx context.Context, st *store.Store, interval time.Duration) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := st.Watch(ctx, interval); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithComponent("app").Error("Watcher stopped", "error", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if dir := filepath.Dir(cfg.Store.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	st, err := store.Open(cfg.Store.Path, store.Options{
		SelfID:   cfg.Store.SelfID,
		SelfName: cfg.Store.SelfName,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
