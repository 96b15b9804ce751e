package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsidebar/internal/coalesce"
	"git.home.luguber.info/inful/docsidebar/internal/config"
	"git.home.luguber.info/inful/docsidebar/internal/logfields"
	"git.home.luguber.info/inful/docsidebar/internal/metrics"
	"git.home.luguber.info/inful/docsidebar/internal/reload"
	"git.home.luguber.info/inful/docsidebar/internal/render"
	"git.home.luguber.info/inful/docsidebar/internal/schedule"
	"git.home.luguber.info/inful/docsidebar/internal/server"
	"git.home.luguber.info/inful/docsidebar/internal/sidebar"
	"git.home.luguber.info/inful/docsidebar/internal/watch"
)

const shutdownTimeout = 10 * time.Second

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ScanFlags `embed:""`

	Interval time.Duration `help:"Minimum spacing between reloads (overrides watch.interval)"`
	Resync   time.Duration `help:"Periodic full rescan interval (overrides watch.resync_interval)"`
	Listen   string        `help:"Address for /health, /metrics and /sidebar (overrides watch.listen)"`
	Touch    string        `help:"File whose mtime signals a reload (overrides watch.config_path)"`
	NoTouch  bool          `name:"no-touch" help:"Regenerate only; never touch the renderer config"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	w.apply(cfg)
	if w.Interval > 0 {
		cfg.Watch.Interval = w.Interval
	}
	if w.Resync > 0 {
		cfg.Watch.ResyncInterval = w.Resync
	}
	if w.Listen != "" {
		cfg.Watch.Listen = w.Listen
	}
	if w.Touch != "" {
		cfg.Watch.ConfigPath = w.Touch
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loop, err := newWatchLoop(cfg, !w.NoTouch)
	if err != nil {
		return err
	}
	return loop.run(ctx)
}

// watchLoop ties the file-change feed, the coalescer, the reload signal and
// the optional ops server together.
type watchLoop struct {
	cfg      *config.Config
	format   render.Format
	registry *prom.Registry
	recorder *metrics.PrometheusRecorder
	store    *server.Store
	toucher  *reload.Toucher
}

func newWatchLoop(cfg *config.Config, touch bool) (*watchLoop, error) {
	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, err
	}
	reg := prom.NewRegistry()
	l := &watchLoop{
		cfg:      cfg,
		format:   format,
		registry: reg,
		recorder: metrics.NewPrometheusRecorder(reg),
		store:    server.NewStore(),
	}
	if touch {
		if target := cfg.ReloadTarget(); target != "" {
			if l.toucher, err = reload.NewToucher(target); err != nil {
				return nil, err
			}
		} else {
			slog.Warn("No renderer config found, reload signal disabled", logfields.Path(cfg.Root))
		}
	}
	return l, nil
}

// regenerate rescans the content root, publishes the result and writes the
// output file when one is configured.
func (l *watchLoop) regenerate() error {
	opts := l.cfg.SidebarOptions()
	opts.Recorder = l.recorder
	m, err := sidebar.Assemble(l.cfg.Root, opts)
	if err != nil {
		return err
	}
	l.store.Set(m, time.Now())
	if l.cfg.Output.Path == "" {
		return nil
	}
	return writeSidebar(os.Stdout, l.cfg.Output.Path, m, l.format)
}

// reload is the coalesced action: regenerate, then signal the renderer.
func (l *watchLoop) reload() {
	if err := l.regenerate(); err != nil {
		slog.Error("Sidebar regeneration failed", logfields.Error(err))
		return
	}
	if l.toucher == nil {
		return
	}
	if err := l.toucher.Touch(); err != nil {
		slog.Error("Failed to signal reload", logfields.File(l.toucher.Path()), logfields.Error(err))
	}
}

func (l *watchLoop) run(ctx context.Context) error {
	// The initial scan must succeed; later failures are logged and retried on the next change.
	if err := l.regenerate(); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	co := coalesce.New(l.reload, l.cfg.Watch.Interval, coalesce.WithRecorder(l.recorder))
	defer co.Stop()

	watcher, err := watch.New(l.cfg.Root, co)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if l.cfg.Watch.ResyncInterval > 0 {
		sched, err := schedule.NewScheduler()
		if err != nil {
			return err
		}
		if _, err := sched.ScheduleEvery("resync", l.cfg.Watch.ResyncInterval, co.Trigger); err != nil {
			return err
		}
		sched.Start(ctx)
		defer func() {
			if err := sched.Stop(context.Background()); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	if l.cfg.Watch.Listen != "" {
		srv := server.New(l.cfg.Watch.Listen, server.Options{
			Registry: l.registry,
			Store:    l.store,
			Rescan:   co.Trigger,
		})
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(stopCtx); err != nil {
				slog.Warn("Failed to stop ops server", logfields.Error(err))
			}
		}()
	}

	err = watcher.Run(ctx)
	slog.Info("Watch stopped")
	return err
}
