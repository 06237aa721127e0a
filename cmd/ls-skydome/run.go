package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-skydome/internal/config"
	"github.com/litescript/ls-skydome/internal/logging"
	"github.com/litescript/ls-skydome/internal/state"
	"github.com/litescript/ls-skydome/internal/ui"
)

// At most one event of each type is raised per frame.
const maxEventsPerFrame = 4

var (
	headless       bool
	headlessFrames int
)

func runRoot(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	start, err := skyTime()
	if err != nil {
		return err
	}
	clock := state.NewClock(start, cfg.TimeScale)

	if headless || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runHeadless(ctx, cmd.OutOrStdout(), clock)
	}
	return runTUI(ctx, clock)
}

// runTUI starts the Bubble Tea program and feeds it frames from the driver.
func runTUI(ctx context.Context, clock *state.Clock) error {
	// Logs would corrupt the alternate screen.
	logger.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	eng, err := newEngine(ctx, cfg, logger, cfg.Render.Viewport())
	if err != nil {
		return err
	}

	model := ui.New(ui.Options{
		Driver:       eng.driver,
		Clock:        clock,
		Compositor:   eng.comp,
		Interpolator: eng.interp,
		Observer:     cfg.Observer.Name,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if cfgPath != "" {
		w, err := watchConfig(ctx, eng, clock, logger)
		if err != nil {
			logger.Warn("config reload disabled: %v", err)
		} else {
			defer w.Stop()
		}
	}

	go eng.driver.Run(ctx, clock, func(_ *state.FrameState, err error) {
		if err != nil {
			p.Send(ui.ErrorMsg{Error: err})
			return
		}
		p.Send(ui.FrameMsg{Snapshot: eng.mgr.Snapshot()})
	})

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// watchConfig applies live-reloadable settings when the config file changes:
// observer, refresh interval, time scale and log level. Catalog, field and
// projection changes need a restart.
func watchConfig(ctx context.Context, eng *engine, clock *state.Clock, log *logging.Logger) (*config.Watcher, error) {
	w, err := config.NewWatcher(config.Options{Path: cfgPath, DotEnv: []string{".env"}}, func(c *config.Config, err error) {
		if err != nil {
			log.Warn("config reload failed: %v", err)
			return
		}
		eng.driver.SetObserver(c.Observer)
		eng.mgr.SetRefreshInterval(c.Refresh)
		clock.SetScale(c.TimeScale)
		log.SetLevel(logging.ParseLevel(c.LogLevel))
		log.Info("config reloaded: observer %s (%.4f, %.4f)", c.Observer.Name, c.Observer.LatDeg, c.Observer.LonDeg)
	})
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

// runHeadless prints one summary line per frame plus any sky events, until
// ctx ends or headlessFrames frames have been written.
func runHeadless(ctx context.Context, out io.Writer, clock *state.Clock) error {
	eng, err := newEngine(ctx, cfg, logger, cfg.Render.Viewport())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		written int
		runErr  error
	)
	eng.driver.Run(ctx, clock, func(f *state.FrameState, err error) {
		if err != nil {
			runErr = err
			cancel()
			return
		}
		writeFrameLine(out, f)

		for _, e := range eng.mgr.RecentEvents(maxEventsPerFrame) {
			if e.FrameNumber == f.Number {
				writeEventLine(out, e)
			}
		}

		written++
		if headlessFrames > 0 && written >= headlessFrames {
			cancel()
		}
	})
	return runErr
}

func writeFrameLine(w io.Writer, f *state.FrameState) {
	fmt.Fprintf(w, "%s  frame %-5d sun %+7.2f°  %s → %s %3.0f%%  stars %d/%d  moon %s %.0f%%\n",
		f.SkyTime.UTC().Format("2006-01-02 15:04:05"), f.Number, f.SunAltDeg,
		f.Colors.From, f.Colors.To, f.Colors.T*100,
		len(f.Stars.Visible), len(f.Stars.Visible)+f.Stars.Culled,
		f.Moon.Phase, f.Moon.Illumination*100)
}

func writeEventLine(w io.Writer, e state.Event) {
	detail := ""
	switch e.Type {
	case state.EventPaletteChange:
		detail = fmt.Sprintf(" %s → %s", e.OldPalette, e.NewPalette)
	case state.EventMoonPhase:
		detail = fmt.Sprintf(" %s → %s", e.OldPhase, e.NewPhase)
	}
	fmt.Fprintf(w, "  * %s%s\n", e.Type, detail)
}
