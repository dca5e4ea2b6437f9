package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/engine/encoding"
	"github.com/dshills/inkwell/internal/script"
)

type replayOptions struct {
	watch bool
	raw   bool
}

func newReplayCmd(g *globals) *cobra.Command {
	var opts replayOptions
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a host event script against an in-memory host",
		Long: `replay feeds the events of a script through the editor, rendering on
an in-memory host, and checks the script's expectations.

With --watch the script is replayed again whenever it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var metrics *app.Metrics
			if g.cfg.Metrics.Enabled {
				reg := prometheus.NewRegistry()
				metrics = app.NewMetrics(reg)
				if g.cfg.Metrics.Address != "" {
					shutdown := serveMetrics(g, reg)
					defer shutdown()
				}
			}

			err := replayFile(g, metrics, args[0], opts, cmd.OutOrStdout())
			if !opts.watch {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "replay failed: %v\n", err)
			}
			return watchFile(ctx, g, args[0], func() {
				if err := replayFile(g, metrics, args[0], opts, cmd.OutOrStdout()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "replay failed: %v\n", err)
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "replay again when the script changes")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print the final document in raw form")
	return cmd
}

// replayFile runs one replay and prints the final content. Metrics
// accumulate across runs.
func replayFile(g *globals, metrics *app.Metrics, path string, opts replayOptions, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sc, err := script.Parse(data)
	if err != nil {
		return err
	}

	runner := script.Runner{
		StateOptions:  g.stateOptions(),
		EditorOptions: g.editorOptions(metrics),
		Logger:        g.logger,
	}

	res, err := runner.Run(sc)
	if err != nil {
		return err
	}

	if opts.raw {
		doc, err := encoding.MarshalIndent(res.State.Content())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s", doc)
	} else {
		for _, text := range res.Blocks() {
			fmt.Fprintln(out, text)
		}
	}

	name := sc.Name
	if name == "" {
		name = filepath.Base(path)
	}
	if err := res.Check(sc.Expect); err != nil {
		return fmt.Errorf("%s: expectations not met:\n  %s", name, strings.ReplaceAll(err.Error(), "\n", "\n  "))
	}
	g.logger.Info("replay finished", "script", name, "events", len(sc.Events),
		"failed", res.Failed, "mode", res.Mode, "rebuilds", res.Rebuilds())
	return nil
}

// watchFile calls fn each time path is written or replaced. It returns
// when ctx is done.
func watchFile(ctx context.Context, g *globals, path string, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// editors often replace the file, so watch its directory
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	g.logger.Info("watching script", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				fn()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				fn()
				continue
			}
			return err
		}
	}
}

// serveMetrics exposes reg on the configured address until the returned
// function is called.
func serveMetrics(g *globals, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: g.cfg.Metrics.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("metrics server failed", "error", err)
		}
	}()
	g.logger.Info("serving metrics", "address", g.cfg.Metrics.Address)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
