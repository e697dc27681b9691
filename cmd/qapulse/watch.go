package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/davetashner/qapulse/internal/config"
	"github.com/davetashner/qapulse/internal/pipeline"
	"github.com/davetashner/qapulse/internal/refresh"
)

// watchCmd keeps refreshing and re-rendering until interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Refresh tabs on an interval and re-render the report",
	Long: `Fetch every configured tab, print the report, and repeat every
--interval (default 5m, or refresh_interval from config). Local tab files
are also followed: writing one triggers an immediate refresh.

A fetch that fails keeps the previously loaded data for that tab. Stop with
Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	addSourceFlags(watchCmd.Flags())
	addFilterFlags(watchCmd.Flags())
	addOutputFlags(watchCmd.Flags())
	watchCmd.Flags().String(config.FlagInterval, "", "refresh interval, e.g. 1m (default 5m)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}
	if stringValue(cmd, flagOutput) != "" {
		return exitError(ExitInvalidArgs, "qapulse: --output is not supported by watch")
	}

	orch, err := s.newOrchestrator()
	if err != nil {
		return exitError(ExitInvalidArgs, "qapulse: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchLoop(ctx, cmd, s, orch, s.cfg.Interval())
}

// watchLoop runs the refresh schedule and the file follower until ctx ends.
func watchLoop(ctx context.Context, cmd *cobra.Command, s *session, orch *refresh.Orchestrator, interval time.Duration) error {
	w := cmd.OutOrStdout()
	cycle := 0

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return orch.Run(gctx, interval, func(res refresh.Result) {
			cycle++
			views := pipeline.BuildAll(orch.States(), s.sel, s.viewOptions())
			if cycle > 1 {
				_, _ = fmt.Fprintln(w)
			}
			if err := s.render(cmd, w, views); err != nil {
				slog.Error("render failed", "error", err)
			}
			slog.Info("refresh cycle complete", "cycle", cycle,
				"loaded", len(res.Succeeded), "failed", len(res.Failed), "next_in", interval)
		})
	})
	if paths := s.localPaths(); len(paths) > 0 {
		g.Go(func() error {
			return refresh.FollowFiles(gctx, paths, func(string) { orch.Trigger() })
		})
	}

	err := g.Wait()
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		slog.Info("watch stopped")
		return nil
	}
	return err
}
