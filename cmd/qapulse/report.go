package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/qapulse/internal/pipeline"
)

// reportCmd is the subcommand for a one-shot QA report.
var reportCmd = &cobra.Command{
	Use:   "report [dir]",
	Short: "Fetch every tab once and print a QA report",
	Long: `Load the qapulse config from dir (default: current directory), fetch
every configured tab concurrently, apply the platform, build and date filters,
and print summary, distribution, trend and breakdown sections for each tab.

A tab that fails to load does not stop the others. The exit code is 2 when
some tabs failed and 3 when none loaded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	addSourceFlags(reportCmd.Flags())
	addFilterFlags(reportCmd.Flags())
	addOutputFlags(reportCmd.Flags())
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	orch, err := s.newOrchestrator()
	if err != nil {
		return exitError(ExitInvalidArgs, "qapulse: %v", err)
	}

	start := time.Now()
	slog.Info("fetching tabs", "tabs", len(s.tabs))
	res, err := orch.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("qapulse: refresh interrupted (%v)", err)
	}
	for name, ferr := range res.Failed {
		slog.Warn("tab failed", "tab", name, "error", ferr)
	}

	views := pipeline.BuildAll(orch.States(), s.sel, s.viewOptions())

	w := cmd.OutOrStdout()
	if out := stringValue(cmd, flagOutput); out != "" {
		f, createErr := cmdFS.Create(out)
		if createErr != nil {
			return exitError(ExitInvalidArgs, "qapulse: cannot create output file %q (%v)", out, createErr)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	if err := s.render(cmd, w, views); err != nil {
		return fmt.Errorf("qapulse: rendering failed (%v)", err)
	}

	slog.Info("report complete", "loaded", len(res.Succeeded), "failed", len(res.Failed),
		"duration", time.Since(start).Round(time.Millisecond))
	return statusError(pipeline.Classify(views))
}
