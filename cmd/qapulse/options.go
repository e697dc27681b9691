package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/qapulse/internal/filter"
	"github.com/davetashner/qapulse/internal/pipeline"
	"github.com/davetashner/qapulse/internal/redact"
	"github.com/davetashner/qapulse/internal/report"
)

// optionsCmd lists the filter values each tab offers.
var optionsCmd = &cobra.Command{
	Use:   "options [dir]",
	Short: "List the platforms and builds each tab offers",
	Long: `Fetch every configured tab and list the values accepted by --platform
and --build. Builds are listed per platform, newest first, so the list for a
platform only contains builds that have rows for it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptions,
}

func init() {
	addSourceFlags(optionsCmd.Flags())
}

func runOptions(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}
	orch, err := s.newOrchestrator()
	if err != nil {
		return exitError(ExitInvalidArgs, "qapulse: %v", err)
	}
	if _, err := orch.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("qapulse: refresh interrupted (%v)", err)
	}

	w := cmd.OutOrStdout()
	opts := s.viewOptions()
	states := orch.States()
	views := pipeline.BuildAll(states, filter.DefaultSelection(), opts)
	for i, st := range states {
		v := &views[i]
		_, _ = fmt.Fprintf(w, "%s\n", report.SectionTitle("Tab: "+v.Tab.DisplayName()))
		if !v.Loaded() {
			_, _ = fmt.Fprintf(w, "  not loaded: %s\n\n", redact.String(fmt.Sprint(v.Err)))
			continue
		}

		tbl := report.NewTable(
			report.Column{Header: "Platform"},
			report.Column{Header: "Builds"},
		)
		tbl.AddRow(filter.All, joinOrDash(v.Builds))
		for _, p := range v.Platforms {
			scoped := pipeline.Build(st, filter.Selection{Platform: p, Build: filter.All}, opts)
			tbl.AddRow(p, joinOrDash(scoped.Builds))
		}
		if err := tbl.Render(w); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w)
	}
	return statusError(pipeline.Classify(views))
}

func joinOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
