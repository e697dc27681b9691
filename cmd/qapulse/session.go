package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/qapulse/internal/config"
	"github.com/davetashner/qapulse/internal/filter"
	"github.com/davetashner/qapulse/internal/pipeline"
	"github.com/davetashner/qapulse/internal/refresh"
	"github.com/davetashner/qapulse/internal/report"
	"github.com/davetashner/qapulse/internal/source"
)

// Flag names local to the CLI; config-backed names live in the config package.
const (
	flagTab      = "tab"
	flagSections = "sections"
	flagOutput   = "output"
)

// addSourceFlags registers flags that control how tabs are loaded.
func addSourceFlags(fs *pflag.FlagSet) {
	fs.String(config.FlagSourceURL, "", "published spreadsheet URL (overrides source.url)")
	fs.String(config.FlagTimeout, "", "per-fetch timeout, e.g. 30s")
	fs.Int(config.FlagMaxParallel, 0, "maximum concurrent tab fetches")
	fs.StringSlice(flagTab, nil, "only include these tabs, by name (repeatable)")
}

// addFilterFlags registers the filter selection flags.
func addFilterFlags(fs *pflag.FlagSet) {
	fs.String(config.FlagPlatform, "", "platform to include (default All)")
	fs.String(config.FlagBuild, "", "build to include (default All)")
	fs.String(config.FlagFrom, "", "earliest date to include, e.g. 2024-03-01")
	fs.String(config.FlagTo, "", "latest date to include, inclusive of the whole day")
}

// addOutputFlags registers the rendering flags.
func addOutputFlags(fs *pflag.FlagSet) {
	fs.StringP(config.FlagFormat, "f", "", "output format: text, json or markdown (default text)")
	fs.StringP(flagOutput, "o", "", "output file path (default: stdout)")
	fs.String(flagSections, "", "comma-separated list of report sections to include")
	fs.Int(config.FlagTrendWindow, 0, "number of recent builds in the trend (default 10)")
}

// session is the resolved configuration for one command invocation.
type session struct {
	dir  string
	cfg  *config.Config
	tabs []source.Tab
	sel  filter.Selection
}

// loadSession resolves the project directory, loads and merges config files,
// applies explicit flags, and validates the result.
func loadSession(cmd *cobra.Command, args []string) (*session, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	absPath, err := cmdFS.Abs(dir)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "qapulse: cannot resolve path %q (%v)", dir, err)
	}
	info, err := cmdFS.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, exitError(ExitInvalidArgs, "qapulse: path %q does not exist", dir)
		}
		return nil, exitError(ExitInvalidArgs, "qapulse: cannot stat %q (%v)", dir, err)
	}
	if !info.IsDir() {
		return nil, exitError(ExitInvalidArgs, "qapulse: %q is not a directory", dir)
	}

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "qapulse: failed to load %s (%v)", config.GlobalConfigPath(), err)
	}
	projectCfg, err := config.Load(absPath)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "qapulse: failed to load project config (%v)", err)
	}

	cfg := config.Merge(globalCfg, projectCfg)
	if err := config.ApplyFlags(cfg, cmd.Flags()); err != nil {
		return nil, exitError(ExitInvalidArgs, "qapulse: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "qapulse: %v", err)
	}

	sel, err := cfg.Selection()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "qapulse: %v", err)
	}

	tabs, err := selectTabs(cfg.SourceTabs(absPath), stringSlice(cmd, flagTab))
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "qapulse: %v", err)
	}

	return &session{dir: absPath, cfg: cfg, tabs: tabs, sel: sel}, nil
}

// selectTabs keeps only the named tabs, in configuration order.
func selectTabs(tabs []source.Tab, names []string) ([]source.Tab, error) {
	if len(names) == 0 {
		return tabs, nil
	}
	known := make([]string, 0, len(tabs))
	for _, t := range tabs {
		known = append(known, t.Name)
	}
	for _, n := range names {
		if !slices.Contains(known, n) {
			return nil, fmt.Errorf("unknown tab %q (available: %s)", n, strings.Join(known, ", "))
		}
	}
	var out []source.Tab
	for _, t := range tabs {
		if slices.Contains(names, t.Name) {
			out = append(out, t)
		}
	}
	return out, nil
}

// newOrchestrator wires the fetchers for the session's tabs.
func (s *session) newOrchestrator(opts ...refresh.Option) (*refresh.Orchestrator, error) {
	fetcher := source.MultiFetcher{
		HTTP:  source.NewHTTPFetcher(s.cfg.Source.URL, s.cfg.Timeout()),
		Files: source.FileFetcher{FS: cmdFS},
	}
	opts = append([]refresh.Option{refresh.WithMaxParallel(s.cfg.MaxParallel)}, opts...)
	return refresh.New(newFetcher(fetcher), s.tabs, opts...)
}

// newFetcher lets tests substitute the network.
var newFetcher = func(f source.MultiFetcher) source.Fetcher { return f }

// viewOptions derives pipeline options from the session.
func (s *session) viewOptions() pipeline.Options {
	return pipeline.Options{TrendWindow: s.cfg.TrendWindow, Aliases: s.cfg.Aliases}
}

// localPaths returns the file paths of tabs read from disk.
func (s *session) localPaths() []string {
	var paths []string
	for _, t := range s.tabs {
		if t.Path != "" {
			paths = append(paths, t.Path)
		}
	}
	return paths
}

// render writes views in the configured format.
func (s *session) render(cmd *cobra.Command, w io.Writer, views []pipeline.View) error {
	opts := report.Options{Sections: splitList(stringValue(cmd, flagSections))}
	switch s.cfg.Format() {
	case "json":
		return report.RenderJSON(w, views, opts)
	case "markdown":
		return report.RenderMarkdown(w, views, opts)
	default:
		return report.RenderText(w, views, opts)
	}
}

func stringValue(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func stringSlice(cmd *cobra.Command, name string) []string {
	v, _ := cmd.Flags().GetStringSlice(name)
	return v
}

// splitList parses a comma-separated flag value.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
