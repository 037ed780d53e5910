package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"graphs/internal/chart"
	"graphs/internal/config"
	"graphs/internal/renderer"
	"graphs/internal/report"
	"graphs/internal/tui"
	"graphs/internal/window"
)

type renderFlags struct {
	configPath string
	agent      string
	backend    string
	verbose    bool
}

func main() {
	for _, envFile := range []string{".env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags renderFlags
	rootCmd := &cobra.Command{
		Use:           "render [flags] <json_file>",
		Short:         "Draw item, agent and interaction charts from a telemetry JSON report",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), flags, args[0])
		},
	}
	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "Path to YAML config file (optional; uses ~/.config/graphs/config.yaml if not provided)")
	rootCmd.Flags().StringVar(&flags.agent, "agent", "", "Draw a position heatmap for this agent instead of all agent paths")
	rootCmd.Flags().StringVar(&flags.backend, "backend", "", "Viewer: auto, window or terminal (default from config)")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log load and plot steps to stderr")
	return rootCmd
}

func runRender(stdout io.Writer, flags renderFlags, path string) error {
	var cfg *config.AppConfig
	var err error
	if flags.configPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(flags.configPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	backend := flags.backend
	if backend == "" {
		backend = cfg.Render.Backend
	}
	switch backend {
	case config.BackendAuto, config.BackendWindow, config.BackendTerminal:
	default:
		return fmt.Errorf("unknown backend: %s", backend)
	}

	logger := log.New(io.Discard, "", 0)
	if flags.verbose {
		logger = log.New(os.Stderr, "[render] ", log.LstdFlags|log.Lmicroseconds)
	}

	classifier, err := report.NewClassifier()
	if err != nil {
		return fmt.Errorf("compile report schemas: %w", err)
	}

	agent := flags.agent
	if agent == "" {
		agent = cfg.Render.HeatmapAgent
	}
	collector := &renderer.Collector{}
	r := renderer.New(collector, classifier, renderer.Options{
		HeatmapAgent: agent,
		HeatmapBins:  cfg.Render.HeatmapBins,
	}, logger)

	out := r.Render(path)
	for _, n := range out.Notes {
		fmt.Fprintln(stdout, n)
	}
	if msg := out.Message(); msg != "" {
		fmt.Fprintln(stdout, msg)
	}
	if out.Kind != renderer.Rendered {
		return nil
	}

	figures := collector.Figures()
	switch backend {
	case config.BackendWindow:
		err = showWindow(cfg, path, figures)
	case config.BackendTerminal:
		err = tui.Run(path, figures)
	default:
		if window.Available() {
			logger.Printf("showing %d figures in a window", len(figures))
			err = showWindow(cfg, path, figures)
		} else {
			logger.Printf("no window available, showing %d figures in the terminal", len(figures))
			err = tui.Run(path, figures)
		}
	}
	if err != nil {
		fmt.Fprintf(stdout, "An error occurred: %v\n", err)
	}
	return nil
}

func showWindow(cfg *config.AppConfig, path string, figures []chart.Figure) error {
	return window.Show(figures, window.Options{
		Title:  "Telemetry Graphs - " + filepath.Base(path),
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
	})
}
