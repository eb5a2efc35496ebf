package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carscope/carscope/internal/inspection"
	"github.com/carscope/carscope/pkg/checklist"
	"github.com/carscope/carscope/pkg/config"
	"github.com/carscope/carscope/pkg/legal"
	"github.com/carscope/carscope/pkg/scoring"
	"github.com/carscope/carscope/pkg/surface"
)

func newScoreCmd() *cobra.Command {
	var (
		inputPath    string
		templatePath string
		outputFmt    string
		nowStr       string
		marketValue  float64
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an inspection form or raw engine input",
		Long: `Reads an inspection form (vehicle, market value, observations, legal record)
or a raw engine input (market value, checklist results, legal flags) and prints
the valuation. Files ending in .yaml or .yml are read as YAML, anything else as JSON.
Use "-" to read JSON from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.OutOrStdout(), scoreOpts{
				inputPath:    inputPath,
				templatePath: templatePath,
				outputFmt:    outputFmt,
				now:          nowStr,
				marketValue:  marketValue,
			})
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the form or engine input (required)")
	cmd.Flags().StringVar(&templatePath, "template", "", "Path to a checklist template (default: config or built-in)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, json or markdown")
	cmd.Flags().StringVar(&nowStr, "now", "", "Reference date for legal expiry checks, YYYY-MM-DD (default: today)")
	cmd.Flags().Float64Var(&marketValue, "market-value", 0, "Market value used when the input has none (default: config)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

type scoreOpts struct {
	inputPath    string
	templatePath string
	outputFmt    string
	now          string
	marketValue  float64
}

func runScore(w io.Writer, opts scoreOpts) error {
	renderer, err := rendererFor(opts.outputFmt)
	if err != nil {
		return err
	}

	cfg := loadConfig(".")
	tmpl, err := loadTemplate(firstNonEmpty(opts.templatePath, cfg.Template.Path))
	if err != nil {
		return err
	}

	now := time.Now()
	if opts.now != "" {
		d, err := legal.ParseDate(opts.now)
		if err != nil {
			return fmt.Errorf("parsing --now: %w", err)
		}
		now = d.Time
	}

	data, err := readInput(opts.inputPath)
	if err != nil {
		return err
	}

	marketValue := opts.marketValue
	if marketValue == 0 {
		marketValue = cfg.Scoring.DefaultMarketValue
	}

	report, err := inspection.ScoreDocument(scoring.NewEngine(), data, inputFormat(opts.inputPath), inspection.DocumentOptions{
		Template:           tmpl,
		DefaultMarketValue: marketValue,
		Now:                now,
	})
	if err != nil {
		return err
	}
	return renderer.Render(w, report)
}

func rendererFor(format string) (surface.Renderer, error) {
	switch format {
	case "text":
		return &surface.TerminalRenderer{}, nil
	case "json":
		return &surface.JSONRenderer{}, nil
	case "markdown":
		return &surface.MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or markdown)", format)
	}
}

func inputFormat(path string) inspection.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return inspection.FormatYAML
	default:
		return inspection.FormatJSON
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// loadTemplate returns nil for the built-in checklist.
func loadTemplate(path string) (*checklist.Template, error) {
	if path == "" {
		return nil, nil
	}
	return checklist.LoadTemplate(path)
}

func loadConfig(dir string) *config.Config {
	cfgFile := config.FindConfigFile(dir)
	if cfgFile == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
