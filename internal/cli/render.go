package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/reportviewer/internal/analyzer"
	"github.com/JonMunkholm/reportviewer/internal/logging"
	"github.com/JonMunkholm/reportviewer/internal/report"
	"github.com/JonMunkholm/reportviewer/internal/textio"
)

// ErrReportHasErrors is returned under --strict when the report lists errors.
var ErrReportHasErrors = errors.New("report contains errors")

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Output string
	Strict bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a saved analyzer report",
		Long: `Parse a plain-text analyzer report and print its sections.

Reads standard input when no file or "-" is given.`,
		Example: `  # Render a saved report as tables
  reportview render reporte.txt

  # Emit JSON from stdin
  cat reporte.txt | reportview render -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			return runRender(cmd, name, opts)
		},
	}

	addOutputFlags(cmd, &opts.Output, &opts.Strict)
	return cmd
}

func addOutputFlags(cmd *cobra.Command, output *string, strict *bool) {
	cmd.Flags().StringVarP(output, "output", "o", "table", "Output format (table|json)")
	cmd.Flags().BoolVar(strict, "strict", false, "Exit with an error when the report lists errors")
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runRender(cmd *cobra.Command, name string, opts *RenderOptions) error {
	text, err := readInput(cmd.InOrStdin(), name, analyzer.MaxReportSize)
	if err != nil && !errors.Is(err, textio.ErrEmpty) {
		return err
	}

	parsed := report.Parse(text)
	logging.FromContext(cmd.Context()).Debug("report parsed",
		"source", name,
		"categories", len(parsed.Categories),
		"has_errors", parsed.HasErrors(),
	)
	return emit(cmd.OutOrStdout(), parsed, opts.Output, opts.Strict)
}

func emit(w io.Writer, parsed *report.ParsedReport, format string, strict bool) error {
	if err := Print(w, parsed, format); err != nil {
		return err
	}
	if strict && parsed.HasErrors() {
		return ErrReportHasErrors
	}
	return nil
}

// readInput reads name, or in when name is "-", through textio.
func readInput(in io.Reader, name string, limit int64) (string, error) {
	if name == "-" {
		return textio.ReadAll(in, limit)
	}

	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	text, err := textio.ReadAll(f, limit)
	if err != nil {
		return text, fmt.Errorf("%s: %w", name, err)
	}
	return text, nil
}
