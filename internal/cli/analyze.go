package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/reportviewer/internal/analyzer"
	"github.com/JonMunkholm/reportviewer/internal/report"
)

const defaultAnalyzerURL = "http://localhost:8080/analyze"

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	MaxSize int64
	Output  string
	Strict  bool
	Raw     bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <source-file|->",
		Short: "Send source code to the analyzer and render the report",
		Long: `Post a source file to a running analyzer and print the parsed report.

The analyzer URL defaults to $ANALYZER_URL, then ` + defaultAnalyzerURL + `.`,
		Example: `  # Analyze a Python file
  reportview analyze main.py

  # Use a remote analyzer and keep the raw text
  reportview analyze main.py --analyzer-url https://analyzer.example/analyze --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "analyzer-url", "", "Analyzer endpoint (default: $ANALYZER_URL or "+defaultAnalyzerURL+")")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "X-API-Key sent to the analyzer (default: $ANALYZER_API_KEY)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Request timeout")
	cmd.Flags().Int64Var(&opts.MaxSize, "max-size", 1<<20, "Largest accepted source file in bytes")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Print the analyzer's text unparsed")
	addOutputFlags(cmd, &opts.Output, &opts.Strict)

	return cmd
}

func runAnalyze(cmd *cobra.Command, name string, opts *AnalyzeOptions) error {
	code, err := readInput(cmd.InOrStdin(), name, opts.MaxSize)
	if err != nil {
		return err
	}

	client, err := analyzer.New(analyzer.Options{
		URL:           firstNonEmpty(opts.URL, os.Getenv("ANALYZER_URL"), defaultAnalyzerURL),
		APIKey:        firstNonEmpty(opts.APIKey, os.Getenv("ANALYZER_API_KEY")),
		Timeout:       opts.Timeout,
		MaxConcurrent: 1,
		MaxWait:       opts.Timeout,
	})
	if err != nil {
		return err
	}

	text, err := client.Analyze(cmd.Context(), code)
	if err != nil {
		return err
	}

	if opts.Raw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	return emit(cmd.OutOrStdout(), report.Parse(text), opts.Output, opts.Strict)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
