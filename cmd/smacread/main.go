package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mfeurer/smacread"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out, pretty := outputWriter()
	return newRootCmd(cfg, out, pretty).Execute()
}

// outputWriter picks the writer to print to and whether to pretty-print:
// indented JSON on a terminal, compact JSON when piped.
func outputWriter() (io.Writer, bool) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return colorable.NewColorableStdout(), true
	}
	return os.Stdout, false
}

func newRootCmd(cfg *Config, out io.Writer, pretty bool) *cobra.Command {
	root := &cobra.Command{
		Use:           "smacread",
		Short:         "Dump SMAC output artifacts as JSON",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize,
		"read size in bytes for streaming rundata files")
	root.PersistentFlags().BoolVar(&cfg.FailOnTruncated, "strict-tail", cfg.FailOnTruncated,
		"fail when a rundata file ends in the middle of a record")

	root.AddCommand(
		&cobra.Command{
			Use:   "rundata <file>",
			Short: "Stream run records from a live-rundata json file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return streamRunData(cfg, out, args[0])
			},
		},
		&cobra.Command{
			Use:   "runs <file>",
			Short: "Convert a runs_and_results file into a numeric table",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				table, err := cfg.RunResultCodes.ReadRunsAndResults(args[0])
				if err != nil {
					return err
				}
				return printJSON(out, pretty, table)
			},
		},
		&cobra.Command{
			Use:   "params <file>",
			Short: "Read configurations from a paramstrings file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				configs, err := smacread.ReadParamStrings(args[0])
				if err != nil {
					return err
				}
				return printJSON(out, pretty, configs)
			},
		},
		&cobra.Command{
			Use:   "calls <file>",
			Short: "Read configurations from a validationCallStrings file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				configs, err := smacread.ReadValidationCallStrings(args[0])
				if err != nil {
					return err
				}
				return printJSON(out, pretty, configs)
			},
		},
		&cobra.Command{
			Use:   "objectives <file>",
			Short: "Read a validationObjectiveMatrix file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				values, err := smacread.ReadValidationObjectiveMatrix(args[0])
				if err != nil {
					return err
				}
				return printJSON(out, pretty, values)
			},
		},
		&cobra.Command{
			Use:   "instances <file>",
			Short: "Read an instance file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				instances, err := smacread.ReadInstances(args[0])
				if err != nil {
					return err
				}
				return printJSON(out, pretty, instances)
			},
		},
		&cobra.Command{
			Use:   "features <file>",
			Short: "Read an instance feature file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				names, features, err := smacread.ReadInstanceFeatures(args[0])
				if err != nil {
					return err
				}
				return printJSON(out, pretty, struct {
					Features  []string             `json:"features"`
					Instances map[string][]float64 `json:"instances"`
				}{names, features})
			},
		},
	)
	return root
}

// streamRunData prints one JSON document per line as records are parsed, so
// output is available before the whole file is read.
func streamRunData(cfg *Config, out io.Writer, path string) error {
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", cfg.ChunkSize)
	}
	in, err := smacread.OpenArtifact(path)
	if err != nil {
		return err
	}
	defer in.Close()

	p := smacread.NewDocumentParserSize(in, cfg.ChunkSize)
	p.FailOnTruncated = cfg.FailOnTruncated
	enc := json.NewEncoder(out)
	for p.Scan() {
		if err := enc.Encode(p.Value()); err != nil {
			return err
		}
	}
	return p.Err()
}

func printJSON(out io.Writer, pretty bool, v any) error {
	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
