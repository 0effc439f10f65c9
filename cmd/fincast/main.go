package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/fincast/fincast/internal/config"
	"github.com/fincast/fincast/internal/engine"
	"github.com/fincast/fincast/internal/output"
)

// cliLogger implements engine.Logger using the standard log package.
type cliLogger struct{}

func (cliLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (cliLogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (cliLogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (cliLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "fincast %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate a forecast document without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			doc, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s is valid (%d accounts)\n", args[0], len(doc.Accounts))
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	var (
		format    string
		outputDir string
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "run <document>",
		Short: "Run the forecast for a document",
		Long: `Run simulates every account in the document year by year and prints
the yearly totals. With --output the per-account result tables and the
totals grid are also written as CSV files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			doc, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			eng := engine.NewEngine()
			if verbose {
				eng.SetLogger(cliLogger{})
			}
			result, err := eng.RunAnalysis(context.Background(), doc)
			if err != nil {
				return fmt.Errorf("forecast failed: %w", err)
			}

			formatter, err := output.NewFormatter(format)
			if err != nil {
				return err
			}
			rendered, err := formatter.Format(result)
			if err != nil {
				return err
			}
			if _, err := os.Stdout.Write(rendered); err != nil {
				return err
			}

			if outputDir != "" {
				if err := doc.WriteTables(outputDir); err != nil {
					return err
				}
				if err := result.Totals.Write(filepath.Join(outputDir, "totals.csv")); err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "wrote account tables and totals to %s\n", outputDir)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "report", "Output format: csv or report")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to write per-account CSV tables into")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log simulation progress")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:   "fincast",
		Short: "Year-by-year personal finance forecasting",
		Long: `fincast simulates a household's accounts (income, expenses, loans,
savings, retirement and health savings accounts) one year at a time and
reports the resulting net worth, taxes and savings balances.`,
		SilenceUsage: true,
	}
	root.AddCommand(runCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
