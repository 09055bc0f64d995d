package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jmorrow/rollcall"
	"github.com/spf13/cobra"
)

var (
	flagDB     string
	flagFormat string
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "rollcall",
	Short:         "Collect pytest-convention test suites without running them",
	Long:          "Rollcall scans Python test files with tree-sitter and prints the discovered module→class→function trees, annotated with docstrings and test source.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "catalog database path (optional)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect [path]",
	Short: "Collect the test suites under a path",
	Long:  "Discovers pytest-convention tests under the given file or directory (default: current directory) and prints the annotated module trees. With --db, the run is also saved to the catalog.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	start := time.Now()

	target, err := resolveTargetPath(args)
	if err != nil {
		return outputError("collect", err)
	}

	trees, err := rollcall.Collect(context.Background(), target)
	if err != nil {
		return outputError("collect", err)
	}

	tests := 0
	for _, tree := range trees {
		tests += tree.CountTests()
	}
	fmt.Fprintf(os.Stderr, "Collected %d tests in %d modules from %s in %s\n",
		tests, len(trees), target, time.Since(start).Round(time.Millisecond))

	if flagDB != "" {
		s, err := rollcall.OpenCatalog(flagDB)
		if err != nil {
			return outputError("collect", err)
		}
		defer s.Close()
		runID, err := rollcall.SaveRun(s, target, trees)
		if err != nil {
			return outputError("collect", err)
		}
		fmt.Fprintf(os.Stderr, "Saved run #%d to %s\n", runID, flagDB)
	}

	return outputResult(CLIResult{Command: "collect", Results: trees})
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the collection runs saved in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := openCatalogFlag("history")
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.Runs()
	if err != nil {
		return outputError("history", err)
	}
	cliRuns := make([]CLIRun, 0, len(runs))
	for _, r := range runs {
		cliRuns = append(cliRuns, CLIRun{
			ID:          r.ID,
			Path:        r.Path,
			CollectedAt: r.CollectedAt,
			ModuleCount: r.ModuleCount,
			TestCount:   r.TestCount,
		})
	}
	return outputResult(CLIResult{Command: "history", Results: cliRuns})
}

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Reprint a collection run saved in the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return outputError("show", fmt.Errorf("invalid run id %q", args[0]))
	}

	s, err := openCatalogFlag("show")
	if err != nil {
		return err
	}
	defer s.Close()

	trees, err := rollcall.LoadRun(s, runID)
	if err != nil {
		return outputError("show", err)
	}
	return outputResult(CLIResult{Command: "show", Results: trees})
}

// openCatalogFlag opens the catalog named by --db, which history and show
// require.
func openCatalogFlag(command string) (*rollcall.Store, error) {
	if flagDB == "" {
		return nil, outputError(command, fmt.Errorf("--db is required for %s", command))
	}
	s, err := rollcall.OpenCatalog(flagDB)
	if err != nil {
		return nil, outputError(command, err)
	}
	return s, nil
}

// resolveTargetPath returns the absolute path of the file or directory to
// collect.
func resolveTargetPath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", path, err)
	}
	return abs, nil
}
