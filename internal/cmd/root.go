// Package cmd wires the includefix command line: flags, the confirmation
// gate, and the scan/analyze/fix pipeline.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kristof/includefix/internal/config"
	"github.com/kristof/includefix/internal/display"
	"github.com/kristof/includefix/internal/filelock"
	"github.com/kristof/includefix/internal/fixer"
	"github.com/kristof/includefix/internal/logger"
	"github.com/kristof/includefix/internal/resolver"
	"github.com/kristof/includefix/internal/scanner"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type options struct {
	dryRun    bool
	directory string
	assumeYes bool
	auto      bool
	verbose   bool
}

// NewRootCommand creates the includefix root command.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "includefix",
		Short: "Fix inconsistent #include statements in a C/C++ codebase",
		Long: `includefix checks a codebase for inconsistencies between the include
statements in the files and the actual filenames in the filesystem, and
corrects backslashes in include statements to use forward slashes. These
inconsistencies can be a problem on case-sensitive filesystems, such as
Linux, and can cause build errors.

The tool lists all the inconsistencies and lets you fix them by choosing the
correct filename from the filesystem. It is intended to be run from the
top-level directory of the codebase.`,
		Example: `  Show the inconsistencies in the codebase:
      includefix --dry-run

  Fix the inconsistencies and backslashes in include statements:
      includefix`,
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false,
		"Print the results without fixing the include statements")
	cmd.Flags().StringVarP(&opts.directory, "directory", "d", ".",
		"Toplevel directory of the codebase to process")
	cmd.Flags().BoolVarP(&opts.assumeYes, "yes", "y", false,
		"Skip the confirmation prompt")
	cmd.Flags().BoolVarP(&opts.auto, "auto", "a", false,
		"Apply the first candidate to every inconsistency without prompting")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()
	prompter := fixer.NewReaderPrompter(cmd.InOrStdin())

	level := "info"
	if opts.verbose {
		level = "debug"
	}
	log := logger.NewConsoleLogger(out, level)

	root, err := filepath.Abs(opts.directory)
	if err != nil {
		return fmt.Errorf("failed to resolve directory %s: %w", opts.directory, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}

	if !opts.dryRun && !opts.assumeYes {
		confirmed, err := confirm(out, prompter, root)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Operation aborted. Showing help info...")
			fmt.Fprintln(out)
			return cmd.Help()
		}
		fmt.Fprintln(out, "Confirmed. Starting the process.")
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	log.Debugf("recognized extensions: %s", strings.Join(cfg.Extensions, " "))
	log.Debugf("excluded directories: %s", strings.Join(cfg.ExcludeDirs, " "))

	if !opts.dryRun {
		lock, err := filelock.AcquireRunLock(root)
		if err != nil {
			return err
		}
		defer lock.Release()
		log.Debugf("acquired run lock in %s", root)
	}

	includes, inv, err := scan(root, cfg, out)
	if err != nil {
		return err
	}
	log.Debugf("found %d files with includes, %d distinct basenames in the tree",
		len(includes), len(inv))

	analysis := display.NewProgress(out, "Analyzing the codebase")
	report := resolver.Resolve(includes, inv, analysis.Step)
	analysis.Done()
	log.Debugf("analyzed %d include statements", analysis.Count())

	renderer := display.NewRenderer(out)
	result, err := fixer.Run(root, report, prompter, renderer, fixer.Options{
		DryRun: opts.dryRun,
		Auto:   opts.auto,
	})
	if err != nil {
		return err
	}
	if result.Aborted {
		return nil
	}

	renderer.Summary(result.Fixed, result.Skipped, result.Errors)
	return nil
}

// scan performs the two tree walks: include extraction and the filename
// inventory.
func scan(root string, cfg *config.Config, out io.Writer) ([]scanner.FileIncludes, scanner.Inventory, error) {
	crawl := display.NewProgress(out, "Crawling the codebase")
	includes, err := scanner.Crawl(root, scanner.ScanOptions{
		Extensions:  cfg.Extensions,
		ExcludeDirs: cfg.ExcludeDirs,
		Progress:    crawl.Step,
	})
	if err != nil {
		return nil, nil, err
	}
	crawl.Done()

	listing := display.NewProgress(out, "Listing all filenames")
	inv, err := scanner.BuildInventory(root, scanner.ScanOptions{
		Extensions:  cfg.Extensions,
		ExcludeDirs: cfg.ExcludeDirs,
		Progress:    listing.Step,
	})
	if err != nil {
		return nil, nil, err
	}
	listing.Done()

	return includes, inv, nil
}

// confirm prints the irreversibility warning and requires the operator to
// answer yes. Any other answer declines.
func confirm(out io.Writer, prompter fixer.Prompter, root string) (bool, error) {
	fmt.Fprintf(out, `
WARNING:
This tool will check the codebase for inconsistencies between the include
statements in the files and the actual filenames in the filesystem. It will
process the folder '%s'.
This action is irreversible. Type 'yes' to confirm you made a backup of the
folder. Type anything else to abort the operation.

`, root)
	fmt.Fprint(out, "Type 'yes' to confirm: ")

	line, err := prompter.ReadLine()
	if err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
}
