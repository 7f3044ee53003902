// Package fixer walks the inconsistency report and rewrites include
// directives in place, driven either by an interactive operator or by the
// run-scoped automatic latch.
package fixer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kristof/includefix/internal/display"
	"github.com/kristof/includefix/internal/filelock"
	"github.com/kristof/includefix/internal/resolver"
)

// Options configures one fixer run.
type Options struct {
	// DryRun renders the report without prompting or mutating any file.
	DryRun bool
	// Auto starts the run with the automatic latch already engaged, so
	// every inconsistency is resolved with the first candidate.
	Auto bool
}

// Result holds the run counters.
type Result struct {
	Fixed   int
	Skipped int
	Errors  int
	// Aborted is set when the operator chose to quit; no summary should be
	// printed after an aborted run.
	Aborted bool
}

// Run iterates the report in discovery order and applies corrections.
// Operator input comes from prompter; all rendering goes through r. The
// automatic latch is one-way: once engaged (via Options.Auto or the fix-all
// menu choice) the prompt is bypassed for the rest of the run and the first
// candidate is applied.
func Run(root string, report *resolver.Report, prompter Prompter, r *display.Renderer, opts Options) (*Result, error) {
	result := &Result{}
	auto := opts.Auto
	fileCount := len(report.Files)

	r.ResultsHeader(fileCount)

	for k, file := range report.Files {
		r.FileHeader(k+1, fileCount, file.Path)

		for _, inc := range file.Inconsistencies {
			corrected := make([]string, len(inc.Candidates))
			for i, c := range inc.Candidates {
				corrected[i] = c.Apply(inc.Value)
			}

			r.Directive(inc.Value, inc.Angled)
			r.Choices(inc, corrected, fileCount)

			if opts.DryRun {
				r.EndOfItem()
				continue
			}

			choice, action, err := readChoice(prompter, r, auto, len(corrected))
			if err != nil {
				return result, err
			}

			switch action {
			case actionSkip:
				result.Skipped++
				r.Skipped()
				continue
			case actionInvalid:
				result.Skipped++
				r.InvalidChoice()
				continue
			case actionAbort:
				r.Quitting()
				result.Aborted = true
				return result, nil
			case actionAuto:
				auto = true
				r.AutoEngaged()
				choice = 1
			}

			if err := applyFix(root, file.Path, inc, corrected[choice-1], r); err != nil {
				result.Errors++
				r.UnableToCorrect()
				continue
			}
			result.Fixed++
			r.EndOfItem()
		}
	}
	return result, nil
}

type action int

const (
	actionApply action = iota
	actionSkip
	actionAuto
	actionAbort
	actionInvalid
)

// readChoice interprets one line of operator input against a menu with m
// candidates. Empty input defaults to the first candidate; the automatic
// latch short-circuits the prompt entirely.
func readChoice(prompter Prompter, r *display.Renderer, auto bool, m int) (int, action, error) {
	input := "1"
	if !auto {
		r.PromptChoice()
		line, err := prompter.ReadLine()
		if err != nil {
			return 0, actionInvalid, fmt.Errorf("failed to read input: %w", err)
		}
		input = strings.TrimSpace(line)
		if input == "" {
			input = "1"
		}
	}

	switch input {
	case strconv.Itoa(m + 1):
		return 0, actionSkip, nil
	case strconv.Itoa(m + 2):
		return 0, actionAuto, nil
	case strconv.Itoa(m + 3):
		return 0, actionAbort, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > m {
		return 0, actionInvalid, nil
	}
	return n, actionApply, nil
}

// applyFix substitutes the corrected directive for the original one inside
// the owning file and rewrites it. The quoted form is tried first; when that
// leaves the content unchanged the angle-bracket form is tried. An error is
// returned when neither form occurs verbatim, leaving the file untouched.
func applyFix(root, relPath string, inc resolver.Inconsistency, correctedValue string, r *display.Renderer) error {
	fullPath := filepath.Join(root, filepath.FromSlash(relPath))
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	content := string(data)

	angled := false
	newContent := strings.ReplaceAll(content,
		display.FormatDirective(inc.Value, false),
		display.FormatDirective(correctedValue, false))
	if newContent == content {
		// The directive was probably written with angle brackets.
		angled = true
		newContent = strings.ReplaceAll(content,
			display.FormatDirective(inc.Value, true),
			display.FormatDirective(correctedValue, true))
		if newContent == content {
			return fmt.Errorf("directive %q not found verbatim in %s", inc.Value, relPath)
		}
	}

	if err := filelock.AtomicWrite(fullPath, []byte(newContent)); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", relPath, err)
	}
	r.Fixed(inc.Value, correctedValue, angled)
	return nil
}
