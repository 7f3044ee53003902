// Package display renders the inconsistency report, the interactive choice
// menus, and the closing summary. All output goes through an injected
// io.Writer so command code and tests can capture it.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/kristof/includefix/internal/resolver"
)

// Renderer writes the user-facing report. Color is enabled only when the
// writer is a terminal.
type Renderer struct {
	out     io.Writer
	colored bool
}

// NewRenderer creates a Renderer for w. ANSI color is used only when w is
// os.Stdout and stdout is a TTY.
func NewRenderer(w io.Writer) *Renderer {
	colored := false
	if w == os.Stdout {
		colored = isatty.IsTerminal(os.Stdout.Fd())
	}
	return &Renderer{out: w, colored: colored}
}

// FormatDirective renders an include value in its original directive form.
func FormatDirective(value string, angled bool) string {
	if angled {
		return fmt.Sprintf("#include <%s>", value)
	}
	return fmt.Sprintf("#include \"%s\"", value)
}

func (r *Renderer) paint(c color.Attribute, s string) string {
	if !r.colored {
		return s
	}
	return color.New(c).Sprint(s)
}

// ResultsHeader prints the report banner with the number of files that
// contain at least one inconsistency.
func (r *Renderer) ResultsHeader(fileCount int) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Results:")
	fmt.Fprintln(r.out, "========")
	fmt.Fprintf(r.out,
		"Found %d inconsistencies between the include statements and the actual "+
			"filenames in the filesystem.\n\n", fileCount)
}

// FileHeader prints the owning-file banner for the k-th of n flagged files.
func (r *Renderer) FileHeader(k, n int, path string) {
	fmt.Fprintf(r.out, "File(%d/%d): %s\n", k, n, r.paint(color.Bold, path))
}

// Directive prints the flagged include directive as written.
func (r *Renderer) Directive(value string, angled bool) {
	fmt.Fprintf(r.out, "    '%s'\n", FormatDirective(value, angled))
}

// Choices prints the numbered correction candidates followed by the three
// fixed trailing options. corrected must hold one pre-computed corrected
// value per candidate; fileCount is the total number of flagged files shown
// in the fix-all option.
func (r *Renderer) Choices(inc resolver.Inconsistency, corrected []string, fileCount int) {
	if len(corrected) == 1 {
		fmt.Fprintln(r.out, "        Should be:")
	} else {
		fmt.Fprintln(r.out, "        Should be one of:")
	}
	for i, value := range corrected {
		line := fmt.Sprintf("'%s'", FormatDirective(value, inc.Angled))
		if rn, ok := inc.Candidates[i].(resolver.Rename); ok {
			line += fmt.Sprintf(" (%s)", rn.Path)
		}
		fmt.Fprintf(r.out, "        %s: %s\n", r.paint(color.FgYellow, fmt.Sprintf("%d", i+1)), line)
	}
	m := len(corrected)
	fmt.Fprintf(r.out, "        %d: Skip\n", m+1)
	fmt.Fprintf(r.out, "        %d: Fix all %d files automatically\n", m+2, fileCount)
	fmt.Fprintf(r.out, "        %d: Skip all - quit program\n", m+3)
}

// PromptChoice prints the selection prompt without a trailing newline.
func (r *Renderer) PromptChoice() {
	fmt.Fprint(r.out, r.paint(color.FgCyan,
		"        Choose a number and hit enter (no value = first choice): "))
}

// Skipped reports that the current inconsistency was skipped.
func (r *Renderer) Skipped() {
	fmt.Fprintln(r.out, "        Skipped.")
	r.gap()
}

// InvalidChoice reports malformed or out-of-range operator input.
func (r *Renderer) InvalidChoice() {
	fmt.Fprintln(r.out, r.paint(color.FgRed, "        Invalid choice. Skipped."))
	r.gap()
}

// AutoEngaged announces that the automatic latch has been switched on.
func (r *Renderer) AutoEngaged() {
	fmt.Fprintln(r.out, "        Fixing all automatically.")
	r.gap()
}

// Quitting announces the abort selection.
func (r *Renderer) Quitting() {
	fmt.Fprintln(r.out, "        Quitting program.")
}

// UnableToCorrect reports that the expected directive text was not found in
// the owning file.
func (r *Renderer) UnableToCorrect() {
	fmt.Fprintln(r.out, r.paint(color.FgRed,
		"        Unable to correct include statement. Do it manually. Skipped."))
	r.gap()
}

// Fixed reports a successfully rewritten directive.
func (r *Renderer) Fixed(oldValue, newValue string, angled bool) {
	fmt.Fprintf(r.out, "    %s\n", r.paint(color.FgGreen, fmt.Sprintf(
		"Fixed include statement from '%s' to '%s'.",
		FormatDirective(oldValue, angled), FormatDirective(newValue, angled))))
}

// EndOfItem closes one inconsistency block.
func (r *Renderer) EndOfItem() {
	r.gap()
}

// Summary prints the closing counters.
func (r *Renderer) Summary(fixed, skipped, errors int) {
	fmt.Fprintln(r.out, "Summary:")
	fmt.Fprintln(r.out, "========")
	fmt.Fprintf(r.out, "Skipped: %d\n", skipped)
	fmt.Fprintf(r.out, "Fixed: %d\n", fixed)
	fmt.Fprintf(r.out, "Errors: %d\n", errors)
}

func (r *Renderer) gap() {
	fmt.Fprintln(r.out)
}
