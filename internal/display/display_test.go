package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kristof/includefix/internal/resolver"
)

func TestProgress_DotEveryHundredSteps(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "Crawling the codebase")

	for i := 0; i < 250; i++ {
		p.Step()
	}
	p.Done()

	output := buf.String()
	if !strings.HasPrefix(output, "Crawling the codebase\n") {
		t.Errorf("missing phase header:\n%s", output)
	}
	if got := strings.Count(output, "."); got != 2 {
		t.Errorf("printed %d dots for 250 steps, want 2", got)
	}
	if p.Count() != 250 {
		t.Errorf("Count() = %d, want 250", p.Count())
	}
}

func TestFormatDirective(t *testing.T) {
	if got := FormatDirective("Foo.h", false); got != "#include \"Foo.h\"" {
		t.Errorf("quoted form = %q", got)
	}
	if got := FormatDirective("vector", true); got != "#include <vector>" {
		t.Errorf("angled form = %q", got)
	}
}

func TestRenderer_ChoicesMenu(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	inc := resolver.Inconsistency{
		Value: "x.h",
		Candidates: []resolver.Candidate{
			resolver.Rename{Name: "X.h", Path: "A/X.h"},
			resolver.Rename{Name: "x.H", Path: "B/x.H"},
		},
	}
	r.Choices(inc, []string{"X.h", "x.H"}, 7)

	output := buf.String()
	for _, want := range []string{
		"Should be one of:",
		"1: '#include \"X.h\"' (A/X.h)",
		"2: '#include \"x.H\"' (B/x.H)",
		"3: Skip",
		"4: Fix all 7 files automatically",
		"5: Skip all - quit program",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("menu missing %q:\n%s", want, output)
		}
	}
}

func TestRenderer_SeparatorOnlyCandidateHasNoPath(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	inc := resolver.Inconsistency{
		Value:      "Sub\\File.h",
		Candidates: []resolver.Candidate{resolver.SeparatorOnly{}},
	}
	r.Choices(inc, []string{"Sub/File.h"}, 1)

	output := buf.String()
	if !strings.Contains(output, "Should be:") {
		t.Errorf("single candidate should use singular header:\n%s", output)
	}
	if !strings.Contains(output, "1: '#include \"Sub/File.h\"'\n") {
		t.Errorf("separator-only line must not carry a path annotation:\n%s", output)
	}
}

func TestRenderer_Summary(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Summary(3, 1, 2)

	output := buf.String()
	for _, want := range []string{"Summary:", "Skipped: 1", "Fixed: 3", "Errors: 2"} {
		if !strings.Contains(output, want) {
			t.Errorf("summary missing %q:\n%s", want, output)
		}
	}
}

func TestRenderer_BufferOutputIsPlainText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.FileHeader(1, 1, "main.cpp")
	r.InvalidChoice()

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-terminal writer must not receive ANSI codes:\n%q", buf.String())
	}
}
