package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

// execute runs the root command with the given args and stdin content.
func execute(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "src/Foo.h", "#pragma once\n")
	writeFile(t, root, "main.cpp", "#include \"foo.h\"\nint main() {}\n")
	return root
}

func TestExecute_DeclinedConfirmationShowsHelp(t *testing.T) {
	root := fixtureTree(t)

	output, err := execute(t, []string{"-d", root}, "no\n")
	if err != nil {
		t.Fatalf("declining confirmation must exit cleanly, got error: %v", err)
	}

	if !strings.Contains(output, "Type 'yes' to confirm:") {
		t.Errorf("missing confirmation prompt:\n%s", output)
	}
	if !strings.Contains(output, "Operation aborted. Showing help info...") {
		t.Errorf("missing abort message:\n%s", output)
	}
	if !strings.Contains(output, "Usage:") {
		t.Errorf("help text not shown after decline:\n%s", output)
	}
	if got := readFile(t, root, "main.cpp"); !strings.Contains(got, "#include \"foo.h\"") {
		t.Error("tree modified after declined confirmation")
	}
}

func TestExecute_DryRunReportsWithoutMutating(t *testing.T) {
	root := fixtureTree(t)

	output, err := execute(t, []string{"--dry-run", "-d", root}, "")
	if err != nil {
		t.Fatalf("dry run error = %v", err)
	}

	for _, want := range []string{
		"Crawling the codebase",
		"Listing all filenames",
		"Analyzing the codebase",
		"Results:",
		"Should be:",
		"Summary:",
		"Fixed: 0",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("dry-run output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Type 'yes' to confirm:") {
		t.Error("dry run must not ask for confirmation")
	}
	if got := readFile(t, root, "main.cpp"); !strings.Contains(got, "#include \"foo.h\"") {
		t.Error("dry run modified the tree")
	}
}

func TestExecute_FullRunFixesTree(t *testing.T) {
	root := fixtureTree(t)

	output, err := execute(t, []string{"-d", root}, "yes\n1\n")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	if !strings.Contains(output, "Confirmed. Starting the process.") {
		t.Errorf("missing confirmation ack:\n%s", output)
	}
	if got := readFile(t, root, "main.cpp"); !strings.Contains(got, "#include \"Foo.h\"") {
		t.Errorf("main.cpp not fixed:\n%s", got)
	}
	if !strings.Contains(output, "Fixed: 1") || !strings.Contains(output, "Skipped: 0") || !strings.Contains(output, "Errors: 0") {
		t.Errorf("unexpected summary:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(root, ".includefix.lock")); !os.IsNotExist(err) {
		t.Error("run lock not cleaned up")
	}
}

func TestExecute_YesFlagSkipsConfirmation(t *testing.T) {
	root := fixtureTree(t)

	output, err := execute(t, []string{"--yes", "-d", root}, "1\n")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if strings.Contains(output, "Type 'yes' to confirm:") {
		t.Errorf("--yes must skip the confirmation prompt:\n%s", output)
	}
	if got := readFile(t, root, "main.cpp"); !strings.Contains(got, "#include \"Foo.h\"") {
		t.Error("main.cpp not fixed")
	}
}

func TestExecute_AutoFlagNeedsNoInput(t *testing.T) {
	root := fixtureTree(t)

	output, err := execute(t, []string{"-y", "-a", "-d", root}, "")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if got := readFile(t, root, "main.cpp"); !strings.Contains(got, "#include \"Foo.h\"") {
		t.Error("main.cpp not fixed in automatic mode")
	}
	if !strings.Contains(output, "Fixed: 1") {
		t.Errorf("unexpected summary:\n%s", output)
	}
}

func TestExecute_AbortSelectionSkipsSummary(t *testing.T) {
	root := fixtureTree(t)

	output, err := execute(t, []string{"-y", "-d", root}, "4\n")
	if err != nil {
		t.Fatalf("abort must exit cleanly, got error: %v", err)
	}
	if !strings.Contains(output, "Quitting program.") {
		t.Errorf("missing quit message:\n%s", output)
	}
	if strings.Contains(output, "Summary:") {
		t.Errorf("no summary expected after abort:\n%s", output)
	}
}

func TestExecute_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := execute(t, []string{"-n", "-d", missing}, "")
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestExecute_MalformedConfigStopsRun(t *testing.T) {
	root := fixtureTree(t)
	writeFile(t, root, ".includefix.yaml", "extensions: [broken\n")

	_, err := execute(t, []string{"-n", "-d", root}, "")
	if err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestExecute_ConfigExcludeDirsHonored(t *testing.T) {
	root := fixtureTree(t)
	writeFile(t, root, "generated/skip.cpp", "#include \"foo.h\"\n")
	writeFile(t, root, ".includefix.yaml", "exclude_dirs: [\".git\", \"generated\"]\n")

	output, err := execute(t, []string{"-y", "-a", "-d", root}, "")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if got := readFile(t, root, "generated/skip.cpp"); !strings.Contains(got, "#include \"foo.h\"") {
		t.Error("excluded directory was processed")
	}
	if !strings.Contains(output, "Fixed: 1") {
		t.Errorf("unexpected summary:\n%s", output)
	}
}
