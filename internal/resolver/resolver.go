// Package resolver classifies scanned include values against the filename
// inventory and produces the list of inconsistencies the fixer works
// through.
//
// An include value is inconsistent when its basename's casing disagrees with
// the file it resolves to, when it is ambiguous between several files and
// matches none of them exactly, or when it contains backslash separators.
// Values whose basename is unknown to the inventory and that contain no
// backslash are assumed to be toolchain or third-party headers and are never
// flagged.
package resolver

import (
	"strings"

	"github.com/kristof/includefix/internal/scanner"
)

// Candidate is one proposed correction for an inconsistent include value.
// It is either a Rename (the basename is replaced with the actual on-disk
// name) or a SeparatorOnly fix (the value is unchanged apart from separator
// normalization).
type Candidate interface {
	// Apply returns the corrected include value. The result always uses
	// forward slashes.
	Apply(value string) string
}

// Rename substitutes the actual on-disk basename for the written one.
type Rename struct {
	// Name is the actual-case basename of the matched file.
	Name string
	// Path is the matched file's root-relative path, shown to the operator
	// to disambiguate candidates.
	Path string
}

// Apply replaces the final path segment of value with the actual basename
// and normalizes all separators to forward slashes.
func (r Rename) Apply(value string) string {
	norm := NormalizeSeparators(value)
	if i := strings.LastIndex(norm, "/"); i >= 0 {
		return norm[:i+1] + r.Name
	}
	return r.Name
}

// SeparatorOnly leaves the value as written, normalizing backslashes to
// forward slashes. It is used when no file in the tree matches the value but
// the value still carries backslash separators, and when the basename
// already matches exactly.
type SeparatorOnly struct{}

// Apply normalizes all separators in value to forward slashes.
func (SeparatorOnly) Apply(value string) string {
	return NormalizeSeparators(value)
}

// Inconsistency is a single flagged include value together with its ordered
// correction candidates.
type Inconsistency struct {
	// Value is the include value exactly as written.
	Value string
	// Angled is true when the directive was scanned in <...> form.
	Angled bool
	// Candidates holds at least one entry.
	Candidates []Candidate
}

// FileReport groups the inconsistencies of one owning file.
type FileReport struct {
	// Path is the owning file's root-relative path.
	Path            string
	Inconsistencies []Inconsistency
}

// Report is the full analysis result, in discovery order.
type Report struct {
	Files []FileReport
}

// Empty reports whether no inconsistencies were found.
func (r *Report) Empty() bool {
	return len(r.Files) == 0
}

// Total returns the number of individual inconsistencies across all files.
func (r *Report) Total() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.Inconsistencies)
	}
	return total
}

// NormalizeSeparators converts every backslash in value to a forward slash.
func NormalizeSeparators(value string) string {
	return strings.ReplaceAll(value, "\\", "/")
}

// Basename returns the final path segment of an include value, treating
// backslash and forward slash as equivalent separators.
func Basename(value string) string {
	norm := NormalizeSeparators(value)
	if i := strings.LastIndex(norm, "/"); i >= 0 {
		return norm[i+1:]
	}
	return norm
}

// Resolve classifies every scanned include value against the inventory.
// progress, if non-nil, is invoked once per examined include value. A value
// appearing more than once in the same file is reported once.
func Resolve(files []scanner.FileIncludes, inv scanner.Inventory, progress func()) *Report {
	report := &Report{}

	for _, file := range files {
		var fr FileReport
		fr.Path = file.Path
		seen := make(map[string]bool)

		for _, inc := range file.Includes {
			if progress != nil {
				progress()
			}
			if seen[inc.Value] {
				continue
			}

			candidates := classify(inc.Value, inv)
			if len(candidates) == 0 {
				continue
			}
			seen[inc.Value] = true
			fr.Inconsistencies = append(fr.Inconsistencies, Inconsistency{
				Value:      inc.Value,
				Angled:     inc.Angled,
				Candidates: candidates,
			})
		}

		if len(fr.Inconsistencies) > 0 {
			report.Files = append(report.Files, fr)
		}
	}
	return report
}

// classify returns the correction candidates for one include value, or nil
// when the value is consistent.
func classify(value string, inv scanner.Inventory) []Candidate {
	written := Basename(value)
	entries, known := inv[strings.ToLower(written)]

	if !known {
		// Unknown basenames are external includes (string.h, vendor headers)
		// and only the separators can be wrong.
		if strings.Contains(value, "\\") {
			return []Candidate{SeparatorOnly{}}
		}
		return nil
	}

	if len(entries) == 1 {
		entry := entries[0]
		if entry.Name != written {
			return []Candidate{Rename{Name: entry.Name, Path: entry.Path}}
		}
		if strings.Contains(value, "\\") {
			return []Candidate{SeparatorOnly{}}
		}
		return nil
	}

	for _, entry := range entries {
		if entry.Name == written {
			// An exact match among the candidates settles the ambiguity.
			if strings.Contains(value, "\\") {
				return []Candidate{SeparatorOnly{}}
			}
			return nil
		}
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, Rename{Name: entry.Name, Path: entry.Path})
	}
	return candidates
}
