package services

import (
	"strings"
	"testing"
)

func TestFixCommonOCRErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"detached at sign", "jane @gmail.com", "jane@gmail.com"},
		{"misread at sign", "jane egmail.com", "jane@gmail.com"},
		{"detached dot com", "jane@example .com", "jane@example.com"},
		{"clean email untouched", "jane@example.com", "jane@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixCommonOCRErrors(tt.input)
			if got != tt.expected {
				t.Errorf("fixCommonOCRErrors(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMergeLineWraps(t *testing.T) {
	got := mergeLineWraps("experi-\nence in soft-\nware")
	if got != "experience in software" {
		t.Errorf("hyphen wrap merge = %q", got)
	}

	got = mergeLineWraps("first line\nsecond line\n\nnew paragraph")
	if !strings.Contains(got, "first line second line") {
		t.Errorf("single newline should fold to space: %q", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Errorf("paragraph break should survive: %q", got)
	}
}

func TestCorrectToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"rn confusion", "rnanagement", "management"},
		{"cl confusion", "clevelopment", "development"},
		{"known word untouched", "management", "management"},
		{"short token untouched", "rna", "rna"},
		{"titlecase untouched", "Rnanagement", "Rnanagement"},
		{"digits untouched", "rn2021", "rn2021"},
		{"trailing punctuation preserved", "rnanagement,", "management,"},
		{"unknown candidate untouched", "rnxyzabc", "rnxyzabc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := correctToken(tt.input)
			if got != tt.expected {
				t.Errorf("correctToken(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeMonthDates(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Mar 2021", "03/2021"},
		{"January 2019", "01/2019"},
		{"Dec 2023 to Mar 2024", "12/2023 to 03/2024"},
		{"no dates here", "no dates here"},
	}

	for _, tt := range tests {
		got := normalizeMonthDates(tt.input)
		if got != tt.expected {
			t.Errorf("normalizeMonthDates(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRespacePunctuation(t *testing.T) {
	got := respacePunctuation("skills : Go ,Python")
	if got != "skills: Go, Python" {
		t.Errorf("respacePunctuation = %q", got)
	}
}

func TestSplitCamelBoundaries(t *testing.T) {
	got := splitCamelBoundaries("HeadofTechnical")
	if got != "Headof Technical" {
		t.Errorf("splitCamelBoundaries = %q", got)
	}
}

func TestCleanOCRTextEndToEnd(t *testing.T) {
	raw := "Jane Smith\njane @gmail.com\nWorked in rnanagement from Mar 2019\nto Dec 2021 ."
	got := CleanOCRText(raw)

	if !strings.Contains(got, "jane@gmail.com") {
		t.Errorf("email not repaired: %q", got)
	}
	if !strings.Contains(got, "management") {
		t.Errorf("spell correction missed: %q", got)
	}
	if !strings.Contains(got, "03/2019") || !strings.Contains(got, "12/2021") {
		t.Errorf("dates not normalized: %q", got)
	}
	if strings.Contains(got, " .") {
		t.Errorf("punctuation not respaced: %q", got)
	}
}
