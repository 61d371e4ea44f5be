package main

import (
	"testing"

	"golang.org/x/tools/go/analysis"
)

func TestBuildAnalyzersIncludesLocalAnalyzer(t *testing.T) {
	var found bool
	for _, a := range buildAnalyzers() {
		if a.Name == "osexitmain" {
			found = true
		}
	}
	if !found {
		t.Fatal("osexitmain analyzer is not part of the bundle")
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []*analysis.Analyzer
		expected int
	}{
		{
			name: "duplicates removed",
			input: []*analysis.Analyzer{
				{Name: "a"}, {Name: "b"}, {Name: "a"},
			},
			expected: 2,
		},
		{
			name:     "nil entries skipped",
			input:    []*analysis.Analyzer{nil, {Name: "a"}},
			expected: 1,
		},
		{
			name:     "empty input",
			input:    []*analysis.Analyzer{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dedupe(tt.input); len(got) != tt.expected {
				t.Errorf("dedupe returned %d analyzers, want %d", len(got), tt.expected)
			}
		})
	}
}
