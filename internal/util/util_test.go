package util

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple", input: "Chew Rope", expected: "chew-rope"},
		{name: "punctuation collapses", input: "Salmon & Rice -- Adult Formula!", expected: "salmon-rice-adult-formula"},
		{name: "trims separators", input: "  --Cozy Bed--  ", expected: "cozy-bed"},
		{name: "keeps digits", input: "Catnip 2.0 XL", expected: "catnip-2-0-xl"},
		{name: "drops non ascii", input: "Café Crème", expected: "caf-cr-me"},
		{name: "empty falls back", input: "!!!", expected: "product"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Slugify(tt.input); got != tt.expected {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		page, limit       int
		wantPage, wantLim int
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLim: 20},
		{name: "negative page", page: -3, limit: 10, wantPage: 1, wantLim: 10},
		{name: "cap limit", page: 2, limit: 500, wantPage: 2, wantLim: 50},
		{name: "in range", page: 4, limit: 50, wantPage: 4, wantLim: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, limit := NormalizePage(tt.page, tt.limit, 20, 50)
			if page != tt.wantPage || limit != tt.wantLim {
				t.Fatalf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)", tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLim)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total    int64
		limit    int
		expected int
	}{
		{total: 0, limit: 20, expected: 0},
		{total: 1, limit: 20, expected: 1},
		{total: 20, limit: 20, expected: 1},
		{total: 21, limit: 20, expected: 2},
		{total: 100, limit: 0, expected: 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.expected {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.expected)
		}
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	if got := Offset(3, 20); got != 40 {
		t.Fatalf("Offset(3, 20) = %d, want 40", got)
	}
}
