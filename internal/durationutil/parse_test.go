package durationutil

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{"30 sec", 30 * time.Second},
		{"30 secs", 30 * time.Second},
		{"45 seconds", 45 * time.Second},
		{"1 min", time.Minute},
		{"1.5 min", 90 * time.Second},
		{"10 minutes", 10 * time.Minute},
		{"2 hour", 2 * time.Hour},
		{"2 hours", 2 * time.Hour},
		{"1.5 hour", 90 * time.Minute},
		{"3 hr", 3 * time.Hour},
		{"3 hrs", 3 * time.Hour},
		{"1 MIN", time.Minute},
		{"30 SEC", 30 * time.Second},
		{"45", 45 * time.Second},
		{"0.5", 500 * time.Millisecond},
		{"  1   min  ", time.Minute},
		{"-30 sec", -30 * time.Second},
		{"0 sec", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no magnitude", "abc"},
		{"unit first", "min 1"},
		{"unknown unit", "1 day"},
		{"glued unit", "30sec"},
		{"nan", "NaN sec"},
		{"infinity", "Inf hours"},
		{"overflow", "1e300 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("Parse(%q) error = %T, want *ParseError", tt.input, err)
			}
		})
	}
}

func TestParseIgnoresTrailingTokens(t *testing.T) {
	got, err := Parse("1 min or so")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != time.Minute {
		t.Errorf("got %v, want %v", got, time.Minute)
	}
}
