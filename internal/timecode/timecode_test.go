package timecode

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"seconds only", "45", 45},
		{"minutes and seconds", "02:30", 150},
		{"hours minutes seconds", "01:02:03", 3723},
		{"zero", "00:00:00", 0},
		{"unbounded fields", "99:99:99", 99*3600 + 99*60 + 99},
		{"no padding", "1:5", 65},
		{"whitespace around segments", " 1 : 00 ", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"", "   ", "abc", "00:xx:10", "1:2:3:4", "-5", "00:-1:00", "1.5", "10:",
		"153722867280912931:0:0",
		"2562047788015215:30:08",
		"99999999999999999999",
	}

	for _, input := range inputs {
		_, err := Parse(input)
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q) error = %v, expected ErrInvalid", input, err)
		}
	}
}

func TestParse_LargeValues(t *testing.T) {
	if strconv.IntSize != 64 {
		t.Skip("needs 64-bit int")
	}
	got, err := Parse("2562047788015215:30:07")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != math.MaxInt {
		t.Errorf("Expected %d, got %d", math.MaxInt, got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{90, "00:01:30"},
		{3723, "01:02:03"},
		{-4, "00:00:00"},
	}

	for _, tt := range tests {
		if got := Format(tt.seconds); got != tt.expected {
			t.Errorf("Format(%d) = %s, expected %s", tt.seconds, got, tt.expected)
		}
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, seconds := range []int{0, 1, 61, 3599, 3600, 86399} {
		got, err := Parse(Format(seconds))
		if err != nil {
			t.Fatalf("Parse(Format(%d)) error: %v", seconds, err)
		}
		if got != seconds {
			t.Errorf("Parse(Format(%d)) = %d", seconds, got)
		}
	}
}

func TestCompose(t *testing.T) {
	got, err := Compose("1", "", "7")
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if got != "01:00:07" {
		t.Errorf("Compose = %s, expected 01:00:07", got)
	}

	if _, err := Compose("a", "0", "0"); !errors.Is(err, ErrInvalid) {
		t.Errorf("Compose with letters error = %v, expected ErrInvalid", err)
	}
}
