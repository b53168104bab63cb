// Package timecode converts between "HH:MM:SS" style time codes and seconds.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Segment multipliers
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
	MaxSegments      = 3
	Separator        = ":"
)

// ErrInvalid is returned for input that is not 1-3 colon-separated non-negative integers
var ErrInvalid = errors.New("invalid time code")

// Parse converts "HH:MM:SS", "MM:SS" or "SS" into total seconds.
// Individual fields are not range checked, "99:99:99" is accepted.
func Parse(code string) (int, error) {
	if strings.TrimSpace(code) == "" {
		return 0, ErrInvalid
	}

	parts := strings.Split(code, Separator)
	if len(parts) > MaxSegments {
		return 0, fmt.Errorf("%w: %q has %d segments", ErrInvalid, code, len(parts))
	}

	total := 0
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, code)
		}
		if total > (math.MaxInt-v)/SecondsPerMinute {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalid, code)
		}
		total = total*SecondsPerMinute + v
	}
	return total, nil
}

// Format renders seconds as HH:MM:SS
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// Compose builds a zero-padded time code from separate hour, minute and second fields.
func Compose(hours, minutes, seconds string) (string, error) {
	fields := []string{hours, minutes, seconds}
	values := make([]int, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			f = "0"
		}
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return "", fmt.Errorf("%w: field %q", ErrInvalid, f)
		}
		values[i] = v
	}
	return fmt.Sprintf("%02d:%02d:%02d", values[0], values[1], values[2]), nil
}
