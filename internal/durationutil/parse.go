// Package durationutil parses human-entered duration strings such as
// "1 min", "30 sec" or "1.5 hour" into time.Duration values.
package durationutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseError represents a duration string that could not be parsed.
type ParseError struct {
	Input   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "invalid duration " + strconv.Quote(e.Input) + ": " + e.Message + ": " + e.Err.Error()
	}
	return "invalid duration " + strconv.Quote(e.Input) + ": " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts a human duration string into a time.Duration.
//
// The input is a numeric magnitude followed by an optional unit word:
// "30 sec", "1.5 min", "2 hours". Units are matched by prefix so full,
// abbreviated, singular and plural spellings all work (sec/secs/seconds,
// min/minutes, hr/hrs/hour/hours). A bare number is read as seconds.
// Tokens after the unit are ignored.
//
// The magnitude may be fractional or negative; range validation is left
// to the caller. A missing or malformed magnitude, or an unrecognized
// unit word, yields a *ParseError.
func Parse(s string) (time.Duration, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, &ParseError{Input: s, Message: "empty duration"}
	}

	magnitude, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, &ParseError{Input: s, Message: "expected a numeric magnitude", Err: err}
	}
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return 0, &ParseError{Input: s, Message: "magnitude is not a finite number"}
	}

	unit := time.Second
	if len(fields) > 1 {
		var ok bool
		unit, ok = unitDuration(fields[1])
		if !ok {
			return 0, &ParseError{Input: s, Message: "unrecognized unit " + strconv.Quote(fields[1])}
		}
	}

	ns := magnitude * float64(unit)
	if math.Abs(ns) > float64(math.MaxInt64) {
		return 0, &ParseError{Input: s, Message: "magnitude out of range"}
	}
	return time.Duration(ns), nil
}

// unitDuration maps a unit word to its base duration. Matching is by
// case-insensitive prefix, which covers singular, plural and abbreviated
// spellings at once.
func unitDuration(word string) (time.Duration, bool) {
	switch w := strings.ToLower(word); {
	case strings.HasPrefix(w, "sec"):
		return time.Second, true
	case strings.HasPrefix(w, "min"):
		return time.Minute, true
	case strings.HasPrefix(w, "hour"), strings.HasPrefix(w, "hr"):
		return time.Hour, true
	default:
		return 0, false
	}
}
