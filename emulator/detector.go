package emulator

import (
	"strings"
)

// DetectMode selects the value a Detector reports.
type DetectMode int

//go:generate go tool stringer -linecomment -type=DetectMode
const (
	DETECT_FIRST = DetectMode(0) // first
	DETECT_LAST  = DetectMode(1) // last
)

// ParseDetectMode parses "first" or "last".
func ParseDetectMode(text string) (mode DetectMode, err error) {
	switch strings.ToLower(text) {
	case DETECT_FIRST.String():
		mode = DETECT_FIRST
	case DETECT_LAST.String():
		mode = DETECT_LAST
	default:
		err = ErrDetectMode
	}
	return
}

// Detector watches a sequence of sampled values.
//
// In DETECT_FIRST mode the first value is the result. In DETECT_LAST mode
// the result is the value sampled just before the first value that was
// already seen: the last new value before the sequence cycles.
type Detector struct {
	Mode DetectMode

	seen    map[int]struct{}
	prev    int
	samples int
}

// Samples returns the number of values sampled.
func (det *Detector) Samples() int {
	return det.samples
}

// Sample adds a value, and returns the result once it is known.
func (det *Detector) Sample(value int) (result int, done bool) {
	det.samples += 1

	if det.Mode == DETECT_FIRST {
		return value, true
	}

	if det.seen == nil {
		det.seen = make(map[int]struct{})
	}

	if _, repeat := det.seen[value]; repeat {
		return det.prev, true
	}

	det.seen[value] = struct{}{}
	det.prev = value

	return
}

// Last returns the most recent new value, if any was sampled.
func (det *Detector) Last() (value int, ok bool) {
	return det.prev, det.samples > 0
}
