package frame

import "strings"

// Detection selects the frame-boundary strategy applied to the incoming
// byte stream. It is immutable for the lifetime of a session.
type Detection int

const (
	// EndDelimiterOnly detects frames based only on an end delimiter.
	EndDelimiterOnly Detection = iota
	// StartAndEndDelimiter detects frames between a start and an end
	// delimiter; bytes outside a frame are discarded.
	StartAndEndDelimiter
	// NoDelimiters disables boundary detection; every chunk delivered by
	// the transport is one frame. Only suitable for sources that already
	// deliver discrete messages.
	NoDelimiters
)

// String returns the identifier used in configuration files.
func (d Detection) String() string {
	switch d {
	case EndDelimiterOnly:
		return "end_delimiter_only"
	case StartAndEndDelimiter:
		return "start_and_end_delimiter"
	case NoDelimiters:
		return "no_delimiters"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the defined detection modes.
func (d Detection) Valid() bool {
	switch d {
	case EndDelimiterOnly, StartAndEndDelimiter, NoDelimiters:
		return true
	default:
		return false
	}
}

// DetectionFromString parses a configuration identifier into a Detection.
// Unknown identifiers default to EndDelimiterOnly with ok=false.
func DetectionFromString(s string) (Detection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "end_delimiter_only", "end", "":
		return EndDelimiterOnly, true
	case "start_and_end_delimiter", "start_end":
		return StartAndEndDelimiter, true
	case "no_delimiters", "none":
		return NoDelimiters, true
	default:
		return EndDelimiterOnly, false
	}
}
