// Package config defines the per-session streaming configuration: decoder
// method, frame detection strategy, delimiters and pipeline sizing.
// Configuration is validated before streaming begins; a malformed session
// never reaches the extractor.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/streamdash/decoder"
	"github.com/c360/streamdash/errors"
	"github.com/c360/streamdash/frame"
)

// OperationMode specifies the method used to construct a dashboard.
type OperationMode int

const (
	// ProjectFile builds the dashboard from a predefined project file.
	ProjectFile OperationMode = iota
	// DeviceSendsJSON builds the dashboard from device-sent JSON frames.
	DeviceSendsJSON
	// QuickPlot is the quick and simple data plotting mode.
	QuickPlot
)

// String returns the identifier used in configuration files.
func (m OperationMode) String() string {
	switch m {
	case ProjectFile:
		return "project_file"
	case DeviceSendsJSON:
		return "device_json"
	case QuickPlot:
		return "quick_plot"
	default:
		return "unknown"
	}
}

// OperationModeFromString parses a configuration identifier.
func OperationModeFromString(s string) (OperationMode, bool) {
	switch s {
	case "project_file":
		return ProjectFile, true
	case "device_json":
		return DeviceSendsJSON, true
	case "quick_plot", "":
		return QuickPlot, true
	default:
		return QuickPlot, false
	}
}

// Session is the complete configuration for one streaming session.
// Delimiter strings may use the escape sequences \n, \r, \t, \0 and \xNN.
type Session struct {
	DecoderMethod  string `yaml:"decoder" json:"decoder"`
	FrameDetection string `yaml:"frame_detection" json:"frame_detection"`
	OperationMode  string `yaml:"operation_mode" json:"operation_mode"`
	StartDelimiter string `yaml:"start_delimiter,omitempty" json:"start_delimiter,omitempty"`
	EndDelimiter   string `yaml:"end_delimiter,omitempty" json:"end_delimiter,omitempty"`
	Checksum       string `yaml:"checksum,omitempty" json:"checksum,omitempty"`
	MaxFrameSize   int    `yaml:"max_frame_size,omitempty" json:"max_frame_size,omitempty"`
	QueueSize      int    `yaml:"queue_size,omitempty" json:"queue_size,omitempty"`
	Workers        int    `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// DefaultSession returns the quick-plot defaults: plain text frames
// terminated by a newline.
func DefaultSession() Session {
	return Session{
		DecoderMethod:  decoder.PlainText.String(),
		FrameDetection: frame.EndDelimiterOnly.String(),
		OperationMode:  QuickPlot.String(),
		EndDelimiter:   `\n`,
		MaxFrameSize:   frame.DefaultMaxFrameSize,
		QueueSize:      4096,
		Workers:        4,
	}
}

// Validate checks the session for configuration errors. It is called
// before any stream byte is consumed; per-frame data problems are never
// configuration errors.
func (s *Session) Validate() error {
	if _, err := decoder.MethodFromString(s.DecoderMethod); err != nil {
		return err
	}

	detection, ok := frame.DetectionFromString(s.FrameDetection)
	if !ok {
		return errors.WrapConfiguration(
			fmt.Errorf("%w: frame detection %q", errors.ErrInvalidConfig, s.FrameDetection),
			"config", "Validate", "detection lookup")
	}

	if _, ok := OperationModeFromString(s.OperationMode); !ok {
		return errors.WrapConfiguration(
			fmt.Errorf("%w: operation mode %q", errors.ErrInvalidConfig, s.OperationMode),
			"config", "Validate", "operation mode lookup")
	}

	start, err := ParseDelimiter(s.StartDelimiter)
	if err != nil {
		return err
	}
	end, err := ParseDelimiter(s.EndDelimiter)
	if err != nil {
		return err
	}

	switch detection {
	case frame.EndDelimiterOnly:
		if len(end) == 0 {
			return errors.WrapConfiguration(
				fmt.Errorf("%w: end delimiter required", errors.ErrMissingDelimiter),
				"config", "Validate", "delimiter check")
		}
	case frame.StartAndEndDelimiter:
		if len(start) == 0 || len(end) == 0 {
			return errors.WrapConfiguration(
				fmt.Errorf("%w: start and end delimiters required", errors.ErrMissingDelimiter),
				"config", "Validate", "delimiter check")
		}
	}

	switch s.ChecksumAlgorithm() {
	case "", "crc8", "crc16", "crc32":
	default:
		return errors.WrapConfiguration(
			fmt.Errorf("%w: checksum %q", errors.ErrInvalidConfig, s.Checksum),
			"config", "Validate", "checksum lookup")
	}

	if s.MaxFrameSize < 0 || s.QueueSize < 0 || s.Workers < 0 {
		return errors.WrapConfiguration(
			fmt.Errorf("%w: sizes must be non-negative", errors.ErrInvalidConfig),
			"config", "Validate", "size check")
	}

	return nil
}

// Clone returns a copy of the session.
func (s *Session) Clone() Session {
	return *s
}

// Decoder returns the parsed decoder method. Call Validate first.
func (s *Session) Decoder() decoder.Method {
	m, _ := decoder.MethodFromString(s.DecoderMethod)
	return m
}

// Detection returns the parsed frame detection mode. Call Validate first.
func (s *Session) Detection() frame.Detection {
	d, _ := frame.DetectionFromString(s.FrameDetection)
	return d
}

// Mode returns the parsed operation mode. Call Validate first.
func (s *Session) Mode() OperationMode {
	m, _ := OperationModeFromString(s.OperationMode)
	return m
}

// ChecksumAlgorithm returns the normalized checksum algorithm name, or
// the empty string when frames carry no checksum.
func (s *Session) ChecksumAlgorithm() string {
	switch strings.ToLower(strings.TrimSpace(s.Checksum)) {
	case "", "none":
		return ""
	default:
		return strings.ToLower(strings.TrimSpace(s.Checksum))
	}
}

// StartDelimiterBytes returns the unescaped start delimiter.
func (s *Session) StartDelimiterBytes() []byte {
	b, _ := ParseDelimiter(s.StartDelimiter)
	return b
}

// EndDelimiterBytes returns the unescaped end delimiter.
func (s *Session) EndDelimiterBytes() []byte {
	b, _ := ParseDelimiter(s.EndDelimiter)
	return b
}

// Parse decodes a YAML (or JSON, which YAML subsumes) session document.
// Unknown fields are rejected to catch typos before streaming starts.
func Parse(data []byte) (Session, error) {
	s := DefaultSession()

	dec := yaml.NewDecoder(bytesReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Session{}, errors.WrapConfiguration(err, "config", "Parse", "yaml decode")
	}

	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Load reads and parses a session configuration file.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, errors.WrapConfiguration(err, "config", "Load", "file read")
	}
	return Parse(data)
}
