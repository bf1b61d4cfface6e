// Package bus defines the transport collaborator contract. Actual serial,
// network and Bluetooth LE connections live outside this module; the
// pipeline only consumes the Source interface and carries the bus type as
// frame metadata.
package bus

import (
	"context"
	"io"
	"strings"
)

// Type identifies the transport a frame originated from. The core never
// interprets it; it is metadata for display and metrics labels.
type Type int

const (
	// Serial port communication.
	Serial Type = iota
	// Network socket communication.
	Network
	// BluetoothLE low-energy peripheral communication.
	BluetoothLE
)

// String returns the identifier used in configuration and metrics labels.
func (t Type) String() string {
	switch t {
	case Serial:
		return "serial"
	case Network:
		return "network"
	case BluetoothLE:
		return "bluetooth_le"
	default:
		return "unknown"
	}
}

// TypeFromString parses a configuration identifier into a Type.
// Unknown identifiers default to Serial with ok=false.
func TypeFromString(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serial":
		return Serial, true
	case "network", "tcp", "udp":
		return Network, true
	case "bluetooth_le", "ble", "bluetooth":
		return BluetoothLE, true
	default:
		return Serial, false
	}
}

// Source is the contract a transport implementation fulfills. Read returns
// the next available chunk with no guaranteed alignment to frame
// boundaries; it blocks until data arrives, the context is cancelled, or
// the connection closes (io.EOF).
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	Bus() Type
	Close() error
}

// ReaderSource adapts any io.Reader to the Source interface. It is glue
// for stdin, files and test fixtures, not a transport implementation.
type ReaderSource struct {
	r       io.Reader
	busType Type
	bufSize int
}

// NewReaderSource wraps r as a Source reporting the given bus type.
func NewReaderSource(r io.Reader, busType Type) *ReaderSource {
	return &ReaderSource{r: r, busType: busType, bufSize: 4096}
}

// Read returns the next chunk from the underlying reader.
func (s *ReaderSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, s.bufSize)
	n, err := s.r.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// Bus reports the transport type this source was constructed with.
func (s *ReaderSource) Bus() Type {
	return s.busType
}

// Close closes the underlying reader when it is an io.Closer.
func (s *ReaderSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
