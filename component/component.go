// Package component defines the lifecycle and inspection contracts shared by
// the long-running pieces of the streaming pipeline.
//
// Every component follows the same pattern:
//   - Initialize() error                  setup only, no context
//   - Start(ctx context.Context) error    begin work, ctx passed through
//   - Stop(timeout time.Duration) error   graceful shutdown with deadline
package component

import (
	"context"
	"time"
)

// State represents the current lifecycle state of a component.
type State int

const (
	// StateCreated indicates the component was created but not initialized.
	StateCreated State = iota
	// StateInitialized indicates the component was initialized but not started.
	StateInitialized
	// StateStarted indicates the component is running.
	StateStarted
	// StateStopped indicates the component was stopped.
	StateStopped
	// StateFailed indicates the component failed during a lifecycle operation.
	StateFailed
)

// String returns a string representation of the component state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Metadata describes what a component is.
type Metadata struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "source", "pipeline", "sink"
	Description string `json:"description"`
	Version     string `json:"version"`
}

// HealthStatus describes the current health state of a component.
type HealthStatus struct {
	Healthy    bool          `json:"healthy"`
	LastCheck  time.Time     `json:"last_check"`
	ErrorCount int           `json:"error_count"`
	LastError  string        `json:"last_error,omitempty"`
	Uptime     time.Duration `json:"uptime"`
}

// FlowMetrics describes the current data flow through a component.
type FlowMetrics struct {
	MessagesPerSecond float64   `json:"messages_per_second"`
	BytesPerSecond    float64   `json:"bytes_per_second"`
	ErrorRate         float64   `json:"error_rate"`
	LastActivity      time.Time `json:"last_activity"`
}

// Component is implemented by long-running pipeline pieces that support
// lifecycle management and runtime inspection.
type Component interface {
	Meta() Metadata
	Initialize() error
	Start(ctx context.Context) error
	Stop(timeout time.Duration) error
	Health() HealthStatus
	DataFlow() FlowMetrics
}
