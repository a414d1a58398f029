// Package telemetry provides telemetry implementations that do not render.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/genassert/internal/core/domain"
	"go.trai.ch/genassert/internal/core/ports"
)

// Noop is a ports.Telemetry that records nothing. Used in tests and when
// progress output is suppressed.
type Noop struct{}

// NewNoop creates a no-op telemetry.
func NewNoop() *Noop { return &Noop{} }

// Record implements ports.Telemetry.
func (*Noop) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	v := noopVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close implements ports.Telemetry.
func (*Noop) Close() error { return nil }

// NopVertex returns a ports.Vertex that discards everything recorded on it.
func NopVertex() ports.Vertex { return noopVertex{} }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer           { return io.Discard }
func (noopVertex) Log(domain.LogLevel, string) {}
func (noopVertex) Complete(error)              {}
func (noopVertex) Cached()                     {}
