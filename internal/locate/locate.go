// Package locate produces a best-effort estimate of the visitor's position.
//
// Resolution is a one-shot pass over an ordered list of sources: the first
// source to answer wins. There is no retry and no further fallback; when every
// source fails the visitor stays at the world view and submission remains
// disabled for the session.
package locate

import (
	"context"
	"errors"
	"log/slog"
)

// Zoom levels for the map view. Close is used when a location was resolved,
// World when it was not.
const (
	ZoomWorld = 2
	ZoomClose = 13
)

// ErrUnavailable is returned by a Source that cannot produce a position.
var ErrUnavailable = errors.New("location unavailable")

// Point is a latitude/longitude pair in signed degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Resolution is the outcome of a resolve pass. When Known is false the point
// is the zero value and Zoom is the world level.
type Resolution struct {
	Point Point
	Known bool
	Zoom  int
}

// Source yields a visitor position. Implementations should honor the context
// and return ErrUnavailable (or any other error) when they cannot answer.
type Source interface {
	Locate(ctx context.Context) (Point, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context) (Point, error)

// Locate implements Source.
func (f SourceFunc) Locate(ctx context.Context) (Point, error) {
	return f(ctx)
}

// Static returns a Source that always reports the given point. It backs the
// primary path, where the browser already shared device coordinates.
func Static(p Point) Source {
	return SourceFunc(func(context.Context) (Point, error) {
		return p, nil
	})
}

// Resolve tries each source in order and returns the first successful answer.
// Failures are logged as diagnostics only; they never surface to the visitor.
func Resolve(ctx context.Context, sources ...Source) Resolution {
	for _, src := range sources {
		p, err := src.Locate(ctx)
		if err != nil {
			slog.DebugContext(ctx, "Location source failed", "error", err)
			continue
		}
		return Resolution{Point: p, Known: true, Zoom: ZoomClose}
	}

	slog.InfoContext(ctx, "Problem with getting location, staying at world view")
	return Resolution{Zoom: ZoomWorld}
}
