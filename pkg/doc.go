// Package pkg provides the core libraries for plotkit scatter rendering.
//
// # Overview
//
// Plotkit renders two-column point data as scatter plot PNGs and exposes
// that pipeline to C callers, a CLI, and an HTTP service. The pkg directory
// is organized into five main areas:
//
//  1. [plot] - Rendering (options, range resolution, scatter pipeline)
//  2. [boundary] - C boundary (error channel, validation adapter)
//  3. [fonts] - Bundled font registration with the chart engine
//  4. [cache] - Render artifact caching (memory, file, redis, null)
//  5. [server] - HTTP render service
//
// Supporting packages: [errors] (structured error codes), [observability]
// (instrumentation hooks), [buildinfo] (ldflags version info).
//
// # Architecture
//
// The typical data flow:
//
//	xs/ys series + options
//	         ↓
//	    [plot] ResolveRange (auto padding or validated explicit bounds)
//	         ↓
//	    [plot] Render (chart engine: axes, grid, markers)
//	         ↓
//	    PNG bytes (file, HTTP response, or C caller's path)
//
// C callers go through [boundary], which validates raw inputs, contains
// panics, and reports failures through a single-slot error channel instead
// of Go error values.
//
// # Quick Start
//
// Render a scatter plot to a file:
//
//	import "github.com/plotkit/plotkit/pkg/plot"
//
//	opts := plot.DefaultOptions()
//	if err := plot.RenderFile("out.png", xs, ys, opts); err != nil {
//	    log.Fatal(err)
//	}
package pkg
