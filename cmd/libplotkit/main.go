// Command libplotkit builds the C-callable scatter plot library.
//
// Build it as a shared library:
//
//	go build -buildmode=c-shared -o libplotkit.so ./cmd/libplotkit
//
// The generated libplotkit.h declares the exported functions and the
// plot_options struct. See examples/capi for a C consumer.
//
// # Safety contract
//
// plot_scatter_png trusts the caller-declared count: xs and ys must
// each point to at least n doubles. That precondition cannot be
// checked at a C boundary; violating it is undefined behavior. All
// other misuse (NULL pointers, zero count, invalid UTF-8 paths,
// inverted ranges) is validated and reported through
// plot_last_error_message.
package main

/*
#include <stdint.h>
#include <stdlib.h>
#include <stddef.h>

// plot_options configures a scatter plot render. Field order is part
// of the ABI; do not reorder.
typedef struct {
	uint32_t width;         // output width in pixels, > 0
	uint32_t height;        // output height in pixels, > 0
	uint32_t marker_radius; // point marker radius in pixels
	uint8_t  auto_range;    // nonzero: compute axis ranges from data
	double   x_min;         // explicit bounds, used when auto_range == 0
	double   x_max;
	double   y_min;
	double   y_max;
} plot_options;
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/plotkit/plotkit/pkg/boundary"
	"github.com/plotkit/plotkit/pkg/plot"
)

// Process-wide singletons. Everything behind them is injectable and
// tested in pkg/boundary; this layer only owns the true globals and
// the C string lifetime.
var (
	lastError boundary.Channel
	adapter   = boundary.New(&lastError)

	// cstr caches the C copy of the stored message so repeated
	// plot_last_error_message calls return a stable pointer. It is
	// freed at the start of the next render call, which bounds the
	// pointer's validity window exactly as documented.
	cstrMu sync.Mutex
	cstr   *C.char
)

//export plot_scatter_png
func plot_scatter_png(path *C.char, xs *C.double, ys *C.double, n C.size_t, opt C.plot_options) C.int32_t {
	dropCachedMessage()

	var pathStr *string
	if path != nil {
		s := C.GoString(path)
		pathStr = &s
	}

	// Safe, bounds-limited views over the caller's buffers. The
	// backing memory belongs to the caller and must outlive this call
	// only; nothing below retains the slices.
	var xsView, ysView []float64
	if xs != nil {
		xsView = unsafe.Slice((*float64)(unsafe.Pointer(xs)), int(n))
	}
	if ys != nil {
		ysView = unsafe.Slice((*float64)(unsafe.Pointer(ys)), int(n))
	}

	opts := plot.Options{
		Width:        int(opt.width),
		Height:       int(opt.height),
		MarkerRadius: float64(opt.marker_radius),
		AutoRange:    opt.auto_range != 0,
		XMin:         float64(opt.x_min),
		XMax:         float64(opt.x_max),
		YMin:         float64(opt.y_min),
		YMax:         float64(opt.y_max),
	}

	return C.int32_t(adapter.Render(pathStr, xsView, ysView, opts))
}

//export plot_last_error_message
func plot_last_error_message() *C.char {
	msg, ok := lastError.Peek()
	if !ok {
		return nil
	}

	cstrMu.Lock()
	defer cstrMu.Unlock()
	if cstr == nil {
		cstr = C.CString(msg)
	}
	return cstr
}

// dropCachedMessage releases the C copy of the previous message. The
// channel itself is cleared by the adapter.
func dropCachedMessage() {
	cstrMu.Lock()
	defer cstrMu.Unlock()
	if cstr != nil {
		C.free(unsafe.Pointer(cstr))
		cstr = nil
	}
}

func main() {}
