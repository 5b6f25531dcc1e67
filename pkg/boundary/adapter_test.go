package boundary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plotkit/plotkit/pkg/plot"
)

func strptr(s string) *string { return &s }

func TestAdapterSuccess(t *testing.T) {
	var c Channel
	called := false
	a := New(&c, WithRenderFunc(func(path string, xs, ys []float64, opts plot.Options) error {
		called = true
		return nil
	}))

	status := a.Render(strptr("/tmp/out.png"), []float64{1, 2}, []float64{3, 4}, plot.DefaultOptions())

	if status != StatusOK {
		t.Errorf("Render() = %d, want %d", status, StatusOK)
	}
	if !called {
		t.Error("render pipeline was not invoked")
	}
	if msg, ok := c.Peek(); ok {
		t.Errorf("channel holds %q after success, want empty", msg)
	}
}

func TestAdapterValidation(t *testing.T) {
	tests := []struct {
		name     string
		path     *string
		xs, ys   []float64
		wantText string
	}{
		{
			name:     "null path",
			path:     nil,
			xs:       []float64{1},
			ys:       []float64{1},
			wantText: "path",
		},
		{
			name:     "null xs",
			path:     strptr("/tmp/out.png"),
			xs:       nil,
			ys:       []float64{1},
			wantText: "x data",
		},
		{
			name:     "null ys",
			path:     strptr("/tmp/out.png"),
			xs:       []float64{1},
			ys:       nil,
			wantText: "y data",
		},
		{
			name:     "zero count",
			path:     strptr("/tmp/out.png"),
			xs:       []float64{},
			ys:       []float64{},
			wantText: "point count",
		},
		{
			name:     "invalid utf-8 path",
			path:     strptr("bad\xff\xfepath"),
			xs:       []float64{1},
			ys:       []float64{1},
			wantText: "UTF-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Channel
			rendered := false
			a := New(&c, WithRenderFunc(func(string, []float64, []float64, plot.Options) error {
				rendered = true
				return nil
			}))

			status := a.Render(tt.path, tt.xs, tt.ys, plot.DefaultOptions())

			if status != StatusError {
				t.Errorf("Render() = %d, want %d", status, StatusError)
			}
			if rendered {
				t.Error("render pipeline was invoked despite invalid input")
			}
			msg, ok := c.Peek()
			if !ok {
				t.Fatal("channel is empty after failure")
			}
			if !strings.Contains(msg, tt.wantText) {
				t.Errorf("channel message %q does not mention %q", msg, tt.wantText)
			}
		})
	}
}

func TestAdapterRenderFailure(t *testing.T) {
	var c Channel
	a := New(&c, WithRenderFunc(func(string, []float64, []float64, plot.Options) error {
		return errors.New("disk on fire")
	}))

	status := a.Render(strptr("/tmp/out.png"), []float64{1}, []float64{1}, plot.DefaultOptions())

	if status != StatusError {
		t.Errorf("Render() = %d, want %d", status, StatusError)
	}
	if msg, _ := c.Peek(); !strings.Contains(msg, "disk on fire") {
		t.Errorf("channel message %q does not carry the pipeline diagnostic", msg)
	}
}

func TestAdapterContainsPanic(t *testing.T) {
	var c Channel
	a := New(&c, WithRenderFunc(func(string, []float64, []float64, plot.Options) error {
		panic("index out of range")
	}))

	status := a.Render(strptr("/tmp/out.png"), []float64{1}, []float64{1}, plot.DefaultOptions())

	if status != StatusError {
		t.Errorf("Render() = %d, want %d", status, StatusError)
	}
	msg, ok := c.Peek()
	if !ok {
		t.Fatal("channel is empty after contained panic")
	}
	if !strings.HasPrefix(msg, "Internal panic: ") {
		t.Errorf("channel message = %q, want \"Internal panic: ...\" prefix", msg)
	}
	if !strings.Contains(msg, "index out of range") {
		t.Errorf("channel message %q does not carry the panic value", msg)
	}
}

func TestAdapterClearsStaleError(t *testing.T) {
	var c Channel
	fail := true
	a := New(&c, WithRenderFunc(func(string, []float64, []float64, plot.Options) error {
		if fail {
			return errors.New("transient")
		}
		return nil
	}))

	if status := a.Render(strptr("/tmp/out.png"), []float64{1}, []float64{1}, plot.DefaultOptions()); status != StatusError {
		t.Fatalf("first Render() = %d, want %d", status, StatusError)
	}
	if _, ok := c.Peek(); !ok {
		t.Fatal("channel is empty after failure")
	}

	fail = false
	if status := a.Render(strptr("/tmp/out.png"), []float64{1}, []float64{1}, plot.DefaultOptions()); status != StatusOK {
		t.Fatalf("second Render() = %d, want %d", status, StatusOK)
	}
	if msg, ok := c.Peek(); ok {
		t.Errorf("stale message %q survived a successful call", msg)
	}
}

// TestAdapterEndToEnd exercises the default pipeline without a stub.
func TestAdapterEndToEnd(t *testing.T) {
	var c Channel
	a := New(&c)

	path := filepath.Join(t.TempDir(), "scatter.png")
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{1, 4, 2, 3, 5}

	if status := a.Render(&path, xs, ys, plot.DefaultOptions()); status != StatusOK {
		msg, _ := c.Peek()
		t.Fatalf("Render() = %d, want %d (channel: %q)", status, StatusOK, msg)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}
