package fonts

import (
	"sync"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
)

func TestRegister(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("Register() = %v, want nil", err)
	}

	// The registered typeface must resolve to a usable face through the
	// cache the engine draws text with.
	face := font.DefaultCache.Lookup(font.Font{Typeface: Name}, vg.Points(12))
	if face.Face == nil {
		t.Errorf("Lookup(%q) returned a nil face", Name)
	}

	// New charts must pick up the bundled typeface by default.
	if plot.DefaultFont.Typeface != Name {
		t.Errorf("plot.DefaultFont.Typeface = %q, want %q", plot.DefaultFont.Typeface, Name)
	}
}

func TestStyle(t *testing.T) {
	s := Style(vg.Points(14))
	if s.Typeface != Name {
		t.Errorf("Style().Typeface = %q, want %q", s.Typeface, Name)
	}
	if s.Size != vg.Points(14) {
		t.Errorf("Style().Size = %v, want %v", s.Size, vg.Points(14))
	}
}

func TestRegisterIdempotent(t *testing.T) {
	first := Register()
	for i := 0; i < 10; i++ {
		if got := Register(); got != first {
			t.Fatalf("Register() call %d = %v, want %v", i, got, first)
		}
	}
}

func TestRegisterConcurrent(t *testing.T) {
	const callers = 32

	results := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Register()
		}(i)
	}
	wg.Wait()

	for i, err := range results {
		if err != results[0] {
			t.Errorf("caller %d observed %v, caller 0 observed %v", i, err, results[0])
		}
	}
}
