package cli

import (
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writePointsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write points: %v", err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writePointsFile(t, "x,y\n1,2\n2,4\n3,6\n4,8\n")
	output := filepath.Join(t.TempDir(), "out.png")

	c := New(io.Discard, LogInfo)
	cmd := c.renderCommand()
	cmd.SetArgs([]string{input, "-o", output, "--width", "200", "--height", "150"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("render command failed: %v", err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("output not created: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not decodable PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("image size = %dx%d, want 200x150", b.Dx(), b.Dy())
	}
}

func TestRenderCommandDefaultOutputPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writePointsFile(t, "1,1\n2,2\n")

	c := New(io.Discard, LogInfo)
	cmd := c.renderCommand()
	cmd.SetArgs([]string{input})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("render command failed: %v", err)
	}

	want := input[:len(input)-len(".csv")] + ".png"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("derived output %s not created: %v", want, err)
	}
}

func TestRenderCommandBadInput(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writePointsFile(t, "x,y\nnot,numbers\n")

	c := New(io.Discard, LogInfo)
	cmd := c.renderCommand()
	cmd.SetArgs([]string{input})
	cmd.SetErr(io.Discard)

	if err := cmd.Execute(); err == nil {
		t.Error("render command succeeded on non-numeric input, want error")
	}
}
