package boundary

import (
	"fmt"
	"sync"
	"testing"
)

func TestChannelSetPeekClear(t *testing.T) {
	var c Channel

	if msg, ok := c.Peek(); ok || msg != "" {
		t.Errorf("Peek() on empty channel = (%q, %v), want (\"\", false)", msg, ok)
	}

	c.Set("first failure")
	if msg, ok := c.Peek(); !ok || msg != "first failure" {
		t.Errorf("Peek() = (%q, %v), want (\"first failure\", true)", msg, ok)
	}

	// Peek does not consume.
	if _, ok := c.Peek(); !ok {
		t.Error("second Peek() consumed the message")
	}

	// Set replaces unconditionally.
	c.Set("second failure")
	if msg, _ := c.Peek(); msg != "second failure" {
		t.Errorf("Peek() after overwrite = %q, want %q", msg, "second failure")
	}

	c.Clear()
	if msg, ok := c.Peek(); ok || msg != "" {
		t.Errorf("Peek() after Clear() = (%q, %v), want (\"\", false)", msg, ok)
	}
}

func TestChannelSanitizesNUL(t *testing.T) {
	var c Channel
	c.Set("bad\x00message")

	msg, ok := c.Peek()
	if !ok {
		t.Fatal("Peek() = false, want true")
	}
	want := `bad\0message`
	if msg != want {
		t.Errorf("Peek() = %q, want %q", msg, want)
	}
}

func TestChannelConcurrent(t *testing.T) {
	var c Channel
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(fmt.Sprintf("caller %d iteration %d", i, j))
				c.Peek()
				if j%10 == 0 {
					c.Clear()
				}
			}
		}(i)
	}
	wg.Wait()

	// Whatever landed last, the channel must still be internally
	// consistent: a set slot has a message, a clear slot does not.
	msg, ok := c.Peek()
	if ok && msg == "" {
		t.Error("channel reports a stored message but the text is empty")
	}
	if !ok && msg != "" {
		t.Error("channel reports empty but holds text")
	}
}
