// Package boundary adapts raw foreign-caller inputs into safe render
// calls and reports outcomes through a single-slot error channel.
//
// The exported C entry point carries no side-channel for rich error
// objects, so failures travel as an integer status code plus a message
// retrievable after the call. The channel and adapter are ordinary
// injectable values: only the outermost cgo layer holds true
// process-wide instances, which keeps everything here testable in
// isolation.
package boundary

import (
	"strings"
	"sync"
)

// Channel is a single-slot store for the most recent failure message.
// Every render call overwrites the slot; a caller that needs race-free
// diagnostics under concurrent calls must serialize its call+read
// pairs externally.
//
// All methods are safe for concurrent use.
type Channel struct {
	mu  sync.Mutex
	msg string
	set bool
}

// Set stores msg, replacing any prior content. Embedded NUL bytes are
// escaped so the stored text stays a valid C string when handed across
// the boundary.
func (c *Channel) Set(msg string) {
	sanitized := strings.ReplaceAll(msg, "\x00", `\0`)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msg = sanitized
	c.set = true
}

// Clear removes any stored message.
func (c *Channel) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msg = ""
	c.set = false
}

// Peek returns the stored message without consuming it. The second
// return is false when no message is stored.
func (c *Channel) Peek() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msg, c.set
}
