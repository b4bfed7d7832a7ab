package topas

// Cursor is a front-poppable view over the raw lines of one report.
// Ownership of the current position transfers strictly downward during
// parsing: the driver pops the declaration line, the measurement parser
// pops its one-tab block, the structure parser pops its two-tab block.
// The backing slice is never copied and never read by two consumers at
// once.
type Cursor struct {
	lines []string
	next  int
}

// NewCursor wraps a slice of raw lines. The slice is not copied; the
// caller must not mutate it while the cursor is in use.
func NewCursor(lines []string) *Cursor {
	return &Cursor{lines: lines}
}

// Peek returns the next line without consuming it. The second return
// value is false when the cursor is exhausted.
func (c *Cursor) Peek() (string, bool) {
	if c.next >= len(c.lines) {
		return "", false
	}
	return c.lines[c.next], true
}

// Pop consumes and returns the next line. The second return value is
// false when the cursor is exhausted.
func (c *Cursor) Pop() (string, bool) {
	line, ok := c.Peek()
	if ok {
		c.next++
	}
	return line, ok
}

// Len returns the number of unconsumed lines.
func (c *Cursor) Len() int {
	return len(c.lines) - c.next
}
