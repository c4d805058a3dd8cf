package source

// Cursor is a byte-level scanning position inside a File. It keeps the
// line bookkeeping current on every advance, so Pos() is O(1) and always
// consistent with the bytes consumed so far.
type Cursor struct {
	file    *File
	off     int
	line    int // 1-based
	lineOff int // offset of the first byte of line
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *File) Cursor {
	return Cursor{file: f, line: 1}
}

// File returns the file the cursor scans.
func (c *Cursor) File() *File {
	return c.file
}

// EOF reports whether the cursor has consumed all input.
func (c *Cursor) EOF() bool {
	return c.off >= len(c.file.Content)
}

// Peek reads the current byte without consuming it, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Content[c.off]
}

// Peek2 reads the current and next byte, or ok=false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.off+1 >= len(c.file.Content) {
		return 0, 0, false
	}
	return c.file.Content[c.off], c.file.Content[c.off+1], true
}

// Bump consumes one byte and returns it, or 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.lineOff = c.off
	}
	return b
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.file.Content[c.off] == b {
		c.Bump()
		return true
	}
	return false
}

// Pos returns the current position.
func (c *Cursor) Pos() Pos {
	return Pos{
		Name:       c.file.Name,
		Offset:     c.off,
		Line:       c.line,
		LineOffset: c.lineOff,
	}
}

// Mark saves the current position so a span or backtrack can refer to it.
func (c *Cursor) Mark() Pos {
	return c.Pos()
}

// SpanFrom returns the span from a mark to the current position.
func (c *Cursor) SpanFrom(m Pos) Span {
	return Span{Begin: m, End: c.Pos()}
}

// Reset moves the cursor back to a mark taken on this cursor.
func (c *Cursor) Reset(m Pos) {
	c.off = m.Offset
	c.line = m.Line
	c.lineOff = m.LineOffset
}

// Text returns the bytes consumed since the mark.
func (c *Cursor) Text(m Pos) string {
	return string(c.file.Content[m.Offset:c.off])
}
