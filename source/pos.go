package source

import (
	"fmt"
)

// Pos is one endpoint of a Span, kept in the bookkeeping form scanners
// naturally produce: the absolute byte offset plus the line number and the
// offset at which that line begins. Column positions are derived, never
// stored, so they stay honest as long as the scanner keeps Offset and
// LineOffset consistent.
//
// The zero value is an unknown position.
type Pos struct {
	Name       string // source name, "" when the input is unnamed
	Offset     int    // byte offset from the start of the input
	Line       int    // 1-based line number
	LineOffset int    // byte offset of the first byte of Line
}

// Known reports whether the position was produced by a scanner, as opposed
// to the zero value used for failures with no reasonable location.
func (p Pos) Known() bool {
	return p.Line > 0
}

// Column returns the 0-based byte column of the position within its line.
func (p Pos) Column() int {
	return p.Offset - p.LineOffset
}

// Span is the source range attached to every parsed unit and every
// diagnostic. Invariant: End is not before Begin within the same source.
// The zero value is the unknown span.
type Span struct {
	Begin Pos
	End   Pos
}

// NewSpan builds a span from two scanner positions.
func NewSpan(begin, end Pos) Span {
	return Span{Begin: begin, End: end}
}

// At builds a zero-length span at a single position.
func At(p Pos) Span {
	return Span{Begin: p, End: p}
}

// Known reports whether the span carries a real location.
func (s Span) Known() bool {
	return s.Begin.Known()
}

// Cover returns the smallest span containing both s and other. Spans from
// different sources do not merge; the receiver wins.
func (s Span) Cover(other Span) Span {
	if !s.Known() {
		return other
	}
	if !other.Known() || other.Begin.Name != s.Begin.Name {
		return s
	}
	if other.Begin.Offset < s.Begin.Offset {
		s.Begin = other.Begin
	}
	if other.End.Offset > s.End.Offset {
		s.End = other.End
	}
	return s
}

// String renders the span the way diagnostic headers expect it: the
// 1-based begin line with 0-based character offsets relative to that
// line's start, and the source name when there is one.
//
//	file "test.calc", line 3, characters 5-7
//	line 3, characters 5-7
//	unknown position
func (s Span) String() string {
	if !s.Known() {
		return "unknown position"
	}
	begin := s.Begin.Column()
	end := s.End.Offset - s.Begin.LineOffset
	if s.Begin.Name != "" {
		return fmt.Sprintf("file %q, line %d, characters %d-%d", s.Begin.Name, s.Begin.Line, begin, end)
	}
	return fmt.Sprintf("line %d, characters %d-%d", s.Begin.Line, begin, end)
}
