// Package charstream implements the byte-level cursor the lexer reads
// from: a UTF-8-agnostic stream of bytes that tracks line and column
// position and can render a fatal diagnostic against the buffered
// source.
package charstream

import "github.com/skx/minic/diag"

// Stream is a byte cursor over a fixed buffer.
type Stream struct {
	buffer   string
	cursor   int
	line     int
	column   int
	reporter *diag.Reporter
}

// New returns a Stream reading buffer, reporting fatal errors as
// originating from filename.
func New(filename, buffer string) *Stream {
	return &Stream{
		buffer:   buffer,
		reporter: diag.New(filename, buffer),
	}
}

// Peek returns the byte at the cursor without advancing, or 0 at EOF.
func (s *Stream) Peek() byte {
	return s.PeekAhead(0)
}

// PeekAhead returns the byte n positions past the cursor without
// advancing, or 0 if that position is at or past EOF.
func (s *Stream) PeekAhead(n int) byte {
	pos := s.cursor + n
	if pos >= len(s.buffer) {
		return 0
	}
	return s.buffer[pos]
}

// Next returns the byte at the cursor and advances it, updating the
// line/column counters. Calling Next at EOF returns 0 and does not
// advance further.
func (s *Stream) Next() byte {
	if s.Eof() {
		return 0
	}
	ch := s.buffer[s.cursor]
	s.cursor++
	if ch == '\n' {
		s.line++
		s.column = 0
	} else {
		s.column++
	}
	return ch
}

// Eof reports whether the cursor has reached the end of the buffer.
func (s *Stream) Eof() bool {
	return s.cursor >= len(s.buffer)
}

// Line returns the current 0-indexed line number.
func (s *Stream) Line() int {
	return s.line
}

// Column returns the current 0-indexed column number.
func (s *Stream) Column() int {
	return s.column
}

// Die renders a fatal lexical diagnostic at the current position and
// terminates the process with exit code 1.
func (s *Stream) Die(message string) {
	s.reporter.Die(1, s.line, s.column, message)
}
