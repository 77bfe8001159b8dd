package rowio

// stream.go provides io.Reader wrappers applied in front of the CSV
// decoder so artifact handling happens once, in the stream, instead of
// being scattered through cell parsing:
//
//   - skipBOM removes the UTF-8 byte order mark Windows tools prepend
//   - sanitizer replaces invalid UTF-8 bytes with '?' on the fly
//
// Both run in constant memory regardless of input size.

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Wrap prepares a raw export stream for CSV decoding. BOM stripping must
// come first so the sanitizer never sees the marker bytes.
func Wrap(r io.Reader) io.Reader {
	return newSanitizer(skipBOM(r))
}

// skipBOM returns a reader positioned past a leading UTF-8 BOM, if any.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		br.Discard(3)
	}
	return br
}

// sanitizer replaces invalid UTF-8 sequences with '?' as data flows
// through. A multi-byte rune split across two Reads is held back in
// pending until the next call completes it.
type sanitizer struct {
	r       io.Reader
	pending []byte
}

func newSanitizer(r io.Reader) *sanitizer {
	return &sanitizer{r: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (s *sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	// The deferred prefix must be emitted together with at least one
	// fresh byte, otherwise its continuation would be scrubbed in
	// isolation on the next call.
	if len(p) <= len(s.pending) {
		return 0, io.ErrShortBuffer
	}

	off := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.r.Read(p[off:])
	n += off
	if n == 0 {
		return 0, err
	}

	if allASCII(p[:n]) {
		return n, err
	}
	return s.scrub(p[:n], err == io.EOF), err
}

// scrub rewrites data in place, returning the number of bytes kept.
// Incomplete trailing runes are deferred to pending unless atEOF.
func (s *sanitizer) scrub(data []byte, atEOF bool) int {
	w := 0
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			if !atEOF && incompleteRune(data[i:]) {
				s.pending = append(s.pending, data[i:]...)
				return w
			}
			data[w] = '?'
			w++
			i++
			continue
		}
		copy(data[w:], data[i:i+size])
		w += size
		i += size
	}
	return w
}

func allASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// incompleteRune reports whether data starts a multi-byte sequence that
// is shorter than the sequence's declared length.
func incompleteRune(data []byte) bool {
	if len(data) == 0 || data[0] < 0xC0 {
		return false
	}
	var want int
	switch {
	case data[0] < 0xE0:
		want = 2
	case data[0] < 0xF0:
		want = 3
	default:
		want = 4
	}
	return len(data) < want
}
